package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier_RoundTrip(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	token, err := v.GenerateToken("client-42", time.Hour)
	require.NoError(t, err)

	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client-42", claims.Subject)

	assert.NoError(t, v.Authorize(t.Context(), "Bearer "+token))
	assert.NoError(t, v.Authorize(t.Context(), "bearer "+token))
	assert.NoError(t, v.Authorize(t.Context(), token))
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v := NewJWTVerifier("test-secret")
	valid, err := v.GenerateToken("client", time.Hour)
	require.NoError(t, err)

	other, err := NewJWTVerifier("other-secret").GenerateToken("client", time.Hour)
	require.NoError(t, err)

	expired := NewJWTVerifier("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken("client", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "client"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		credential string
	}{
		{"empty", ""},
		{"scheme only", "Bearer"},
		{"too many parts", "Bearer " + valid + " extra"},
		{"wrong secret", "Bearer " + other},
		{"expired", "Bearer " + expiredToken},
		{"missing expiry", "Bearer " + noExpiry},
		{"other algorithm", "Bearer " + hs512},
		{"garbage", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, v.Authorize(t.Context(), tt.credential), ErrUnauthorized)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"BEARER   abc  ", "abc"},
		{"abc", "abc"},
		{"Basic abc", ""},
		{"Bearer a b", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, BearerToken(tt.header))
		})
	}
}
