package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-rewriter/internal/auth"
)

type recordingAuthorizer struct {
	calls       int
	credentials []string
	err         error
}

func (a *recordingAuthorizer) Authorize(_ context.Context, credential string) error {
	a.calls++
	a.credentials = append(a.credentials, credential)
	return a.err
}

func denyWithStatus(status int, denied *error) DenyFunc {
	return func(w http.ResponseWriter, _ *http.Request, err error) {
		*denied = err
		w.WriteHeader(status)
	}
}

func TestAuthorize_AllowsAffirmedCredential(t *testing.T) {
	authorizer := &recordingAuthorizer{}
	var denied error

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/rewrite/", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()

	Authorize(authorizer, denyWithStatus(http.StatusUnauthorized, &denied))(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerCalled)
	assert.NoError(t, denied)
	assert.Equal(t, []string{"Token abc123"}, authorizer.credentials)
}

func TestAuthorize_MissingHeaderSkipsAuthorizer(t *testing.T) {
	authorizer := &recordingAuthorizer{}
	var denied error

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodPost, "/rewrite/", nil)
	w := httptest.NewRecorder()

	Authorize(authorizer, denyWithStatus(http.StatusUnauthorized, &denied))(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.ErrorIs(t, denied, auth.ErrUnauthorized)
	assert.Zero(t, authorizer.calls)
}

func TestAuthorize_DeniedCredential(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "not affirmed", err: auth.ErrUnauthorized},
		{name: "transport failure", err: &auth.TransportError{URL: "http://auth", Cause: errors.New("refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := &recordingAuthorizer{err: tt.err}
			var denied error

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			})

			req := httptest.NewRequest(http.MethodPost, "/rewrite/", nil)
			req.Header.Set("Authorization", "Bearer nope")
			w := httptest.NewRecorder()

			Authorize(authorizer, denyWithStatus(http.StatusUnauthorized, &denied))(handler).ServeHTTP(w, req)

			require.Error(t, denied)
			assert.Equal(t, tt.err, denied)
			assert.Equal(t, 1, authorizer.calls)
		})
	}
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
}
