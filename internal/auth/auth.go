// Package auth decides whether the credential presented with a rewrite request is authorized.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized is returned when the credential is missing or not affirmed.
var ErrUnauthorized = errors.New("not authorized")

// TransportError reports that the authorization capability could not be reached.
type TransportError struct {
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("authorization service %s unreachable: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Authorizer checks a credential. A nil error means authorized.
type Authorizer interface {
	Authorize(ctx context.Context, credential string) error
}

// BearerToken returns the token of a "Bearer <token>" header, matching the scheme
// case-insensitively. A header without a scheme is returned trimmed.
func BearerToken(header string) string {
	parts := strings.Fields(header)
	switch {
	case len(parts) == 2 && strings.EqualFold(parts[0], "Bearer"):
		return parts[1]
	case len(parts) == 1:
		return parts[0]
	default:
		return ""
	}
}
