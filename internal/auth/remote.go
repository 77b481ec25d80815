package auth

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a verification call when none is configured.
const DefaultTimeout = 10 * time.Second

// affirmative is the only response body that authorizes a credential.
const affirmative = "OK"

// maxBodyBytes caps how much of the verification response is read.
const maxBodyBytes = 1 << 10

// RemoteVerifier asks a remote endpoint whether a credential is valid. The credential is
// forwarded verbatim as the Authorization header of a GET request.
type RemoteVerifier struct {
	url    string
	client *http.Client
}

// NewRemoteVerifier creates a verifier for url. A non-positive timeout selects DefaultTimeout.
func NewRemoteVerifier(url string, timeout time.Duration) *RemoteVerifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RemoteVerifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Authorize returns nil only when the endpoint answers with a 2xx status and a body that is
// exactly "OK" once leading and trailing whitespace is trimmed, so "OK\n" affirms but "ok"
// and "OK." do not. An unreachable endpoint yields a *TransportError; any other answer
// yields ErrUnauthorized.
func (v *RemoteVerifier) Authorize(ctx context.Context, credential string) error {
	if strings.TrimSpace(credential) == "" {
		return ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return &TransportError{URL: v.url, Cause: err}
	}
	req.Header.Set("Authorization", credential)

	resp, err := v.client.Do(req)
	if err != nil {
		return &TransportError{URL: v.url, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{URL: v.url, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ErrUnauthorized
	}
	if strings.TrimSpace(string(body)) != affirmative {
		return ErrUnauthorized
	}
	return nil
}
