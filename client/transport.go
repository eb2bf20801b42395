package client

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bizcurrency/bizcli/auth"
	"github.com/rs/zerolog/log"
)

// Transport is the request authorization pipeline: an http.RoundTripper that
// attaches the session's current access token to every outgoing call and, on
// an authorization failure, refreshes the token through the session's
// single-flight coordinator and replays the original call exactly once.
//
// The single retry is structural: there is one retry block and no loop, so a
// server that rejects even freshly refreshed tokens can never cause a retry
// storm. Requests that already carry an explicit Authorization header are
// passed through untouched.
type Transport struct {
	// Base is the underlying transport. http.DefaultTransport when nil.
	Base http.RoundTripper

	// Session supplies tokens and performs coordinated refreshes.
	Session *auth.Session

	// OnSessionExpired, if set, is invoked after the session has been
	// terminated, so the caller can steer the user back to login.
	OnSessionExpired func()
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	authed := req
	if req.Header.Get("Authorization") == "" {
		// No session means the call goes out unauthenticated; the server's
		// 401 is then handled on the uniform path below.
		if snap := t.Session.Current(); snap.Tokens != nil {
			authed = req.Clone(req.Context())
			authed.Header.Set("Authorization", "Bearer "+snap.Tokens.AccessToken)
		}
	}

	resp, err := base.RoundTrip(authed)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	if req.Body != nil && req.GetBody == nil {
		// The body cannot be replayed, so the 401 is surfaced as-is.
		return resp, nil
	}
	drainBody(resp)

	log.Debug().Str("url", req.URL.Path).Msg("Authorization failure, refreshing token and retrying once")
	pair, err := t.Session.EnsureFreshToken(req.Context())
	if err != nil {
		t.sessionExpired()
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, auth.ErrSessionExpired)
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, fmt.Errorf("failed to replay request body: %w", berr)
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	resp, err = base.RoundTrip(retry)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// The server rejected a token it just issued. Terminate the session
		// rather than trying again.
		drainBody(resp)
		t.Session.Logout()
		t.sessionExpired()
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, auth.ErrSessionExpired)
	}
	return resp, nil
}

func (t *Transport) sessionExpired() {
	if t.OnSessionExpired != nil {
		t.OnSessionExpired()
	}
}

func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
