package auth

import "errors"

// Error taxonomy for the session lifecycle. Callers are expected to test with
// errors.Is; lower layers wrap these with request-specific detail.
var (
	// ErrAuthenticationFailed means the login endpoint rejected the credentials.
	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")

	// ErrMalformedResponse means the endpoint answered 2xx but the payload was
	// missing required fields.
	ErrMalformedResponse = errors.New("malformed response from authentication endpoint")

	// ErrRefreshRejected means the endpoint explicitly invalidated the refresh
	// token. The session cannot be recovered.
	ErrRefreshRejected = errors.New("refresh token rejected by authentication endpoint")

	// ErrTransientFailure covers network errors, timeouts, and 5xx answers from
	// the refresh endpoint. Treated the same as a rejection (fail closed).
	ErrTransientFailure = errors.New("transient failure while refreshing token")

	// ErrSessionExpired is the terminal signal surfaced to API callers after an
	// unrecoverable refresh. The local session has already been cleared.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrNotAuthenticated means there is no refresh token to work with. No
	// network call is made.
	ErrNotAuthenticated = errors.New("no refresh token available, please log in first")
)
