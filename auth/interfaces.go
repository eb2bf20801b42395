package auth

import "context"

// CredentialStore defines the contract for durable persistence of the current
// token pair and identity. Implementations are best-effort: a failed read
// degrades to "nothing persisted" and a failed write costs at most a forced
// re-login.
type CredentialStore interface {
	SaveTokens(pair TokenPair) error
	LoadTokens() (*TokenPair, error)
	SaveIdentity(identity Identity) error
	LoadIdentity() (*Identity, error)
	Clear() error
}

// RefreshExecutor defines the contract for exchanging the current token pair
// for a fresh one at the remote authentication endpoint. It performs exactly
// one network call per invocation and is only ever called by the session's
// refresh coordinator.
type RefreshExecutor interface {
	Refresh(ctx context.Context, current TokenPair) (TokenPair, error)
}

// Authenticator defines the contract for the initial credential exchange at
// the remote authentication endpoint.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (Identity, TokenPair, error)
}
