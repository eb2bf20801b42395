package auth

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultRefreshBuffer is how long before the access token's expiry it is
	// considered due for a proactive refresh.
	DefaultRefreshBuffer = 60 * time.Second

	// DefaultWatchdogInterval is how often the expiry watchdog checks the
	// current token.
	DefaultWatchdogInterval = 30 * time.Second
)

// TokenPair holds the current credentials. ExpiresAt is the absolute expiry
// instant of the access token, never of the refresh token. A pair is always
// replaced as a whole.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// ExpiresWithin reports whether the access token is expired or will expire
// within the given buffer.
func (t TokenPair) ExpiresWithin(buffer time.Duration) bool {
	return !time.Now().Add(buffer).Before(t.ExpiresAt)
}

// Identity holds the profile of the logged-in user as returned by the
// authentication endpoint.
type Identity struct {
	UserID            string
	UserName          string
	FirstName         string
	LastName          string
	OrganizationID    string
	OrganizationName  string
	Email             string
	BranchName        string
	BaseCurrency      string
	PreferredLanguage string
}

// Snapshot is a consistent copy of the session state: identity and tokens are
// either both present or both absent. Ready becomes true once startup
// initialization has completed, whatever its outcome.
type Snapshot struct {
	Identity *Identity
	Tokens   *TokenPair
	Ready    bool
}

// Authenticated reports whether the snapshot carries a logged-in identity.
func (s Snapshot) Authenticated() bool {
	return s.Identity != nil && s.Tokens != nil
}

type flightResult struct {
	pair TokenPair
	err  error
}

// refreshFlight is the singleton in-progress refresh marker. Waiters may only
// grow while a flight is in progress, and the drain plus the inProgress reset
// happen in a single critical section.
type refreshFlight struct {
	inProgress bool
	waiters    []chan flightResult
}

// Session is the single source of truth for who is logged in and with what
// tokens. All mutations of the identity, the token pair, and the refresh
// flight happen under one mutex, so concurrent callers of any method observe
// either the state before a transition or the state after it, never a mix.
type Session struct {
	store         CredentialStore
	refresher     RefreshExecutor
	authenticator Authenticator

	mu       sync.Mutex
	identity *Identity
	tokens   *TokenPair
	ready    bool
	flight   refreshFlight

	listeners []func(Snapshot)
}

// NewSession creates a session backed by the given store and endpoint
// implementations. The session starts logged out and not ready; call
// Initialize once at startup.
func NewSession(store CredentialStore, refresher RefreshExecutor, authenticator Authenticator) *Session {
	return &Session{
		store:         store,
		refresher:     refresher,
		authenticator: authenticator,
	}
}

// OnChange registers a listener invoked after every state transition with a
// snapshot of the new state. Listeners run outside the session lock and may
// call back into the session.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Initialize loads persisted credentials and, if the access token is already
// stale, refreshes it synchronously before the session is marked ready. This
// keeps the first API call of the process from racing a known-expired token.
// The session ends up ready in every outcome; a failed refresh simply means
// ready-but-logged-out.
func (s *Session) Initialize(ctx context.Context) {
	tokens, err := s.store.LoadTokens()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load persisted tokens, starting logged out")
		tokens = nil
	}
	identity, err := s.store.LoadIdentity()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load persisted identity, starting logged out")
		identity = nil
	}

	if tokens == nil || identity == nil {
		s.mu.Lock()
		// A half-persisted session is treated as no session at all.
		if tokens != nil || identity != nil {
			s.clearLocked()
		}
		s.ready = true
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)
		return
	}

	s.mu.Lock()
	s.identity = identity
	s.tokens = tokens
	s.mu.Unlock()

	if tokens.ExpiresWithin(DefaultRefreshBuffer) {
		if _, err := s.EnsureFreshToken(ctx); err != nil {
			log.Warn().Err(err).Msg("Startup token refresh failed, starting logged out")
		}
	}

	s.mu.Lock()
	s.ready = true
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Login exchanges the credentials at the authentication endpoint and installs
// the returned identity and token pair into memory and the credential store.
// On error the existing session state is left untouched.
func (s *Session) Login(ctx context.Context, username, password string) (Identity, error) {
	identity, pair, err := s.authenticator.Login(ctx, username, password)
	if err != nil {
		return Identity{}, err
	}

	s.mu.Lock()
	s.identity = &identity
	s.tokens = &pair
	s.ready = true
	s.persistLocked(identity, pair)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	log.Info().Str("user", identity.UserName).Msg("Logged in")
	return identity, nil
}

// Logout clears the identity and token pair from memory and the credential
// store. It never fails; persistence errors are logged and swallowed.
func (s *Session) Logout() {
	s.mu.Lock()
	s.clearLocked()
	s.ready = true
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	log.Info().Msg("Logged out")
}

// Current returns a consistent snapshot of the session state.
func (s *Session) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{Ready: s.ready}
	if s.identity != nil && s.tokens != nil {
		identity := *s.identity
		tokens := *s.tokens
		snap.Identity = &identity
		snap.Tokens = &tokens
	}
	return snap
}

func (s *Session) persistLocked(identity Identity, pair TokenPair) {
	if err := s.store.SaveTokens(pair); err != nil {
		log.Warn().Err(err).Msg("Failed to persist tokens")
	}
	if err := s.store.SaveIdentity(identity); err != nil {
		log.Warn().Err(err).Msg("Failed to persist identity")
	}
}

func (s *Session) clearLocked() {
	s.identity = nil
	s.tokens = nil
	if err := s.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear persisted credentials")
	}
}

func (s *Session) notify(snap Snapshot) {
	s.mu.Lock()
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}
