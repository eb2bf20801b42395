package auth

import (
	"context"

	"github.com/rs/zerolog/log"
)

// EnsureFreshToken guarantees that at most one refresh call is in flight for
// this session, no matter how many goroutines ask at once. The first caller
// of a cycle becomes the leader and performs the network exchange; everyone
// arriving while it runs is queued as a follower and resolves with the
// leader's outcome. A caller arriving after the flight has been drained
// starts a new cycle.
//
// On success the new pair is installed in memory and the credential store
// before any waiter resolves. On any failure the session is cleared
// (fail closed) and every waiter receives the same error.
func (s *Session) EnsureFreshToken(ctx context.Context) (TokenPair, error) {
	s.mu.Lock()
	if s.flight.inProgress {
		// Follower: enqueue and suspend until the leader drains the flight.
		// The channel is buffered so the leader's send never blocks, even if
		// this caller gives up on its context first.
		ch := make(chan flightResult, 1)
		s.flight.waiters = append(s.flight.waiters, ch)
		s.mu.Unlock()

		select {
		case res := <-ch:
			return res.pair, res.err
		case <-ctx.Done():
			return TokenPair{}, ctx.Err()
		}
	}

	if s.tokens == nil || s.tokens.RefreshToken == "" {
		s.mu.Unlock()
		return TokenPair{}, ErrNotAuthenticated
	}

	// Leader: claim the flight and read the current pair in the same critical
	// section, so the exchange never uses a pair that another flight already
	// superseded.
	s.flight.inProgress = true
	current := *s.tokens
	s.mu.Unlock()

	fresh, err := s.refresher.Refresh(ctx, current)

	s.mu.Lock()
	if err != nil {
		log.Warn().Err(err).Msg("Token refresh failed, clearing session")
		s.clearLocked()
	} else {
		s.tokens = &fresh
		if serr := s.store.SaveTokens(fresh); serr != nil {
			log.Warn().Err(serr).Msg("Failed to persist refreshed tokens")
		}
	}

	// Drain and reset atomically: no caller can join a flight that has begun
	// resolving, and inProgress is never observed false while a waiter is
	// still unresolved.
	res := flightResult{pair: fresh, err: err}
	for _, ch := range s.flight.waiters {
		ch <- res
	}
	s.flight.waiters = nil
	s.flight.inProgress = false
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	if err != nil {
		return TokenPair{}, err
	}
	return fresh, nil
}
