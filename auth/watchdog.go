package auth

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Watchdog periodically checks the current access token and triggers a
// proactive refresh shortly before its natural expiry, so most refreshes
// happen in the background instead of on the failure path of an API call. It
// goes through the exact same EnsureFreshToken entry point as a reactive
// caller, which is what keeps a proactive tick from racing a 401-triggered
// refresh into two network calls.
//
// The ticker runs only while the session is authenticated: it starts on
// login, stops on logout or an unrecoverable refresh.
type Watchdog struct {
	session  *Session
	interval time.Duration
	buffer   time.Duration

	mu     sync.Mutex
	stop   chan struct{}
	closed bool
}

// NewWatchdog creates a watchdog bound to the session and synchronizes it
// with the session's current state. Zero interval or buffer selects the
// defaults (30s tick, 60s expiry buffer).
func NewWatchdog(session *Session, interval, buffer time.Duration) *Watchdog {
	if interval <= 0 {
		interval = DefaultWatchdogInterval
	}
	if buffer <= 0 {
		buffer = DefaultRefreshBuffer
	}
	w := &Watchdog{session: session, interval: interval, buffer: buffer}
	session.OnChange(w.onChange)
	w.onChange(session.Current())
	return w
}

// Running reports whether the ticker is currently active.
func (w *Watchdog) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stop != nil
}

// Close stops the watchdog permanently. Further session changes are ignored.
func (w *Watchdog) Close() {
	w.mu.Lock()
	w.closed = true
	w.stopLocked()
	w.mu.Unlock()
}

func (w *Watchdog) onChange(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if snap.Authenticated() {
		w.startLocked()
	} else {
		w.stopLocked()
	}
}

func (w *Watchdog) startLocked() {
	if w.stop != nil {
		return
	}
	w.stop = make(chan struct{})
	go w.run(w.stop)
	log.Debug().Dur("interval", w.interval).Msg("Expiry watchdog started")
}

func (w *Watchdog) stopLocked() {
	if w.stop == nil {
		return
	}
	close(w.stop)
	w.stop = nil
	log.Debug().Msg("Expiry watchdog stopped")
}

func (w *Watchdog) run(stop chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

func (w *Watchdog) tick() {
	snap := w.session.Current()
	if !snap.Authenticated() || !snap.Tokens.ExpiresWithin(w.buffer) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()
	if _, err := w.session.EnsureFreshToken(ctx); err != nil {
		log.Warn().Err(err).Msg("Proactive token refresh failed")
	}
}
