// Package auth decides, without a server round-trip, whether the current
// session is valid, and where an authenticated user lands when no explicit
// route matches. It fails closed: anything absent or malformed reads as
// signed-out.
package auth

import (
	"strconv"
	"time"

	"github.com/fundry/console/internal/console/session"
)

// Guard evaluates session validity against wall-clock time. The clock is
// injected so tests can pin it.
type Guard struct {
	store session.Store
	now   func() time.Time
}

func NewGuard(store session.Store, now func() time.Time) *Guard {
	if now == nil {
		now = time.Now
	}
	return &Guard{store: store, now: now}
}

// IsAuthenticated re-reads the store and reports whether the session is
// currently valid.
//
// Contract:
//   - token or expiry absent: false, store untouched (idempotent read)
//   - expiry non-numeric or in the past: false, and the whole session is
//     cleared as a side effect
//   - otherwise: true
//
// The expiry branch is the only mutating path.
func (g *Guard) IsAuthenticated() bool {
	s := g.store.Get()
	if s.Token == "" || s.ExpiresAt == "" {
		return false
	}

	expiresAt, err := strconv.ParseInt(s.ExpiresAt, 10, 64)
	if err != nil {
		// Malformed expiry counts as expired, never as valid forever.
		g.store.Clear()
		return false
	}

	if g.now().UnixMilli() > expiresAt {
		g.store.Clear()
		return false
	}
	return true
}
