package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fundry/console/internal/console/session"
)

func fixedNow(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestGuard_ValidSessionUntouched(t *testing.T) {
	st := session.NewMemoryStore()
	sess := session.Session{Token: "t", Role: session.RoleAdmin, ExpiresAt: "2000"}
	st.Set(sess)

	g := NewGuard(st, fixedNow(1000))
	require.True(t, g.IsAuthenticated())
	require.Equal(t, sess, st.Get())
}

func TestGuard_ExpiredSessionClearsEverything(t *testing.T) {
	st := session.NewMemoryStore()
	st.Set(session.Session{Token: "t", Role: session.RoleBusiness, ExpiresAt: "1000"})

	g := NewGuard(st, fixedNow(2000))
	require.False(t, g.IsAuthenticated())
	require.Equal(t, session.Session{}, st.Get())
}

func TestGuard_ExactExpiryStillValid(t *testing.T) {
	// Expiry is inclusive: only now > expiresAt counts as expired.
	st := session.NewMemoryStore()
	st.Set(session.Session{Token: "t", ExpiresAt: "1000"})

	g := NewGuard(st, fixedNow(1000))
	require.True(t, g.IsAuthenticated())
}

func TestGuard_MissingFieldsFailClosedWithoutMutation(t *testing.T) {
	tests := []struct {
		name string
		sess session.Session
	}{
		{"empty", session.Session{}},
		{"token only", session.Session{Token: "t"}},
		{"expiry only", session.Session{ExpiresAt: "9999999999999"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := session.NewMemoryStore()
			st.Set(tt.sess)
			g := NewGuard(st, fixedNow(0))
			require.False(t, g.IsAuthenticated())
			// Absent fields are a no-mutation read; only expiry triggers Clear.
			require.Equal(t, tt.sess, st.Get())
		})
	}
}

func TestGuard_MalformedExpiryTreatedAsExpired(t *testing.T) {
	st := session.NewMemoryStore()
	st.Set(session.Session{Token: "t", Role: session.RoleInvestor, ExpiresAt: "not-a-number"})

	g := NewGuard(st, fixedNow(0))
	require.False(t, g.IsAuthenticated())
	require.Equal(t, session.Session{}, st.Get())
}

func TestGuard_ReReadsStoreEveryCall(t *testing.T) {
	st := session.NewMemoryStore()
	g := NewGuard(st, fixedNow(1000))

	require.False(t, g.IsAuthenticated())

	st.Set(session.Session{Token: "t", ExpiresAt: "2000"})
	require.True(t, g.IsAuthenticated())

	st.Clear()
	require.False(t, g.IsAuthenticated())
}
