package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"ADMIN", RoleAdmin},
		{"BUSINESS", RoleBusiness},
		{"INVESTOR", RoleInvestor},
		{"", RoleUnknown},
		{"admin", RoleUnknown},
		{"SUPERUSER", RoleUnknown},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseRole(tt.in), "input %q", tt.in)
	}
}

func TestMemoryStore_SetReplacesWholesale(t *testing.T) {
	st := NewMemoryStore()
	st.Set(Session{Token: "t1", Role: RoleAdmin, ExpiresAt: "123"})
	st.Set(Session{Token: "t2"})

	got := st.Get()
	require.Equal(t, "t2", got.Token)
	require.Equal(t, RoleUnknown, got.Role)
	require.Empty(t, got.ExpiresAt)
}

func TestMemoryStore_ClearWipesAllFields(t *testing.T) {
	st := NewMemoryStore()
	st.Set(Session{Token: "t", Role: RoleInvestor, ExpiresAt: "99"})
	st.Clear()
	require.Equal(t, Session{}, st.Get())
}
