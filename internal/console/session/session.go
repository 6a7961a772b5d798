// Package session holds the client-side proof of login: an opaque bearer
// token, the role tag of the signed-in user, and an absolute expiry.
// The store is ephemeral: nothing survives process exit.
package session

// Role is the closed set of role tags the platform issues.
type Role string

const (
	RoleUnknown  Role = ""
	RoleAdmin    Role = "ADMIN"
	RoleBusiness Role = "BUSINESS"
	RoleInvestor Role = "INVESTOR"
)

// ParseRole maps an arbitrary string to a Role. Unrecognized input maps to
// RoleUnknown rather than an error; downstream routing treats unknown roles
// as signed-out.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleBusiness, RoleInvestor:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// Session is the replace-or-clear unit of login state. Token and ExpiresAt
// are set together and cleared together; a session with only one of them
// present is invalid.
//
// ExpiresAt is kept as the stringified epoch-milliseconds integer exactly as
// the platform hands it out; the auth guard owns parsing and fail-closed
// handling of malformed values.
type Session struct {
	Token     string
	Role      Role
	ExpiresAt string
}

// Store is the process-wide session storage. Consumers must re-read via
// Get on every decision and never cache a copy across calls.
type Store interface {
	Get() Session
	Set(s Session)
	Clear()
}
