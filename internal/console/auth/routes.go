package auth

import "github.com/fundry/console/internal/console/session"

// Canonical paths of the console surface. The unauthenticated-only paths
// bypass the guard entirely.
const (
	PathSignIn = "/signin"
	PathSignUp = "/signup"

	PathAdminInvestments  = "/admin/investments"
	PathBusinessDashboard = "/business/dashboard"
	PathInvestorDashboard = "/investor/dashboard"
)

// DefaultRouteFor maps a role to its landing path. Total: every role,
// including unknown/absent, maps to a defined path.
func DefaultRouteFor(role session.Role) string {
	switch role {
	case session.RoleAdmin:
		return PathAdminInvestments
	case session.RoleBusiness:
		return PathBusinessDashboard
	case session.RoleInvestor:
		return PathInvestorDashboard
	default:
		return PathSignIn
	}
}

// Outcome names the three states of a navigation attempt.
type Outcome int

const (
	// OutcomeRedirectSignIn: not authenticated; go to sign-in.
	OutcomeRedirectSignIn Outcome = iota
	// OutcomeRender: authenticated and the requested path is a known route.
	OutcomeRender
	// OutcomeRedirectDefault: authenticated but no route matched; land on
	// the role's default path.
	OutcomeRedirectDefault
)

// Decision is the result of resolving one navigation.
type Decision struct {
	Outcome Outcome
	// Path is where the navigation ends up.
	Path string
	// RequestedPath carries the originally requested path on a sign-in
	// redirect, for best-effort post-login restore.
	RequestedPath string
}

// Resolver applies the guard and the route table to a requested path.
type Resolver struct {
	guard  *Guard
	store  session.Store
	routes map[string]struct{}
	public map[string]struct{}
}

func NewResolver(guard *Guard, store session.Store, routes []string) *Resolver {
	r := &Resolver{
		guard:  guard,
		store:  store,
		routes: make(map[string]struct{}, len(routes)),
		public: map[string]struct{}{
			PathSignIn: {},
			PathSignUp: {},
		},
	}
	for _, p := range routes {
		r.routes[p] = struct{}{}
	}
	return r
}

// Resolve evaluates one navigation. Public paths render without touching
// the guard. Everything else is gated: guard failure redirects to sign-in
// (preserving the requested path), a matched route renders, and an
// unmatched route falls back to the role default.
func (r *Resolver) Resolve(path string) Decision {
	if _, ok := r.public[path]; ok {
		return Decision{Outcome: OutcomeRender, Path: path}
	}

	if !r.guard.IsAuthenticated() {
		return Decision{
			Outcome:       OutcomeRedirectSignIn,
			Path:          PathSignIn,
			RequestedPath: path,
		}
	}

	if _, ok := r.routes[path]; ok {
		return Decision{Outcome: OutcomeRender, Path: path}
	}

	return Decision{
		Outcome: OutcomeRedirectDefault,
		Path:    DefaultRouteFor(r.store.Get().Role),
	}
}
