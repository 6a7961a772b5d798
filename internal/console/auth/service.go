package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fundry/console/internal/console/api"
	"github.com/fundry/console/internal/console/session"
)

// ErrMalformedToken is returned when a login succeeds but the issued token
// lacks the claims the console needs to build a session.
var ErrMalformedToken = errors.New("malformed token")

// Service drives the login/register/logout lifecycle. On successful login
// it populates the session store in one Set: token, role, and expiry always
// land together.
type Service struct {
	client api.Client
	store  session.Store
}

func NewService(client api.Client, store session.Store) *Service {
	return &Service{client: client, store: store}
}

// tokenClaims is what the platform puts into issued tokens. The console
// holds no signing key, so claims are read without signature verification;
// the server remains the authority and rejects tampered tokens on use.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Login authenticates and stores the resulting session. The returned role
// is what the caller routes on.
func (s *Service) Login(ctx context.Context, email string, password []byte) (session.Role, error) {
	token, err := s.client.Login(ctx, email, string(password))
	if err != nil {
		return session.RoleUnknown, fmt.Errorf("login error: %w", err)
	}

	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return session.RoleUnknown, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return session.RoleUnknown, fmt.Errorf("%w: missing expiry", ErrMalformedToken)
	}

	role := session.ParseRole(claims.Role)
	s.store.Set(session.Session{
		Token:     token,
		Role:      role,
		ExpiresAt: strconv.FormatInt(claims.ExpiresAt.UnixMilli(), 10),
	})
	return role, nil
}

// Register creates an account. It does not sign the user in; callers follow
// up with Login.
func (s *Service) Register(ctx context.Context, email string, password []byte, name string, role session.Role) error {
	if err := s.client.Register(ctx, email, string(password), name, string(role)); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Logout wipes the local session. There is no server-side call: the token
// simply stops being presented.
func (s *Service) Logout() {
	s.store.Clear()
}
