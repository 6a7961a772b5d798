package mockapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userKey contextKey = "user_id"

// tokenTTL matches what the real platform issues; the console derives its
// session expiry from the exp claim in this token.
const tokenTTL = 24 * time.Hour

type apiClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// issueToken signs an HS256 token carrying the account id and role.
func issueToken(secret []byte, u User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, apiClaims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    "fundry-mockapi",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	return token.SignedString(secret)
}

// userIDFrom extracts the authenticated account id placed by authMiddleware.
func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userKey).(string)
	return id
}

// authMiddleware validates the bearer token and injects the account id into
// the request context. Missing or invalid tokens get a 401.
func authMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ""
			if h := r.Header.Get("Authorization"); h != "" {
				parts := strings.Split(h, " ")
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenString = parts[1]
				}
			}
			if tokenString == "" {
				sendError(w, "missing authentication token", http.StatusUnauthorized)
				return
			}

			claims := &apiClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil || !token.Valid {
				sendError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
