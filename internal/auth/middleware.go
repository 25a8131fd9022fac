// ABOUTME: Optional shared-token guard for the fixture server.
// ABOUTME: Requires a matching Bearer token when the server is started with one.

package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	apierrors "github.com/2389/fixturegen/internal/errors"
)

// Middleware rejects requests whose Bearer token does not match token.
// An empty token disables the check. Paths in open skip it.
func Middleware(token string, open ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range open {
				if r.URL.Path == p {
					next.ServeHTTP(w, r)
					return
				}
			}

			if !validToken(r.Header.Get("Authorization"), token) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="fixturegen"`)
				apierrors.WriteError(w, http.StatusUnauthorized, apierrors.ErrUnauthorized,
					"Missing or invalid bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validToken(authHeader, want string) bool {
	got, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return false
	}
	got = strings.TrimSpace(got)
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
