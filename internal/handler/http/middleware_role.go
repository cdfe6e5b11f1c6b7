package http

import (
	"net/http"
	"slices"

	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/internal/utils"
)

// requireRole returns a middleware that rejects callers whose role is not
// in allowedRoles with HTTP 403 Forbidden. It must be mounted after [auth]:
// the role is read from the principal the auth middleware stored in the
// context, never re-queried from the store.
func (h *Handler) requireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(allowedRoles, principal.Role) {
				log.Warn().
					Str("role", principal.Role).
					Str("username", principal.Username).
					Strs("allowed", allowedRoles).
					Msg("role check failed")
				http.Error(w, "Permission denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
