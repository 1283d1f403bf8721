package rbac

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danindra/workforce-scheduling/internal"
)

// Guard is the single enforcement point where an authorization decision
// becomes a response decision. Handlers behind it do not re-check
// permissions; every protected capability is reachable only through it.
type Guard struct {
	evaluator *Evaluator
	registry  *Registry
	logger    *slog.Logger
}

func NewGuard(evaluator *Evaluator, registry *Registry, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		evaluator: evaluator,
		registry:  registry,
		logger:    logger,
	}
}

// RequirePermission admits the request only when the principal's role grants
// at least one of the permissions.
func (g *Guard) RequirePermission(permissions ...Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				g.writeSignInRequired(w)
				return
			}

			if !g.evaluator.HasAnyPermission(principal, permissions...) {
				g.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", principal.ID,
					"role_id", principal.RoleID,
					"path", r.URL.Path)
				g.writeAccessRestricted(w, principal)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoleClass admits the request only when the principal's coarse role
// class is in the allowed set.
func (g *Guard) RequireRoleClass(classes ...RoleClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				g.writeSignInRequired(w)
				return
			}

			if !g.evaluator.RoleClassAllowed(principal, classes...) {
				g.logger.WarnContext(r.Context(), "access denied: role class not allowed",
					"user_id", principal.ID,
					"role_id", principal.RoleID,
					"path", r.URL.Path)
				g.writeAccessRestricted(w, principal)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) writeSignInRequired(w http.ResponseWriter) {
	writeJSONError(w, internal.NewUnauthorizedError("Sign in required", internal.ErrCodeInvalidToken))
}

// writeAccessRestricted identifies the principal's current role and nothing
// else. The required permission is never echoed back to the caller.
func (g *Guard) writeAccessRestricted(w http.ResponseWriter, principal *internal.Principal) {
	appErr := internal.NewForbiddenError("Access restricted", internal.ErrCodeAccessRestricted).
		WithDetails(map[string]string{
			"current_role": g.registry.DisplayNameFor(principal.RoleID),
		})
	writeJSONError(w, appErr)
}

func writeJSONError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
