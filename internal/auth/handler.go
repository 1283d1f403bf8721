package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danindra/workforce-scheduling/internal"
	"github.com/danindra/workforce-scheduling/internal/rbac"
	"github.com/danindra/workforce-scheduling/internal/transport"
	"github.com/danindra/workforce-scheduling/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service   *Service
	Evaluator *rbac.Evaluator
}

func NewHandler(svc *Service, evaluator *rbac.Evaluator) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
		Evaluator:   evaluator,
	}
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.SignIn(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("sign-in failed", "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, h.sessionResponse(result))
}

// LoginSSO handles POST /auth/sso. Placeholder federated flow: activates the
// administrative demo account.
func (h *Handler) LoginSSO(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.SignInWithSSO(r.Context())
	if err != nil {
		h.Logger.Error("sso sign-in failed", "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, h.sessionResponse(result))
}

// Logout handles POST /auth/logout. Always succeeds: signing out an already
// ended session leaves the system in the same state.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token != "" {
		if err := h.Service.SignOut(r.Context(), token); err != nil {
			h.Logger.Warn("sign-out cleanup failed", "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session: restores the persisted principal so a
// client can resume after a restart.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	principal, err := h.Service.RestoreSession(r.Context(), token)
	if err != nil {
		// Malformed or stale sessions restore as "signed out", never an error page.
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	h.WriteJSON(w, http.StatusOK, h.principalResponse(principal))
}

// SwitchRole handles POST /auth/switch-role. Only registered when the demo
// flag is enabled.
func (h *Handler) SwitchRole(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var dto SwitchRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.SwitchRole(r.Context(), principal, rbac.ParseRoleClass(dto.Role))
	if err != nil {
		h.Logger.Warn("role switch failed", "error", err, "requested_role", dto.Role)
		h.WriteError(w, http.StatusNotFound, "no seeded account for requested role")
		return
	}

	h.WriteJSON(w, http.StatusOK, h.sessionResponse(result))
}

// AuthMiddleware restores the principal from the bearer token and attaches it
// to the request context. Everything behind it can assume a principal exists.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		principal, err := h.Service.RestoreSession(r.Context(), token)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		ctx := internal.ContextWithPrincipal(r.Context(), principal)
		ctx = internal.ContextWithUserID(ctx, principal.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type sessionResponse struct {
	AccessToken string             `json:"access_token"`
	ExpiresAt   string             `json:"expires_at"`
	Principal   *principalResponse `json:"principal"`
}

type principalResponse struct {
	*internal.Principal
	RoleClass   string   `json:"role_class"`
	Permissions []string `json:"permissions"`
}

func (h *Handler) sessionResponse(result *AuthResult) sessionResponse {
	return sessionResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Principal:   h.principalResponse(result.Principal),
	}
}

func (h *Handler) principalResponse(principal *internal.Principal) *principalResponse {
	perms := h.Evaluator.PermissionsOf(principal)
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.String()
	}
	return &principalResponse{
		Principal:   principal,
		RoleClass:   h.Evaluator.ClassOf(principal).String(),
		Permissions: names,
	}
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, ErrUserInactive):
		h.WriteError(w, http.StatusForbidden, "user is inactive")
	default:
		var vErr ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
