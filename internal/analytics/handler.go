package analytics

import (
	"net/http"
	"time"

	"github.com/danindra/workforce-scheduling/internal"
	"github.com/danindra/workforce-scheduling/internal/transport"
	"github.com/danindra/workforce-scheduling/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// Employees handles GET /analytics/employees.
func (h *Handler) Employees(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	stats, err := h.Service.EmployeeStats(r.Context(), principal, h.window(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": stats})
}

// Company handles GET /analytics/company.
func (h *Handler) Company(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	stats, err := h.Service.CompanyStats(r.Context(), principal, h.window(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) window(r *http.Request) Window {
	var window Window
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			window.From = t
		}
	}
	if raw := q.Get("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			window.To = t
		}
	}
	return window
}
