package shiftswap

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

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

// Create handles POST /shift-swaps.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var dto CreateSwapDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	swap, err := h.Service.Create(r.Context(), principal, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, swap)
}

// List handles GET /shift-swaps: the reviewer's view.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	swaps, err := h.Service.List(r.Context(), principal, h.filter(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"swaps": swaps})
}

// ListOwn handles GET /shift-swaps/me.
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	swaps, err := h.Service.ListOwn(r.Context(), principal, h.filter(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"swaps": swaps})
}

// Get handles GET /shift-swaps/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	id, err := h.swapID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid swap id")
		return
	}

	swap, err := h.Service.Get(r.Context(), principal, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, swap)
}

// Approve handles POST /shift-swaps/{id}/approve.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.reviewSwap(w, r, h.Service.Approve)
}

// Reject handles POST /shift-swaps/{id}/reject.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.reviewSwap(w, r, h.Service.Reject)
}

type reviewFunc func(ctx context.Context, principal *internal.Principal, id int64) (*Swap, error)

func (h *Handler) reviewSwap(w http.ResponseWriter, r *http.Request, review reviewFunc) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	id, err := h.swapID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid swap id")
		return
	}

	swap, err := review(r.Context(), principal, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, swap)
}

func (h *Handler) filter(r *http.Request) ListFilter {
	var filter ListFilter
	q := r.URL.Query()

	if raw := q.Get("user_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.UserID = &id
		}
	}
	filter.Status = q.Get("status")
	return filter
}

func (h *Handler) swapID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
