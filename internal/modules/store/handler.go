package store

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Handler exposes store HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/store", func(r chi.Router) {
		r.Get("/", h.get)       // GET    /api/v1/store
		r.Put("/", h.update)    // PUT    /api/v1/store
		r.Delete("/", h.delete) // DELETE /api/v1/store
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	st, err := h.service.Get(r.Context(), ac)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, st)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req UpdateStoreRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	st, err := h.service.Update(r.Context(), ac, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, st)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	if err := h.service.Delete(r.Context(), ac); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
