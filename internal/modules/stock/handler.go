package stock

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/stock", func(r chi.Router) {
		r.Post("/", h.create)             // POST   /api/v1/stock
		r.Get("/", h.list)                // GET    /api/v1/stock
		r.Get("/{id}", h.get)             // GET    /api/v1/stock/{id}
		r.Patch("/{id}", h.update)        // PATCH  /api/v1/stock/{id}
		r.Delete("/{id}", h.delete)       // DELETE /api/v1/stock/{id}
		r.Post("/{id}/adjust", h.adjust)  // POST   /api/v1/stock/{id}/adjust
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req CreateItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.CreateItem(r.Context(), ac, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, item)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	detail, err := h.service.GetItem(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, detail)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	items, err := h.service.ListItems(r.Context(), ac)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, items)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req UpdateItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.UpdateItem(r.Context(), ac, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, item)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	if err := h.service.DeleteItem(r.Context(), ac, chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req AdjustRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	detail, err := h.service.Adjust(r.Context(), ac, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, detail)
}
