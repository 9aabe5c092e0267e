package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Handler exposes category HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Post("/", h.create)       // POST   /api/v1/categories
		r.Get("/", h.list)          // GET    /api/v1/categories
		r.Get("/{id}", h.get)       // GET    /api/v1/categories/{id}
		r.Put("/{id}", h.update)    // PUT    /api/v1/categories/{id}
		r.Delete("/{id}", h.delete) // DELETE /api/v1/categories/{id}
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req UpsertCategoryRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.Create(r.Context(), ac, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, c)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	c, err := h.service.Get(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	categories, err := h.service.List(r.Context(), ac)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, categories)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req UpsertCategoryRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.Update(r.Context(), ac, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	if err := h.service.Delete(r.Context(), ac, chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
