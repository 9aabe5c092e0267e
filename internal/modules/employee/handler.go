package employee

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Handler exposes employee HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/employees", func(r chi.Router) {
		r.Post("/", h.create)        // POST   /api/v1/employees
		r.Get("/", h.list)           // GET    /api/v1/employees
		r.Get("/{id}", h.get)        // GET    /api/v1/employees/{id}
		r.Delete("/{id}", h.delete)  // DELETE /api/v1/employees/{id}
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req CreateEmployeeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	e, err := h.service.Create(r.Context(), ac, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, e)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	e, err := h.service.Get(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, e)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	employees, err := h.service.List(r.Context(), ac)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, employees)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	if err := h.service.Delete(r.Context(), ac, chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
