package sale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Handler exposes sale and refund HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Post("/", h.create)              // POST /api/v1/sales
		r.Get("/", h.list)                 // GET  /api/v1/sales?status=
		r.Get("/{id}", h.get)              // GET  /api/v1/sales/{id}
		r.Post("/{id}/refund", h.refund)   // POST /api/v1/sales/{id}/refund
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req CreateSaleRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sl, err := h.service.Create(r.Context(), ac, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, sl)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	sl, err := h.service.Get(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, sl)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	sales, err := h.service.List(r.Context(), ac, r.URL.Query().Get("status"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, sales)
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req RefundRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rf, err := h.service.Refund(r.Context(), ac, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, rf)
}
