package timeclock

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Handler exposes time-clock HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/timeclock", func(r chi.Router) {
		r.Post("/clock-in", h.clockIn)   // POST /api/v1/timeclock/clock-in
		r.Post("/clock-out", h.clockOut) // POST /api/v1/timeclock/clock-out
		r.Get("/me", h.listMine)         // GET  /api/v1/timeclock/me
		r.Get("/entries", h.listAll)     // GET  /api/v1/timeclock/entries?employee_id=
	})
}

func (h *Handler) clockIn(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	e, err := h.service.ClockIn(r.Context(), ac)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, e)
}

func (h *Handler) clockOut(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	e, err := h.service.ClockOut(r.Context(), ac)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, e)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	entries, err := h.service.ListMine(r.Context(), ac)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, entries)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	entries, err := h.service.ListAll(r.Context(), ac, r.URL.Query().Get("employee_id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, entries)
}
