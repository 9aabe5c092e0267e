package ticket

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Handler exposes ticket HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/tickets", func(r chi.Router) {
		r.Post("/", h.create)                  // POST   /api/v1/tickets
		r.Get("/", h.list)                     // GET    /api/v1/tickets?status=&technician_id=
		r.Get("/{id}", h.get)                  // GET    /api/v1/tickets/{id}
		r.Patch("/{id}", h.update)             // PATCH  /api/v1/tickets/{id}
		r.Post("/{id}/status", h.transition)   // POST   /api/v1/tickets/{id}/status
		r.Post("/{id}/technician", h.assign)   // POST   /api/v1/tickets/{id}/technician
		r.Delete("/{id}", h.delete)            // DELETE /api/v1/tickets/{id}
		r.Post("/{id}/notes", h.addNote)       // POST   /api/v1/tickets/{id}/notes
		r.Get("/{id}/notes", h.listNotes)      // GET    /api/v1/tickets/{id}/notes
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req CreateTicketRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.Create(r.Context(), ac, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, t)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	t, err := h.service.Get(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, t)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	q := r.URL.Query()
	tickets, err := h.service.List(r.Context(), ac, q.Get("status"), q.Get("technician_id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, tickets)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req UpdateTicketRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.Update(r.Context(), ac, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, t)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req TransitionRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.Transition(r.Context(), ac, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, t)
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req AssignRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.AssignTechnician(r.Context(), ac, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	if err := h.service.Delete(r.Context(), ac, chi.URLParam(r, "id")); err != nil {
		httpx.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	var req AddNoteRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	n, err := h.service.AddNote(r.Context(), ac, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, n)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ac, _ := authctx.From(r.Context())
	notes, err := h.service.ListNotes(r.Context(), ac, chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, notes)
}
