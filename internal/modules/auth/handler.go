package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/httpx"
)

// Handler exposes the public auth endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", h.register) // POST /api/v1/auth/register
		r.Post("/login", h.login)       // POST /api/v1/auth/login
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	session, err := h.service.RegisterStore(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, session)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		// A failed login reads as 401, not the policy layer's 403.
		if apperror.As(err).Kind == apperror.KindDenied {
			httpx.Respond(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, session)
}
