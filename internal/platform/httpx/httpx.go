package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
)

// Respond writes a JSON body with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Decode parses a JSON request body into v.
func Decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Error translates a service error into the HTTP response for its kind.
// Internal causes are never echoed to the caller.
func Error(w http.ResponseWriter, err error) {
	e := apperror.As(err)
	Respond(w, statusFor(e.Kind), map[string]string{
		"error": e.Message,
		"kind":  e.Kind.String(),
	})
}

func statusFor(k apperror.Kind) int {
	switch k {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
