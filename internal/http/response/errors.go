// Package response writes the site's plain-text error responses. The body is
// the already localized message; no field-level detail is exposed.
package response

import (
	"net/http"

	"github.com/diagnosis/elsabor-web/pkg/logger"
)

// WriteError writes message as a text/plain body with the given status.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	if _, err := w.Write([]byte(message)); err != nil {
		logger.Error("failed to write error response", "error", err, "status", statusCode)
	}
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message)
}
