package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// InternalErrorBody is the only body ever sent for a failed request. The cause
// stays in the server log.
const InternalErrorBody = "Internal Server Error"

// WriteInternalError logs err with the request context and answers 500 with
// InternalErrorBody.
func WriteInternalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Ctx(r.Context()).Error().
		Str("component", "api").
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", http.StatusInternalServerError).
		Err(err).
		Msg("Request failed")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(InternalErrorBody))
}

// WriteBody answers 200 with body. Fingerprint responses are unique per
// request and must never be cached.
func WriteBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		log.Debug().
			Str("component", "api").
			Err(err).
			Msg("Failed to write response body")
	}
}
