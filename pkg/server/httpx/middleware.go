package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oddeye/oddeye/pkg/config"
	"github.com/oddeye/oddeye/pkg/server/api"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client supplied ids before they reach the logs.
const maxRequestIDLength = 64

// Chain applies middleware in order: Logger → Recovery → CORS → handler
//
// This ensures:
// 1. All requests are logged (even if they panic)
// 2. Panics are recovered and answered with the generic 500
// 3. CORS headers are set for all responses
func Chain(cfg config.ServerConfig, handler http.Handler) http.Handler {
	return Logger(Recovery(CORS(cfg.CORSOrigin)(handler)))
}

// Logger logs each HTTP request with method, path, status, and duration.
//
// Each request gets an id, taken from X-Request-ID when the client sent a
// usable one and generated otherwise. The id is echoed in the response and
// attached to a request-scoped logger reachable through log.Ctx.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		logger := log.With().
			Str("component", "http").
			Str("request_id", requestID).
			Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		// Wrap ResponseWriter to capture status code
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.statusCode).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// Recovery catches panics and answers with the same 500 as a seal failure.
//
// Prevents server crashes from handler panics.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				api.WriteInternalError(w, r, fmt.Errorf("panic recovered in HTTP handler: %v", rec))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// CORS adds Cross-Origin Resource Sharing headers.
//
// origin is sent verbatim as Access-Control-Allow-Origin; an empty origin
// means "*". Only GET is served, so preflight answers GET and OPTIONS.
func CORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
