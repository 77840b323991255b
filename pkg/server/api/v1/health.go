package v1

import (
	"net/http"
	"sync/atomic"
)

// ReadyzHandler returns 200 "Ready" while the server accepts traffic and 503
// "Not Ready" otherwise. Unlike /healthz, which only reports that the process
// is up, this tracks the listener.
//
// The ready flag is set by App.Run once the listener is bound and the HTTP
// server is serving, and cleared again when shutdown begins.
func ReadyzHandler(ready *atomic.Bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")

		if ready == nil || !ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Not Ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Ready"))
	}
}
