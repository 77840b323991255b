package v1

import (
	"net/http"

	"github.com/oddeye/oddeye/pkg/fingerprint"
	"github.com/oddeye/oddeye/pkg/metrics"
	"github.com/oddeye/oddeye/pkg/seal"
	"github.com/oddeye/oddeye/pkg/server/api"
)

// SealedHandler handles GET /.
//
// Builds a fingerprint from the request headers, seals it and returns the raw
// record (nonce ‖ ciphertext ‖ tag) as application/octet-stream.
func SealedHandler(deps *api.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sealed, err := deps.Capture.Seal(fingerprint.FromRequest(r))
		if err != nil {
			api.WriteInternalError(w, r, err)
			return
		}

		deps.Metrics.ObserveSealed(metrics.EncodingRaw)
		api.WriteBody(w, "application/octet-stream", sealed)
	}
}

// Base64Handler handles GET /b64.
//
// Same record as SealedHandler, standard base64 encoded, for callers that can
// only carry text.
func Base64Handler(deps *api.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sealed, err := deps.Capture.Seal(fingerprint.FromRequest(r))
		if err != nil {
			api.WriteInternalError(w, r, err)
			return
		}

		deps.Metrics.ObserveSealed(metrics.EncodingBase64)
		api.WriteBody(w, "text/plain; charset=utf-8", []byte(seal.EncodeText(sealed)))
	}
}

// DebugFingerprintHandler handles GET /test.
//
// Returns the unsealed fingerprint as JSON. Only mounted when debug routes are
// enabled: it exposes exactly what sealing is meant to hide.
func DebugFingerprintHandler(deps *api.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fp := deps.Capture.Fingerprint(fingerprint.FromRequest(r))

		body, err := fingerprint.Marshal(fp)
		if err != nil {
			api.WriteInternalError(w, r, err)
			return
		}

		api.WriteBody(w, "application/json", body)
	}
}
