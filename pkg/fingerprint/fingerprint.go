// Package fingerprint captures passive client-identification signals from
// request headers and renders them into the JSON document that gets sealed.
//
// The edge proxy in front of oddeye is expected to forward the HTTP stack
// fingerprint and the TLS client-hello fingerprint (plus its hash) as request
// headers. Those three headers are consumed: their values move into the
// record and their names are dropped from the residual header list. The
// User-Agent is read but stays in the residual list.
package fingerprint

import "time"

// Header names consumed or read by Build. Names are matched case-insensitively.
const (
	HeaderHTTPFingerprint    = "x-http-fingerprint"
	HeaderTLSFingerprint     = "x-tls-fingerprint"
	HeaderTLSFingerprintHash = "x-tls-fingerprint-hash"
	HeaderUserAgent          = "user-agent"
)

// PassiveFingerprint is the set of identification signals extracted from one
// request. Nil pointers mean the signal was absent and serialize as null.
//
// The JSON keys keep the names used by existing consumers of the sealed
// document (ja3, ja3_hash, user_agent).
//
// Headers lists the lower-cased names of the request headers left after the
// consumed ones, one entry per occurrence. For requests captured by the HTTP
// server the list is sorted by name, not in arrival order: net/http does not
// keep the order headers were sent in.
type PassiveFingerprint struct {
	HTTP               *string  `json:"http"`
	TLSFingerprint     *string  `json:"ja3"`
	TLSFingerprintHash *string  `json:"ja3_hash"`
	UserAgent          *string  `json:"user_agent"`
	Headers            []string `json:"headers"`
}

// Fingerprint is one capture event.
type Fingerprint struct {
	Fingerprint PassiveFingerprint
	CapturedAt  time.Time
}

// MarshalJSON renders the fingerprint exactly as Marshal does, so the debug
// route shows the same document that gets sealed.
func (f Fingerprint) MarshalJSON() ([]byte, error) {
	return Marshal(f)
}
