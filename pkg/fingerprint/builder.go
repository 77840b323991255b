package fingerprint

import (
	"net/http"
	"sort"
	"strings"
	"time"
)

// HeaderField is a single header line as received. A name sent twice is two
// fields.
type HeaderField struct {
	Name  string
	Value string
}

// Build extracts a Fingerprint from fields. The input is never modified; the
// residual header list is computed as every field name minus the three
// consumed fingerprint headers, in input order.
//
// Consumed headers whose value is not valid header text are recorded as an
// empty string. A User-Agent that is not valid header text is recorded as
// absent. When a header is repeated the first value wins.
//
// now defaults to time.Now when nil.
func Build(fields []HeaderField, now func() time.Time) Fingerprint {
	if now == nil {
		now = time.Now
	}

	pfp := PassiveFingerprint{
		Headers: make([]string, 0, len(fields)),
	}

	userAgentSeen := false
	for _, field := range fields {
		name := strings.ToLower(field.Name)
		switch name {
		case HeaderHTTPFingerprint:
			if pfp.HTTP == nil {
				pfp.HTTP = consumedValue(field.Value)
			}
			continue
		case HeaderTLSFingerprint:
			if pfp.TLSFingerprint == nil {
				pfp.TLSFingerprint = consumedValue(field.Value)
			}
			continue
		case HeaderTLSFingerprintHash:
			if pfp.TLSFingerprintHash == nil {
				pfp.TLSFingerprintHash = consumedValue(field.Value)
			}
			continue
		case HeaderUserAgent:
			if !userAgentSeen {
				userAgentSeen = true
				if isHeaderText(field.Value) {
					ua := field.Value
					pfp.UserAgent = &ua
				}
			}
		}
		pfp.Headers = append(pfp.Headers, name)
	}

	return Fingerprint{
		Fingerprint: pfp,
		CapturedAt:  now(),
	}
}

// FromRequest flattens the headers of r into fields. net/http keeps headers
// in a map, so arrival order is gone by the time a handler runs; fields are
// emitted sorted by lower-cased name, with repeated values in received order.
// Headers net/http moves out of r.Header (Host, Transfer-Encoding, Trailer)
// are put back.
func FromRequest(r *http.Request) []HeaderField {
	fields := FromHeader(r.Header)
	restored := len(fields)

	if r.Host != "" && r.Header.Get("Host") == "" {
		fields = append(fields, HeaderField{Name: "host", Value: r.Host})
	}
	if len(r.TransferEncoding) > 0 && r.Header.Get("Transfer-Encoding") == "" {
		fields = append(fields, HeaderField{
			Name:  "transfer-encoding",
			Value: strings.Join(r.TransferEncoding, ", "),
		})
	}
	if len(r.Trailer) > 0 && r.Header.Get("Trailer") == "" {
		declared := make([]string, 0, len(r.Trailer))
		for name := range r.Trailer {
			declared = append(declared, name)
		}
		sort.Strings(declared)
		fields = append(fields, HeaderField{Name: "trailer", Value: strings.Join(declared, ", ")})
	}

	if len(fields) == restored {
		return fields
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields
}

// FromHeader flattens h into fields sorted by lower-cased name.
func FromHeader(h http.Header) []HeaderField {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	fields := make([]HeaderField, 0, len(names))
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, value := range h[name] {
			fields = append(fields, HeaderField{Name: lower, Value: value})
		}
	}
	return fields
}

func consumedValue(value string) *string {
	if !isHeaderText(value) {
		value = ""
	}
	return &value
}

// isHeaderText reports whether every byte of v is visible ASCII, a space or a
// horizontal tab.
func isHeaderText(v string) bool {
	for i := 0; i < len(v); i++ {
		b := v[i]
		if b == '\t' {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}
