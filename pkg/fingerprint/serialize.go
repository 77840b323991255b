package fingerprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrTimestampOutOfRange is returned when the capture time cannot be written
// as an RFC 3339 timestamp (year outside 0000-9999).
var ErrTimestampOutOfRange = errors.New("timestamp outside RFC 3339 range")

// document is the wire shape: fingerprint first, then timestamp.
type document struct {
	Fingerprint PassiveFingerprint `json:"fingerprint"`
	Timestamp   string             `json:"timestamp"`
}

// Marshal renders f as compact JSON. Absent signals are null, the header list
// is always an array and the timestamp is RFC 3339 in UTC with nanosecond
// precision (trailing zeros trimmed).
func Marshal(f Fingerprint) ([]byte, error) {
	ts, err := formatTimestamp(f.CapturedAt)
	if err != nil {
		return nil, err
	}

	pfp := f.Fingerprint
	if pfp.Headers == nil {
		pfp.Headers = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(document{Fingerprint: pfp, Timestamp: ts}); err != nil {
		return nil, fmt.Errorf("encode fingerprint: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func formatTimestamp(t time.Time) (string, error) {
	t = t.UTC()
	if year := t.Year(); year < 0 || year > 9999 {
		return "", fmt.Errorf("%w: year %d", ErrTimestampOutOfRange, year)
	}
	return t.Format(time.RFC3339Nano), nil
}
