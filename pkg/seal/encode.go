package seal

import "encoding/base64"

// EncodeText renders a sealed record as standard padded base64 on a single
// line, for channels that cannot carry raw bytes.
func EncodeText(sealed []byte) string {
	return base64.StdEncoding.EncodeToString(sealed)
}
