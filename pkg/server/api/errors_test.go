package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestWriteInternalError(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	req := httptest.NewRequest(http.MethodGet, "/b64", nil)
	req = req.WithContext(logger.WithContext(req.Context()))
	w := httptest.NewRecorder()

	WriteInternalError(w, req, errors.New("entropy source unavailable"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal Server Error", w.Body.String())
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	// The cause is logged, never sent.
	require.NotContains(t, w.Body.String(), "entropy")
	require.Contains(t, logs.String(), "entropy source unavailable")
	require.Contains(t, logs.String(), `"path":"/b64"`)
}

func TestWriteBody(t *testing.T) {
	w := httptest.NewRecorder()

	WriteBody(w, "application/octet-stream", []byte{0x00, 0x01, 0xff})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	require.Equal(t, []byte{0x00, 0x01, 0xff}, w.Body.Bytes())
}
