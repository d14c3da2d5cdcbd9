package kiosk

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireToken("s3cret", logger)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/print", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "kiosk token required")
	})

	t.Run("matching token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/print", nil)
		req.Header.Set(HeaderToken, "s3cret")
		rec := httptest.NewRecorder()
		RequireToken("s3cret", logger)(ok).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("empty expected token disables check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireToken("", logger)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/print", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
