package middlewares

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetRequestID(r.Context())))
	})

	t.Run("generates an id when none is supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		RequestIDMiddleware(okHandler).ServeHTTP(rec, req)

		id := rec.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("honors a valid caller-supplied id", func(t *testing.T) {
		supplied := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", supplied)
		rec := httptest.NewRecorder()
		RequestIDMiddleware(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, supplied, rec.Header().Get("X-Request-ID"))
		assert.Equal(t, supplied, rec.Body.String())
	})

	t.Run("replaces a non-uuid caller-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid\ninjected")
		rec := httptest.NewRecorder()
		RequestIDMiddleware(okHandler).ServeHTTP(rec, req)

		id := rec.Header().Get("X-Request-ID")
		assert.NotEqual(t, "not-a-uuid\ninjected", id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := RequestSizeLimitMiddleware(64)(okHandler)

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"title":"ok"}`))
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("oversized body is rejected with a JSON error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(strings.Repeat("x", 100)))
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())
	})
}

func TestCORSMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("wildcard configuration allows any origin", func(t *testing.T) {
		handler := CORSMiddleware([]string{"*"})(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Values("Vary"))
	})

	t.Run("listed origin is echoed with Vary", func(t *testing.T) {
		handler := CORSMiddleware([]string{"https://app.example.com"})(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("unlisted origin gets no CORS header", func(t *testing.T) {
		handler := CORSMiddleware([]string{"https://app.example.com"})(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		handler := CORSMiddleware([]string{"*"})(okHandler)

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	})
}
