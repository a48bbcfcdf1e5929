package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providerEcho(t *testing.T, expectID int64, expectOK bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		providerID, ok := GetProviderID(r.Context())
		assert.Equal(t, expectOK, ok)
		if expectOK {
			assert.Equal(t, expectID, providerID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Provider-ID", "42")
	rec := httptest.NewRecorder()

	Auth(providerEcho(t, 42, true)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	called := false
	Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, value := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Provider-ID", value)
		rec := httptest.NewRecorder()

		Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", value)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	OptionalAuth(providerEcho(t, 0, false)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth_WithHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Provider-ID", "7")
	rec := httptest.NewRecorder()

	OptionalAuth(providerEcho(t, 7, true)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth_MalformedHeaderRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Provider-ID", "abc")
	rec := httptest.NewRecorder()

	OptionalAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
