package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func gatedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("API_KEY_HASH", string(hash))

	gin.SetMode(gin.TestMode)
	return newRouter()
}

func TestRouter_WebsocketRouteIsGated(t *testing.T) {
	router := gatedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ws/verify?username=example.user&code=abc123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_WebsocketRouteAcceptsValidKey(t *testing.T) {
	router := gatedRouter(t)

	// The gate passes; the upgrader then rejects the plain HTTP request,
	// which is enough to show the handler was reached.
	req := httptest.NewRequest(http.MethodGet, "/ws/verify?username=example.user&code=abc123", nil)
	req.Header.Set("X-API-Key", "letmein")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_VerifyRouteIsGated(t *testing.T) {
	router := gatedRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/verify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_HealthzStaysOpen(t *testing.T) {
	router := gatedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
