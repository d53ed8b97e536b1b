package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	for _, method := range []string{"GET", "POST"} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/", http.NoBody)
			rr := httptest.NewRecorder()

			HealthHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
			assert.Equal(t, "GoChess server is running!", rr.Body.String())
		})
	}
}

func TestPlayPageHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	PlayPageHandler(rr, httptest.NewRequest("GET", "/play", http.NoBody))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, "GoChess Lobby")
	assert.Contains(t, body, "type: 'join'")
	assert.Contains(t, body, "type: 'move'")
	assert.Contains(t, body, "type: 'leave'")
}

func TestServeWSMethodValidation(t *testing.T) {
	hub := NewHub()

	for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
		t.Run(method, func(t *testing.T) {
			rr := httptest.NewRecorder()
			hub.ServeWS(rr, httptest.NewRequest(method, "/ws", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
			assert.Equal(t, "Method not allowed. WebSocket endpoint only accepts GET requests.", strings.TrimSpace(rr.Body.String()))
		})
	}
}

func TestServeWSWithoutUpgrade(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHub().ServeWS(rr, httptest.NewRequest("GET", "/ws", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServeStatsWhenStopped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	require.NoError(t, hub.Shutdown(defaultTestTimeout))

	rr := httptest.NewRecorder()
	hub.ServeStats(rr, httptest.NewRequest("GET", "/stats", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestStaticRoute(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "board.css"), []byte("body{}"), 0o600))

	t.Cleanup(func() { SetConfig(nil) })
	cfg := NewConfig()
	cfg.StaticDir = dir
	SetConfig(cfg)

	mux := SetupRoutes(NewHub())
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("GET", "/static/board.css", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "body{}", rr.Body.String())
}

func TestStaticRouteDisabledByDefault(t *testing.T) {
	SetConfig(nil)
	mux := SetupRoutes(NewHub())

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("GET", "/static/board.css", nil))

	assert.Equal(t, "GoChess server is running!", rr.Body.String(), "falls through to the health handler")
}
