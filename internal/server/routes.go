// Package server wires HTTP handlers into a ServeMux for the GoChess
// application via routing helpers.
package server

import "net/http"

// SetupRoutes configures and returns an HTTP ServeMux with all application routes:
// health check, WebSocket endpoint, lobby stats, play page, and the optional
// static asset directory from the active configuration.
func SetupRoutes(h *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/stats", h.ServeStats)
	mux.HandleFunc("/play", PlayPageHandler)

	if dir := currentConfig().StaticDir; dir != "" {
		mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}
	return mux
}
