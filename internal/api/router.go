package api

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// NewRouter wires the API routes, the static front end, health and metrics,
// wrapped in the standard middleware chain.
func NewRouter(h *Handler, metrics *Metrics, static http.Handler, log logrus.FieldLogger) http.Handler {
	mux := http.NewServeMux()

	// API routes
	mux.HandleFunc("GET "+ItemsPath, h.ListItems)
	mux.HandleFunc("GET "+ItemsPath+"/{id}", h.GetItem)
	mux.HandleFunc("POST "+ItemsPath, h.CreateItem)
	mux.HandleFunc("PUT "+ItemsPath+"/{id}", h.ReplaceItem)
	mux.HandleFunc("DELETE "+ItemsPath+"/{id}", h.DeleteItem)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", metrics.Handler())

	if static != nil {
		mux.Handle("GET /", static)
	}

	// Apply middleware, innermost first
	var handler http.Handler = mux
	handler = CorsMiddleware(handler)
	handler = metrics.Middleware(handler)
	handler = LoggingMiddleware(log)(handler)
	handler = CanonicalPathMiddleware(handler)
	handler = RecoverMiddleware(log)(handler)

	return handler
}
