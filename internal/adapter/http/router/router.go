package router

import "net/http"

// RouteRegistrar is implemented by every controller; the auth middleware is
// passed through so each controller decides which of its routes it guards.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(authMiddleware func(http.Handler) http.Handler, controllers ...RouteRegistrar) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthRoute(mux)

	for _, controller := range controllers {
		if controller != nil {
			controller.RegisterRoutes(mux, authMiddleware)
		}
	}

	return mux
}

func registerHealthRoute(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
