package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atfs-dev/atfs/internal/middleware"
	"github.com/atfs-dev/atfs/internal/middleware/metrics"
	"github.com/atfs-dev/atfs/internal/setup"
)

// New creates and configures a mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)
	r.Use(metrics.Middleware)

	// setup CORS for frontend
	r.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{"http://localhost:8081"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	needAuth := middleware.NeedAuth(deps.Jwt)
	adminOnly := middleware.AdminOnly(deps.Jwt)

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Auth routes
	auth := v1.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", h.Login).Methods("POST")
	auth.HandleFunc("/logout", h.Logout).Methods("POST")
	auth.HandleFunc("/verify_email", h.VerifyEmail).Methods("POST")
	auth.HandleFunc("/signup", h.Signup).Methods("POST")

	// Password recovery
	recovery := v1.PathPrefix("/recovery").Subrouter()
	recovery.HandleFunc("/request", h.RequestRecovery).Methods("POST")
	recovery.HandleFunc("/reset", h.ResetPassword).Methods("POST")

	// File routes
	v1.HandleFunc("/files", needAuth(h.GetFiles)).Methods("GET")
	v1.HandleFunc("/files/search", needAuth(h.SearchFiles)).Methods("GET")
	v1.HandleFunc("/files", adminOnly(h.RegisterFile)).Methods("POST")
	v1.HandleFunc("/files/{file}", needAuth(h.GetFile)).Methods("GET")
	v1.HandleFunc("/files/{file}/share", needAuth(h.ShareFile)).Methods("POST")
	v1.HandleFunc("/files/{file}/favorite", needAuth(h.FavoriteFile)).Methods("POST")
	v1.HandleFunc("/files/{file}/download", needAuth(h.DownloadFile)).Methods("POST")

	return r
}
