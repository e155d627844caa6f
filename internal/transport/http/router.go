package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"simwarga/internal/auth"
	"simwarga/internal/platform/metrics"
	"simwarga/internal/platform/middleware"
)

// RouterDeps collects everything the router wires together so cmd/server
// stays a straight-line constructor call.
type RouterDeps struct {
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
	Validator   middleware.JWTValidator
	Revocations middleware.TokenRevocationChecker
	Auth        *AuthHandler
	Warga       *WargaHandler
	Keluarga    *KeluargaHandler
}

// NewRouter wires all endpoints. Reads need any authenticated account;
// writes additionally need one of the privileged roles.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Instrument(deps.Metrics))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Handler)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/auth/login", deps.Auth.handleLogin)

	requireAuth := middleware.RequireAuth(deps.Validator, deps.Revocations, deps.Logger)
	requireWrite := middleware.RequireRole(deps.Logger,
		string(auth.RoleAdminSistem), string(auth.RoleKetuaRT), string(auth.RoleKetuaRW))

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/auth/logout", deps.Auth.handleLogout)

		r.Get("/warga", deps.Warga.handleList)
		r.Get("/warga/{nik}", deps.Warga.handleGet)
		r.Get("/keluarga", deps.Keluarga.handleList)
		r.Get("/keluarga/{id}", deps.Keluarga.handleGet)

		r.Group(func(r chi.Router) {
			r.Use(requireWrite)

			r.Post("/warga", deps.Warga.handleCreate)
			r.Put("/warga/{nik}", deps.Warga.handleUpdate)
			r.Delete("/warga/{nik}", deps.Warga.handleDelete)

			r.Post("/keluarga", deps.Keluarga.handleCreate)
			r.Put("/keluarga/{id}", deps.Keluarga.handleUpdate)
			r.Delete("/keluarga/{id}", deps.Keluarga.handleDelete)
		})
	})

	return r
}
