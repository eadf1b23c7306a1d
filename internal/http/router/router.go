package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parcelhub/internal/auth"
	"parcelhub/internal/http/handlers"
	"parcelhub/internal/http/middleware"
	"parcelhub/internal/logx"
)

// AuthGate is the guard surface the router mounts on protected routes.
type AuthGate interface {
	Authenticate(ctx context.Context, authHeader string) (auth.Principal, error)
	RequireAdmin(ctx context.Context, p auth.Principal) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Logger   logx.Logger
	Base     *handlers.Handlers
	Parcels  *handlers.ParcelHandler
	Riders   *handlers.RiderHandler
	Payments *handlers.PaymentHandler
	Users    *handlers.UserHandler
	Gate     AuthGate
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(middleware.Observability(d.Logger))

	r.Get("/healthz", d.Base.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/parcels", d.Parcels.Create)
	r.Get("/parcels", d.Parcels.List)
	r.Get("/parcels/{id}", d.Parcels.GetByID)
	r.Patch("/parcels/{id}/status", d.Parcels.SetStatus)
	r.Delete("/parcels/{id}", d.Parcels.Delete)
	r.Post("/tracking", d.Parcels.AddTracking)
	r.Get("/tracking/{trackingId}", d.Parcels.Tracking)

	r.Post("/riders", d.Riders.Register)
	r.Get("/riders", d.Riders.List)
	r.Get("/riders/active", d.Riders.ListActive)
	r.Get("/riders/available", d.Riders.ListAvailable)
	r.Patch("/riders/{id}/status", d.Riders.SetStatus)
	r.Delete("/riders/{id}", d.Riders.Delete)

	r.Post("/payments", d.Payments.Record)
	r.Post("/payments/create-intent", d.Payments.CreateIntent)

	r.Post("/users", d.Users.Ensure)
	r.Get("/users/role/{email}", d.Users.Role)
	r.Get("/users/search", d.Users.Search)
	r.Put("/users/admin/{email}", d.Users.SetAdmin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Logger, d.Gate))

		r.Get("/rider/parcels", d.Parcels.RiderWorklist)
		r.Get("/payments", d.Payments.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(d.Logger, d.Gate))

			r.Patch("/parcels/{id}/assign", d.Parcels.Assign)
			r.Get("/riders/pending", d.Riders.ListPending)
		})
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
