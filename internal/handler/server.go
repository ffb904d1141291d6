// Package handler implements the HTTP handlers for the Trip Guides API.
// Handlers are thin: decode and validate the request shape, call the
// service, map domain errors to HTTP statuses. Methods are split into
// domain-specific files but all share the same Server struct.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// TripServicer defines the admin CRUD operations the trip handlers
// depend on. Defining the interface here (in the consumer package)
// follows the Go convention: "accept interfaces, return concrete types".
// It lets handler tests inject a mock without touching the database.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id int) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id int) error
}

// GuideServicer defines the optimized guide operations the public and
// bulk-admin handlers depend on.
type GuideServicer interface {
	GetTripComplete(ctx context.Context, slug string) (domain.TripComplete, error)
	Search(ctx context.Context, term string, entityTypes []string, limit int) (map[string][]domain.SearchResult, error)
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
	DuplicateTrip(ctx context.Context, originalID int, newName, newSlug string) (domain.Trip, error)
	BulkUpsertEvents(ctx context.Context, tripID int, inputs []domain.EventInput) ([]domain.Event, error)
}

// LookupServicer defines the cached reference-table reads the lookup
// handlers depend on.
type LookupServicer interface {
	ListShips(ctx context.Context) ([]domain.Ship, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	ListPartyThemes(ctx context.Context) ([]domain.PartyTheme, error)
	ListTalent(ctx context.Context) ([]domain.Talent, error)
}

// Diagnostics exposes the storage health flag and query metrics for the
// health and admin endpoints. Satisfied by *db.DB.
type Diagnostics interface {
	Healthy() bool
	Metrics() db.Snapshot
}

// Server holds every handler dependency. Methods live in domain-specific
// files but all operate on this struct.
type Server struct {
	trips   TripServicer
	guide   GuideServicer
	lookups LookupServicer
	diag    Diagnostics
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, guide GuideServicer, lookups LookupServicer, diag Diagnostics, log *slog.Logger) *Server {
	return &Server{trips: trips, guide: guide, lookups: lookups, diag: diag, log: log}
}

// Routes returns the API route tree. Global middleware (request ID,
// logging, CORS, recovery) is applied by the caller in main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.listTrips)
			r.Post("/", s.createTrip)
			r.Get("/{id}", s.getTrip)
			r.Put("/{id}", s.updateTrip)
			r.Delete("/{id}", s.deleteTrip)
			r.Post("/{id}/duplicate", s.duplicateTrip)
			r.Put("/{id}/events/bulk", s.bulkUpsertEvents)
			r.Get("/{slug}/complete", s.tripComplete)
		})
		r.Get("/ships", s.listShips)
		r.Get("/locations", s.listLocations)
		r.Get("/party-themes", s.listPartyThemes)
		r.Get("/talent", s.listTalent)
		r.Get("/search", s.search)
		r.Get("/stats/dashboard", s.dashboardStats)
		r.Get("/admin/query-metrics", s.queryMetrics)
	})

	return r
}
