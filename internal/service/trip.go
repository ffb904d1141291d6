package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bryhearnchi/tripguides/internal/cache"
	"github.com/bryhearnchi/tripguides/internal/domain"
	"github.com/bryhearnchi/tripguides/internal/repo"
)

// slugPattern is the public URL form: lowercase words joined by single
// dashes, e.g. "greek-isles-25".
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// TripService implements business logic for the admin trip CRUD surface.
// The trip list is served read-through from the cache; every write drops
// the trip cache entries so list and read-model views never go stale
// past a write.
type TripService struct {
	repo  repo.TripRepo
	cache cache.Store
	log   *slog.Logger
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo, c cache.Store, log *slog.Logger) *TripService {
	return &TripService{repo: r, cache: c, log: log}
}

// Create validates and persists a new trip. New trips default to draft
// status when none is supplied.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.Status == "" {
		trip.Status = domain.TripStatusDraft
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	invalidate(ctx, s.cache, s.log, nsTrips, "trip:*")
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips, most recent first, served from cache when fresh.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	key := cache.Key(cache.QueryTripList, nil)

	var cached []domain.Trip
	if readCache(ctx, s.cache, s.log, nsTrips, key, &cached) {
		if cached == nil {
			cached = []domain.Trip{}
		}
		return cached, nil
	}

	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}

	if cache.ShouldCache(cache.QueryTripList, len(trips)) {
		writeCache(ctx, s.cache, s.log, nsTrips, key, cache.TTL(cache.QueryTripList), trips)
	}
	return trips, nil
}

// Update validates and updates an existing trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	invalidate(ctx, s.cache, s.log, nsTrips, "trip:*")
	return result, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	invalidate(ctx, s.cache, s.log, nsTrips, "trip:*")
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Slug must be a valid URL slug.
//   - Status must be one of the known statuses.
//   - EndDate must not be before StartDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validateSlug(trip.Slug); err != nil {
		return err
	}
	switch trip.Status {
	case domain.TripStatusDraft, domain.TripStatusPublished, domain.TripStatusArchived:
	default:
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// validateSlug rejects slugs that would not survive a URL path segment.
func validateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: slug must be lowercase words joined by dashes", domain.ErrValidation)
	}
	return nil
}
