// Package service contains the business logic for the Trip Guides API.
// Services validate inputs, enforce business rules, orchestrate repo
// calls, and own the read-through caching of the optimized queries.
// No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bryhearnchi/tripguides/internal/cache"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// Cache namespaces. Trip read-models and lookups live apart from search
// results and stats so pattern invalidation stays scoped.
const (
	nsTrips   = "trips"
	nsLookups = "lookups"
	nsSearch  = "search"
	nsStats   = "stats"
)

// GuideStore defines the optimized storage operations the guide service
// depends on. Implemented by *repo.Guide; mocked in tests.
type GuideStore interface {
	DuplicateTrip(ctx context.Context, originalID int, newName, newSlug string) (domain.Trip, error)
	BulkUpsertEvents(ctx context.Context, tripID int, inputs []domain.EventInput) ([]domain.Event, error)
	GlobalSearch(ctx context.Context, term string, entityTypes []string, limit int) (map[string][]domain.SearchResult, error)
	GetTripComplete(ctx context.Context, slug string) (domain.TripComplete, error)
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

// GuideService implements the public guide reads and the admin bulk
// writes, wrapping every cacheable read in the cache policy. Cache
// failures never fail a request: a read error is a miss, a write error is
// logged and dropped.
type GuideService struct {
	store GuideStore
	cache cache.Store
	log   *slog.Logger
}

// NewGuideService constructs a GuideService.
func NewGuideService(store GuideStore, c cache.Store, log *slog.Logger) *GuideService {
	return &GuideService{store: store, cache: c, log: log}
}

// GetTripComplete returns the full guide read-model for a trip slug,
// served from cache when fresh.
func (s *GuideService) GetTripComplete(ctx context.Context, slug string) (domain.TripComplete, error) {
	if strings.TrimSpace(slug) == "" {
		return domain.TripComplete{}, fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}

	key := cache.Key(cache.QueryTripComplete, map[string]string{"slug": slug})

	var cached domain.TripComplete
	if readCache(ctx, s.cache, s.log, nsTrips, key, &cached) {
		return cached, nil
	}

	complete, err := s.store.GetTripComplete(ctx, slug)
	if err != nil {
		return domain.TripComplete{}, fmt.Errorf("service.GuideService.GetTripComplete: %w", err)
	}

	size := 1 + len(complete.Itinerary) + len(complete.Events) + len(complete.TripTalent) + len(complete.InfoSections)
	if cache.ShouldCache(cache.QueryTripComplete, size) {
		writeCache(ctx, s.cache, s.log, nsTrips, key, cache.TTL(cache.QueryTripComplete), complete)
	}
	return complete, nil
}

// Search runs the global full-text search. An empty type set searches
// every entity type.
func (s *GuideService) Search(ctx context.Context, term string, entityTypes []string, limit int) (map[string][]domain.SearchResult, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term is required", domain.ErrValidation)
	}
	if len(entityTypes) == 0 {
		entityTypes = []string{domain.SearchTypeTrips, domain.SearchTypeEvents, domain.SearchTypeTalent, domain.SearchTypeLocations}
	}
	if limit <= 0 {
		limit = 20
	}

	key := cache.Key(cache.QuerySearch, map[string]string{
		"term":  term,
		"types": strings.Join(entityTypes, ","),
		"limit": strconv.Itoa(limit),
	})

	var cached map[string][]domain.SearchResult
	if readCache(ctx, s.cache, s.log, nsSearch, key, &cached) {
		return cached, nil
	}

	results, err := s.store.GlobalSearch(ctx, term, entityTypes, limit)
	if err != nil {
		return nil, fmt.Errorf("service.GuideService.Search: %w", err)
	}

	size := 0
	for _, list := range results {
		size += len(list)
	}
	if cache.ShouldCache(cache.QuerySearch, size) {
		writeCache(ctx, s.cache, s.log, nsSearch, key, cache.TTL(cache.QuerySearch), results)
	}
	return results, nil
}

// DashboardStats returns the admin dashboard aggregate, cached briefly.
func (s *GuideService) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	key := cache.Key(cache.QueryDashboard, nil)

	var cached domain.DashboardStats
	if readCache(ctx, s.cache, s.log, nsStats, key, &cached) {
		return cached, nil
	}

	stats, err := s.store.DashboardStats(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.GuideService.DashboardStats: %w", err)
	}

	if cache.ShouldCache(cache.QueryDashboard, 1) {
		writeCache(ctx, s.cache, s.log, nsStats, key, cache.TTL(cache.QueryDashboard), stats)
	}
	return stats, nil
}

// DuplicateTrip deep-copies a trip under a new name and slug, then drops
// every cache entry the copy could have staled.
func (s *GuideService) DuplicateTrip(ctx context.Context, originalID int, newName, newSlug string) (domain.Trip, error) {
	if strings.TrimSpace(newName) == "" {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validateSlug(newSlug); err != nil {
		return domain.Trip{}, err
	}

	trip, err := s.store.DuplicateTrip(ctx, originalID, newName, newSlug)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.GuideService.DuplicateTrip: %w", err)
	}

	invalidate(ctx, s.cache, s.log, nsTrips, "trip:*")
	invalidate(ctx, s.cache, s.log, nsStats, "stats:*")
	return trip, nil
}

// BulkUpsertEvents applies a mixed insert/update batch of events to a
// trip, then invalidates the trip read-models, search results, and stats.
func (s *GuideService) BulkUpsertEvents(ctx context.Context, tripID int, inputs []domain.EventInput) ([]domain.Event, error) {
	events, err := s.store.BulkUpsertEvents(ctx, tripID, inputs)
	if err != nil {
		return nil, fmt.Errorf("service.GuideService.BulkUpsertEvents: %w", err)
	}

	if len(inputs) > 0 {
		invalidate(ctx, s.cache, s.log, nsTrips, "trip:*")
		invalidate(ctx, s.cache, s.log, nsSearch, "search:*")
		invalidate(ctx, s.cache, s.log, nsStats, "stats:*")
		// Binding events to a theme bumps its usage_count, so the cached
		// party-theme list goes stale too.
		invalidate(ctx, s.cache, s.log, nsLookups, "lookup:party-themes")
	}
	return events, nil
}

// readCache loads and decodes a cached value. Any failure — store error
// or stale encoding — reads as a miss. Shared by every caching service.
func readCache(ctx context.Context, c cache.Store, log *slog.Logger, namespace, key string, dest any) bool {
	raw, ok, err := c.Get(ctx, namespace, key)
	if err != nil {
		log.Warn("cache read failed, treating as miss", "namespace", namespace, "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn("cache entry undecodable, treating as miss", "namespace", namespace, "key", key, "error", err)
		return false
	}
	return true
}

// writeCache encodes and stores a value. Failures are logged and dropped.
func writeCache(ctx context.Context, c cache.Store, log *slog.Logger, namespace, key string, ttl time.Duration, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn("cache encode failed", "namespace", namespace, "key", key, "error", err)
		return
	}
	if err := c.Set(ctx, namespace, key, raw, ttl); err != nil {
		log.Warn("cache write failed", "namespace", namespace, "key", key, "error", err)
	}
}

// invalidate drops matching keys, logging failures instead of surfacing
// them — a stale entry ages out by TTL anyway.
func invalidate(ctx context.Context, c cache.Store, log *slog.Logger, namespace, pattern string) {
	if err := c.InvalidatePattern(ctx, namespace, pattern); err != nil {
		log.Warn("cache invalidation failed", "namespace", namespace, "pattern", pattern, "error", err)
	}
}
