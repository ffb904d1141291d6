package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bryhearnchi/tripguides/internal/cache"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// LookupStore defines the reference-table reads the lookup service
// depends on. Implemented by repo.LookupRepo; mocked in tests.
type LookupStore interface {
	ListShips(ctx context.Context) ([]domain.Ship, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	ListPartyThemes(ctx context.Context) ([]domain.PartyTheme, error)
	ListTalent(ctx context.Context) ([]domain.Talent, error)
}

// LookupService serves the reference tables behind the long-lived lookup
// cache entries. Reference data changes rarely, so each list is cached
// for an hour and served from cache on every hit in between.
type LookupService struct {
	store LookupStore
	cache cache.Store
	log   *slog.Logger
}

// NewLookupService constructs a LookupService.
func NewLookupService(store LookupStore, c cache.Store, log *slog.Logger) *LookupService {
	return &LookupService{store: store, cache: c, log: log}
}

// ListShips returns all ships, served from cache when fresh.
func (s *LookupService) ListShips(ctx context.Context) ([]domain.Ship, error) {
	return listCached(ctx, s, cache.QueryShips, "ListShips", s.store.ListShips)
}

// ListLocations returns all locations, served from cache when fresh.
func (s *LookupService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return listCached(ctx, s, cache.QueryLocations, "ListLocations", s.store.ListLocations)
}

// ListPartyThemes returns all party themes, served from cache when fresh.
func (s *LookupService) ListPartyThemes(ctx context.Context) ([]domain.PartyTheme, error) {
	return listCached(ctx, s, cache.QueryPartyThemes, "ListPartyThemes", s.store.ListPartyThemes)
}

// ListTalent returns all talent, served from cache when fresh.
func (s *LookupService) ListTalent(ctx context.Context) ([]domain.Talent, error) {
	return listCached(ctx, s, cache.QueryTalent, "ListTalent", s.store.ListTalent)
}

// listCached is the shared read-through path for every lookup list:
// cache hit, else store read, then write-back under the type's TTL.
// Always returns a non-nil slice so callers can safely range over it.
func listCached[T any](ctx context.Context, s *LookupService, queryType, name string, load func(context.Context) ([]T, error)) ([]T, error) {
	key := cache.Key(queryType, nil)

	var cached []T
	if readCache(ctx, s.cache, s.log, nsLookups, key, &cached) {
		if cached == nil {
			cached = []T{}
		}
		return cached, nil
	}

	list, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LookupService.%s: %w", name, err)
	}
	if list == nil {
		list = []T{}
	}

	if cache.ShouldCache(queryType, len(list)) {
		writeCache(ctx, s.cache, s.log, nsLookups, key, cache.TTL(queryType), list)
	}
	return list, nil
}
