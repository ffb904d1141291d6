package repo

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// searchQueries maps each searchable entity type to its relevance-ranked
// query. Every query returns the same shape: id, title, subtitle, slug,
// rank. The tsvector expressions match the expression indexes created by
// the migrations, so these stay index-backed.
var searchQueries = map[string]string{
	domain.SearchTypeTrips: `
		SELECT id, name, status, slug,
		       ts_rank(to_tsvector('english', name || ' ' || description), plainto_tsquery('english', $1)) AS rank
		FROM trips
		WHERE to_tsvector('english', name || ' ' || description) @@ plainto_tsquery('english', $1)
		ORDER BY rank DESC, id
		LIMIT $2`,
	domain.SearchTypeEvents: `
		SELECT id, title, venue, '' AS slug,
		       ts_rank(to_tsvector('english', title || ' ' || venue), plainto_tsquery('english', $1)) AS rank
		FROM events
		WHERE to_tsvector('english', title || ' ' || venue) @@ plainto_tsquery('english', $1)
		ORDER BY rank DESC, id
		LIMIT $2`,
	domain.SearchTypeTalent: `
		SELECT id, name, category, '' AS slug,
		       ts_rank(to_tsvector('english', name || ' ' || bio), plainto_tsquery('english', $1)) AS rank
		FROM talent
		WHERE to_tsvector('english', name || ' ' || bio) @@ plainto_tsquery('english', $1)
		ORDER BY rank DESC, id
		LIMIT $2`,
	domain.SearchTypeLocations: `
		SELECT id, name, country, '' AS slug,
		       ts_rank(to_tsvector('english', name || ' ' || country || ' ' || description), plainto_tsquery('english', $1)) AS rank
		FROM locations
		WHERE to_tsvector('english', name || ' ' || country || ' ' || description) @@ plainto_tsquery('english', $1)
		ORDER BY rank DESC, id
		LIMIT $2`,
}

// GlobalSearch runs a full-text search across the requested entity types,
// one relevance-ranked query per type, all in parallel. Results are
// merged across types, ranked best-first, truncated to limit in total
// (not per type), and handed back regrouped by type.
//
// Unknown entity types are rejected; types not requested are never
// queried. A type with no matches is simply absent from the result map.
func (g *Guide) GlobalSearch(ctx context.Context, term string, entityTypes []string, limit int) (map[string][]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	for _, et := range entityTypes {
		if _, ok := searchQueries[et]; !ok {
			return nil, fmt.Errorf("repo.Guide.GlobalSearch: %w: unknown entity type %q", domain.ErrValidation, et)
		}
	}

	return db.Execute(ctx, g.db, "repo.Guide.GlobalSearch", func(ctx context.Context) (map[string][]domain.SearchResult, error) {
		perType := make([][]domain.SearchResult, len(entityTypes))
		g2, ctx := errgroup.WithContext(ctx)

		for i, et := range entityTypes {
			g2.Go(func() error {
				results, err := g.searchOne(ctx, et, term, limit)
				if err != nil {
					return err
				}
				perType[i] = results
				return nil
			})
		}

		if err := g2.Wait(); err != nil {
			return nil, fmt.Errorf("repo.Guide.GlobalSearch: %w", err)
		}

		return regroup(mergeRanked(perType, limit)), nil
	})
}

// searchOne runs the relevance query for a single entity type.
func (g *Guide) searchOne(ctx context.Context, entityType, term string, limit int) ([]domain.SearchResult, error) {
	rows, err := g.db.Pool().Query(ctx, searchQueries[entityType], term, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entityType, err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		r := domain.SearchResult{EntityType: entityType}
		if err := rows.Scan(&r.ID, &r.Title, &r.Subtitle, &r.Slug, &r.Rank); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", entityType, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// mergeRanked flattens per-type result lists, orders them by relevance
// descending, and truncates to limit in total. Ties on rank break on
// (entity type, id) ascending so the final order is fully deterministic
// regardless of which goroutine finished first.
func mergeRanked(perType [][]domain.SearchResult, limit int) []domain.SearchResult {
	var all []domain.SearchResult
	for _, list := range perType {
		all = append(all, list...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Rank != all[j].Rank {
			return all[i].Rank > all[j].Rank
		}
		if all[i].EntityType != all[j].EntityType {
			return all[i].EntityType < all[j].EntityType
		}
		return all[i].ID < all[j].ID
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// regroup buckets a merged result list back by entity type, preserving
// merged order within each bucket.
func regroup(results []domain.SearchResult) map[string][]domain.SearchResult {
	out := make(map[string][]domain.SearchResult)
	for _, r := range results {
		out[r.EntityType] = append(out[r.EntityType], r)
	}
	return out
}
