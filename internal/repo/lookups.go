package repo

import (
	"context"
	"fmt"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// LookupRepo serves the reference tables the admin back-office manages
// and the guide pages join against: ships, locations, party themes, and
// talent. Reads only — writes go through the admin surface, not this API.
type LookupRepo interface {
	// ListShips returns all ships ordered by name.
	ListShips(ctx context.Context) ([]domain.Ship, error)

	// ListLocations returns all locations ordered by name.
	ListLocations(ctx context.Context) ([]domain.Location, error)

	// ListPartyThemes returns all party themes ordered by name.
	ListPartyThemes(ctx context.Context) ([]domain.PartyTheme, error)

	// ListTalent returns all talent ordered by name.
	ListTalent(ctx context.Context) ([]domain.Talent, error)
}

// pgLookupRepo is the Postgres implementation of LookupRepo.
type pgLookupRepo struct {
	db db.Querier
}

// NewLookupRepo constructs a LookupRepo backed by the provided db connection.
func NewLookupRepo(q db.Querier) LookupRepo {
	return &pgLookupRepo{db: q}
}

func (r *pgLookupRepo) ListShips(ctx context.Context) ([]domain.Ship, error) {
	const q = `SELECT id, name, cruise_line, capacity, description FROM ships ORDER BY name`

	return listLookup(ctx, r.db, "repo.LookupRepo.ListShips", q, func(s scanner) (domain.Ship, error) {
		var ship domain.Ship
		err := s.Scan(&ship.ID, &ship.Name, &ship.CruiseLine, &ship.Capacity, &ship.Description)
		return ship, err
	})
}

func (r *pgLookupRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	const q = `SELECT id, name, country, description FROM locations ORDER BY name`

	return listLookup(ctx, r.db, "repo.LookupRepo.ListLocations", q, func(s scanner) (domain.Location, error) {
		var loc domain.Location
		err := s.Scan(&loc.ID, &loc.Name, &loc.Country, &loc.Description)
		return loc, err
	})
}

func (r *pgLookupRepo) ListPartyThemes(ctx context.Context) ([]domain.PartyTheme, error) {
	const q = `SELECT id, name, theme, venue_type, usage_count FROM party_themes ORDER BY name`

	return listLookup(ctx, r.db, "repo.LookupRepo.ListPartyThemes", q, func(s scanner) (domain.PartyTheme, error) {
		var pt domain.PartyTheme
		err := s.Scan(&pt.ID, &pt.Name, &pt.Theme, &pt.VenueType, &pt.UsageCount)
		return pt, err
	})
}

func (r *pgLookupRepo) ListTalent(ctx context.Context) ([]domain.Talent, error) {
	const q = `SELECT id, name, category, bio FROM talent ORDER BY name`

	return listLookup(ctx, r.db, "repo.LookupRepo.ListTalent", q, func(s scanner) (domain.Talent, error) {
		var t domain.Talent
		err := s.Scan(&t.ID, &t.Name, &t.Category, &t.Bio)
		return t, err
	})
}

// listLookup runs one full-table read and maps every row with scan.
func listLookup[T any](ctx context.Context, q db.Querier, name, query string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", name, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", name, err)
	}

	return out, nil
}
