package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// DuplicateTrip deep-copies a trip and every one of its child collections
// under a new name and slug. The original trip and its children are left
// untouched; every copied child gets a fresh ID, the new trip's ID as its
// foreign key, and fresh timestamps.
//
// The child reads fan out in parallel on the pool; all writes run inside
// a single transaction, so a failure on any insert rolls back the new
// trip entirely — no partial aggregate can persist. Child sets that are
// empty on the original are skipped, not inserted as empty batches.
//
// Returns domain.ErrNotFound if no trip with originalID exists.
func (g *Guide) DuplicateTrip(ctx context.Context, originalID int, newName, newSlug string) (domain.Trip, error) {
	return db.Execute(ctx, g.db, "repo.Guide.DuplicateTrip", func(ctx context.Context) (domain.Trip, error) {
		aggs, err := g.batch.LoadTripAggregates(ctx, []int{originalID})
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.Guide.DuplicateTrip: load original: %w", err)
		}
		if len(aggs) == 0 {
			return domain.Trip{}, fmt.Errorf("repo.Guide.DuplicateTrip: %w", domain.ErrNotFound)
		}
		original := aggs[0]

		tx, err := g.db.Pool().Begin(ctx)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.Guide.DuplicateTrip: begin: %w", err)
		}
		// Rollback is a no-op after a successful Commit.
		defer tx.Rollback(ctx)

		newTrip, err := insertTripCopy(ctx, tx, original.Trip, newName, newSlug)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.Guide.DuplicateTrip: insert trip: %w", err)
		}

		if err := copyChildren(ctx, tx, original, newTrip.ID); err != nil {
			return domain.Trip{}, fmt.Errorf("repo.Guide.DuplicateTrip: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return domain.Trip{}, fmt.Errorf("repo.Guide.DuplicateTrip: commit: %w", err)
		}
		return newTrip, nil
	})
}

// insertTripCopy inserts the new root, copying every field of the
// original except id, name, slug, and timestamps. Copies always start as
// drafts regardless of the original's status.
func insertTripCopy(ctx context.Context, tx pgx.Tx, original domain.Trip, newName, newSlug string) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (slug, name, description, status, ship_id, start_date, end_date)
		VALUES (@slug, @name, @description, @status, @ship_id, @start_date, @end_date)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"slug":        newSlug,
		"name":        newName,
		"description": original.Description,
		"status":      domain.TripStatusDraft,
		"ship_id":     original.ShipID,
		"start_date":  original.StartDate,
		"end_date":    original.EndDate,
	}

	return scanTrip(tx.QueryRow(ctx, q, args))
}

// copyChildren inserts copies of every non-empty child collection with
// the foreign key rewritten to newTripID. Statements run sequentially on
// the transaction's connection; a pgx.Tx cannot execute statements
// concurrently.
func copyChildren(ctx context.Context, tx pgx.Tx, original domain.TripComplete, newTripID int) error {
	if len(original.Itinerary) > 0 {
		const q = `
			INSERT INTO itinerary_stops (trip_id, date, order_index, location_id, arrival_time, departure_time, notes)
			SELECT @trip_id, date, order_index, location_id, arrival_time, departure_time, notes
			FROM itinerary_stops
			WHERE trip_id = @original_id`
		if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"trip_id": newTripID, "original_id": original.Trip.ID}); err != nil {
			return fmt.Errorf("copy itinerary: %w", err)
		}
	}

	if len(original.Events) > 0 {
		const q = `
			INSERT INTO events (trip_id, date, start_time, title, event_type, venue, party_theme_id, talent_ids)
			SELECT @trip_id, date, start_time, title, event_type, venue, party_theme_id, talent_ids
			FROM events
			WHERE trip_id = @original_id`
		if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"trip_id": newTripID, "original_id": original.Trip.ID}); err != nil {
			return fmt.Errorf("copy events: %w", err)
		}
	}

	if len(original.TripTalent) > 0 {
		const q = `
			INSERT INTO trip_talent (trip_id, talent_id, role)
			SELECT @trip_id, talent_id, role
			FROM trip_talent
			WHERE trip_id = @original_id`
		if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"trip_id": newTripID, "original_id": original.Trip.ID}); err != nil {
			return fmt.Errorf("copy trip talent: %w", err)
		}
	}

	if len(original.InfoSections) > 0 {
		const q = `
			INSERT INTO info_sections (trip_id, title, content, order_index)
			SELECT @trip_id, title, content, order_index
			FROM info_sections
			WHERE trip_id = @original_id`
		if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"trip_id": newTripID, "original_id": original.Trip.ID}); err != nil {
			return fmt.Errorf("copy info sections: %w", err)
		}
	}

	return nil
}
