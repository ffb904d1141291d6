// Package batch provides the fan-out/fan-in query helpers that keep
// multi-entity reads and writes off the N+1 path: one aggregate loader
// that fetches every child table for a set of trips in parallel, and
// grouped bulk insert/update/delete helpers for the admin back-office.
//
// All operations run through db.Execute so they show up in the query
// metrics under a "batch.<op>:<table>" name.
package batch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// Batch executes grouped multi-row operations against the shared handle.
type Batch struct {
	db *db.DB
}

// New constructs a Batch over the instrumented handle.
func New(d *db.DB) *Batch {
	return &Batch{db: d}
}

// LoadTripAggregates fetches the given trips and all four child tables in
// parallel — five queries total regardless of how many trips are asked
// for — then stitches child rows onto their parents by trip ID.
//
// Every returned trip carries non-nil (possibly empty) child slices, so a
// trip with no events still has Events == []. Trip order follows the
// parent query's return order, not the input ID order. If any one query
// fails the whole call fails; no partial aggregates are returned.
func (b *Batch) LoadTripAggregates(ctx context.Context, tripIDs []int) ([]domain.TripComplete, error) {
	if len(tripIDs) == 0 {
		return []domain.TripComplete{}, nil
	}

	return db.Execute(ctx, b.db, "batch.loadTripAggregates", func(ctx context.Context) ([]domain.TripComplete, error) {
		var (
			trips    []domain.Trip
			stops    []domain.ItineraryStop
			events   []domain.Event
			assigned []domain.TalentAssignment
			sections []domain.InfoSection
		)

		g, ctx := errgroup.WithContext(ctx)
		pool := b.db.Pool()

		g.Go(func() (err error) {
			trips, err = queryTrips(ctx, pool, tripIDs)
			return err
		})
		g.Go(func() (err error) {
			stops, err = queryStops(ctx, pool, tripIDs)
			return err
		})
		g.Go(func() (err error) {
			events, err = queryEvents(ctx, pool, tripIDs)
			return err
		})
		g.Go(func() (err error) {
			assigned, err = queryAssignments(ctx, pool, tripIDs)
			return err
		})
		g.Go(func() (err error) {
			sections, err = querySections(ctx, pool, tripIDs)
			return err
		})

		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("batch.LoadTripAggregates: %w", err)
		}

		return stitch(trips, stops, events, assigned, sections), nil
	})
}

// UpdateItem is one row-level patch in a bulk update.
type UpdateItem struct {
	ID   int
	Data map[string]any
}

// Insert writes all records in a single multi-row upsert against the
// named table, resolving conflicts on conflictColumn ("id" when empty).
// Column names are taken from the records and validated against the
// table's allowlist. Returns the rows as the database reports them.
func (b *Batch) Insert(ctx context.Context, table string, records []map[string]any, conflictColumn string) ([]map[string]any, error) {
	if len(records) == 0 {
		return []map[string]any{}, nil
	}
	if conflictColumn == "" {
		conflictColumn = "id"
	}

	return db.Execute(ctx, b.db, "batch.insert:"+table, func(ctx context.Context) ([]map[string]any, error) {
		sql, args, err := buildInsert(table, records, conflictColumn)
		if err != nil {
			return nil, fmt.Errorf("batch.Insert: %w", err)
		}

		rows, err := b.db.Pool().Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("batch.Insert: %w", err)
		}
		out, err := pgx.CollectRows(rows, pgx.RowToMap)
		if err != nil {
			return nil, fmt.Errorf("batch.Insert: collect: %w", err)
		}
		return out, nil
	})
}

// Update applies row-level patches, collapsing items whose Data payloads
// are structurally equal into one multi-row statement each. Forty trips
// archived with the same patch become a single UPDATE ... WHERE id =
// ANY(...). The distinct statements run in parallel; results are
// concatenated in group order.
func (b *Batch) Update(ctx context.Context, table string, updates []UpdateItem) ([]map[string]any, error) {
	if len(updates) == 0 {
		return []map[string]any{}, nil
	}

	return db.Execute(ctx, b.db, "batch.update:"+table, func(ctx context.Context) ([]map[string]any, error) {
		groups, err := groupByPayload(updates)
		if err != nil {
			return nil, fmt.Errorf("batch.Update: %w", err)
		}

		results := make([][]map[string]any, len(groups))
		g, ctx := errgroup.WithContext(ctx)

		for i, grp := range groups {
			g.Go(func() error {
				sql, args, err := buildUpdate(table, grp.Data, grp.IDs)
				if err != nil {
					return err
				}
				rows, err := b.db.Pool().Query(ctx, sql, args...)
				if err != nil {
					return err
				}
				out, err := pgx.CollectRows(rows, pgx.RowToMap)
				if err != nil {
					return err
				}
				results[i] = out
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("batch.Update: %w", err)
		}

		var out []map[string]any
		for _, r := range results {
			out = append(out, r...)
		}
		if out == nil {
			out = []map[string]any{}
		}
		return out, nil
	})
}

// Delete removes all given IDs from the named table in one statement.
func (b *Batch) Delete(ctx context.Context, table string, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	return db.Execute(ctx, b.db, "batch.delete:"+table, func(ctx context.Context) (int64, error) {
		if err := validateTable(table); err != nil {
			return 0, fmt.Errorf("batch.Delete: %w", err)
		}

		tag, err := b.db.Pool().Exec(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", table), ids)
		if err != nil {
			return 0, fmt.Errorf("batch.Delete: %w", err)
		}
		return tag.RowsAffected(), nil
	})
}
