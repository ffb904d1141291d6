package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

const eventColumns = `id, trip_id, date, start_time, title, event_type, venue, party_theme_id, talent_ids, created_at, updated_at`

// BulkUpsertEvents writes a mixed batch of event records for one trip in
// a single transaction. Records carrying an ID are applied as one
// conditional multi-row UPDATE targeting exactly that ID set; records
// without an ID become one multi-row INSERT with defaults filled in for
// omitted fields (title "Untitled Event", type "party", date = trip start
// date). Party themes newly bound by the batch get their usage count
// bumped in the same transaction.
//
// Returns the written rows, updates first then inserts, each branch in
// input order. An empty input returns an empty slice without touching the
// database. Returns domain.ErrNotFound if the trip does not exist.
func (g *Guide) BulkUpsertEvents(ctx context.Context, tripID int, inputs []domain.EventInput) ([]domain.Event, error) {
	if len(inputs) == 0 {
		return []domain.Event{}, nil
	}

	return db.Execute(ctx, g.db, "repo.Guide.BulkUpsertEvents", func(ctx context.Context) ([]domain.Event, error) {
		updates, inserts, err := partitionEventInputs(inputs)
		if err != nil {
			return nil, fmt.Errorf("repo.Guide.BulkUpsertEvents: %w", err)
		}

		tx, err := g.db.Pool().Begin(ctx)
		if err != nil {
			return nil, fmt.Errorf("repo.Guide.BulkUpsertEvents: begin: %w", err)
		}
		defer tx.Rollback(ctx)

		trip, err := scanTrip(tx.QueryRow(ctx,
			`SELECT `+tripColumns+` FROM trips WHERE id = @id`, pgx.NamedArgs{"id": tripID}))
		if err != nil {
			return nil, fmt.Errorf("repo.Guide.BulkUpsertEvents: trip: %w", err)
		}

		var out []domain.Event

		if len(updates) > 0 {
			updated, err := applyEventUpdates(ctx, tx, tripID, updates)
			if err != nil {
				return nil, fmt.Errorf("repo.Guide.BulkUpsertEvents: update: %w", err)
			}
			out = append(out, updated...)
		}

		if len(inserts) > 0 {
			inserted, err := applyEventInserts(ctx, tx, trip, inserts)
			if err != nil {
				return nil, fmt.Errorf("repo.Guide.BulkUpsertEvents: insert: %w", err)
			}
			out = append(out, inserted...)
		}

		if err := bumpThemeUsage(ctx, tx, boundThemeIDs(updates, inserts)); err != nil {
			return nil, fmt.Errorf("repo.Guide.BulkUpsertEvents: theme usage: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("repo.Guide.BulkUpsertEvents: commit: %w", err)
		}
		return out, nil
	})
}

// partitionEventInputs splits the batch by presence of an ID. The split
// is deterministic: a record either has an ID (update) or does not
// (insert) — it can never be both. IDs must be positive and unique
// within the batch; a repeated ID would make the CASE statement return
// fewer rows than inputs and misreport the batch as not found.
func partitionEventInputs(inputs []domain.EventInput) (updates, inserts []domain.EventInput, err error) {
	seen := make(map[int]bool)
	for _, in := range inputs {
		if in.ID != nil {
			if *in.ID <= 0 {
				return nil, nil, fmt.Errorf("%w: event id must be positive", domain.ErrValidation)
			}
			if seen[*in.ID] {
				return nil, nil, fmt.Errorf("%w: event id %d appears more than once in the batch", domain.ErrValidation, *in.ID)
			}
			seen[*in.ID] = true
			updates = append(updates, in)
			continue
		}
		inserts = append(inserts, in)
	}
	return updates, inserts, nil
}

// eventPatchColumns are the mutable columns a bulk update may touch, in
// statement order.
var eventPatchColumns = []string{"date", "start_time", "title", "event_type", "venue", "party_theme_id", "talent_ids"}

// fieldFor returns the patch value for one column of one input, and
// whether the input set it at all.
func fieldFor(in domain.EventInput, col string) (any, bool) {
	switch col {
	case "date":
		if in.Date != nil {
			return *in.Date, true
		}
	case "start_time":
		if in.StartTime != nil {
			return *in.StartTime, true
		}
	case "title":
		if in.Title != nil {
			return *in.Title, true
		}
	case "event_type":
		if in.EventType != nil {
			return *in.EventType, true
		}
	case "venue":
		if in.Venue != nil {
			return *in.Venue, true
		}
	case "party_theme_id":
		if in.PartyThemeID != nil {
			return *in.PartyThemeID, true
		}
	case "talent_ids":
		if in.TalentIDs != nil {
			return in.TalentIDs, true
		}
	}
	return nil, false
}

// applyEventUpdates issues one CASE-by-id statement covering every
// updated record: each mutable column becomes a CASE over the batch's
// IDs, falling back to the current value for records that left the field
// unset. Rows come back reordered to match the input ID order.
func applyEventUpdates(ctx context.Context, tx pgx.Tx, tripID int, updates []domain.EventInput) ([]domain.Event, error) {
	var (
		sb   strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sb.WriteString("UPDATE events SET ")
	for _, col := range eventPatchColumns {
		// A CASE needs at least one WHEN; columns no record in the batch
		// patches are left out of the statement entirely.
		touched := false
		for _, in := range updates {
			if _, ok := fieldFor(in, col); ok {
				touched = true
				break
			}
		}
		if !touched {
			continue
		}

		fmt.Fprintf(&sb, "%s = CASE id", col)
		for _, in := range updates {
			v, ok := fieldFor(in, col)
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, " WHEN %s THEN %s", arg(*in.ID), arg(v))
		}
		fmt.Fprintf(&sb, " ELSE %s END, ", col)
	}
	sb.WriteString("updated_at = now()")

	ids := make([]int, len(updates))
	for i, in := range updates {
		ids[i] = *in.ID
	}
	fmt.Fprintf(&sb, " WHERE trip_id = %s AND id = ANY(%s) RETURNING %s",
		arg(tripID), arg(ids), eventColumns)

	rows, err := tx.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) != len(updates) {
		return nil, fmt.Errorf("%w: %d of %d events not found on trip", domain.ErrNotFound, len(updates)-len(events), len(updates))
	}
	return orderByInputIDs(events, ids), nil
}

// applyEventInserts issues one multi-row insert for the ID-less records,
// applying defaults for omitted fields.
func applyEventInserts(ctx context.Context, tx pgx.Tx, trip domain.Trip, inserts []domain.EventInput) ([]domain.Event, error) {
	var (
		sb   strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sb.WriteString("INSERT INTO events (trip_id, date, start_time, title, event_type, venue, party_theme_id, talent_ids) VALUES ")
	for i, in := range inserts {
		if i > 0 {
			sb.WriteString(", ")
		}
		date := trip.StartDate
		if in.Date != nil {
			date = *in.Date
		}
		title := domain.DefaultEventTitle
		if in.Title != nil {
			title = *in.Title
		}
		eventType := domain.DefaultEventType
		if in.EventType != nil {
			eventType = *in.EventType
		}
		startTime, venue := "", ""
		if in.StartTime != nil {
			startTime = *in.StartTime
		}
		if in.Venue != nil {
			venue = *in.Venue
		}
		talentIDs := in.TalentIDs
		if talentIDs == nil {
			talentIDs = []int{}
		}

		fmt.Fprintf(&sb, "(%s, %s, %s, %s, %s, %s, %s, %s)",
			arg(trip.ID), arg(date), arg(startTime), arg(title),
			arg(eventType), arg(venue), arg(in.PartyThemeID), arg(talentIDs))
	}
	sb.WriteString(" RETURNING " + eventColumns)

	rows, err := tx.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

// boundThemeIDs returns the party theme IDs this batch binds events to,
// one entry per binding.
func boundThemeIDs(updates, inserts []domain.EventInput) []int {
	var ids []int
	for _, in := range updates {
		if in.PartyThemeID != nil {
			ids = append(ids, *in.PartyThemeID)
		}
	}
	for _, in := range inserts {
		if in.PartyThemeID != nil {
			ids = append(ids, *in.PartyThemeID)
		}
	}
	return ids
}

// bumpThemeUsage increments usage_count once per binding, so a theme
// bound by three events in one batch gains three.
func bumpThemeUsage(ctx context.Context, tx pgx.Tx, themeIDs []int) error {
	if len(themeIDs) == 0 {
		return nil
	}
	const q = `
		UPDATE party_themes
		SET usage_count = usage_count + bound.n
		FROM (SELECT id, COUNT(*) AS n FROM unnest(@ids::int[]) AS id GROUP BY id) AS bound
		WHERE party_themes.id = bound.id`

	_, err := tx.Exec(ctx, q, pgx.NamedArgs{"ids": themeIDs})
	return err
}

// collectEvents drains rows into domain events.
func collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.TripID, &e.Date, &e.StartTime, &e.Title, &e.EventType,
			&e.Venue, &e.PartyThemeID, &e.TalentIDs, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// orderByInputIDs reorders returned rows to match the caller's ID order;
// RETURNING makes no ordering promise.
func orderByInputIDs(events []domain.Event, ids []int) []domain.Event {
	byID := make(map[int]domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	out := make([]domain.Event, 0, len(events))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}
