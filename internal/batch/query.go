package batch

import (
	"context"
	"fmt"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// The five per-table queries behind LoadTripAggregates. Each filters on
// the full trip ID set in one round trip and applies its table's natural
// order; cross-table ordering is not meaningful and not promised.

func queryTrips(ctx context.Context, q db.Querier, tripIDs []int) ([]domain.Trip, error) {
	const sql = `
		SELECT id, slug, name, description, status, ship_id, start_date, end_date, created_at, updated_at
		FROM trips
		WHERE id = ANY($1)`

	rows, err := q.Query(ctx, sql, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("trips: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.Description, &t.Status,
			&t.ShipID, &t.StartDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("trips: scan: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func queryStops(ctx context.Context, q db.Querier, tripIDs []int) ([]domain.ItineraryStop, error) {
	const sql = `
		SELECT id, trip_id, date, order_index, location_id, arrival_time, departure_time, notes, created_at, updated_at
		FROM itinerary_stops
		WHERE trip_id = ANY($1)
		ORDER BY trip_id, order_index`

	rows, err := q.Query(ctx, sql, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("itinerary_stops: %w", err)
	}
	defer rows.Close()

	var stops []domain.ItineraryStop
	for rows.Next() {
		var s domain.ItineraryStop
		if err := rows.Scan(&s.ID, &s.TripID, &s.Date, &s.OrderIndex, &s.LocationID,
			&s.ArrivalTime, &s.DepartureTime, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("itinerary_stops: scan: %w", err)
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func queryEvents(ctx context.Context, q db.Querier, tripIDs []int) ([]domain.Event, error) {
	const sql = `
		SELECT id, trip_id, date, start_time, title, event_type, venue, party_theme_id, talent_ids, created_at, updated_at
		FROM events
		WHERE trip_id = ANY($1)
		ORDER BY trip_id, date, start_time`

	rows, err := q.Query(ctx, sql, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.TripID, &e.Date, &e.StartTime, &e.Title, &e.EventType,
			&e.Venue, &e.PartyThemeID, &e.TalentIDs, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("events: scan: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func queryAssignments(ctx context.Context, q db.Querier, tripIDs []int) ([]domain.TalentAssignment, error) {
	const sql = `
		SELECT trip_id, talent_id, role
		FROM trip_talent
		WHERE trip_id = ANY($1)
		ORDER BY trip_id, talent_id`

	rows, err := q.Query(ctx, sql, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("trip_talent: %w", err)
	}
	defer rows.Close()

	var assigned []domain.TalentAssignment
	for rows.Next() {
		var a domain.TalentAssignment
		if err := rows.Scan(&a.TripID, &a.TalentID, &a.Role); err != nil {
			return nil, fmt.Errorf("trip_talent: scan: %w", err)
		}
		assigned = append(assigned, a)
	}
	return assigned, rows.Err()
}

func querySections(ctx context.Context, q db.Querier, tripIDs []int) ([]domain.InfoSection, error) {
	const sql = `
		SELECT id, trip_id, title, content, order_index, created_at, updated_at
		FROM info_sections
		WHERE trip_id = ANY($1)
		ORDER BY trip_id, order_index`

	rows, err := q.Query(ctx, sql, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("info_sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.InfoSection
	for rows.Next() {
		var s domain.InfoSection
		if err := rows.Scan(&s.ID, &s.TripID, &s.Title, &s.Content, &s.OrderIndex,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("info_sections: scan: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}
