package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// GetTripComplete assembles the full guide read-model for one trip: the
// root by slug, then five reads in parallel — itinerary joined with
// locations, events joined with party themes, talent assignments joined
// with talent, info sections, and the ship singleton (queried only when
// the trip references one, never fetched-then-discarded).
//
// Returns domain.ErrNotFound without issuing any child query when no trip
// has the slug. If any child read fails the whole call fails.
func (g *Guide) GetTripComplete(ctx context.Context, slug string) (domain.TripComplete, error) {
	return db.Execute(ctx, g.db, "repo.Guide.GetTripComplete", func(ctx context.Context) (domain.TripComplete, error) {
		trip, err := scanTrip(g.db.Pool().QueryRow(ctx,
			`SELECT `+tripColumns+` FROM trips WHERE slug = @slug`, pgx.NamedArgs{"slug": slug}))
		if err != nil {
			return domain.TripComplete{}, fmt.Errorf("repo.Guide.GetTripComplete: trip: %w", err)
		}

		out := domain.TripComplete{
			Trip:         trip,
			Itinerary:    []domain.ItineraryStop{},
			Events:       []domain.Event{},
			TripTalent:   []domain.TalentAssignment{},
			InfoSections: []domain.InfoSection{},
		}

		g2, ctx := errgroup.WithContext(ctx)

		g2.Go(func() (err error) {
			out.Itinerary, err = g.itineraryWithLocations(ctx, trip.ID)
			return err
		})
		g2.Go(func() (err error) {
			out.Events, err = g.eventsWithThemes(ctx, trip.ID)
			return err
		})
		g2.Go(func() (err error) {
			out.TripTalent, err = g.assignmentsWithTalent(ctx, trip.ID)
			return err
		})
		g2.Go(func() (err error) {
			out.InfoSections, err = g.sections(ctx, trip.ID)
			return err
		})
		if trip.ShipID != nil {
			g2.Go(func() (err error) {
				out.Ship, err = g.ship(ctx, *trip.ShipID)
				return err
			})
		}

		if err := g2.Wait(); err != nil {
			return domain.TripComplete{}, fmt.Errorf("repo.Guide.GetTripComplete: %w", err)
		}
		return out, nil
	})
}

// itineraryWithLocations reads a trip's stops in display order with the
// optional location embedded. Stops without a location (sea days) come
// back with Location nil.
func (g *Guide) itineraryWithLocations(ctx context.Context, tripID int) ([]domain.ItineraryStop, error) {
	const q = `
		SELECT s.id, s.trip_id, s.date, s.order_index, s.location_id,
		       s.arrival_time, s.departure_time, s.notes, s.created_at, s.updated_at,
		       l.id, l.name, l.country, l.description
		FROM itinerary_stops s
		LEFT JOIN locations l ON l.id = s.location_id
		WHERE s.trip_id = @trip_id
		ORDER BY s.order_index`

	rows, err := g.db.Pool().Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("itinerary: %w", err)
	}
	defer rows.Close()

	stops := []domain.ItineraryStop{}
	for rows.Next() {
		var s domain.ItineraryStop
		var locID *int
		var locName, locCountry, locDesc *string
		if err := rows.Scan(&s.ID, &s.TripID, &s.Date, &s.OrderIndex, &s.LocationID,
			&s.ArrivalTime, &s.DepartureTime, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
			&locID, &locName, &locCountry, &locDesc); err != nil {
			return nil, fmt.Errorf("itinerary: scan: %w", err)
		}
		if locID != nil {
			s.Location = &domain.Location{ID: *locID, Name: *locName, Country: *locCountry, Description: *locDesc}
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

// eventsWithThemes reads a trip's events in schedule order with the
// optional party theme embedded.
func (g *Guide) eventsWithThemes(ctx context.Context, tripID int) ([]domain.Event, error) {
	const q = `
		SELECT e.id, e.trip_id, e.date, e.start_time, e.title, e.event_type, e.venue,
		       e.party_theme_id, e.talent_ids, e.created_at, e.updated_at,
		       p.id, p.name, p.theme, p.venue_type, p.usage_count
		FROM events e
		LEFT JOIN party_themes p ON p.id = e.party_theme_id
		WHERE e.trip_id = @trip_id
		ORDER BY e.date, e.start_time`

	rows, err := g.db.Pool().Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		var themeID, usage *int
		var themeName, theme, venueType *string
		if err := rows.Scan(&e.ID, &e.TripID, &e.Date, &e.StartTime, &e.Title, &e.EventType,
			&e.Venue, &e.PartyThemeID, &e.TalentIDs, &e.CreatedAt, &e.UpdatedAt,
			&themeID, &themeName, &theme, &venueType, &usage); err != nil {
			return nil, fmt.Errorf("events: scan: %w", err)
		}
		if themeID != nil {
			e.PartyTheme = &domain.PartyTheme{ID: *themeID, Name: *themeName, Theme: *theme, VenueType: *venueType, UsageCount: *usage}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// assignmentsWithTalent reads a trip's talent roster with talent details
// embedded, ordered by talent name for display.
func (g *Guide) assignmentsWithTalent(ctx context.Context, tripID int) ([]domain.TalentAssignment, error) {
	const q = `
		SELECT tt.trip_id, tt.talent_id, tt.role, t.id, t.name, t.category, t.bio
		FROM trip_talent tt
		JOIN talent t ON t.id = tt.talent_id
		WHERE tt.trip_id = @trip_id
		ORDER BY t.name`

	rows, err := g.db.Pool().Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("trip talent: %w", err)
	}
	defer rows.Close()

	assigned := []domain.TalentAssignment{}
	for rows.Next() {
		var (
			a domain.TalentAssignment
			t domain.Talent
		)
		if err := rows.Scan(&a.TripID, &a.TalentID, &a.Role, &t.ID, &t.Name, &t.Category, &t.Bio); err != nil {
			return nil, fmt.Errorf("trip talent: scan: %w", err)
		}
		a.Talent = &t
		assigned = append(assigned, a)
	}
	return assigned, rows.Err()
}

// sections reads a trip's info sections in display order.
func (g *Guide) sections(ctx context.Context, tripID int) ([]domain.InfoSection, error) {
	const q = `
		SELECT id, trip_id, title, content, order_index, created_at, updated_at
		FROM info_sections
		WHERE trip_id = @trip_id
		ORDER BY order_index`

	rows, err := g.db.Pool().Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("info sections: %w", err)
	}
	defer rows.Close()

	sections := []domain.InfoSection{}
	for rows.Next() {
		var s domain.InfoSection
		if err := rows.Scan(&s.ID, &s.TripID, &s.Title, &s.Content, &s.OrderIndex,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("info sections: scan: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// ship reads the referenced ship row.
func (g *Guide) ship(ctx context.Context, shipID int) (*domain.Ship, error) {
	const q = `SELECT id, name, cruise_line, capacity, description FROM ships WHERE id = @id`

	var s domain.Ship
	err := g.db.Pool().QueryRow(ctx, q, pgx.NamedArgs{"id": shipID}).
		Scan(&s.ID, &s.Name, &s.CruiseLine, &s.Capacity, &s.Description)
	if err != nil {
		return nil, fmt.Errorf("ship: %w", err)
	}
	return &s, nil
}
