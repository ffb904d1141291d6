package repo

import (
	"context"
	"fmt"

	"github.com/bryhearnchi/tripguides/internal/db"
	"github.com/bryhearnchi/tripguides/internal/domain"
)

// dashboardQuery computes every dashboard metric in one round trip. Each
// CTE is one named sub-aggregate; the averages guard against an empty
// trips table so a fresh database reports 0, never a division error.
const dashboardQuery = `
	WITH trip_counts AS (
		SELECT COUNT(*)                                                        AS total,
		       COUNT(*) FILTER (WHERE start_date > now())                      AS upcoming,
		       COUNT(*) FILTER (WHERE start_date <= now() AND end_date >= now()) AS active,
		       COUNT(*) FILTER (WHERE end_date < now())                        AS past
		FROM trips
	),
	event_counts   AS (SELECT COUNT(*) AS total FROM events),
	stop_counts    AS (SELECT COUNT(*) AS total FROM itinerary_stops),
	talent_counts  AS (SELECT COUNT(*) AS total FROM talent),
	theme_counts   AS (SELECT COUNT(*) AS total FROM party_themes),
	averages AS (
		SELECT
			CASE WHEN t.total = 0 THEN 0 ELSE e.total::float8 / t.total END AS avg_events,
			CASE WHEN t.total = 0 THEN 0 ELSE s.total::float8 / t.total END AS avg_stops
		FROM trip_counts t, event_counts e, stop_counts s
	)
	SELECT t.total, t.upcoming, t.active, t.past,
	       e.total, ta.total, th.total,
	       a.avg_events, a.avg_stops
	FROM trip_counts t, event_counts e, talent_counts ta, theme_counts th, averages a`

// DashboardStats returns the admin dashboard aggregate: trip counts
// partitioned by date, entity totals, and per-trip averages, all from a
// single statement.
func (g *Guide) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	return db.Execute(ctx, g.db, "repo.Guide.DashboardStats", func(ctx context.Context) (domain.DashboardStats, error) {
		var s domain.DashboardStats
		err := g.db.Pool().QueryRow(ctx, dashboardQuery).Scan(
			&s.TotalTrips, &s.UpcomingTrips, &s.ActiveTrips, &s.PastTrips,
			&s.TotalEvents, &s.TotalTalent, &s.TotalPartyThemes,
			&s.AvgEventsPerTrip, &s.AvgStopsPerTrip,
		)
		if err != nil {
			return domain.DashboardStats{}, fmt.Errorf("repo.Guide.DashboardStats: %w", err)
		}
		return s, nil
	})
}
