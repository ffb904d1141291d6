package domain

// Searchable entity types accepted by the global search.
const (
	SearchTypeTrips     = "trips"
	SearchTypeEvents    = "events"
	SearchTypeTalent    = "talent"
	SearchTypeLocations = "locations"
)

// SearchResult is one full-text match from any entity table, carrying the
// relevance rank the store computed for it. Subtitle holds a per-type
// secondary line (trip dates, event venue, talent category, ...).
type SearchResult struct {
	EntityType string  `json:"entity_type"`
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle,omitempty"`
	Slug       string  `json:"slug,omitempty"` // trips only
	Rank       float64 `json:"rank"`
}

// DashboardStats is the single-round-trip aggregate behind the admin
// dashboard. Averages are 0 (never NaN) when there are no trips.
type DashboardStats struct {
	TotalTrips       int     `json:"total_trips"`
	UpcomingTrips    int     `json:"upcoming_trips"`
	ActiveTrips      int     `json:"active_trips"`
	PastTrips        int     `json:"past_trips"`
	TotalEvents      int     `json:"total_events"`
	TotalTalent      int     `json:"total_talent"`
	TotalPartyThemes int     `json:"total_party_themes"`
	AvgEventsPerTrip float64 `json:"avg_events_per_trip"`
	AvgStopsPerTrip  float64 `json:"avg_stops_per_trip"`
}
