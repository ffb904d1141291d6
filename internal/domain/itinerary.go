package domain

import "time"

// ItineraryStop is one dated port-of-call (or sea day) on a trip.
// Stops are displayed in OrderIndex order; gaps in the sequence are
// tolerated so drag-and-drop reordering never has to renumber everything.
type ItineraryStop struct {
	ID            int       `json:"id"`
	TripID        int       `json:"trip_id"`
	Date          time.Time `json:"date"`
	OrderIndex    int       `json:"order_index"`
	LocationID    *int      `json:"location_id,omitempty"` // nil for sea days
	ArrivalTime   string    `json:"arrival_time,omitempty"`
	DepartureTime string    `json:"departure_time,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Location is the joined lookup row, populated by read paths that
	// join against locations. Nil when LocationID is nil.
	Location *Location `json:"location,omitempty"`
}
