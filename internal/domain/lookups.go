package domain

// Ship is the vessel a cruise trip sails on. Optional — land-based trips
// have no ship. Ships are reference data managed by the admin back-office.
type Ship struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CruiseLine  string `json:"cruise_line,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
	Description string `json:"description,omitempty"`
}

// Location is a port or destination referenced by itinerary stops.
type Location struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`
}

// PartyTheme is a reusable party concept referenced by events.
// UsageCount tracks how many events have been bound to the theme and is
// incremented by the bulk event upsert, not by this layer's readers.
type PartyTheme struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Theme      string `json:"theme,omitempty"`
	VenueType  string `json:"venue_type,omitempty"`
	UsageCount int    `json:"usage_count"`
}
