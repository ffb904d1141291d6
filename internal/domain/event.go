package domain

import "time"

// Defaults applied by the bulk event upsert when a new record omits
// required presentation fields.
const (
	DefaultEventTitle = "Untitled Event"
	DefaultEventType  = "party"
)

// Event is a scheduled happening on a trip: a party, a show, a dining
// event. Events may reference a reusable party theme and any number of
// performing talent.
type Event struct {
	ID           int       `json:"id"`
	TripID       int       `json:"trip_id"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"start_time,omitempty"`
	Title        string    `json:"title"`
	EventType    string    `json:"event_type"`
	Venue        string    `json:"venue,omitempty"`
	PartyThemeID *int      `json:"party_theme_id,omitempty"`
	TalentIDs    []int     `json:"talent_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// PartyTheme is the joined lookup row, populated by read paths that
	// join against party_themes. Nil when PartyThemeID is nil.
	PartyTheme *PartyTheme `json:"party_theme,omitempty"`
}

// EventInput is one record in a bulk event upsert. Records carrying an ID
// update the existing row; records without an ID insert a new row. A nil
// field means "leave unchanged" for updates and "apply the default" for
// inserts.
type EventInput struct {
	ID           *int       `json:"id,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	StartTime    *string    `json:"start_time,omitempty"`
	Title        *string    `json:"title,omitempty"`
	EventType    *string    `json:"event_type,omitempty"`
	Venue        *string    `json:"venue,omitempty"`
	PartyThemeID *int       `json:"party_theme_id,omitempty"`
	TalentIDs    []int      `json:"talent_ids,omitempty"`
}
