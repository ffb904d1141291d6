// Package domain contains the core data types for the Trip Guides application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, batch, cache, service, handler).
package domain

import "time"

// Trip statuses. A trip moves forward through these and never backward.
const (
	TripStatusDraft     = "draft"
	TripStatusPublished = "published"
	TripStatusArchived  = "archived"
)

// Trip is the root of the guide aggregate. Itinerary stops, events, talent
// assignments, and info sections all hang off a trip. Trips are addressed by
// integer ID internally and by unique slug in public URLs.
type Trip struct {
	ID          int       `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	ShipID      *int      `json:"ship_id,omitempty"` // nil for land-based trips
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TripComplete is the full read-model served to the public guide UI:
// the trip plus every child collection, each with its optional joined
// lookup entity embedded inline.
type TripComplete struct {
	Trip         Trip               `json:"trip"`
	Ship         *Ship              `json:"ship,omitempty"` // only when Trip.ShipID is set
	Itinerary    []ItineraryStop    `json:"itinerary"`
	Events       []Event            `json:"events"`
	TripTalent   []TalentAssignment `json:"trip_talent"`
	InfoSections []InfoSection      `json:"info_sections"`
}
