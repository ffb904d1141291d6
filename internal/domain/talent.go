package domain

// Talent is a performer or host with an independent lifecycle — the same
// talent row can be assigned to any number of trips.
type Talent struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"` // e.g. "drag", "comedy", "dj"
	Bio      string `json:"bio,omitempty"`
}

// TalentAssignment links a talent to a trip with a per-trip role.
// The (TripID, TalentID) pair is the natural key.
type TalentAssignment struct {
	TripID   int    `json:"trip_id"`
	TalentID int    `json:"talent_id"`
	Role     string `json:"role,omitempty"` // e.g. "headliner", "host"

	// Talent is the joined row, populated by read paths that join
	// against talent.
	Talent *Talent `json:"talent,omitempty"`
}
