package domain

import "time"

// InfoSection is one ordered block of guide copy on a trip page
// ("Packing tips", "Dress codes", ...). Displayed in OrderIndex order;
// gaps in the sequence are tolerated.
type InfoSection struct {
	ID         int       `json:"id"`
	TripID     int       `json:"trip_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
