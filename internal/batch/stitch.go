package batch

import "github.com/bryhearnchi/tripguides/internal/domain"

// stitch distributes child rows onto their parent trips by trip ID.
// Every aggregate starts with empty (never nil) child slices, so a trip
// absent from a child table still carries [] for that collection.
// Child rows whose trip ID matches no parent are dropped. Parent order
// is preserved.
func stitch(
	trips []domain.Trip,
	stops []domain.ItineraryStop,
	events []domain.Event,
	assigned []domain.TalentAssignment,
	sections []domain.InfoSection,
) []domain.TripComplete {
	out := make([]domain.TripComplete, len(trips))
	byID := make(map[int]*domain.TripComplete, len(trips))

	for i, t := range trips {
		out[i] = domain.TripComplete{
			Trip:         t,
			Itinerary:    []domain.ItineraryStop{},
			Events:       []domain.Event{},
			TripTalent:   []domain.TalentAssignment{},
			InfoSections: []domain.InfoSection{},
		}
		byID[t.ID] = &out[i]
	}

	for _, s := range stops {
		if agg, ok := byID[s.TripID]; ok {
			agg.Itinerary = append(agg.Itinerary, s)
		}
	}
	for _, e := range events {
		if agg, ok := byID[e.TripID]; ok {
			agg.Events = append(agg.Events, e)
		}
	}
	for _, a := range assigned {
		if agg, ok := byID[a.TripID]; ok {
			agg.TripTalent = append(agg.TripTalent, a)
		}
	}
	for _, s := range sections {
		if agg, ok := byID[s.TripID]; ok {
			agg.InfoSections = append(agg.InfoSections, s)
		}
	}

	return out
}
