package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi/tripguides/internal/domain"
)

func TestStitch_DistributesChildrenByTripID(t *testing.T) {
	trips := []domain.Trip{{ID: 1, Slug: "alpha"}, {ID: 2, Slug: "beta"}}
	stops := []domain.ItineraryStop{
		{ID: 10, TripID: 1, OrderIndex: 0},
		{ID: 11, TripID: 1, OrderIndex: 1},
		{ID: 12, TripID: 2, OrderIndex: 0},
	}
	events := []domain.Event{{ID: 20, TripID: 2, Title: "White Party"}}
	assigned := []domain.TalentAssignment{{TripID: 1, TalentID: 5, Role: "headliner"}}
	sections := []domain.InfoSection{{ID: 30, TripID: 1}}

	got := stitch(trips, stops, events, assigned, sections)

	require.Len(t, got, 2)
	assert.Len(t, got[0].Itinerary, 2)
	assert.Len(t, got[1].Itinerary, 1)
	assert.Len(t, got[1].Events, 1)
	assert.Len(t, got[0].TripTalent, 1)
	assert.Len(t, got[0].InfoSections, 1)
}

func TestStitch_OrphanParentGetsEmptySlicesNotNil(t *testing.T) {
	trips := []domain.Trip{{ID: 1}, {ID: 2}}
	stops := []domain.ItineraryStop{{ID: 10, TripID: 1}}

	got := stitch(trips, stops, nil, nil, nil)

	require.Len(t, got, 2)
	// Trip 2 has no rows anywhere: every collection must be an empty
	// slice, never nil, so JSON encodes [] and callers can range freely.
	assert.NotNil(t, got[1].Itinerary)
	assert.Empty(t, got[1].Itinerary)
	assert.NotNil(t, got[1].Events)
	assert.NotNil(t, got[1].TripTalent)
	assert.NotNil(t, got[1].InfoSections)
}

func TestStitch_PreservesParentAndChildOrder(t *testing.T) {
	trips := []domain.Trip{{ID: 3}, {ID: 1}, {ID: 2}}
	stops := []domain.ItineraryStop{
		{ID: 10, TripID: 1, OrderIndex: 0},
		{ID: 11, TripID: 1, OrderIndex: 1},
	}

	got := stitch(trips, stops, nil, nil, nil)

	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].Trip.ID, "parent order follows the trips slice, not ID order")
	assert.Equal(t, 10, got[1].Itinerary[0].ID)
	assert.Equal(t, 11, got[1].Itinerary[1].ID)
}

func TestStitch_DropsChildrenWithUnknownParent(t *testing.T) {
	trips := []domain.Trip{{ID: 1}}
	events := []domain.Event{{ID: 20, TripID: 99}}

	got := stitch(trips, nil, events, nil, nil)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Events)
}
