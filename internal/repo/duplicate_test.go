package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi/tripguides/internal/domain"
)

func TestDuplicateTrip_CopiesEveryChildCollection(t *testing.T) {
	guide, d, b := newTestGuide(t)
	ctx := context.Background()

	locID := seedLocation(t, d, "Santorini", "Greece")
	original := seedTrip(t, d, nil)
	day := original.StartDate

	seedStop(t, d, original.ID, 1, day, &locID)
	seedStop(t, d, original.ID, 2, day.AddDate(0, 0, 1), nil) // sea day
	seedStop(t, d, original.ID, 3, day.AddDate(0, 0, 2), &locID)
	seedEvent(t, d, original.ID, day, "White Party", "Pool Deck", nil)
	seedEvent(t, d, original.ID, day.AddDate(0, 0, 1), "Sail Away", "Aft Deck", nil)
	seedSection(t, d, original.ID, 1, "Packing tips")

	newSlug := "copy-" + uuid.NewString()
	copied, err := guide.DuplicateTrip(ctx, original.ID, "Greek Isles 2026", newSlug)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = d.Pool().Exec(context.Background(), `DELETE FROM trips WHERE id = $1`, copied.ID)
	})

	assert.NotEqual(t, original.ID, copied.ID)
	assert.Equal(t, "Greek Isles 2026", copied.Name)
	assert.Equal(t, newSlug, copied.Slug)
	assert.Equal(t, domain.TripStatusDraft, copied.Status, "copies always start as drafts")
	assert.Equal(t, original.Description, copied.Description)
	assert.True(t, copied.StartDate.Equal(original.StartDate))

	// The copy carries its own child rows with fresh IDs and the new FK.
	aggs, err := b.LoadTripAggregates(ctx, []int{copied.ID})
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	agg := aggs[0]

	require.Len(t, agg.Itinerary, 3)
	require.Len(t, agg.Events, 2)
	require.Len(t, agg.InfoSections, 1)
	assert.Empty(t, agg.TripTalent, "original had no talent; neither should the copy")

	for _, stop := range agg.Itinerary {
		assert.Equal(t, copied.ID, stop.TripID)
	}
	assert.Equal(t, "Packing tips", agg.InfoSections[0].Title)
}

func TestDuplicateTrip_LeavesOriginalUntouched(t *testing.T) {
	guide, d, _ := newTestGuide(t)
	ctx := context.Background()

	original := seedTrip(t, d, nil)
	seedEvent(t, d, original.ID, original.StartDate, "White Party", "Pool Deck", nil)

	copied, err := guide.DuplicateTrip(ctx, original.ID, "Copy", "copy-"+uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = d.Pool().Exec(context.Background(), `DELETE FROM trips WHERE id = $1`, copied.ID)
	})

	// Mutating the copy's event must not leak into the original.
	_, err = d.Pool().Exec(ctx,
		`UPDATE events SET title = 'Changed' WHERE trip_id = $1`, copied.ID)
	require.NoError(t, err)

	var originalTitle string
	err = d.Pool().QueryRow(ctx,
		`SELECT title FROM events WHERE trip_id = $1`, original.ID).Scan(&originalTitle)
	require.NoError(t, err)
	assert.Equal(t, "White Party", originalTitle)
}

func TestDuplicateTrip_OriginalNotFound(t *testing.T) {
	guide, _, _ := newTestGuide(t)

	_, err := guide.DuplicateTrip(context.Background(), 999999999, "Copy", "copy-"+uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDuplicateTrip_DuplicateSlugRollsBack(t *testing.T) {
	guide, d, _ := newTestGuide(t)
	ctx := context.Background()

	original := seedTrip(t, d, nil)
	taken := seedTrip(t, d, nil) // its slug is already in use

	_, err := guide.DuplicateTrip(ctx, original.ID, "Copy", taken.Slug)
	require.Error(t, err)

	// Nothing from the failed copy may persist.
	var count int
	err = d.Pool().QueryRow(ctx,
		`SELECT COUNT(*) FROM trips WHERE name = 'Copy' AND slug = $1`, taken.Slug).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDuplicateTrip_EmptyChildrenAreSkipped(t *testing.T) {
	guide, d, b := newTestGuide(t)
	ctx := context.Background()

	original := seedTrip(t, d, func(trip *domain.Trip) {
		trip.StartDate = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
		trip.EndDate = time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	})

	copied, err := guide.DuplicateTrip(ctx, original.ID, "Bare Copy", "copy-"+uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = d.Pool().Exec(context.Background(), `DELETE FROM trips WHERE id = $1`, copied.ID)
	})

	aggs, err := b.LoadTripAggregates(ctx, []int{copied.ID})
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Empty(t, aggs[0].Itinerary)
	assert.Empty(t, aggs[0].Events)
	assert.Empty(t, aggs[0].TripTalent)
	assert.Empty(t, aggs[0].InfoSections)
}
