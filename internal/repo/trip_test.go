package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi/tripguides/internal/domain"
	"github.com/bryhearnchi/tripguides/internal/repo"
	"github.com/bryhearnchi/tripguides/testutil"
)

// newTestRepo opens a transaction against the test database and returns a
// TripRepo backed by it. The transaction is rolled back when the test
// finishes, giving free per-test isolation.
func newTestRepo(t *testing.T) repo.TripRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewTripRepo(tx)
}

// tripInput returns a domain.Trip with sensible defaults and a unique
// slug. Callers can override individual fields after calling it.
func tripInput() domain.Trip {
	return domain.Trip{
		Slug:        "trip-" + uuid.NewString(),
		Name:        "Mediterranean Dream",
		Description: "Ten days, six ports",
		Status:      domain.TripStatusDraft,
		StartDate:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := tripInput()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Positive(t, got.ID, "ID should be DB-generated")
	assert.Equal(t, input.Slug, got.Slug)
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, domain.TripStatusDraft, got.Status)
	assert.Nil(t, got.ShipID, "ship is optional")
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_Create_DuplicateSlug(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := tripInput()
	_, err := r.Create(ctx, input)
	require.NoError(t, err)

	input.Name = "Different Name"
	_, err = r.Create(ctx, input)
	assert.Error(t, err, "slug uniqueness must be enforced")
}

func TestTripRepo_GetByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripInput())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Slug, got.Slug)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetByID(context.Background(), 999999999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetBySlug(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripInput())
	require.NoError(t, err)

	got, err := r.GetBySlug(ctx, created.Slug)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestTripRepo_GetBySlug_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetBySlug(context.Background(), "no-such-slug-"+uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_List_OrderedByStartDateDesc(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	older := tripInput()
	older.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older.EndDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	olderTrip, err := r.Create(ctx, older)
	require.NoError(t, err)

	newer := tripInput()
	newer.StartDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer.EndDate = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newerTrip, err := r.Create(ctx, newer)
	require.NoError(t, err)

	trips, err := r.List(ctx)
	require.NoError(t, err)

	newerIdx, olderIdx := -1, -1
	for i, trip := range trips {
		switch trip.ID {
		case newerTrip.ID:
			newerIdx = i
		case olderTrip.ID:
			olderIdx = i
		}
	}
	require.NotEqual(t, -1, newerIdx, "newer trip missing from list")
	require.NotEqual(t, -1, olderIdx, "older trip missing from list")
	assert.Less(t, newerIdx, olderIdx, "newer start date should sort first")
}

func TestTripRepo_Update(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripInput())
	require.NoError(t, err)

	created.Name = "Renamed"
	created.Status = domain.TripStatusPublished

	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, domain.TripStatusPublished, got.Status)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := newTestRepo(t)

	missing := tripInput()
	missing.ID = 999999999

	_, err := r.Update(context.Background(), missing)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, tripInput())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.Delete(context.Background(), 999999999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
