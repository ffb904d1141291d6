package db

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpName_CollapsesWhitespace(t *testing.T) {
	sql := `
		SELECT id, slug
		FROM trips
		WHERE id = @id`

	assert.Equal(t, "SELECT id, slug FROM trips WHERE id = @id", opName(sql))
}

// fakeRow is a pgx.Row returning a canned error.
type fakeRow struct{ err error }

func (r fakeRow) Scan(dest ...any) error { return r.err }

func TestTimedRow_RecordsOnScan(t *testing.T) {
	d := newBareDB()

	row := &timedRow{row: fakeRow{}, d: d, name: "SELECT 1", start: time.Now()}
	require.NoError(t, row.Scan())

	snap := d.Metrics()
	require.Len(t, snap.RecentQueries, 1)
	assert.Equal(t, "SELECT 1", snap.RecentQueries[0].Name)
	assert.False(t, snap.RecentQueries[0].Failed)
}

func TestTimedRow_NoRowsIsNotAFailure(t *testing.T) {
	d := newBareDB()

	row := &timedRow{row: fakeRow{err: pgx.ErrNoRows}, d: d, name: "SELECT 1", start: time.Now()}
	assert.ErrorIs(t, row.Scan(), pgx.ErrNoRows)

	snap := d.Metrics()
	require.Len(t, snap.RecentQueries, 1)
	assert.False(t, snap.RecentQueries[0].Failed, "a miss is not a storage failure")
}

func TestTimedRow_ErrorIsAFailure(t *testing.T) {
	d := newBareDB()

	row := &timedRow{row: fakeRow{err: errors.New("broken pipe")}, d: d, name: "SELECT 1", start: time.Now()}
	assert.Error(t, row.Scan())

	snap := d.Metrics()
	require.Len(t, snap.RecentQueries, 1)
	assert.True(t, snap.RecentQueries[0].Failed)
}
