package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi/tripguides/internal/domain"
)

func intp(v int) *int { return &v }

func TestPartitionEventInputs_SplitsByIDPresence(t *testing.T) {
	title := "T-Dance"
	updates, inserts, err := partitionEventInputs([]domain.EventInput{
		{ID: intp(3), Title: &title},
		{Title: &title},
		{ID: intp(9)},
	})

	require.NoError(t, err)
	require.Len(t, updates, 2)
	require.Len(t, inserts, 1)
	assert.Equal(t, 3, *updates[0].ID)
	assert.Equal(t, 9, *updates[1].ID)
	assert.Nil(t, inserts[0].ID)
}

func TestPartitionEventInputs_DuplicateID(t *testing.T) {
	_, _, err := partitionEventInputs([]domain.EventInput{
		{ID: intp(3)},
		{ID: intp(3)},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPartitionEventInputs_NonPositiveID(t *testing.T) {
	_, _, err := partitionEventInputs([]domain.EventInput{{ID: intp(-1)}})

	assert.ErrorIs(t, err, domain.ErrValidation)
}
