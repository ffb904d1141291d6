package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi/tripguides/internal/domain"
)

func TestMergeRanked_OrdersAcrossTypesByRank(t *testing.T) {
	perType := [][]domain.SearchResult{
		{
			{EntityType: domain.SearchTypeTrips, ID: 1, Rank: 0.9},
			{EntityType: domain.SearchTypeTrips, ID: 2, Rank: 0.2},
		},
		{
			{EntityType: domain.SearchTypeTalent, ID: 7, Rank: 0.5},
		},
	}

	got := mergeRanked(perType, 10)

	require.Len(t, got, 3)
	assert.Equal(t, 0.9, got[0].Rank)
	assert.Equal(t, 0.5, got[1].Rank)
	assert.Equal(t, 0.2, got[2].Rank)
	assert.Equal(t, domain.SearchTypeTalent, got[1].EntityType, "ordering ignores which type contributed the result")
}

func TestMergeRanked_TruncatesToTotalLimit(t *testing.T) {
	perType := [][]domain.SearchResult{
		{{ID: 1, Rank: 0.9}, {ID: 2, Rank: 0.8}},
		{{ID: 3, Rank: 0.7}, {ID: 4, Rank: 0.6}},
	}

	got := mergeRanked(perType, 3)

	// The limit applies to the merged total, not to each type.
	assert.Len(t, got, 3)
	assert.Equal(t, 0.7, got[2].Rank)
}

func TestMergeRanked_TieBreaksOnTypeThenID(t *testing.T) {
	perType := [][]domain.SearchResult{
		{{EntityType: domain.SearchTypeTrips, ID: 9, Rank: 0.5}},
		{{EntityType: domain.SearchTypeEvents, ID: 3, Rank: 0.5}},
		{{EntityType: domain.SearchTypeEvents, ID: 1, Rank: 0.5}},
	}

	got := mergeRanked(perType, 10)

	require.Len(t, got, 3)
	assert.Equal(t, domain.SearchTypeEvents, got[0].EntityType)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Equal(t, domain.SearchTypeTrips, got[2].EntityType)
}

func TestRegroup_PreservesMergedOrderWithinType(t *testing.T) {
	merged := []domain.SearchResult{
		{EntityType: domain.SearchTypeTrips, ID: 1, Rank: 0.9},
		{EntityType: domain.SearchTypeTalent, ID: 7, Rank: 0.5},
		{EntityType: domain.SearchTypeTrips, ID: 2, Rank: 0.2},
	}

	got := regroup(merged)

	require.Len(t, got[domain.SearchTypeTrips], 2)
	assert.Equal(t, 1, got[domain.SearchTypeTrips][0].ID)
	assert.Equal(t, 2, got[domain.SearchTypeTrips][1].ID)
	require.Len(t, got[domain.SearchTypeTalent], 1)
}

func TestPartitionEventInputs(t *testing.T) {
	id5, id8 := 5, 8
	title := "T-Dance"
	inputs := []domain.EventInput{
		{ID: &id5, Title: &title},
		{Title: &title},
		{ID: &id8},
		{},
	}

	updates, inserts, err := partitionEventInputs(inputs)

	require.NoError(t, err)
	require.Len(t, updates, 2)
	require.Len(t, inserts, 2)
	assert.Equal(t, 5, *updates[0].ID)
	assert.Equal(t, 8, *updates[1].ID)
}

func TestPartitionEventInputs_RejectsNonPositiveID(t *testing.T) {
	zero := 0
	_, _, err := partitionEventInputs([]domain.EventInput{{ID: &zero}})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrderByInputIDs(t *testing.T) {
	events := []domain.Event{{ID: 3}, {ID: 1}, {ID: 2}}

	got := orderByInputIDs(events, []int{1, 2, 3})

	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, 3, got[2].ID)
}
