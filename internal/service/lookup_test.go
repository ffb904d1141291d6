package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi/tripguides/internal/domain"
	"github.com/bryhearnchi/tripguides/internal/service"
)

// mockLookupStore is a function-field double for service.LookupStore.
type mockLookupStore struct {
	listShips       func(ctx context.Context) ([]domain.Ship, error)
	listLocations   func(ctx context.Context) ([]domain.Location, error)
	listPartyThemes func(ctx context.Context) ([]domain.PartyTheme, error)
	listTalent      func(ctx context.Context) ([]domain.Talent, error)
}

func (m *mockLookupStore) ListShips(ctx context.Context) ([]domain.Ship, error) {
	return m.listShips(ctx)
}
func (m *mockLookupStore) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return m.listLocations(ctx)
}
func (m *mockLookupStore) ListPartyThemes(ctx context.Context) ([]domain.PartyTheme, error) {
	return m.listPartyThemes(ctx)
}
func (m *mockLookupStore) ListTalent(ctx context.Context) ([]domain.Talent, error) {
	return m.listTalent(ctx)
}

var _ service.LookupStore = (*mockLookupStore)(nil)

func TestLookupService_ListShips_CacheMissReadsStoreAndWritesBack(t *testing.T) {
	storeCalls := 0
	store := &mockLookupStore{
		listShips: func(context.Context) ([]domain.Ship, error) {
			storeCalls++
			return []domain.Ship{{ID: 1, Name: "Valiant Lady"}}, nil
		},
	}
	var wroteNS, wroteKey string
	var wroteTTL time.Duration
	c := &mockCache{
		set: func(_ context.Context, ns, key string, _ []byte, ttl time.Duration) error {
			wroteNS, wroteKey, wroteTTL = ns, key, ttl
			return nil
		},
	}
	svc := service.NewLookupService(store, c, testLogger())

	got, err := svc.ListShips(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, storeCalls)
	assert.Equal(t, "lookups", wroteNS)
	assert.Equal(t, "lookup:ships", wroteKey)
	assert.Equal(t, 3600*time.Second, wroteTTL)
}

func TestLookupService_ListPartyThemes_CacheHitSkipsStore(t *testing.T) {
	cached, err := json.Marshal([]domain.PartyTheme{{ID: 3, Name: "White Party", UsageCount: 7}})
	require.NoError(t, err)

	store := &mockLookupStore{
		listPartyThemes: func(context.Context) ([]domain.PartyTheme, error) {
			t.Fatal("store must not be called on a cache hit")
			return nil, nil
		},
	}
	c := &mockCache{
		get: func(context.Context, string, string) ([]byte, bool, error) {
			return cached, true, nil
		},
	}
	svc := service.NewLookupService(store, c, testLogger())

	got, err := svc.ListPartyThemes(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].UsageCount)
}

func TestLookupService_ListLocations_CacheReadErrorIsMiss(t *testing.T) {
	store := &mockLookupStore{
		listLocations: func(context.Context) ([]domain.Location, error) {
			return []domain.Location{{ID: 2, Name: "Mykonos"}}, nil
		},
	}
	c := &mockCache{
		get: func(context.Context, string, string) ([]byte, bool, error) {
			return nil, false, errors.New("redis connection refused")
		},
	}
	svc := service.NewLookupService(store, c, testLogger())

	got, err := svc.ListLocations(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLookupService_ListTalent_NilBecomesEmptySlice(t *testing.T) {
	store := &mockLookupStore{
		listTalent: func(context.Context) ([]domain.Talent, error) { return nil, nil },
	}
	svc := service.NewLookupService(store, &mockCache{}, testLogger())

	got, err := svc.ListTalent(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLookupService_ListShips_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("relation does not exist")
	store := &mockLookupStore{
		listShips: func(context.Context) ([]domain.Ship, error) { return nil, storeErr },
	}
	svc := service.NewLookupService(store, &mockCache{}, testLogger())

	_, err := svc.ListShips(context.Background())

	assert.ErrorIs(t, err, storeErr)
}
