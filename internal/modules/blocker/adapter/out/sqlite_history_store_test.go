package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus/internal/modules/blocker/adapter/out"
	"focus/internal/modules/blocker/domain"
)

func TestSQLiteHistoryStoreAppendAndList(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteHistoryStore(filepath.Join(t.TempDir(), "nested", "focus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(ctx, domain.Record{ID: "a", Goal: "Read", Duration: 600, Timestamp: base}))
	require.NoError(t, store.Append(ctx, domain.Record{
		ID:           "b",
		Goal:         "Write docs",
		Duration:     900,
		BlockedSites: []string{"reddit.com"},
		BlockedApps:  []domain.AppTarget{{Label: "Steam", Executable: "steam"}},
		Timestamp:    base.Add(time.Hour),
	}))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, []string{"reddit.com"}, records[0].BlockedSites)
	assert.Equal(t, []domain.AppTarget{{Label: "Steam", Executable: "steam"}}, records[0].BlockedApps)
	assert.True(t, records[0].Timestamp.Equal(base.Add(time.Hour)))
	assert.Equal(t, "a", records[1].ID)
	assert.Empty(t, records[1].BlockedSites)
}

func TestSQLiteHistoryStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "focus.db")
	store, err := out.NewSQLiteHistoryStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), domain.Record{ID: "a", Goal: "Read", Duration: 60, Timestamp: time.Now()}))
	require.NoError(t, store.Close())

	reopened, err := out.NewSQLiteHistoryStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	records, err := reopened.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteHistoryStoreRejectsDuplicateID(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteHistoryStore(filepath.Join(t.TempDir(), "focus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	record := domain.Record{ID: "a", Goal: "Read", Duration: 60, Timestamp: time.Now()}
	require.NoError(t, store.Append(context.Background(), record))
	assert.Error(t, store.Append(context.Background(), record))
}
