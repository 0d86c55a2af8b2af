package quota

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, defaultLimit int) *SQLStore {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "quota.db"), defaultLimit)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStore_Load_EmptyDatabase(t *testing.T) {
	store := openTestStore(t, 1000)

	state, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, state.LastAccess.IsZero())
	assert.Equal(t, 0, state.CallsMade)
	assert.Equal(t, 1000, state.DailyLimit)
}

func TestSQLStore_SaveAndLoad(t *testing.T) {
	store := openTestStore(t, 1000)
	ctx := context.Background()

	lastAccess := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)
	saved := State{
		LastAccess: lastAccess,
		CallsMade:  42,
		DailyLimit: 250,
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.True(t, loaded.LastAccess.Equal(lastAccess))
	assert.Equal(t, 42, loaded.CallsMade)
	assert.Equal(t, 250, loaded.DailyLimit)
}

func TestSQLStore_Save_Overwrites(t *testing.T) {
	store := openTestStore(t, 1000)
	ctx := context.Background()

	first := State{
		LastAccess: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		CallsMade:  1,
		DailyLimit: 100,
	}
	require.NoError(t, store.Save(ctx, first))

	second := first
	second.CallsMade = 2
	second.LastAccess = first.LastAccess.Add(time.Minute)
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.CallsMade)
	assert.True(t, loaded.LastAccess.Equal(second.LastAccess))
}

func TestSQLStore_Load_CorruptedSetting(t *testing.T) {
	store := openTestStore(t, 1000)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		"INSERT INTO settings (name, value) VALUES (?, ?)", settingCallsMade, "not-a-number")
	require.NoError(t, err)

	_, err = store.Load(ctx)
	assert.Error(t, err)
}
