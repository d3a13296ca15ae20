package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "state key is empty"},
		{name: "whitespace", key: "   ", wantErr: "state key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid state key"},
		{name: "traversal", key: "../escape", wantErr: "invalid state key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), "telemedicine-role", "doctor"))

	got, err := store.Get(context.Background(), "telemedicine-role")
	require.NoError(t, err)
	assert.Equal(t, "doctor", got)

	info, err := os.Stat(filepath.Join(root, "telemedicine-role"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(entryMode), info.Mode().Perm())
}

func TestStorePutOverwritesAndLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), "telemedicine-language", "hi"))
	require.NoError(t, store.Put(context.Background(), "telemedicine-language", "pa"))

	got, err := store.Get(context.Background(), "telemedicine-language")
	require.NoError(t, err)
	assert.Equal(t, "pa", got)

	matches, err := filepath.Glob(filepath.Join(root, ".entry-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStoreGetMissingKeyReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "telemedicine-user")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreDeleteIsIdempotentWhenEntryMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Delete(context.Background(), "telemedicine-user"))
	require.NoError(t, store.Delete(context.Background(), "telemedicine-user"))
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, "telemedicine-role", "admin"), context.Canceled)
}
