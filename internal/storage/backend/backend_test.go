package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeviOP/wealthwise/internal/config"
	"github.com/LeviOP/wealthwise/internal/log"
)

func TestOpenSQLite(t *testing.T) {
	cfg := config.Config{
		DataBackend:  config.BackendSQLite,
		SQLiteDBPath: filepath.Join(t.TempDir(), "nested", "wealthwise.db"),
	}
	store, err := Open(context.Background(), cfg, log.Discard())
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.Config{DataBackend: "mongo"}, log.Discard())
	assert.ErrorContains(t, err, "unsupported data backend")
}
