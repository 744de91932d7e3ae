package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/service"
	"github.com/LeviOP/wealthwise/internal/storage/sqlite"
)

func TestSeedIsIdempotent(t *testing.T) {
	store, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	svc := service.New(store, auth.NewTokenManager("secret", "wealthwise", time.Hour), log.Discard())
	opts := options{samples: 5, months: 2, seed: 42}

	require.NoError(t, seed(ctx, svc, log.Discard(), opts))
	require.NoError(t, seed(ctx, svc, log.Discard(), opts))

	for _, u := range demoUsers {
		res, err := svc.Login(ctx, u.Email, u.Password)
		require.NoError(t, err, u.Email)
		id := auth.Authenticated(res.User)

		categories, err := svc.Categories(ctx, id)
		require.NoError(t, err)
		assert.Len(t, categories, 14)

		transactions, err := svc.Transactions(ctx, id)
		require.NoError(t, err)
		assert.Len(t, transactions, opts.samples, "samples are only added on first creation")

		budgets, err := svc.Budgets(ctx, id)
		require.NoError(t, err)
		assert.Len(t, budgets, 1)
	}
}

func TestReportEnvLogsMissingFile(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Format: "json", Output: &buf})

	reportEnv(logger, nil)
	assert.Empty(t, buf.String())

	err := godotenv.Load(filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err)
	reportEnv(logger, err)
	assert.Contains(t, buf.String(), "no .env file found")
}
