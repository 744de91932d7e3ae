package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATA_BACKEND", "DATABASE_URL", "SQLITE_DB_PATH", "JWT_SECRET",
		"JWT_ISSUER", "JWT_TTL_MINUTES", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, env[key])
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL": "postgres://localhost/wealthwise",
		"JWT_SECRET":   "secret",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.DataBackend)
	assert.Equal(t, "wealthwise", cfg.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
}

func TestLoadSQLiteBackend(t *testing.T) {
	setEnv(t, map[string]string{
		"DATA_BACKEND":         "SQLite",
		"SQLITE_DB_PATH":       "/tmp/ww.db",
		"JWT_SECRET":           "secret",
		"JWT_TTL_MINUTES":      "30",
		"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test ,",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.DataBackend)
	assert.Equal(t, "/tmp/ww.db", cfg.SQLiteDBPath)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadInvalidTTLFallsBack(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL":    "postgres://localhost/wealthwise",
		"JWT_SECRET":      "secret",
		"JWT_TTL_MINUTES": "-5",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "postgres without url",
			env:     map[string]string{"JWT_SECRET": "secret"},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "missing secret",
			env:     map[string]string{"DATABASE_URL": "postgres://localhost/db"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"DATA_BACKEND": "mongo", "JWT_SECRET": "secret"},
			wantErr: `invalid data backend "mongo": must be one of [postgres sqlite]`,
		},
		{
			name:    "bad port",
			env:     map[string]string{"PORT": "70000", "DATABASE_URL": "postgres://localhost/db", "JWT_SECRET": "secret"},
			wantErr: `invalid port "70000": must be between 1 and 65535`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
