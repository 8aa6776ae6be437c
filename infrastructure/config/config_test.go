package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.True(t, cfg.EnableCORS)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://kg:kg@localhost:5432/kg")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BREAKER_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Breaker.Timeout)
	assert.True(t, cfg.Database.AutoMigrate, "untouched fields keep their defaults")
}

func TestLoadConfig_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_address: ":9090"
store_driver: postgres
database:
  url: postgres://file/kg
  auto_migrate: false
breaker:
  interval: 1m
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ServerAddress, "environment wins over file")
	assert.Equal(t, "postgres://file/kg", cfg.Database.URL)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, time.Minute, cfg.Breaker.Interval)
	assert.Equal(t, 60*time.Second, cfg.Breaker.Timeout)
}

func TestLoadConfig_UnknownFileKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dynamodb_table: nodes\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.StoreDriver = StoreDriverPostgres
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL is required")

	cfg = Default()
	cfg.StoreDriver = "dynamodb"
	cfg.LogLevel = "verbose"
	err := cfg.Validate()
	assert.ErrorContains(t, err, `unknown STORE_DRIVER "dynamodb"`)
	assert.ErrorContains(t, err, `unknown LOG_LEVEL "verbose"`)
}
