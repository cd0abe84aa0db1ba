package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  port: 5433
  user: rhub
  password: secret
  db_name: molecules
redis:
  addr: cache.internal:6379
  default_ttl: 5m
log:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "molecules", cfg.Database.DBName)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.DefaultTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	// Unset fields picked up defaults.
	assert.Equal(t, DefaultDBMaxConns, cfg.Database.MaxConns)
	assert.Equal(t, DefaultRedisKeyPrefix, cfg.Redis.KeyPrefix)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db
  user: rhub
  db_name: molecules
log:
  level: verbose
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RHUB_DATABASE_HOST", "envhost")
	t.Setenv("RHUB_DATABASE_USER", "envuser")
	t.Setenv("RHUB_REDIS_ADDR", "envcache:6379")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "envhost", cfg.Database.Host)
	assert.Equal(t, "envuser", cfg.Database.User)
	assert.Equal(t, "envcache:6379", cfg.Redis.Addr)
	assert.Equal(t, DefaultDBPort, cfg.Database.Port)
}

func TestApplyDefaults_NilSafe(t *testing.T) {
	ApplyDefaults(nil)
}

func TestValidate_MetricsRequiresAddr(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Database.User = "rhub"
	require.NoError(t, cfg.Validate())

	cfg.Metrics.Enabled = true
	cfg.Metrics.Addr = ""
	assert.Error(t, cfg.Validate())
}
