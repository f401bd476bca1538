package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: arena-test
  debug: true
  log:
    pretty: false
    level: debug

http:
  port: 8080
  timeouts:
    readTimeout: 5s
    readHeaderTimeout: 2s
    writeTimeout: 10s
    idleTimeout: 60s

postgres:
  host: localhost
  port: 5432
  user: arena
  password: arena
  dbName: arena_test
  sslMode: disable
  maxOpenConns: 10
  maxIdleConns: 5
  connMaxLifetime: 30m
  migrate: true

token:
  secret: yaml-secret

auth:
  bcryptCost: 10
`

func writeTestConfig(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(testConfigYAML), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv_FromYAML(t *testing.T) {
	writeTestConfig(t)

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "arena-test", cfg.Env.ServiceName)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, "arena_test", cfg.Postgres.DBName)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.ConnMaxLifetime)
	assert.True(t, cfg.Postgres.Migrate)
	assert.Equal(t, "yaml-secret", cfg.Token.Secret)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	writeTestConfig(t)

	t.Setenv("TOKEN_SECRET", "env-secret")
	t.Setenv("POSTGRES_DBNAME", "arena_override")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Token.Secret)
	assert.Equal(t, "arena_override", cfg.Postgres.DBName)

	// Untouched siblings keep their YAML values.
	assert.Equal(t, "arena", cfg.Postgres.User)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}

func TestLoadWithEnv_CamelCaseEnvKeysLandOnYAMLKeys(t *testing.T) {
	writeTestConfig(t)

	// These paths exist in the YAML under camelCase keys; the env override must
	// replace them rather than introduce a lowercase sibling key, so the result
	// cannot depend on map iteration order.
	t.Setenv("POSTGRES_CONNMAXLIFETIME", "45m")
	t.Setenv("POSTGRES_SSLMODE", "require")

	for range 20 {
		cfg, err := LoadWithEnv[Config]("test")
		require.NoError(t, err)

		assert.Equal(t, 45*time.Minute, cfg.Postgres.ConnMaxLifetime)
		assert.Equal(t, "require", cfg.Postgres.SSLMode)
	}
}

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"dbName":  "arena",
			"sslMode": "disable",
		},
		"token": map[string]any{"secret": ""},
	}

	assert.Equal(t, "postgres.dbName", canonicalizeEnvKey("POSTGRES_DBNAME", existing))
	assert.Equal(t, "postgres.sslMode", canonicalizeEnvKey("POSTGRES_SSLMODE", existing))
	assert.Equal(t, "token.secret", canonicalizeEnvKey("TOKEN_SECRET", existing))
	// Unknown segments pass through lowercased.
	assert.Equal(t, "postgres.unknown", canonicalizeEnvKey("POSTGRES_UNKNOWN", existing))
	assert.Equal(t, "path", canonicalizeEnvKey("PATH", existing))
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadWithEnv[Config]("does-not-exist")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "not found")
}
