package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "financ.yaml")
	content := `
ledger:
  database_path: /data/ledger.gnucash
correlator:
  max_date_offset: 7
  load_limit: 500
api:
  port: 9090
observability:
  logging:
    level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/ledger.gnucash", cfg.Ledger.DatabasePath)
	assert.Equal(t, 7, cfg.Correlator.MaxDateOffset)
	assert.Equal(t, int64(500), cfg.Correlator.LoadLimit)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("FINANC_TEST_DB", "/tmp/expanded.db")
	path := filepath.Join(t.TempDir(), "financ.yaml")
	content := "ledger:\n  database_path: ${FINANC_TEST_DB}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/expanded.db", cfg.Ledger.DatabasePath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "env.db")
	t.Setenv("FINANC_MAX_DATE_OFFSET", "5")

	cfg := LoadFromEnv()
	assert.Equal(t, "env.db", cfg.Ledger.DatabasePath)
	assert.Equal(t, 5, cfg.Correlator.MaxDateOffset)
}

func TestDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "financ.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  database_path: x.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Correlator.MaxDateOffset)
	assert.Equal(t, int64(10000), cfg.Correlator.LoadLimit)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoadOrEnv_FallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "fallback.db")
	cfg := LoadOrEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, "fallback.db", cfg.Ledger.DatabasePath)
}
