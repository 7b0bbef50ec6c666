package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GauBen/typed-board/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"), nil)
	require.Error(t, err, "an explicit missing file is an error")

	cfg, err = config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "schema.graphql", cfg.Schema.Artifact)
	assert.Equal(t, []string{"board/queries.graphql"}, cfg.Generate.Queries)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typedboard.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9999"
db:
  driver: postgres
  dsn: postgres://localhost/board
`), 0o644))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/board", cfg.DB.DSN)
	// Untouched keys keep their defaults.
	assert.Equal(t, "schema.graphql", cfg.Schema.Artifact)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typedboard.yml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  driver: postgres\n"), 0o644))

	t.Setenv("TYPEDBOARD_DB__DRIVER", "mysql")
	t.Setenv("TYPEDBOARD_LOG__LEVEL", "debug")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFlagsWinOverEverything(t *testing.T) {
	t.Setenv("TYPEDBOARD_HTTP__ADDR", ":7777")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("http.addr", ":8080", "listen address")
	require.NoError(t, flags.Parse([]string{"--http.addr", ":6666"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":6666", cfg.HTTP.Addr)
}

func TestUnsetFlagDoesNotOverride(t *testing.T) {
	t.Setenv("TYPEDBOARD_HTTP__ADDR", ":7777")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("http.addr", ":8080", "listen address")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.HTTP.Addr)
}
