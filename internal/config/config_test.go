package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, DataFileName), cfg.DataFile)
	assert.Equal(t, filepath.Join(home, "xdg", "tdr", "tdr.log"), cfg.LogFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 500*time.Millisecond, cfg.RefreshInterval)
	assert.Equal(t, 3, cfg.ItemHeight)
	assert.Equal(t, 1, cfg.WorkspaceHeight)
	assert.False(t, cfg.Autosave)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 4*time.Second, cfg.StatusTimeout)
}

func TestLoadConfigFileAndOverrides(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, "xdg", "tdr")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
data_file: ~/lists/todo.yml
refresh_interval: 2s
item_height: 4
autosave: true
theme:
  finished: "#00ff00"
`), 0o644))

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "lists", "todo.yml"), cfg.DataFile)
	assert.Equal(t, 2*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 4, cfg.ItemHeight)
	assert.True(t, cfg.Autosave)
	assert.Equal(t, "#00ff00", cfg.Theme["finished"])

	cfg, err = Load(Options{DataFile: "/tmp/other.yml"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.yml", cfg.DataFile)
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("TDR_LOG_LEVEL", "debug")
	t.Setenv("TDR_WATCH", "false")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Watch)
}

func TestLoadExplicitConfigMustExist(t *testing.T) {
	home := isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(home, "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadRejectsInvalidHeights(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("item_height: 0\n"), 0o644))

	_, err := Load(Options{ConfigFile: path})
	assert.ErrorContains(t, err, "row heights")
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h", expandHome("~", "/h"))
	assert.Equal(t, "/h/a/b", expandHome("~/a/b", "/h"))
	assert.Equal(t, "/abs", expandHome("/abs", "/h"))
	assert.Equal(t, "~user/x", expandHome("~user/x", "/h"))
}
