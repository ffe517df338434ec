package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func readConfig(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestSetValue_UpdatesExistingKeyAndKeepsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SetValue(path, "search.ignore_case", "true"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# txtreader configuration")
	require.Contains(t, string(data), "toggle at runtime with alt+c")
	require.True(t, readConfig(t, path).Search.IgnoreCase)
	require.Equal(t, 4, readConfig(t, path).UI.TabWidth, "other settings untouched")
}

func TestSetValue_ReplacesThemeColour(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SetValue(path, "theme.highlight", "#FFD166"))

	require.Equal(t, "#FFD166", readConfig(t, path).Theme.Highlight)
}

func TestSetValue_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SetValue(path, "watch.debounce", "1s"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "watch:\n  debounce: 1s\n", string(data))
}

func TestSetValue_RejectsBadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := SetValue(path, "ui..tab_width", "2")

	require.Error(t, err)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestSetValue_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, SetValue(path, "ui.tab_width", "2"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasPrefix(e.Name(), ".txtreader.yaml.tmp"), e.Name())
	}
}
