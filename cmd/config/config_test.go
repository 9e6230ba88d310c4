package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-sidebar/pkg/sidebar"
	"github.com/mattsolo1/grove-sidebar/pkg/watch"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sidebar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOptionsDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	require.NoError(t, InitConfig())

	opts, err := LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, sidebar.DefaultOptions(), opts)
	assert.Equal(t, watch.DefaultDebounce, WatchDebounce())
}

func TestLoadOptionsFromFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	cfgFile := writeConfig(t, `max_depth: 4
header: "[Home](./README.md)\n\n"
stop_words: [of, the]
full_index: true
watch:
  debounce: 2s
`)
	viper.Set("config", cfgFile)
	require.NoError(t, InitConfig())

	opts, err := LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, 4, opts.MaxDepth)
	assert.Equal(t, "[Home](./README.md)\n\n", opts.Header)
	assert.Equal(t, []string{"of", "the"}, opts.StopWords)
	assert.True(t, opts.FullIndex)
	assert.Equal(t, sidebar.DefaultSidebarFile, opts.SidebarFile)
	assert.Equal(t, 2*time.Second, WatchDebounce())
	assert.Equal(t, cfgFile, viper.ConfigFileUsed())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	viper.Set("config", writeConfig(t, "max_depth: 4\n"))
	t.Setenv("SIDEBAR_MAX_DEPTH", "3")
	require.NoError(t, InitConfig())

	opts, err := LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, 3, opts.MaxDepth)
}

func TestConfigFileFromEnvironment(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("SIDEBAR_CONFIG", writeConfig(t, "max_depth: 7\n"))
	require.NoError(t, InitConfig())

	opts, err := LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, 7, opts.MaxDepth)
}

func TestDotEnvFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SIDEBAR_MAX_DEPTH=6\n"), 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	// Setenv restores the original value after the test.
	t.Setenv("SIDEBAR_MAX_DEPTH", "")
	require.NoError(t, os.Unsetenv("SIDEBAR_MAX_DEPTH"))

	require.NoError(t, InitConfig())
	opts, err := LoadOptions()
	require.NoError(t, err)
	assert.Equal(t, 6, opts.MaxDepth)
}

func TestMissingNamedConfigFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	viper.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))

	err := InitConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadOptionsRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"zero depth", "max_depth: 0\n"},
		{"empty extension", "extension: \"\"\n"},
		{"visible marker", "index_marker: idx_\n"},
		{"nested sidebar", "sidebar_file: docs/_sidebar.md\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)
			viper.Set("config", writeConfig(t, tt.config))
			require.NoError(t, InitConfig())

			_, err := LoadOptions()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestRoot(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	require.NoError(t, InitConfig())

	dir := t.TempDir()
	viper.Set("root", dir)
	root, err := Root()
	require.NoError(t, err)
	assert.Equal(t, dir, root)

	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	viper.Set("root", file)
	_, err = Root()
	assert.ErrorContains(t, err, "is not a directory")

	viper.Set("root", filepath.Join(dir, "missing"))
	_, err = Root()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	require.NoError(t, InitConfig())
	dir := t.TempDir()
	viper.Set("root", dir)

	effective, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, dir, effective.Root)
	assert.Equal(t, "warn", effective.LogLevel)
	assert.Equal(t, "500ms", effective.Watch.Debounce)
	assert.Equal(t, sidebar.DefaultMaxDepth, effective.MaxDepth)
}

func TestNewLogger(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	require.NoError(t, InitConfig())

	logger, err := NewLogger(os.Stderr)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	viper.Set("log_level", "debug")
	logger, err = NewLogger(os.Stderr)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	viper.Set("log_level", "loud")
	_, err = NewLogger(os.Stderr)
	assert.Error(t, err)
}
