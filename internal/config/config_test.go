package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := &configService{filePath: path}

	cfg := DefaultConfig()
	cfg.SearchURL = "http://example.com:9000"
	cfg.UISettings.DebounceMS = 150
	cfg.Triggers.Button = false

	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:9000", loaded.SearchURL)
	assert.Equal(t, 150, loaded.UISettings.DebounceMS)
	assert.False(t, loaded.Triggers.Button)
	assert.True(t, loaded.Triggers.Input)
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n"), 0644))

	svc := &configService{filePath: path}
	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.UISettings.DebounceMS)
	assert.NotEmpty(t, cfg.SearchURL)
	assert.NotEmpty(t, cfg.StorePath)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	svc := &configService{}
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadFromPathMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0644))

	svc := &configService{}
	_, err := svc.LoadFromPath(path)
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 300, cfg.UISettings.DebounceMS)
	assert.True(t, cfg.UISettings.ShowLoading)
	assert.True(t, cfg.Triggers.Input)
	assert.True(t, cfg.Triggers.Enter)
	assert.True(t, cfg.Triggers.Button)
}
