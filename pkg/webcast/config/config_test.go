package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landoop/livefeed/pkg/webcast/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, "https://tiktok.eulerstream.com", cfg.SignAPIBase)
	assert.Equal(t, 5*time.Second, cfg.HeartbeatEvery)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("sign_api_base: https://example.test\ndebug: true\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test", cfg.SignAPIBase)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "useast1a", cfg.TTTargetIDC)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvFile_MissingIsNotAnError(t *testing.T) {
	err := config.LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestEnvOverride(t *testing.T) {
	os.Setenv("LIVEFEED_SESSION_ID", "sess-123")
	defer os.Unsetenv("LIVEFEED_SESSION_ID")

	cfg := config.EnvOverride(config.Defaults())
	assert.Equal(t, "sess-123", cfg.SessionID)
}
