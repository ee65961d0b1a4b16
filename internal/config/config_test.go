package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JIRANI_HOME": home,
	}))
	require.NoError(t, err)

	assert.Equal(t, home, cfg.Home)
	assert.Empty(t, cfg.APIBaseURL)
	assert.Equal(t, "http://localhost", cfg.Origin)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ProviderIP, cfg.Location.Provider)
	assert.Equal(t, DefaultLocationURL, cfg.Location.URL)
	assert.InDelta(t, -1.286389, cfg.Location.FixedLat, 1e-9)
	assert.Equal(t, filepath.Join(home, "session.toml"), cfg.SessionPath())
}

func TestLoadFileFillsGapsAndEnvironmentWins(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(`
[api]
base_url = "http://from-file:5000"

[location]
provider = "fixed"
url = "http://geo.local/json"
`), 0o600))

	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JIRANI_HOME":              home,
		"JIRANI_LOCATION_PROVIDER": "none",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://from-file:5000", cfg.APIBaseURL)
	assert.Equal(t, ProviderNone, cfg.Location.Provider)
	assert.Equal(t, "http://geo.local/json", cfg.Location.URL)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JIRANI_HOME":              t.TempDir(),
		"JIRANI_LOCATION_PROVIDER": "satellite",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported location provider")
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte("[api\nbase_url ="), 0o600))

	_, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{"JIRANI_HOME": home}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
