package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	stateDir   = ".jirani"

	apiBaseURLKey       = "api.base_url"
	locationProviderKey = "location.provider"
	locationURLKey      = "location.url"

	ProviderIP    = "ip"
	ProviderFixed = "fixed"
	ProviderNone  = "none"

	DefaultLocationURL = "https://ipapi.co/json/"
)

type Config struct {
	// APIBaseURL is the configured default, consulted when no local
	// override has been saved.
	APIBaseURL string `env:"JIRANI_API_BASE_URL"`
	Home       string `env:"JIRANI_HOME"`
	Origin     string `env:"JIRANI_ORIGIN, default=http://localhost"`
	LogLevel   string `env:"JIRANI_LOG_LEVEL, default=warn"`
	LogPretty  bool   `env:"JIRANI_LOG_PRETTY, default=false"`

	Location LocationConfig
}

type LocationConfig struct {
	Provider string  `env:"JIRANI_LOCATION_PROVIDER"`
	URL      string  `env:"JIRANI_LOCATION_URL"`
	FixedLat float64 `env:"JIRANI_FIXED_LAT, default=-1.286389"`
	FixedLng float64 `env:"JIRANI_FIXED_LNG, default=36.817223"`
}

// Load reads the environment through lookuper (the process environment when
// nil), then fills the gaps from config.toml in the state directory.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if strings.TrimSpace(cfg.Home) == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.Home = filepath.Join(homeDir, stateDir)
	}

	absHome, err := filepath.Abs(cfg.Home)
	if err != nil {
		return nil, fmt.Errorf("resolve state directory: %w", err)
	}
	cfg.Home = filepath.Clean(absHome)

	if err := cfg.mergeFile(viper.New()); err != nil {
		return nil, err
	}

	cfg.Location.Provider = strings.ToLower(strings.TrimSpace(cfg.Location.Provider))
	if cfg.Location.Provider == "" {
		cfg.Location.Provider = ProviderIP
	}
	if cfg.Location.URL == "" {
		cfg.Location.URL = DefaultLocationURL
	}

	switch cfg.Location.Provider {
	case ProviderIP, ProviderFixed, ProviderNone:
	default:
		return nil, fmt.Errorf("unsupported location provider %q (want ip, fixed or none)", cfg.Location.Provider)
	}

	return &cfg, nil
}

func (c *Config) mergeFile(v *viper.Viper) error {
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(c.Home)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if c.APIBaseURL == "" {
		c.APIBaseURL = v.GetString(apiBaseURLKey)
	}
	if c.Location.Provider == "" {
		c.Location.Provider = v.GetString(locationProviderKey)
	}
	if c.Location.URL == "" {
		c.Location.URL = v.GetString(locationURLKey)
	}

	return nil
}

func (c *Config) SessionPath() string {
	return filepath.Join(c.Home, "session.toml")
}

func (c *Config) SettingsPath() string {
	return filepath.Join(c.Home, "settings.toml")
}
