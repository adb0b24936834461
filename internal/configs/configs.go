/*
Package configs loads the dashboard's settings.

Values come from command-line flags, then environment variables, then defaults. The
environment variable names of the original web build (VITE_API_END_POINT, VITE_OAUTH_URL,
VITE_WIREGUARD_LINK) are accepted as aliases.
*/
package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DefaultAPIEndpoint is used in development when no API base is configured.
	DefaultAPIEndpoint = "http://localhost:8080"

	// DefaultWireGuardLink points at the official client downloads.
	DefaultWireGuardLink = "https://www.wireguard.com/install/"
)

// flag name -> config key
var flagKeys = map[string]string{
	"api":     "api_end_point",
	"storage": "storage_path",
	"port":    "port",
	"debug":   "debug",
}

// AppConfig holds every setting of the dashboard and the CLI.
type AppConfig struct {
	// General Settings
	Environment string
	Debug       bool
	Port        int

	// VPN manager
	APIEndpoint   string
	OAuthURL      string
	WireGuardLink string

	// Security Settings
	AllowedOrigins []string

	// Local Storage
	StoragePath string
}

// IsDevelopment reports whether development logging and defaults apply.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment || c.Debug
}

// Origin is the dashboard's own origin, used to resolve a path-only API base.
func (c *AppConfig) Origin() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

// LoadConfig reads the configuration. flags may be nil; flags named api, storage, port
// and debug override the environment when set.
func LoadConfig(flags *pflag.FlagSet) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("environment", EnvDevelopment)
	v.SetDefault("port", 3000)
	v.SetDefault("wireguard_link", DefaultWireGuardLink)

	v.AutomaticEnv()
	v.BindEnv("api_end_point", "API_END_POINT", "VITE_API_END_POINT")
	v.BindEnv("oauth_url", "OAUTH_URL", "VITE_OAUTH_URL")
	v.BindEnv("wireguard_link", "WIREGUARD_LINK", "VITE_WIREGUARD_LINK")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &AppConfig{
		Environment:   strings.ToLower(v.GetString("environment")),
		Debug:         v.GetBool("debug"),
		Port:          v.GetInt("port"),
		APIEndpoint:   strings.TrimRight(v.GetString("api_end_point"), "/"),
		OAuthURL:      v.GetString("oauth_url"),
		WireGuardLink: v.GetString("wireguard_link"),
		StoragePath:   v.GetString("storage_path"),
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	if cfg.APIEndpoint == "" {
		if cfg.Environment != EnvDevelopment {
			return nil, fmt.Errorf("API_END_POINT environment variable is required in %s environment", cfg.Environment)
		}
		cfg.APIEndpoint = DefaultAPIEndpoint
	}

	for _, origin := range strings.Split(v.GetString("allowed_origins"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{cfg.Origin()}
	}

	if cfg.StoragePath == "" {
		path, err := DefaultStoragePath()
		if err != nil {
			return nil, err
		}
		cfg.StoragePath = path
	}

	return cfg, nil
}

// DefaultStoragePath returns the per-user storage file location.
func DefaultStoragePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the user config directory, set STORAGE_PATH: %w", err)
	}
	return filepath.Join(dir, "wgdash", "storage.db"), nil
}
