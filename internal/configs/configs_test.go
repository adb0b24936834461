package configs

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENVIRONMENT", "PORT", "DEBUG", "API_END_POINT", "VITE_API_END_POINT", "OAUTH_URL",
		"VITE_OAUTH_URL", "WIREGUARD_LINK", "VITE_WIREGUARD_LINK", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("STORAGE_PATH", t.TempDir()+"/storage.db")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, DefaultAPIEndpoint, cfg.APIEndpoint)
	assert.Equal(t, DefaultWireGuardLink, cfg.WireGuardLink)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "4000")
	t.Setenv("API_END_POINT", "https://vpn.example.com/api/")
	t.Setenv("OAUTH_URL", "https://discord.com/oauth2/authorize?client_id=1")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "https://vpn.example.com/api", cfg.APIEndpoint)
	assert.Equal(t, "https://discord.com/oauth2/authorize?client_id=1", cfg.OAuthURL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigViteAliases(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_API_END_POINT", "http://vpn.lan")
	t.Setenv("VITE_WIREGUARD_LINK", "https://example.com/install")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "http://vpn.lan", cfg.APIEndpoint)
	assert.Equal(t, "https://example.com/install", cfg.WireGuardLink)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_END_POINT", "http://from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api", "", "")
	flags.Int("port", 3000, "")
	require.NoError(t, flags.Parse([]string{"--api", "http://from-flag", "--port", "5000"}))

	cfg, err := LoadConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag", cfg.APIEndpoint)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadConfigValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "80")
	_, err := LoadConfig(nil)
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	_, err = LoadConfig(nil)
	assert.ErrorContains(t, err, "API_END_POINT")
}
