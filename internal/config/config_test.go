package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/colorhash/internal/color"
	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			CORSOrigins:  []string{"*"},
		},
		RateLimit: RateLimitConfig{RPS: 20, Burst: 40},
		Palette: PaletteConfig{
			Saturation: color.DefaultSaturation,
			Lightness:  color.DefaultLightness,
		},
	}
}

// noEnvFile points LoadConfig at a file that does not exist.
func noEnvFile(t *testing.T) string {
	return "-env-file=" + filepath.Join(t.TempDir(), "missing.env")
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_InvertedPaletteRange(t *testing.T) {
	cfg := validConfig()
	cfg.Palette.Saturation = color.Range{Min: 0.6, Max: 0.3}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRange)
	assert.Contains(t, err.Error(), "saturation")
}

func TestValidate_LightnessOutOfBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Palette.Lightness = color.Range{Min: 0.5, Max: 1.5}

	assert.ErrorIs(t, cfg.Validate(), domainerrors.ErrInvalidRange)
}

func TestValidate_InvalidHueRange(t *testing.T) {
	cfg := validConfig()
	cfg.Palette.HueRanges = []color.HueRange{{Min: 0, Max: 90}, {Min: 200, Max: 400}}

	assert.ErrorIs(t, cfg.Validate(), domainerrors.ErrInvalidRange)
}

func TestValidate_ServerAndRateLimit(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non numeric port", func(c *Config) { c.Server.Port = "http" }},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }},
		{"no cors origins", func(c *Config) { c.Server.CORSOrigins = nil }},
		{"zero rps", func(c *Config) { c.RateLimit.RPS = 0 }},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), domainerrors.ErrValidation)
		})
	}
}

func TestDeriver_UsesPalette(t *testing.T) {
	cfg := validConfig()
	cfg.Palette.Saturation = color.Range{Min: 0.5, Max: 0.5}
	cfg.Palette.HueRanges = []color.HueRange{{Min: 10, Max: 10}}

	d, err := cfg.Deriver()
	require.NoError(t, err)

	c := d.HashString("hello")
	assert.Equal(t, 10.0, c.H)
	assert.Equal(t, 0.5, c.S)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig([]string{noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 20.0, cfg.RateLimit.RPS)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, color.DefaultSaturation, cfg.Palette.Saturation)
	assert.Equal(t, color.DefaultLightness, cfg.Palette.Lightness)
	assert.Empty(t, cfg.Palette.HueRanges)
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COLOR_SATURATION", "0.1-0.2")

	cfg, err := LoadConfig([]string{noEnvFile(t), "-port", "9100", "-lightness", "0.5"})
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port, "flag beats env")
	assert.Equal(t, "debug", cfg.Logger.Level, "env beats default")
	assert.Equal(t, color.Range{Min: 0.1, Max: 0.2}, cfg.Palette.Saturation)
	assert.Equal(t, color.Range{Min: 0.5, Max: 0.5}, cfg.Palette.Lightness)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# palette\nCOLOR_HUE_RANGES=\"30-90, 180-210\"\nRATE_LIMIT_BURST=5\n\nCORS_ORIGINS=https://a.example,https://b.example\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// Setenv registers cleanup so values loaded from the file do not leak.
	t.Setenv("COLOR_HUE_RANGES", "")
	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig([]string{"-env-file", path})
	require.NoError(t, err)

	assert.Equal(t, []color.HueRange{{Min: 30, Max: 90}, {Min: 180, Max: 210}}, cfg.Palette.HueRanges)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad duration", []string{"-read-timeout", "soon"}},
		{"bad range", []string{"-saturation", "low-high"}},
		{"inverted range", []string{"-saturation", "0.6-0.3"}},
		{"bad hue", []string{"-hue-ranges", "30-90,x"}},
		{"bad rps", []string{"-rate-limit-rps", "fast"}},
		{"bad env", []string{"-env", "qa"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(append([]string{noEnvFile(t)}, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Range
		wantErr bool
	}{
		{"0.35-0.65", color.Range{Min: 0.35, Max: 0.65}, false},
		{" 0 - 1 ", color.Range{Min: 0, Max: 1}, false},
		{"0.5", color.Range{Min: 0.5, Max: 0.5}, false},
		{"", color.Range{}, true},
		{"a-b", color.Range{}, true},
		{"0.1-", color.Range{}, true},
		{"1e-3-0.5", color.Range{Min: 0.001, Max: 0.5}, false},
		{"1E-2-5e-1", color.Range{Min: 0.01, Max: 0.5}, false},
		{"1e-3", color.Range{Min: 0.001, Max: 0.001}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRange(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHueRanges(t *testing.T) {
	got, err := ParseHueRanges("30-90, 180-210,270-285")
	require.NoError(t, err)
	assert.Equal(t, []color.HueRange{{Min: 30, Max: 90}, {Min: 180, Max: 210}, {Min: 270, Max: 285}}, got)

	got, err = ParseHueRanges("1.5e1-3e1")
	require.NoError(t, err)
	assert.Equal(t, []color.HueRange{{Min: 15, Max: 30}}, got)

	got, err = ParseHueRanges("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
