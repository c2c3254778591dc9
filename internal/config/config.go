// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/listenupapp/colorhash/internal/color"
	"github.com/listenupapp/colorhash/internal/validation"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	RateLimit RateLimitConfig
	Palette   PaletteConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        `json:"port" validate:"required,numeric"`
	ReadTimeout  time.Duration `json:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `json:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `json:"idle_timeout" validate:"gt=0"`
	CORSOrigins  []string      `json:"cors_origins" validate:"required,min=1"`
}

// RateLimitConfig holds per-client request limits for the HTTP API.
type RateLimitConfig struct {
	RPS   float64 `json:"rps" validate:"gt=0"`
	Burst int     `json:"burst" validate:"gte=1"`
}

// PaletteConfig holds the color ranges the deriver draws from.
type PaletteConfig struct {
	Saturation color.Range      `json:"saturation"`
	Lightness  color.Range      `json:"lightness"`
	HueRanges  []color.HueRange `json:"hue_ranges"`
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("colorhash", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	// Server flags
	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated allowed CORS origins (default: *)")

	// Rate limit flags
	rateLimitRPS := fs.String("rate-limit-rps", "", "Requests per second per client (default: 20)")
	rateLimitBurst := fs.String("rate-limit-burst", "", "Request burst per client (default: 40)")

	// Palette flags
	saturation := fs.String("saturation", "", "Saturation range min-max (default: 0.35-0.65)")
	lightness := fs.String("lightness", "", "Lightness range min-max (default: 0.35-0.65)")
	hueRanges := fs.String("hue-ranges", "", "Comma separated hue ranges in degrees, e.g. 30-90,180-210")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		RateLimit: RateLimitConfig{
			Burst: getIntConfigValue(*rateLimitBurst, "RATE_LIMIT_BURST", 40),
		},
	}

	rps, err := strconv.ParseFloat(getConfigValue(*rateLimitRPS, "RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit rps: %w", err)
	}
	cfg.RateLimit.RPS = rps

	// Parse server timeouts.
	timeouts := []struct {
		flagValue, envKey, defaultValue string
		dst                             *time.Duration
	}{
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
	}
	for _, t := range timeouts {
		raw := getConfigValue(t.flagValue, t.envKey, t.defaultValue)
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", strings.ToLower(t.envKey), raw, err)
		}
		*t.dst = d
	}

	// Parse palette ranges.
	satStr := getConfigValue(*saturation, "COLOR_SATURATION", "")
	if cfg.Palette.Saturation, err = parseRange(satStr, color.DefaultSaturation); err != nil {
		return nil, fmt.Errorf("invalid saturation range %q: %w", satStr, err)
	}
	lightStr := getConfigValue(*lightness, "COLOR_LIGHTNESS", "")
	if cfg.Palette.Lightness, err = parseRange(lightStr, color.DefaultLightness); err != nil {
		return nil, fmt.Errorf("invalid lightness range %q: %w", lightStr, err)
	}
	hueStr := getConfigValue(*hueRanges, "COLOR_HUE_RANGES", "")
	if cfg.Palette.HueRanges, err = ParseHueRanges(hueStr); err != nil {
		return nil, fmt.Errorf("invalid hue ranges %q: %w", hueStr, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	// Palette errors come from the deriver so they carry INVALID_RANGE.
	if _, err := c.Deriver(); err != nil {
		return err
	}

	v := validation.New()
	for _, section := range []any{c.Server, c.RateLimit} {
		if err := v.Validate(section); err != nil {
			return err
		}
	}

	return nil
}

// Deriver builds the color deriver described by the palette configuration.
func (c *Config) Deriver() (*color.Deriver, error) {
	d, err := color.WithRanges(c.Palette.Saturation, c.Palette.Lightness)
	if err != nil {
		return nil, err
	}
	return d.WithHueRanges(c.Palette.HueRanges...)
}

// ParseRange parses "min-max" or a single value into a fraction range.
func ParseRange(s string) (color.Range, error) {
	lo, hi, err := parseBounds(s)
	if err != nil {
		return color.Range{}, err
	}
	return color.Range{Min: lo, Max: hi}, nil
}

// ParseHueRanges parses a comma separated list of "min-max" hue ranges.
// An empty string yields no ranges.
func ParseHueRanges(s string) ([]color.HueRange, error) {
	var ranges []color.HueRange
	for _, part := range splitList(s) {
		lo, hi, err := parseBounds(part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, color.HueRange{Min: lo, Max: hi})
	}
	return ranges, nil
}

func parseRange(s string, defaultRange color.Range) (color.Range, error) {
	if s == "" {
		return defaultRange, nil
	}
	return ParseRange(s)
}

func parseBounds(s string) (lo, hi float64, err error) {
	minStr, maxStr, found := cutBounds(strings.TrimSpace(s))
	if lo, err = strconv.ParseFloat(strings.TrimSpace(minStr), 64); err != nil {
		return 0, 0, fmt.Errorf("bad lower bound: %w", err)
	}
	if !found {
		return lo, lo, nil
	}
	if hi, err = strconv.ParseFloat(strings.TrimSpace(maxStr), 64); err != nil {
		return 0, 0, fmt.Errorf("bad upper bound: %w", err)
	}
	return lo, hi, nil
}

// cutBounds splits "min-max" at the last dash that is not an exponent sign,
// so values such as 1e-3 parse as one bound.
func cutBounds(s string) (before, after string, found bool) {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] != '-' {
			continue
		}
		if prev := s[i-1]; prev == 'e' || prev == 'E' {
			continue
		}
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real environment variables win over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
