package common

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPlacesBaseURL is the Google Places (legacy REST) API root. Endpoints are appended as
// "<endpoint>/json".
const DefaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place/"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Auth      AuthConfig      `toml:"auth"`
	PlacesAPI PlacesAPIConfig `toml:"places_api"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host"`
}

// AuthConfig holds the single static bearer secret that gates the tool surface
type AuthConfig struct {
	Token string `toml:"token" validate:"required"` // Shared secret presented as "Authorization: Bearer <token>"
}

// PlacesAPIConfig contains Google Places API configuration
type PlacesAPIConfig struct {
	APIKey         string `toml:"api_key" validate:"required"`         // Google Places API key
	BaseURL        string `toml:"base_url" validate:"required,url"`    // API root, overridable for testing
	RequestTimeout string `toml:"request_timeout" validate:"required"` // Per-request timeout as duration string (default: "20s")
	SearchRadius   int    `toml:"search_radius" validate:"gt=0"`       // Location bias radius in meters
	PhotoMaxWidth  int    `toml:"photo_max_width" validate:"gt=0"`     // maxwidth passed to the photo endpoint
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=trace debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output" validate:"dive,oneof=stdout console file"`    // "stdout", "file"
}

// Timeout returns the parsed per-request timeout, falling back to 20s when unset or invalid
func (c PlacesAPIConfig) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.RequestTimeout); err == nil && d > 0 {
		return d
	}
	return 20 * time.Second
}

// NewDefaultConfig creates a configuration with default values.
// Secrets have no default: they must come from a config file or the environment.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8088,
			Host: "0.0.0.0",
		},
		PlacesAPI: PlacesAPIConfig{
			BaseURL:        DefaultPlacesBaseURL,
			RequestTimeout: "20s",
			SearchRadius:   5000,
			PhotoMaxWidth:  400,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> env.
// Later files override earlier files. CLI flags are applied afterwards by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// LOCALGUIDE_* names win over the bare AUTH_TOKEN / GOOGLE_MAPS_API_KEY names.
func applyEnvOverrides(config *Config) {
	if token := os.Getenv("AUTH_TOKEN"); token != "" {
		config.Auth.Token = token
	}
	if token := os.Getenv("LOCALGUIDE_AUTH_TOKEN"); token != "" {
		config.Auth.Token = token
	}

	if apiKey := os.Getenv("GOOGLE_MAPS_API_KEY"); apiKey != "" {
		config.PlacesAPI.APIKey = apiKey
	}
	if apiKey := os.Getenv("LOCALGUIDE_PLACES_API_KEY"); apiKey != "" {
		config.PlacesAPI.APIKey = apiKey
	}
	if baseURL := os.Getenv("LOCALGUIDE_PLACES_BASE_URL"); baseURL != "" {
		config.PlacesAPI.BaseURL = baseURL
	}

	if port := os.Getenv("LOCALGUIDE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("LOCALGUIDE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("LOCALGUIDE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("LOCALGUIDE_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// envHints names the environment variable to set for each required key
var envHints = map[string]string{
	"auth.token":         "AUTH_TOKEN",
	"places_api.api_key": "GOOGLE_MAPS_API_KEY",
}

// Validate checks the resolved configuration. Startup must abort on error.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		problems := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			key := strings.TrimPrefix(fe.Namespace(), "Config.")
			problem := fmt.Sprintf("%s failed '%s'", key, fe.Tag())
			if fe.Tag() == "required" {
				problem = key + " is required"
				if env, ok := envHints[key]; ok {
					problem += fmt.Sprintf(" (set %s)", env)
				}
			}
			problems = append(problems, problem)
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	if d, err := time.ParseDuration(c.PlacesAPI.RequestTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid configuration: places_api.request_timeout %q is not a positive duration", c.PlacesAPI.RequestTimeout)
	}

	return nil
}
