package common

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the sanitized startup configuration
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.Print("Local Guide", GetVersion())

	logger.Info().
		Str("version", GetFullVersion()).
		Str("address", fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)).
		Str("places_base_url", config.PlacesAPI.BaseURL).
		Str("request_timeout", config.PlacesAPI.Timeout().String()).
		Int("search_radius", config.PlacesAPI.SearchRadius).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded (secrets redacted)")
}
