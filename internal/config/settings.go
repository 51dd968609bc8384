package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/spf13/viper"
)

// Default values for settings not present in the config file or environment.
const (
	DefaultBaseURL           = "http://localhost:8000/api/v1"
	DefaultTimeout           = 60 * time.Second
	DefaultRequestsPerSecond = 10.0
	DefaultOutputFormat      = "table"
)

// Settings is the typed view of the client configuration.
type Settings struct {
	API     APISettings
	Logging LoggingSettings
	Output  string
	Upload  UploadSettings
}

// APISettings configures the closet service client.
type APISettings struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	RetryAttempts     int
	Breaker           BreakerSettings
}

// BreakerSettings configures the optional circuit breaker around the service.
type BreakerSettings struct {
	OpenTimeout  time.Duration
	FailureRatio float64
	MinRequests  uint32
	Enabled      bool
}

// LoggingSettings configures slog output.
type LoggingSettings struct {
	Level  string
	Format string
	File   string
}

// UploadSettings configures the upload workflow.
type UploadSettings struct {
	AutoClassify bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.requests_per_second", DefaultRequestsPerSecond)
	v.SetDefault("api.retry.max_attempts", 3)
	v.SetDefault("api.breaker.enabled", false)
	v.SetDefault("api.breaker.failure_ratio", 0.6)
	v.SetDefault("api.breaker.min_requests", 5)
	v.SetDefault("api.breaker.open_timeout", 30*time.Second)
	v.SetDefault("upload.auto_classify", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", DefaultOutputFormat)
}

// Load reads settings from v and validates them.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		API: APISettings{
			BaseURL:           strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout:           v.GetDuration("api.timeout"),
			RequestsPerSecond: v.GetFloat64("api.requests_per_second"),
			RetryAttempts:     v.GetInt("api.retry.max_attempts"),
			Breaker: BreakerSettings{
				Enabled:      v.GetBool("api.breaker.enabled"),
				FailureRatio: v.GetFloat64("api.breaker.failure_ratio"),
				MinRequests:  v.GetUint32("api.breaker.min_requests"),
				OpenTimeout:  v.GetDuration("api.breaker.open_timeout"),
			},
		},
		Logging: LoggingSettings{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
		Upload: UploadSettings{
			AutoClassify: v.GetBool("upload.auto_classify"),
		},
		Output: v.GetString("output.format"),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings for values the client cannot work with.
func (s Settings) Validate() error {
	if s.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an http(s) URL", common.ErrInvalidConfig, s.API.BaseURL)
	}
	if s.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if s.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: api.requests_per_second must not be negative", common.ErrInvalidConfig)
	}
	if s.API.Breaker.Enabled && (s.API.Breaker.FailureRatio <= 0 || s.API.Breaker.FailureRatio > 1) {
		return fmt.Errorf("%w: api.breaker.failure_ratio must be in (0, 1]", common.ErrInvalidConfig)
	}
	switch s.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("%w: output.format %q (use table, json or yaml)", common.ErrInvalidConfig, s.Output)
	}
	return nil
}
