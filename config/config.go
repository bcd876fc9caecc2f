package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/averath/reqops/observe"
)

// Sentinel errors for configuration loading.
var (
	ErrMissingBaseURL = errors.New("config: base URL is required")
	ErrInvalidBaseURL = errors.New("config: base URL is invalid")
)

// Config is the process configuration for the request layer.
type Config struct {
	// BaseURL is the API endpoint address. Required.
	BaseURL string `yaml:"baseURL"`

	// LoginPath is the navigation target after session expiry.
	LoginPath string `yaml:"loginPath"`

	// RequestTimeout bounds each transport call; wire it into the
	// dispatcher with dispatch.WithTimeout.
	RequestTimeout Duration `yaml:"requestTimeout"`

	Cache     CacheConfig     `yaml:"cache"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// CredentialsFile, when set, persists sessions across restarts.
	CredentialsFile string `yaml:"credentialsFile"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	TTL    Duration `yaml:"ttl"`
	MaxTTL Duration `yaml:"maxTTL"`
}

// TelemetryConfig selects exporters for the observe package.
type TelemetryConfig struct {
	ServiceName     string  `yaml:"serviceName"`
	TracingExporter string  `yaml:"tracingExporter"`
	MetricsExporter string  `yaml:"metricsExporter"`
	SamplePct       float64 `yaml:"samplePct"`
}

// Default returns the configuration used when a field is not set.
func Default() Config {
	return Config{
		LoginPath:      "/login",
		RequestTimeout: Duration(30 * time.Second),
		Cache: CacheConfig{
			TTL:    Duration(5 * time.Minute),
			MaxTTL: Duration(time.Hour),
		},
		Telemetry: TelemetryConfig{
			ServiceName: "reqops",
		},
	}
}

// LoadFromPath reads and merges configuration from path. A missing file
// is not an error: defaults plus environment overrides apply. The file
// content goes through strict ${VAR} expansion before parsing.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to env overrides
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			expanded, err := ExpandEnvStrict(string(data))
			if err != nil {
				return Config{}, fmt.Errorf("config: expand %s: %w", path, err)
			}
			var parsed Config
			if err := yaml.Unmarshal([]byte(expanded), &parsed); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
			merge(&cfg, parsed)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for use.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	return nil
}

// ObserveConfig maps the telemetry section onto the observe package's
// configuration. Naming an exporter enables its subsystem.
func (c Config) ObserveConfig() observe.Config {
	return observe.Config{
		ServiceName: c.Telemetry.ServiceName,
		Tracing: observe.TracingConfig{
			Enabled:   c.Telemetry.TracingExporter != "",
			Exporter:  c.Telemetry.TracingExporter,
			SamplePct: c.Telemetry.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Telemetry.MetricsExporter != "",
			Exporter: c.Telemetry.MetricsExporter,
		},
	}
}

func merge(dst *Config, src Config) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.LoginPath != "" {
		dst.LoginPath = src.LoginPath
	}
	if src.RequestTimeout != 0 {
		dst.RequestTimeout = src.RequestTimeout
	}
	if src.Cache.TTL != 0 {
		dst.Cache.TTL = src.Cache.TTL
	}
	if src.Cache.MaxTTL != 0 {
		dst.Cache.MaxTTL = src.Cache.MaxTTL
	}
	if src.Telemetry.ServiceName != "" {
		dst.Telemetry.ServiceName = src.Telemetry.ServiceName
	}
	if src.Telemetry.TracingExporter != "" {
		dst.Telemetry.TracingExporter = src.Telemetry.TracingExporter
	}
	if src.Telemetry.MetricsExporter != "" {
		dst.Telemetry.MetricsExporter = src.Telemetry.MetricsExporter
	}
	if src.Telemetry.SamplePct != 0 {
		dst.Telemetry.SamplePct = src.Telemetry.SamplePct
	}
	if src.CredentialsFile != "" {
		dst.CredentialsFile = src.CredentialsFile
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REQOPS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("REQOPS_LOGIN_PATH"); v != "" {
		cfg.LoginPath = v
	}
	if v := os.Getenv("REQOPS_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = Duration(d)
		}
	}
	if v := os.Getenv("REQOPS_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = Duration(d)
		}
	}
	if v := os.Getenv("REQOPS_TRACING_EXPORTER"); v != "" {
		cfg.Telemetry.TracingExporter = v
	}
	if v := os.Getenv("REQOPS_METRICS_EXPORTER"); v != "" {
		cfg.Telemetry.MetricsExporter = v
	}
	if v := os.Getenv("REQOPS_SAMPLE_PCT"); v != "" {
		if pct, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Telemetry.SamplePct = pct
		}
	}
	if v := os.Getenv("REQOPS_CREDENTIALS_FILE"); v != "" {
		cfg.CredentialsFile = v
	}
}
