package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Data-source modes.
const (
	SourceMock = "mock"
	SourceEHR  = "ehr"
)

// AI providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Data source selection: "mock" serves the built-in dataset, "ehr"
	// proxies the configured upstream EHR.
	DataSource string `mapstructure:"DATA_SOURCE"`

	EHRBaseURL        string `mapstructure:"EHR_API_URL"`
	EHRTimeoutSeconds int    `mapstructure:"EHR_TIMEOUT_SECONDS"`

	// Per-resource path overrides for the upstream EHR. Templates use {id}.
	EndpointPatient      string `mapstructure:"EHR_ENDPOINT_PATIENT"`
	EndpointAntecedentes string `mapstructure:"EHR_ENDPOINT_ANTECEDENTES"`
	EndpointEvoluciones  string `mapstructure:"EHR_ENDPOINT_EVOLUCIONES"`
	EndpointMedication   string `mapstructure:"EHR_ENDPOINT_MEDICATION"`
	EndpointStudies      string `mapstructure:"EHR_ENDPOINT_STUDIES"`
	EndpointLabData      string `mapstructure:"EHR_ENDPOINT_LAB_DATA"`
	EndpointSearch       string `mapstructure:"EHR_ENDPOINT_SEARCH"`
	EndpointLogin        string `mapstructure:"EHR_ENDPOINT_LOGIN"`

	// Widening factors for the lab alert bands. A value outside
	// [min*low, max*high] is critical, outside [min, max] a warning.
	AlertCritLowFactor  float64 `mapstructure:"ALERT_CRIT_LOW_FACTOR"`
	AlertCritHighFactor float64 `mapstructure:"ALERT_CRIT_HIGH_FACTOR"`

	AIProvider      string `mapstructure:"AI_PROVIDER"`
	AIModel         string `mapstructure:"AI_MODEL"`
	AnthropicAPIKey string `mapstructure:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`

	// Key for signing the session cookie that carries the upstream token.
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// Per-client-IP API rate limit.
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DATA_SOURCE", SourceMock)
	v.SetDefault("EHR_TIMEOUT_SECONDS", 15)
	v.SetDefault("EHR_ENDPOINT_PATIENT", "/patient/{id}")
	v.SetDefault("EHR_ENDPOINT_ANTECEDENTES", "/historia-clinica/{id}/antecedentes")
	v.SetDefault("EHR_ENDPOINT_EVOLUCIONES", "/historia-clinica/{id}/evoluciones")
	v.SetDefault("EHR_ENDPOINT_MEDICATION", "/historia-clinica/{id}/medicacion-actual")
	v.SetDefault("EHR_ENDPOINT_STUDIES", "/study/byUser/{id}")
	v.SetDefault("EHR_ENDPOINT_LAB_DATA", "/blood-test-data/byStudies")
	v.SetDefault("EHR_ENDPOINT_SEARCH", "/patient/search")
	v.SetDefault("EHR_ENDPOINT_LOGIN", "/auth/login")
	v.SetDefault("ALERT_CRIT_LOW_FACTOR", 0.8)
	v.SetDefault("ALERT_CRIT_HIGH_FACTOR", 1.2)
	v.SetDefault("AI_PROVIDER", ProviderAnthropic)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "CORS_ORIGINS", "DATA_SOURCE",
		"EHR_API_URL", "EHR_TIMEOUT_SECONDS",
		"EHR_ENDPOINT_PATIENT", "EHR_ENDPOINT_ANTECEDENTES",
		"EHR_ENDPOINT_EVOLUCIONES", "EHR_ENDPOINT_MEDICATION",
		"EHR_ENDPOINT_STUDIES", "EHR_ENDPOINT_LAB_DATA",
		"EHR_ENDPOINT_SEARCH", "EHR_ENDPOINT_LOGIN",
		"ALERT_CRIT_LOW_FACTOR", "ALERT_CRIT_HIGH_FACTOR",
		"AI_PROVIDER", "AI_MODEL", "ANTHROPIC_API_KEY", "OPENAI_API_KEY",
		"SESSION_SECRET", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// EHRMode reports whether the upstream EHR is the active data source.
func (c *Config) EHRMode() bool {
	return c.DataSource == SourceEHR
}

func (c *Config) EHRTimeout() time.Duration {
	return time.Duration(c.EHRTimeoutSeconds) * time.Second
}

// Validate checks that the configuration is safe to run with. The EHR base
// URL is only required when DATA_SOURCE=ehr; a login with an explicit server
// URL can still point an individual session at a different upstream.
func (c *Config) Validate() error {
	if c.DataSource != SourceMock && c.DataSource != SourceEHR {
		return fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourceMock, SourceEHR, c.DataSource)
	}
	if c.DataSource == SourceEHR && c.EHRBaseURL == "" {
		return fmt.Errorf("EHR_API_URL is required when DATA_SOURCE is %q", SourceEHR)
	}
	if c.EHRTimeoutSeconds <= 0 {
		return fmt.Errorf("EHR_TIMEOUT_SECONDS must be positive, got %d", c.EHRTimeoutSeconds)
	}
	if c.AlertCritLowFactor <= 0 || c.AlertCritLowFactor > 1 {
		return fmt.Errorf("ALERT_CRIT_LOW_FACTOR must be in (0, 1], got %v", c.AlertCritLowFactor)
	}
	if c.AlertCritHighFactor < 1 {
		return fmt.Errorf("ALERT_CRIT_HIGH_FACTOR must be >= 1, got %v", c.AlertCritHighFactor)
	}
	if c.AIProvider != ProviderAnthropic && c.AIProvider != ProviderOpenAI {
		return fmt.Errorf("AI_PROVIDER must be %q or %q, got %q", ProviderAnthropic, ProviderOpenAI, c.AIProvider)
	}
	if c.IsProduction() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	return nil
}
