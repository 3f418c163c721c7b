// Package config carries the environment-driven settings of the bundle
// engine.
package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
)

type contextKey string

func (c contextKey) String() string {
	return "tafiti/config/" + string(c)
}

const ctxKeyConfiguration = contextKey("configurationKey")

const DefaultMinimumScore = 0.5

// ToContext adds engine configuration to the current supplied context.
func ToContext(ctx context.Context, config any) context.Context {
	return context.WithValue(ctx, ctxKeyConfiguration, config)
}

// FromContext extracts engine configuration from the supplied context if any
// exist.
func FromContext[T any](ctx context.Context) T {
	if cfg, ok := ctx.Value(ctxKeyConfiguration).(T); ok {
		return cfg
	}
	var zero T
	return zero
}

// FromEnv convenience method to process configs.
func FromEnv[T any]() (T, error) {
	return env.ParseAs[T]()
}

// FillEnv convenience method to fill a config object with environment data.
func FillEnv(v any) error {
	return env.Parse(v)
}

// LoggingConfig is the logging slice of a configuration object.
type LoggingConfig interface {
	LoggingLevel() string
	LoggingTimeFormat() string
	LoggingColored() bool
}

// BundleConfig is the slice of configuration the resolution and validation
// paths consume.
type BundleConfig interface {
	FallbackLocalization() string
	BaseLanguage() string
	MatchBehaviour() string
	MinimumScore() float64
}

// Default is the canonical configuration of the engine and its CLI.
type Default struct {
	LogLevel      string `envDefault:"info"                      env:"LOG_LEVEL"       yaml:"log_level"`
	LogTimeFormat string `envDefault:"2006-01-02T15:04:05Z07:00" env:"LOG_TIME_FORMAT" yaml:"log_time_format"`
	LogColored    bool   `envDefault:"true"                      env:"LOG_COLORED"     yaml:"log_colored"`

	DefaultLanguageCode string `envDefault:"en" env:"TAFITI_DEFAULT_LANGUAGE" yaml:"default_language"`
	DefaultRegionCode   string `envDefault:"US" env:"TAFITI_DEFAULT_REGION"   yaml:"default_region"`

	BaseLanguageCode string `envDefault:"en" env:"TAFITI_BASE_LANGUAGE" yaml:"base_language"`

	MatchBehaviourName string  `envDefault:"prefer_language" env:"TAFITI_MATCH_BEHAVIOUR" yaml:"match_behaviour"`
	MinimumScoreValue  float64 `envDefault:"0.5"             env:"TAFITI_MINIMUM_SCORE"   yaml:"minimum_score"`

	WorkerPoolCapacity       int    `envDefault:"0"  env:"TAFITI_WORKER_POOL_CAPACITY"        yaml:"worker_pool_capacity"`
	WorkerPoolExpiryDuration string `envDefault:"1s" env:"TAFITI_WORKER_POOL_EXPIRY_DURATION" yaml:"worker_pool_expiry_duration"`
}

func (c *Default) LoggingLevel() string {
	return c.LogLevel
}

func (c *Default) LoggingTimeFormat() string {
	return c.LogTimeFormat
}

func (c *Default) LoggingColored() bool {
	return c.LogColored
}

// FallbackLocalization is the designated default localization, e.g. "en-US".
func (c *Default) FallbackLocalization() string {
	return c.DefaultLanguageCode + "-" + c.DefaultRegionCode
}

// BaseLanguage is the bundle's nominal authoring language, used when picking
// a base localization for cross-locale comparison.
func (c *Default) BaseLanguage() string {
	return c.BaseLanguageCode
}

func (c *Default) MatchBehaviour() string {
	return c.MatchBehaviourName
}

func (c *Default) MinimumScore() float64 {
	return c.MinimumScoreValue
}

// GetWorkerPoolExpiryDuration parses the configured duration, defaulting to a
// second on malformed input.
func (c *Default) GetWorkerPoolExpiryDuration() time.Duration {
	duration, err := time.ParseDuration(c.WorkerPoolExpiryDuration)
	if err != nil {
		return time.Second
	}

	return duration
}
