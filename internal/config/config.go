package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Engine    EngineConfig    `yaml:"engine" mapstructure:"engine"`
	Currency  CurrencyConfig  `yaml:"currency" mapstructure:"currency"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Augment   AugmentConfig   `yaml:"augment" mapstructure:"augment"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
}

// EngineConfig holds composite weights and the thresholds the policy
// enforces.
type EngineConfig struct {
	FreeWeights       FreeWeights `yaml:"free_weights" mapstructure:"free_weights"`
	PaidWeights       PaidWeights `yaml:"paid_weights" mapstructure:"paid_weights"`
	MinRecipients     int         `yaml:"min_recipients" mapstructure:"min_recipients"`
	PaidPassThreshold float64     `yaml:"paid_pass_threshold" mapstructure:"paid_pass_threshold"`
	FreeCompositeCap  float64     `yaml:"free_composite_cap" mapstructure:"free_composite_cap"`
	DimensionCap      float64     `yaml:"dimension_cap" mapstructure:"dimension_cap"`
}

// FreeWeights weights the free-tier composite (sum = 1).
type FreeWeights struct {
	Clarity       float64 `yaml:"clarity" mapstructure:"clarity"`
	Timeline      float64 `yaml:"timeline" mapstructure:"timeline"`
	Award         float64 `yaml:"award" mapstructure:"award"`
	AccessBarrier float64 `yaml:"access_barrier" mapstructure:"access_barrier"`
}

// PaidWeights weights the paid-tier composite (sum = 1).
type PaidWeights struct {
	Mission      float64 `yaml:"mission" mapstructure:"mission"`
	Profile      float64 `yaml:"profile" mapstructure:"profile"`
	Funding      float64 `yaml:"funding" mapstructure:"funding"`
	EffortReward float64 `yaml:"effort_reward" mapstructure:"effort_reward"`
}

// CurrencyConfig overrides the built-in exchange-rate table. Rate keys look
// like "GBP_USD" (1 GBP = rate USD). SourceURL names an optional JSON rate
// feed; explicit Rates win over the feed.
type CurrencyConfig struct {
	Base      string             `yaml:"base" mapstructure:"base"`
	Rates     map[string]float64 `yaml:"rates" mapstructure:"rates"`
	SourceURL string             `yaml:"source_url" mapstructure:"source_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// AugmentConfig configures the optional LLM augmentation and its guard.
type AugmentConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	Explain           bool    `yaml:"explain" mapstructure:"explain"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts       int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	FailureThreshold  int     `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs  int     `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// BatchConfig configures batch evaluation.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// FetchConfig configures downloads of remote input files and rate feeds.
type FetchConfig struct {
	TimeoutSecs int   `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int   `yaml:"max_retries" mapstructure:"max_retries"`
	MaxBytes    int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from ./config.yaml (optional) and environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path and environment. An empty path
// falls back to an optional config.yaml in the working directory; a named
// file must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("GRANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("engine.free_weights.clarity", 0.30)
	v.SetDefault("engine.free_weights.timeline", 0.25)
	v.SetDefault("engine.free_weights.award", 0.25)
	v.SetDefault("engine.free_weights.access_barrier", 0.20)
	v.SetDefault("engine.paid_weights.mission", 0.30)
	v.SetDefault("engine.paid_weights.profile", 0.25)
	v.SetDefault("engine.paid_weights.funding", 0.25)
	v.SetDefault("engine.paid_weights.effort_reward", 0.20)
	v.SetDefault("engine.min_recipients", 5)
	v.SetDefault("engine.paid_pass_threshold", 6.5)
	v.SetDefault("engine.free_composite_cap", 6.5)
	v.SetDefault("engine.dimension_cap", 6.0)
	v.SetDefault("currency.base", "USD")
	v.SetDefault("currency.source_url", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("augment.enabled", false)
	v.SetDefault("augment.explain", false)
	v.SetDefault("augment.timeout_secs", 20)
	v.SetDefault("augment.max_attempts", 2)
	v.SetDefault("augment.requests_per_second", 2.0)
	v.SetDefault("augment.failure_threshold", 5)
	v.SetDefault("augment.reset_timeout_secs", 60)
	v.SetDefault("batch.max_concurrent", 8)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.max_bytes", 4<<20)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode needs. Modes: "evaluate",
// "batch", "classify", "rates".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "evaluate", "batch":
		if c.Augment.Enabled || c.Augment.Explain {
			if c.Anthropic.Key == "" {
				errs = append(errs, "anthropic.key is required when augmentation is enabled")
			}
			if c.Augment.TimeoutSecs <= 0 {
				errs = append(errs, "augment.timeout_secs must be > 0")
			}
			if c.Augment.MaxAttempts < 1 {
				errs = append(errs, "augment.max_attempts must be >= 1")
			}
			if c.Augment.RequestsPerSecond < 0 {
				errs = append(errs, "augment.requests_per_second must be >= 0")
			}
		}
		if mode == "batch" && (c.Batch.MaxConcurrent < 1 || c.Batch.MaxConcurrent > 64) {
			errs = append(errs, fmt.Sprintf("batch.max_concurrent must be between 1 and 64, got %d", c.Batch.MaxConcurrent))
		}
	case "classify", "rates":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Currency.SourceURL != "" && (c.Fetch.TimeoutSecs <= 0 || c.Fetch.MaxRetries < 1) {
		errs = append(errs, "fetch.timeout_secs and fetch.max_retries must be positive when currency.source_url is set")
	}

	if c.Engine.MinRecipients < 1 {
		errs = append(errs, "engine.min_recipients must be >= 1")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
