// Package config loads runtime configuration from an optional file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/interview-prep/internal/fetch"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/server/ratelimit"
)

// EnvPrefix prefixes environment overrides, e.g. INTERVIEW_PREP_SERVER_PORT.
const EnvPrefix = "INTERVIEW_PREP"

// Config is the full runtime configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Log       LogConfig       `mapstructure:"log"`
	Interview InterviewConfig `mapstructure:"interview"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LLMConfig selects the language model provider.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	JSONMode bool          `mapstructure:"json_mode"`
}

// FetchConfig configures page retrieval for the scraper.
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user_agent"`
	UseBrowser bool          `mapstructure:"use_browser"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// InterviewConfig tunes question generation and evaluation.
type InterviewConfig struct {
	Sanitize bool `mapstructure:"sanitize"`
}

// RateLimitConfig configures per-client request limits for the HTTP server.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// rateLimitEnv keeps the unprefixed RATE_LIMIT_* variables working next to
// INTERVIEW_PREP_RATELIMIT_*.
var rateLimitEnv = map[string]string{
	"ratelimit.enabled":          "RATE_LIMIT_ENABLED",
	"ratelimit.default_limit":    "RATE_LIMIT_DEFAULT_LIMIT",
	"ratelimit.default_window":   "RATE_LIMIT_DEFAULT_WINDOW",
	"ratelimit.cleanup_interval": "RATE_LIMIT_CLEANUP_INTERVAL",
	"ratelimit.whitelist":        "RATE_LIMIT_WHITELIST",
	"ratelimit.blacklist":        "RATE_LIMIT_BLACKLIST",
}

// SetDefaults registers every key with its default value. Keys must be
// registered for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 300*time.Second)

	v.SetDefault("llm.provider", string(llm.ProviderOpenAI))
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", llm.DefaultTimeout)
	v.SetDefault("llm.json_mode", false)

	v.SetDefault("fetch.timeout", fetch.DefaultTimeout)
	v.SetDefault("fetch.user_agent", fetch.DefaultUserAgent)
	v.SetDefault("fetch.use_browser", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("interview.sanitize", true)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.default_limit", ratelimit.DefaultLimit)
	v.SetDefault("ratelimit.default_window", ratelimit.DefaultWindow)
	v.SetDefault("ratelimit.cleanup_interval", ratelimit.DefaultCleanupInterval)
	v.SetDefault("ratelimit.whitelist", []string{})
	v.SetDefault("ratelimit.blacklist", []string{})
}

// Load reads configuration into a fresh viper instance.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith reads configuration using v, which may already carry bound flags.
// An empty path skips the config file.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range rateLimitEnv {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	var errs []error

	if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
		errs = append(errs, fmt.Errorf("config error: %w", err))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit < 1 {
			errs = append(errs, fmt.Errorf("config error: 'ratelimit.default_limit' must be positive, got %d", c.RateLimit.DefaultLimit))
		}
		if c.RateLimit.DefaultWindow <= 0 {
			errs = append(errs, errors.New("config error: 'ratelimit.default_window' must be positive"))
		}
	}

	for key, d := range map[string]time.Duration{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"llm.timeout":          c.LLM.Timeout,
		"fetch.timeout":        c.Fetch.Timeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("config error: '%s' must be positive", key))
		}
	}

	return errors.Join(errs...)
}

// LLMSettings converts the llm section into a client configuration.
func (c *Config) LLMSettings() *llm.Config {
	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		provider = llm.ProviderOpenAI
	}
	return &llm.Config{
		Provider: provider,
		Model:    c.LLM.Model,
		BaseURL:  c.LLM.BaseURL,
		Timeout:  c.LLM.Timeout,
	}
}

// APIKey returns the credential for the configured provider from its
// environment variable. An empty result is reported when the client is first used.
func (c *Config) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.LLMSettings().Provider.APIKeyEnv()))
}

// FetchOptions converts the fetch section into request options.
func (c *Config) FetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	if c.Fetch.Timeout > 0 {
		opts.Timeout = c.Fetch.Timeout
	}
	if c.Fetch.UserAgent != "" {
		opts.UserAgent = c.Fetch.UserAgent
	}
	return opts
}

// RateLimitSettings converts the ratelimit section into a limiter configuration.
func (c *Config) RateLimitSettings() *ratelimit.Config {
	return ratelimit.NewConfig(ratelimit.Settings{
		Enabled:         c.RateLimit.Enabled,
		DefaultLimit:    c.RateLimit.DefaultLimit,
		DefaultWindow:   c.RateLimit.DefaultWindow,
		CleanupInterval: c.RateLimit.CleanupInterval,
		Whitelist:       c.RateLimit.Whitelist,
		Blacklist:       c.RateLimit.Blacklist,
	})
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
