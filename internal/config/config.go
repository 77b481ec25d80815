// Package config loads and validates service configuration from defaults, an optional
// config file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/server/ratelimit"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RESUME_REWRITER"

// Auth modes
const (
	AuthModeRemote = "remote"
	AuthModeJWT    = "jwt"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"min=1"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
}

type LLMConfig struct {
	APIKey                string        `mapstructure:"api_key" validate:"required"`
	ExtractionModel       string        `mapstructure:"extraction_model" validate:"required"`
	RewriteModel          string        `mapstructure:"rewrite_model" validate:"required"`
	ExtractionTemperature float32       `mapstructure:"extraction_temperature" validate:"min=0,max=2"`
	RewriteTemperature    float32       `mapstructure:"rewrite_temperature" validate:"min=0,max=2"`
	MaxOutputTokens       int32         `mapstructure:"max_output_tokens" validate:"min=1"`
	CallTimeout           time.Duration `mapstructure:"call_timeout" validate:"gt=0"`
}

type AuthConfig struct {
	Mode      string        `mapstructure:"mode" validate:"oneof=remote jwt"`
	VerifyURL string        `mapstructure:"verify_url" validate:"omitempty,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	JWTSecret string        `mapstructure:"jwt_secret"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit" validate:"min=0"`
	DefaultWindow   time.Duration `mapstructure:"default_window" validate:"gt=0"`
	RewriteLimit    int           `mapstructure:"rewrite_limit" validate:"min=0"`
	RewriteWindow   time.Duration `mapstructure:"rewrite_window" validate:"gt=0"`
	RewriteBurst    int           `mapstructure:"rewrite_burst" validate:"min=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"min=0"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":  "server.port",
	"json":  "log.json",
	"debug": "log.debug",
}

// envAliases binds conventional variable names in addition to the prefixed ones.
var envAliases = map[string]string{
	"llm.api_key":     "GEMINI_API_KEY",
	"auth.verify_url": "AUTH_VERIFY_URL",
	"auth.jwt_secret": "JWT_SECRET",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 300*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.extraction_model", "gemini-2.5-flash")
	v.SetDefault("llm.rewrite_model", "gemini-2.5-pro")
	v.SetDefault("llm.extraction_temperature", 0.0)
	v.SetDefault("llm.rewrite_temperature", 0.1)
	v.SetDefault("llm.max_output_tokens", llm.DefaultMaxOutputTokens)
	v.SetDefault("llm.call_timeout", llm.DefaultCallTimeout)

	v.SetDefault("auth.mode", AuthModeRemote)
	v.SetDefault("auth.verify_url", "")
	v.SetDefault("auth.timeout", 10*time.Second)
	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 1000)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.rewrite_limit", 10)
	v.SetDefault("rate_limit.rewrite_window", time.Hour)
	v.SetDefault("rate_limit.rewrite_burst", 2)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})
}

// Load builds a Config. path names an optional YAML or JSON file; flags may be nil.
// Precedence from lowest to highest: defaults, file, environment, flags that were set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges, required values and the settings each auth mode depends on.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: %s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Auth.Mode {
	case AuthModeRemote:
		if c.Auth.VerifyURL == "" {
			return fmt.Errorf("config error: auth.verify_url is required in %s mode", AuthModeRemote)
		}
	case AuthModeJWT:
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("config error: auth.jwt_secret must be at least 32 characters in %s mode", AuthModeJWT)
		}
	}
	return nil
}

// ValidateLLM checks only the model section, for commands that never serve requests.
func (c *Config) ValidateLLM() error {
	if err := validator.New().Struct(c.LLM); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// LLMSettings converts the model section into tier settings.
func (c *Config) LLMSettings() *llm.Config {
	return &llm.Config{
		Provider: llm.ProviderGemini,
		Tiers: map[llm.ModelTier]llm.TierSettings{
			llm.TierStandard: {
				Model:           c.LLM.ExtractionModel,
				Temperature:     c.LLM.ExtractionTemperature,
				MaxOutputTokens: c.LLM.MaxOutputTokens,
			},
			llm.TierAdvanced: {
				Model:           c.LLM.RewriteModel,
				Temperature:     c.LLM.RewriteTemperature,
				MaxOutputTokens: c.LLM.MaxOutputTokens,
			},
		},
	}
}

// RateLimitSettings converts the rate_limit section, parsing the IP lists.
func (c *Config) RateLimitSettings() (*ratelimit.Config, error) {
	white, err := ratelimit.ParseIPSet(c.RateLimit.Whitelist)
	if err != nil {
		return nil, fmt.Errorf("rate_limit.whitelist: %w", err)
	}
	black, err := ratelimit.ParseIPSet(c.RateLimit.Blacklist)
	if err != nil {
		return nil, fmt.Errorf("rate_limit.blacklist: %w", err)
	}

	rl := c.RateLimit
	return &ratelimit.Config{
		Enabled:         rl.Enabled,
		DefaultLimit:    rl.DefaultLimit,
		DefaultWindow:   rl.DefaultWindow,
		CleanupInterval: rl.CleanupInterval,
		IdleTTL:         time.Hour,
		Whitelist:       white,
		Blacklist:       black,
		EndpointConfigs: ratelimit.RewriteEndpoints(rl.RewriteLimit, rl.RewriteWindow, rl.RewriteBurst),
	}, nil
}
