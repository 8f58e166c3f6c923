package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	sharedConfig "github.com/dreamlog-app/dreamlog/internal/shared/config"
)

const envPrefix = "DREAMLOG"

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Supabase  sharedConfig.SupabaseConfig  `mapstructure:"supabase"`
	Stripe    sharedConfig.StripeConfig    `mapstructure:"stripe"`
	Gemini    sharedConfig.GeminiConfig    `mapstructure:"gemini"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from configs/config.yaml and DREAMLOG_* environment variables.
// A missing config file is not an error: every key has a default or an env override.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// MissingSecrets lists the credentials the API cannot serve requests without.
// The elevated database role is optional; only signup depends on it.
func (c *Config) MissingSecrets() []string {
	var missing []string
	check := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, envName(key))
		}
	}
	check("supabase.url", c.Supabase.URL)
	check("supabase.anon_key", c.Supabase.AnonKey)
	check("supabase.jwt_secret", c.Supabase.JWTSecret)
	check("stripe.secret_key", c.Stripe.SecretKey)
	check("stripe.webhook_secret", c.Stripe.WebhookSecret)
	check("gemini.api_key", c.Gemini.APIKey)
	return missing
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.app_url", "http://localhost:3000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.elevated_username", "")
	v.SetDefault("database.elevated_password", "")
	v.SetDefault("database.database", "postgres")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Supabase defaults (secrets must come from the environment)
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.anon_key", "")
	v.SetDefault("supabase.jwt_secret", "")
	v.SetDefault("supabase.cookie_name", "sb-access-token")
	v.SetDefault("supabase.cookie_secure", false)

	// Stripe defaults
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("stripe.price_id", "")
	v.SetDefault("stripe.paid_plan_name", "unlimited_pro")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("gemini.timeout", 60*time.Second)

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.insight_limit", 10)
	v.SetDefault("ratelimit.signup_limit", 5)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("ratelimit.redis_key_prefix", "dreamlog:ratelimit:")
}
