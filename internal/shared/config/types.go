package config

import (
	"fmt"
	"strings"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AppURL         string   `mapstructure:"app_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the gorm dialect with Driver: postgres, mysql or sqlite.
// For sqlite, Database is the file path (":memory:" is accepted).
// ElevatedUsername and ElevatedPassword name a role that bypasses row level
// security; signup writes for a user who has no session yet go through it.
type DatabaseConfig struct {
	Driver           string `mapstructure:"driver"`
	Host             string `mapstructure:"host"`
	Port             int    `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	ElevatedUsername string `mapstructure:"elevated_username"`
	ElevatedPassword string `mapstructure:"elevated_password"`
	Database         string `mapstructure:"database"`
	SSLMode          string `mapstructure:"ssl_mode"`
	MaxIdleConns     int    `mapstructure:"max_idle_conns"`
	MaxOpenConns     int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime  int    `mapstructure:"conn_max_lifetime"`
}

// Elevated returns a copy of the config that logs in as the elevated role.
// It reports false when no elevated role is configured.
func (d *DatabaseConfig) Elevated() (*DatabaseConfig, bool) {
	if strings.TrimSpace(d.ElevatedUsername) == "" {
		return nil, false
	}
	elevated := *d
	elevated.Username = d.ElevatedUsername
	elevated.Password = d.ElevatedPassword
	elevated.ElevatedUsername = ""
	elevated.ElevatedPassword = ""
	return &elevated, true
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	case "sqlite":
		return d.Database
	default:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "require"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SupabaseConfig holds the managed auth provider settings.
// JWTSecret verifies access tokens locally.
type SupabaseConfig struct {
	URL          string `mapstructure:"url"`
	AnonKey      string `mapstructure:"anon_key"`
	JWTSecret    string `mapstructure:"jwt_secret"`
	CookieName   string `mapstructure:"cookie_name"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	PriceID       string `mapstructure:"price_id"`
	PaidPlanName  string `mapstructure:"paid_plan_name"`
}

type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig bounds requests per client within Window.
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	InsightLimit   int           `mapstructure:"insight_limit"`
	SignupLimit    int           `mapstructure:"signup_limit"`
	Window         time.Duration `mapstructure:"window"`
	RedisKeyPrefix string        `mapstructure:"redis_key_prefix"`
}
