package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env    string       `mapstructure:"env"`
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Feed   FeedConfig   `mapstructure:"feed"`
	Media  MediaConfig  `mapstructure:"media"`
	Sentry SentryConfig `mapstructure:"sentry"`
	Trace  TraceConfig  `mapstructure:"trace"`
}

type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	RateLimitRPM int    `mapstructure:"rate_limit_rpm"`
}

type DBConfig struct {
	// Driver is "sqlite" or "postgres"; DSN is driver specific
	// (file path / ":memory:" for sqlite, key=value DSN for postgres).
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	// CookieName carries the token for browser flows; Authorization
	// bearer tokens are honored as well.
	CookieName string `mapstructure:"cookie_name"`
}

type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
	// CacheTTL bounds the staleness of the cached global feed page.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type MediaConfig struct {
	// Dir is the root of the on-disk asset store; post images land under
	// Dir/posts/.
	Dir string `mapstructure:"dir"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// Load reads config.yaml from the working directory (optional) and the
// PULSEFEED_* environment, with defaults for every knob.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("pulsefeed")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit_rpm", 600)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "pulsefeed.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.cookie_name", "pulsefeed_token")
	v.SetDefault("feed.page_size", 10)
	v.SetDefault("feed.cache_ttl", 20*time.Second)
	v.SetDefault("media.dir", "media")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.endpoint", "localhost:4318")
}
