package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Breaker BreakerConfig `mapstructure:"breaker"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"min=1,max=65535"`
	Host            string `mapstructure:"host"`
	ReadTimeout     int    `mapstructure:"read_timeout" validate:"gte=1"`
	WriteTimeout    int    `mapstructure:"write_timeout" validate:"gte=1"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=1"`
	RequestTimeout  int    `mapstructure:"request_timeout" validate:"gte=1"`
}

// CatalogConfig holds remote catalog API configuration
type CatalogConfig struct {
	BaseURL              string   `mapstructure:"base_url" validate:"required,url"`
	Timeout              int      `mapstructure:"timeout" validate:"gte=1"`
	MaxRetries           int      `mapstructure:"max_retries" validate:"gte=0"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second" validate:"gte=1"`
	Proxies              []string `mapstructure:"proxies"`
}

// BreakerConfig tunes the circuit breaker in front of the catalog API
type BreakerConfig struct {
	MaxRequests  uint32  `mapstructure:"max_requests"`
	Interval     int     `mapstructure:"interval"`
	Timeout      int     `mapstructure:"timeout" validate:"gte=1"`
	FailureRatio float64 `mapstructure:"failure_ratio" validate:"gt=0,lte=1"`
	MinRequests  uint32  `mapstructure:"min_requests"`
}

// CacheConfig controls the catalog response cache
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TTL     int    `mapstructure:"ttl" validate:"gte=1"`
	Prefix  string `mapstructure:"prefix"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// LogConfig selects logrus level and formatter
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads configuration from an optional config.yaml with environment variable overrides
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	return load(v)
}

// LoadFile loads configuration from an explicit file path
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	config.Catalog.BaseURL = strings.TrimRight(config.Catalog.BaseURL, "/")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 10)
	v.SetDefault("server.request_timeout", 30)

	v.SetDefault("catalog.base_url", "https://mini-heureka-internal-server.herokuapp.com")
	v.SetDefault("catalog.timeout", 10)
	v.SetDefault("catalog.max_retries", 2)
	v.SetDefault("catalog.max_requests_per_second", 50)
	v.SetDefault("catalog.proxies", []string{})

	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", 60)
	v.SetDefault("breaker.timeout", 30)
	v.SetDefault("breaker.failure_ratio", 0.5)
	v.SetDefault("breaker.min_requests", 5)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 60)
	v.SetDefault("cache.prefix", "storefront:catalog:")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
