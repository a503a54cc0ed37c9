package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/ordinacija/patients-api/internal/repository/postgres"
	"github.com/ordinacija/patients-api/pkg/blobstore"
)

type Config struct {
	Server    ServerConfig
	Database  postgres.DatabaseConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Storage   blobstore.MinioConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LoadConfig reads config.yaml from the usual locations. Storage credentials
// come from the environment only, never from the file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("rate_limit.requests_per_second", 100)
	viper.SetDefault("rate_limit.burst", 200)

	viper.AutomaticEnv()

	// A missing file is fine, the defaults and environment cover every key.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &config.Storage); err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	return &config, nil
}
