package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Port           int     `mapstructure:"port" validate:"required,gt=0,lte=65535"`
	TimeoutSeconds int     `mapstructure:"timeoutSeconds" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rateLimit" validate:"gt=0"`
	RateBurst      int     `mapstructure:"rateBurst" validate:"gt=0"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type EngineConfig struct {
	// Store selects the snapshot store backing the API: "postgres" or
	// "memory" (dev mode, optionally seeded).
	Store string `mapstructure:"store" validate:"oneof=postgres memory"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.rateLimit", 50)
	viper.SetDefault("server.rateBurst", 100)
	viper.SetDefault("engine.store", "memory")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
