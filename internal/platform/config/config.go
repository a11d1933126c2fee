package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL         string `validate:"required"`
	IsProduction        bool
	EnableDBCheck       bool
	PrimaryCurrencyCode string `validate:"required,len=3,uppercase"`
	ConvertToPrimary    bool
	ViewRange           string `validate:"required,oneof=1D 1W 1M 3M 6M 1Y"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("PRIMARY_CURRENCY_CODE", "EUR")
	viper.SetDefault("CONVERT_TO_PRIMARY", false)
	viper.SetDefault("VIEW_RANGE", "1M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       viper.GetBool("ENABLE_DB_CHECK"),
		PrimaryCurrencyCode: viper.GetString("PRIMARY_CURRENCY_CODE"),
		ConvertToPrimary:    viper.GetBool("CONVERT_TO_PRIMARY"),
		ViewRange:           viper.GetString("VIEW_RANGE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
