package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret string

	// Statement import tuning.
	ImportBatchSize  int
	ImportBatchPause time.Duration
	ImportMaxRetries int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("IMPORT_BATCH_SIZE", 500)
	viper.SetDefault("IMPORT_BATCH_PAUSE", "2s")
	viper.SetDefault("IMPORT_MAX_RETRIES", 3)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.ImportBatchSize = viper.GetInt("IMPORT_BATCH_SIZE")
	if cfg.ImportBatchSize <= 0 {
		cfg.ImportBatchSize = 500
		log.Printf("Warning: Invalid value for IMPORT_BATCH_SIZE. Defaulting to %d.\n", cfg.ImportBatchSize)
	}

	pauseStr := viper.GetString("IMPORT_BATCH_PAUSE")
	pause, err := time.ParseDuration(pauseStr)
	if err != nil {
		pause = 2 * time.Second
		log.Printf("Warning: Invalid value for IMPORT_BATCH_PAUSE ('%s'). Defaulting to %s.\n", pauseStr, pause)
	}
	cfg.ImportBatchPause = pause

	cfg.ImportMaxRetries = viper.GetInt("IMPORT_MAX_RETRIES")
	if cfg.ImportMaxRetries <= 0 {
		cfg.ImportMaxRetries = 3
		log.Printf("Warning: Invalid value for IMPORT_MAX_RETRIES. Defaulting to %d.\n", cfg.ImportMaxRetries)
	}

	return cfg, nil
}
