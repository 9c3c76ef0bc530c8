package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	LADDER_SOURCE=auto
//	LADDER_FILE=data/ladder_data.parquet
//	DISPLAY_LIMIT=30
//	TREND_DAYS=7
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=boardpulse
//	POSTGRES_SSLMODE=disable
type Config struct {
	Ladder   LadderConfig   // Where the ladder dataset lives
	Display  DisplayConfig  // Terminal rendering defaults
	Postgres PostgresConfig // PostgreSQL connection settings (postgres source only)
}

// LadderConfig locates the dataset.
//
// Fields:
//   - Source: auto|parquet|csv|xlsx|postgres; auto picks by File extension.
//   - File: dataset path for the file sources.
//   - Sheet: worksheet for xlsx files; empty means the first one.
//   - Table: table name for the postgres source.
type LadderConfig struct {
	Source string
	File   string
	Sheet  string
	Table  string
}

// DisplayConfig holds presentation defaults.
type DisplayConfig struct {
	Limit     int // rows shown per table before "... N more"
	TrendDays int // sessions shown by trend when --days is not given
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

var validSources = map[string]bool{
	"auto":     true,
	"parquet":  true,
	"csv":      true,
	"xlsx":     true,
	"postgres": true,
}

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// The .env file is also exported into the process environment so settings
// read outside viper (LOG_LEVEL and friends) apply too.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	_ = godotenv.Load() // no .env is fine

	viper.SetDefault("LADDER_SOURCE", "auto")
	viper.SetDefault("LADDER_FILE", "data/ladder_data.parquet")
	viper.SetDefault("LADDER_SHEET", "")
	viper.SetDefault("LADDER_TABLE", "ladder")
	viper.SetDefault("DISPLAY_LIMIT", 30)
	viper.SetDefault("TREND_DAYS", 7)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "boardpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Ladder: LadderConfig{
			Source: strings.ToLower(strings.TrimSpace(viper.GetString("LADDER_SOURCE"))),
			File:   viper.GetString("LADDER_FILE"),
			Sheet:  viper.GetString("LADDER_SHEET"),
			Table:  viper.GetString("LADDER_TABLE"),
		},
		Display: DisplayConfig{
			Limit:     viper.GetInt("DISPLAY_LIMIT"),
			TrendDays: viper.GetInt("TREND_DAYS"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// UsesPostgres reports whether the dataset is read from PostgreSQL.
func (c Config) UsesPostgres() bool {
	return c.Ladder.Source == "postgres"
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Checks the ladder source and the fields that source needs.
//   - Collects missing or invalid ones in a slice.
//   - If any are found, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if !validSources[AppConfig.Ladder.Source] {
		missing = append(missing, "LADDER_SOURCE")
	}
	if AppConfig.Display.Limit < 1 {
		missing = append(missing, "DISPLAY_LIMIT")
	}
	if AppConfig.UsesPostgres() {
		if AppConfig.Ladder.Table == "" {
			missing = append(missing, "LADDER_TABLE")
		}
		if AppConfig.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if AppConfig.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if AppConfig.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if AppConfig.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	} else if AppConfig.Ladder.File == "" {
		missing = append(missing, "LADDER_FILE")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid configuration: %v\n", missing)
	}
}
