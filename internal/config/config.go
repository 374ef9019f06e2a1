// Package config loads the application configuration from config
// files, environment variables, and .env files.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bookroll/bookroll/pkg/constants"
	"github.com/bookroll/bookroll/pkg/sources"
)

// Config holds the application configuration.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Backing workbook
	WorkbookPath    string
	SubmissionSheet string
	HistorySheet    string
	CurriculumSheet string

	// Reporting period
	SchoolYear string

	// Class roster override; empty means the embedded roster
	RosterPath string

	// Curriculum cache
	CurriculumTTL time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// SheetNames folds the configured sheet names into the form the source
// reader expects, falling back to the defaults for any left blank.
func (c *Config) SheetNames() sources.SheetNames {
	names := sources.DefaultSheetNames()
	if c.SubmissionSheet != "" {
		names.Submission = c.SubmissionSheet
	}
	if c.HistorySheet != "" {
		names.History = c.HistorySheet
	}
	if c.CurriculumSheet != "" {
		names.Curriculum = c.CurriculumSheet
	}
	return names
}

// Load reads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.bookroll.yaml)
// 5. Defaults
func Load() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("bookroll")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".bookroll")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		WorkbookPath:    viper.GetString("workbook"),
		SubmissionSheet: viper.GetString("submission_sheet"),
		HistorySheet:    viper.GetString("history_sheet"),
		CurriculumSheet: viper.GetString("curriculum_sheet"),

		SchoolYear: viper.GetString("school_year"),
		RosterPath: viper.GetString("roster"),

		CurriculumTTL: viper.GetDuration("curriculum_ttl"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}

	// Defaults
	if config.WorkbookPath == "" {
		config.WorkbookPath = "bookroll.xlsx"
	}
	if config.CurriculumTTL == 0 {
		config.CurriculumTTL = constants.CurriculumTTL
	}

	return config, nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
