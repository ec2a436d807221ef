package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/errors"
)

// envPrefix namespaces every environment variable the CLI reads.
const envPrefix = "LANGMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Ledger configuration
	Database      string
	OverridesFile string
	ExcludedCodes []string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (LANGMAP_*)
// 3. .env files
// 4. Config file (~/.langmap.yaml or ./.langmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetDefault("database", constants.DefaultDatabase)

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".langmap")
	}

	// A missing file is only an error when one was named explicitly.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading config file", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		Database:      v.GetString("database"),
		OverridesFile: v.GetString("overrides"),
		ExcludedCodes: v.GetStringSlice("excluded_codes"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: getEnvOrDefault(envPrefix+"_LOG_FORMAT", v.GetString("log_format"), "auto"),
		LogOutput: getEnvOrDefault(envPrefix+"_LOG_OUTPUT", v.GetString("log_output"), "stderr"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is read first so its values win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value, then the
// configured value, then the default.
func getEnvOrDefault(key, configured, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if configured != "" {
		return configured
	}
	return defaultValue
}
