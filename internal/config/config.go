// Package config provides Viper-based hierarchical configuration: defaults,
// then an optional YAML file, then FROTA_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fvieira/frota-csv/internal/logging"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Mongo struct {
		URI      string `mapstructure:"uri" yaml:"-"`
		Database string `mapstructure:"database" yaml:"database"`
	} `mapstructure:"mongo" yaml:"mongo"`

	Import struct {
		BatchSize       int    `mapstructure:"batch_size" yaml:"batch_size"`
		BatchPauseMs    int    `mapstructure:"batch_pause_ms" yaml:"batch_pause_ms"`
		CategoryRules   string `mapstructure:"category_rules" yaml:"category_rules"`
		SharedCostFleet string `mapstructure:"shared_cost_fleet" yaml:"shared_cost_fleet"`
	} `mapstructure:"import" yaml:"import"`

	FuelFeed struct {
		URL      string `mapstructure:"url" yaml:"url"`
		Schedule string `mapstructure:"schedule" yaml:"schedule"`
	} `mapstructure:"fuelfeed" yaml:"fuelfeed"`

	Export struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"export" yaml:"export"`
}

// LoadEnv loads a .env file when present. Missing files are fine; real
// environments configure through actual environment variables.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		logging.GetLogger().Debug("Loaded environment from .env file")
	}
}

// Load builds the configuration from defaults, an optional config file
// and FROTA_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.frota-csv")
	v.AddConfigPath(".frota-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FROTA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "frota")

	v.SetDefault("import.batch_size", 100)
	v.SetDefault("import.batch_pause_ms", 50)
	v.SetDefault("import.category_rules", "categorias.yaml")
	v.SetDefault("import.shared_cost_fleet", "9000")

	v.SetDefault("fuelfeed.url", "")
	// First day of the month, 03:00.
	v.SetDefault("fuelfeed.schedule", "0 3 1 * *")

	v.SetDefault("export.directory", ".")
}

func validate(cfg *Config) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	if cfg.Import.BatchSize <= 0 {
		return fmt.Errorf("import batch size must be positive")
	}
	if cfg.Import.BatchPauseMs < 0 {
		return fmt.Errorf("import batch pause must not be negative")
	}
	return nil
}

// ConfigureLogging installs the process-wide logger per the configuration
// and returns it.
func ConfigureLogging(cfg *Config) logging.Logger {
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	logging.SetDefault(logger)
	return logger
}
