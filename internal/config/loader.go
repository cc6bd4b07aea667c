package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader that searches rootDir, then the user's home
// directory, for .gencppdoc.yml.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads exactly configFile.
func NewFileLoader(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (GENCPPDOC_*)
// 2. Config file (.gencppdoc.yml or .gencppdoc.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(".gencppdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("GENCPPDOC")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., GENCPPDOC_PARSER_STANDARD)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("parser.language")
	v.BindEnv("parser.standard")
	v.BindEnv("parser.includes_file")
	v.BindEnv("output.backup_suffix")
	v.BindEnv("filter.ignore")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Parser.Language = strings.ToLower(strings.TrimSpace(cfg.Parser.Language))

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("parser.language", defaults.Parser.Language)
	v.SetDefault("parser.standard", defaults.Parser.Standard)
	v.SetDefault("parser.includes_file", defaults.Parser.IncludesFile)

	v.SetDefault("output.backup_suffix", defaults.Output.BackupSuffix)

	v.SetDefault("filter.ignore", defaults.Filter.Ignore)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}
