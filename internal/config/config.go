// Package config loads gencppdoc settings from .gencppdoc.yml, environment
// variables and built-in defaults.
package config

import (
	"github.com/mvp-joe/gencppdoc/internal/parsers"
	"github.com/mvp-joe/gencppdoc/internal/rewriter"
)

// Config represents the complete gencppdoc configuration.
type Config struct {
	Parser ParserConfig `yaml:"parser" mapstructure:"parser"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Filter FilterConfig `yaml:"filter" mapstructure:"filter"`
}

// ParserConfig fixes how the source file is parsed.
type ParserConfig struct {
	Language     string `yaml:"language" mapstructure:"language"`           // "c++" or "c"
	Standard     string `yaml:"standard" mapstructure:"standard"`           // e.g. "c++11"
	IncludesFile string `yaml:"includes_file" mapstructure:"includes_file"` // newline-delimited include dirs
}

// OutputConfig controls how the rewritten file is persisted.
type OutputConfig struct {
	BackupSuffix string `yaml:"backup_suffix" mapstructure:"backup_suffix"`
}

// FilterConfig narrows which declarations get a comment block.
type FilterConfig struct {
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns on entity names
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			Language:     parsers.LanguageCPP,
			Standard:     "c++11",
			IncludesFile: "",
		},
		Output: OutputConfig{
			BackupSuffix: rewriter.DefaultBackupSuffix,
		},
		Filter: FilterConfig{
			Ignore: []string{},
		},
	}
}

// ToParseOptions builds the parser setup from the configuration and a
// resolved include list.
func (c *Config) ToParseOptions(includes IncludePaths) parsers.ParseOptions {
	dirs := make([]string, len(includes))
	copy(dirs, includes)
	return parsers.ParseOptions{
		Language:     c.Parser.Language,
		Standard:     c.Parser.Standard,
		IncludePaths: dirs,
	}
}
