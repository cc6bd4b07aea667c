package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/gencppdoc/internal/parsers"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .gencppdoc.yml and .gencppdoc.yaml
// - Load() merges a partial config file with defaults
// - Environment variables override config file values
// - Load() returns error for malformed YAML and invalid values
// - NewFileLoader() fails when the explicit file is missing
// - Validate() rejects bad language, mismatched standard, empty suffix, bad globs
// - Validate() reports multiple errors at once and keeps each sentinel matchable
// - LoadIncludes() skips a leading '#' line and blank lines, fails on missing file
// - ToParseOptions() copies the include list

// isolateHome keeps a developer's ~/.gencppdoc.yml out of the loader tests.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, parsers.LanguageCPP, cfg.Parser.Language)
	assert.Equal(t, "c++11", cfg.Parser.Standard)
	assert.Equal(t, "", cfg.Parser.IncludesFile)
	assert.Equal(t, ".bak", cfg.Output.BackupSuffix)
	assert.Empty(t, cfg.Filter.Ignore)

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	expected := Default()
	assert.Equal(t, expected.Parser, cfg.Parser)
	assert.Equal(t, expected.Output, cfg.Output)
	assert.Empty(t, cfg.Filter.Ignore)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	writeConfig(t, tempDir, ".gencppdoc.yml", `
parser:
  language: c
  standard: c99
  includes_file: includes.txt
output:
  backup_suffix: .orig
filter:
  ignore:
    - "operator*"
    - "~*"
`)

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	assert.Equal(t, parsers.LanguageC, cfg.Parser.Language)
	assert.Equal(t, "c99", cfg.Parser.Standard)
	assert.Equal(t, "includes.txt", cfg.Parser.IncludesFile)
	assert.Equal(t, ".orig", cfg.Output.BackupSuffix)
	assert.Equal(t, []string{"operator*", "~*"}, cfg.Filter.Ignore)
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	writeConfig(t, tempDir, ".gencppdoc.yaml", `
parser:
  standard: c++17
`)

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	assert.Equal(t, "c++17", cfg.Parser.Standard)
	// untouched keys keep their defaults
	assert.Equal(t, parsers.LanguageCPP, cfg.Parser.Language)
	assert.Equal(t, ".bak", cfg.Output.BackupSuffix)
}

func TestLoadConfig_NormalizesLanguage(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	writeConfig(t, tempDir, ".gencppdoc.yml", "parser:\n  language: C++\n")

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	assert.Equal(t, parsers.LanguageCPP, cfg.Parser.Language)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	writeConfig(t, tempDir, ".gencppdoc.yml", `
parser:
  standard: c++14
output:
  backup_suffix: .orig
`)
	t.Setenv("GENCPPDOC_PARSER_STANDARD", "c++20")
	t.Setenv("GENCPPDOC_OUTPUT_BACKUP_SUFFIX", ".before")

	cfg, err := NewLoader(tempDir).Load()

	require.NoError(t, err)
	assert.Equal(t, "c++20", cfg.Parser.Standard)
	assert.Equal(t, ".before", cfg.Output.BackupSuffix)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	writeConfig(t, tempDir, ".gencppdoc.yml", "parser: [unclosed\n")

	_, err := NewLoader(tempDir).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	writeConfig(t, tempDir, ".gencppdoc.yml", "parser:\n  language: rust\n")

	_, err := NewLoader(tempDir).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.True(t, errors.Is(err, ErrInvalidLanguage))
}

func TestNewFileLoader_ExplicitFile(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "custom.yml")
	writeConfig(t, tempDir, "custom.yml", "output:\n  backup_suffix: .prev\n")

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ".prev", cfg.Output.BackupSuffix)

	_, err = NewFileLoader(filepath.Join(tempDir, "missing.yml")).Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid default",
			mutate: func(*Config) {},
		},
		{
			name:   "c with c standard",
			mutate: func(c *Config) { c.Parser.Language = "c"; c.Parser.Standard = "c11" },
		},
		{
			name:   "gnu c++ standard",
			mutate: func(c *Config) { c.Parser.Standard = "gnu++17" },
		},
		{
			name:    "unknown language",
			mutate:  func(c *Config) { c.Parser.Language = "objc" },
			wantErr: ErrInvalidLanguage,
		},
		{
			name:    "empty standard",
			mutate:  func(c *Config) { c.Parser.Standard = " " },
			wantErr: ErrInvalidStandard,
		},
		{
			name:    "c standard in c++ mode",
			mutate:  func(c *Config) { c.Parser.Standard = "c99" },
			wantErr: ErrInvalidStandard,
		},
		{
			name:    "c++ standard in c mode",
			mutate:  func(c *Config) { c.Parser.Language = "c"; c.Parser.Standard = "c++11" },
			wantErr: ErrInvalidStandard,
		},
		{
			name:    "empty backup suffix",
			mutate:  func(c *Config) { c.Output.BackupSuffix = "" },
			wantErr: ErrEmptyBackupSuffix,
		},
		{
			name:    "bad glob",
			mutate:  func(c *Config) { c.Filter.Ignore = []string{"[unclosed"} },
			wantErr: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Parser.Language = "fortran"
	cfg.Output.BackupSuffix = ""

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "invalid parser language")
	assert.Contains(t, err.Error(), "empty backup suffix")
	assert.ErrorIs(t, err, ErrInvalidLanguage)
	assert.ErrorIs(t, err, ErrEmptyBackupSuffix)
}

func TestLoadConfig_MultipleErrorsKeepSentinels(t *testing.T) {
	isolateHome(t)
	tempDir := t.TempDir()
	writeConfig(t, tempDir, ".gencppdoc.yml", "parser:\n  language: rust\noutput:\n  backup_suffix: \" \"\n")

	_, err := NewLoader(tempDir).Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLanguage)
	assert.ErrorIs(t, err, ErrEmptyBackupSuffix)
}

func TestLoadIncludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "includes.txt")
	content := "# system headers\n/usr/include\n\n/usr/local/include\r\n/usr/include\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	paths, err := LoadIncludes(path)

	require.NoError(t, err)
	assert.Equal(t, IncludePaths{"/usr/include", "/usr/local/include"}, paths)
	assert.Equal(t, []string{"-isystem", "/usr/include", "-isystem", "/usr/local/include"}, paths.Args())
}

func TestLoadIncludes_OnlyFirstCommentLineSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "includes.txt")
	require.NoError(t, os.WriteFile(path, []byte("/opt/include\n#literal\n"), 0644))

	paths, err := LoadIncludes(path)

	require.NoError(t, err)
	assert.Equal(t, IncludePaths{"/opt/include", "#literal"}, paths)
}

func TestLoadIncludes_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadIncludes(filepath.Join(t.TempDir(), "nope.txt"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncludesFile)
}

func TestToParseOptions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	includes := IncludePaths{"/a"}
	includes.Add("/b", "", "/a")

	opts := cfg.ToParseOptions(includes)
	includes[0] = "/changed"

	assert.Equal(t, parsers.LanguageCPP, opts.Language)
	assert.Equal(t, "c++11", opts.Standard)
	assert.Equal(t, []string{"/a", "/b"}, opts.IncludePaths)
	assert.Equal(t, []string{"-x", "c++", "-std=c++11", "-isystem", "/a", "-isystem", "/b"}, opts.Args())
}
