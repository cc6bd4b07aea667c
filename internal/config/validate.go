package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/gencppdoc/internal/parsers"
)

var (
	// ErrInvalidLanguage indicates an unsupported parser language mode
	ErrInvalidLanguage = errors.New("invalid parser language")

	// ErrInvalidStandard indicates a standard that does not match the language
	ErrInvalidStandard = errors.New("invalid language standard")

	// ErrEmptyBackupSuffix indicates a missing backup suffix
	ErrEmptyBackupSuffix = errors.New("empty backup suffix")

	// ErrInvalidPattern indicates an ignore pattern that does not compile
	ErrInvalidPattern = errors.New("invalid ignore pattern")

	// ErrIncludesFile indicates the include list could not be read
	ErrIncludesFile = errors.New("cannot read includes file")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateParser(&cfg.Parser); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateFilter(&cfg.Filter); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateParser(cfg *ParserConfig) error {
	var errs []error

	lang := strings.ToLower(cfg.Language)
	if lang != parsers.LanguageCPP && lang != parsers.LanguageC {
		errs = append(errs, fmt.Errorf("%w: must be 'c++' or 'c', got '%s'", ErrInvalidLanguage, cfg.Language))
	}

	// gnu++17 style standards are fine; the prefix must match the language
	std := strings.ToLower(strings.TrimSpace(cfg.Standard))
	switch {
	case std == "":
		errs = append(errs, fmt.Errorf("%w: standard is required", ErrInvalidStandard))
	case lang == parsers.LanguageCPP && !strings.Contains(std, "++"):
		errs = append(errs, fmt.Errorf("%w: '%s' is not a C++ standard", ErrInvalidStandard, cfg.Standard))
	case lang == parsers.LanguageC && strings.Contains(std, "++"):
		errs = append(errs, fmt.Errorf("%w: '%s' is not a C standard", ErrInvalidStandard, cfg.Standard))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	if strings.TrimSpace(cfg.BackupSuffix) == "" {
		return fmt.Errorf("%w: backup_suffix is required", ErrEmptyBackupSuffix)
	}
	return nil
}

func validateFilter(cfg *FilterConfig) error {
	var errs []error

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: '%s': %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	// one %w per error keeps every sentinel reachable through errors.Is
	format := "validation failed:" + strings.Repeat("\n  - %w", len(errs))
	args := make([]any, len(errs))
	for i, err := range errs {
		args[i] = err
	}

	return fmt.Errorf(format, args...)
}
