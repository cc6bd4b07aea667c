package parsers

import "errors"

// Supported language modes.
const (
	LanguageCPP = "c++"
	LanguageC   = "c"
)

var (
	// ErrUnsupportedLanguage indicates a language mode with no grammar.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ParseOptions is the process-wide parser setup threaded into the extractor.
type ParseOptions struct {
	// Language selects the grammar: LanguageCPP or LanguageC.
	Language string
	// Standard is the language revision, e.g. "c++11". Recorded for diagnostics.
	Standard string
	// IncludePaths are searched, in order, when resolving #include directives.
	IncludePaths []string
}

// Args renders the options as the equivalent compiler argument vector.
func (o ParseOptions) Args() []string {
	args := []string{"-x", o.Language}
	if o.Standard != "" {
		args = append(args, "-std="+o.Standard)
	}
	for _, dir := range o.IncludePaths {
		args = append(args, "-isystem", dir)
	}
	return args
}
