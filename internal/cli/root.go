package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/gencppdoc/internal/annotate"
	"github.com/mvp-joe/gencppdoc/internal/config"
)

var (
	cfgFile      string
	verbose      bool
	filePath     string
	includeDirs  []string
	includesFile string
	dryRun       bool
	language     string
	standard     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gencppdoc",
	Short: "Generate blank docstrings for functions and classes in a C++ source file",
	Long: `gencppdoc parses one C or C++ source file, finds every function, method,
constructor, destructor, class and struct (templates included) that has no
documentation comment, and inserts a blank Doxygen block above each one.

The original file is kept next to the rewritten one with a .bak suffix.
Declarations that already carry a /** */, /*! */, /// or //! comment are
left alone, so running twice does not duplicate blocks.

Examples:
  # Annotate a header
  gencppdoc -f include/shape.hpp

  # Show what would change without touching the file
  gencppdoc -f src/shape.cpp --dry-run

  # Resolve includes against a list of system directories
  gencppdoc -f src/shape.cpp --includes-file includes.txt -I third_party/include -v
`,
	SilenceUsage: true,
	RunE:         runAnnotate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.gencppdoc.yml, then $HOME/.gencppdoc.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parser diagnostics and every extracted declaration")

	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "source file to annotate")
	rootCmd.Flags().StringArrayVarP(&includeDirs, "include", "I", nil, "add an include search directory (repeatable)")
	rootCmd.Flags().StringVar(&includesFile, "includes-file", "", "newline-delimited list of include directories")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print a unified diff instead of rewriting the file")
	rootCmd.Flags().StringVar(&language, "lang", "", "language mode: c++ or c (overrides config)")
	rootCmd.Flags().StringVar(&standard, "std", "", "language standard, e.g. c++17 (overrides config)")
	_ = rootCmd.MarkFlagRequired("file")
}

// newLogger builds the run logger; verbose enables debug output.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Parser.Language = strings.ToLower(strings.TrimSpace(language))
	}
	if flags.Changed("std") {
		cfg.Parser.Standard = standard
	}
	if flags.Changed("includes-file") {
		cfg.Parser.IncludesFile = includesFile
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var includes config.IncludePaths
	if cfg.Parser.IncludesFile != "" {
		includes, err = config.LoadIncludes(cfg.Parser.IncludesFile)
		if err != nil {
			return err
		}
	}
	includes.Add(includeDirs...)

	result, err := annotate.Run(cmd.Context(), annotate.Options{
		FilePath:     filePath,
		Parse:        cfg.ToParseOptions(includes),
		BackupSuffix: cfg.Output.BackupSuffix,
		Ignore:       cfg.Filter.Ignore,
		DryRun:       dryRun,
	}, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		renderEntities(cmd.ErrOrStderr(), result.Entities)
	}
	if dryRun {
		fmt.Fprint(out, result.Diff)
		return nil
	}
	printSummary(out, result)
	return nil
}
