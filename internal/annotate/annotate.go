// Package annotate runs the extract, synthesize and rewrite pipeline over one
// source file.
package annotate

import (
	"context"
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"

	"github.com/mvp-joe/gencppdoc/internal/docstring"
	"github.com/mvp-joe/gencppdoc/internal/extraction"
	"github.com/mvp-joe/gencppdoc/internal/parsers"
	"github.com/mvp-joe/gencppdoc/internal/rewriter"
)

// Options configures one run.
type Options struct {
	FilePath     string
	Parse        parsers.ParseOptions
	BackupSuffix string
	// Ignore holds glob patterns; entities whose name matches are skipped.
	Ignore []string
	// DryRun computes the result and a diff without touching the file.
	DryRun bool
}

// Result describes what a run did.
type Result struct {
	FilePath    string
	BackupPath  string
	Entities    []extraction.Entity
	Ignored     []extraction.Entity
	Collisions  []extraction.Entity
	Diagnostics []extraction.Diagnostic
	Summary     rewriter.Summary
	// Diff is the unified diff of the change; set only for dry runs.
	Diff string
}

// Run annotates opts.FilePath in place. Source I/O and configuration errors
// abort before anything is written; parser diagnostics never do.
func Run(ctx context.Context, opts Options, logger logrus.FieldLogger) (*Result, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("file", opts.FilePath)

	ignore, err := compilePatterns(opts.Ignore)
	if err != nil {
		return nil, err
	}

	extractor, err := parsers.NewExtractor(opts.Parse, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	source, err := os.ReadFile(opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	buf := rewriter.NewLineBuffer(source)

	log.WithField("args", opts.Parse.Args()).Debug("parsing translation unit")
	fe, err := extractor.Extract(ctx, opts.FilePath, source)
	if err != nil {
		return nil, fmt.Errorf("failed to extract declarations: %w", err)
	}

	result := &Result{
		FilePath:    opts.FilePath,
		Entities:    []extraction.Entity{},
		Diagnostics: fe.Diagnostics,
	}

	builder := docstring.NewBuilder()
	rw := rewriter.New()
	for _, e := range fe.Entities {
		if matchesAny(ignore, e.Name()) {
			result.Ignored = append(result.Ignored, e)
			continue
		}
		if !rw.Add(e.Line(), builder.Build(e).String()) {
			log.WithFields(logrus.Fields{
				"line": e.Line(),
				"name": e.Name(),
			}).Debug("anchor line already has a block, skipping")
			result.Collisions = append(result.Collisions, e)
			continue
		}
		result.Entities = append(result.Entities, e)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Summary = rw.Apply(buf)
	for _, line := range result.Summary.Guarded {
		log.WithField("line", line).Debug("comment close marker follows anchor, inserted separator only")
	}

	if opts.DryRun {
		diff, err := unifiedDiff(opts.FilePath, source, buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("failed to render diff: %w", err)
		}
		result.Diff = diff
		return result, nil
	}

	backup, err := rewriter.Persist(opts.FilePath, buf, opts.BackupSuffix)
	result.BackupPath = backup
	if err != nil {
		return result, err
	}

	log.WithFields(logrus.Fields{
		"blocks": result.Summary.Blocks,
		"lines":  result.Summary.Lines,
		"backup": backup,
	}).Debug("rewrote file")
	return result, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func unifiedDiff(path string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
}
