package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mvp-joe/gencppdoc/internal/annotate"
	"github.com/mvp-joe/gencppdoc/internal/extraction"
)

// renderEntities prints one row per extracted declaration.
func renderEntities(w io.Writer, entities []extraction.Entity) {
	if len(entities) == 0 {
		_, _ = fmt.Fprintln(w, "(no undocumented declarations)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Kind", "Name", "Parameters", "Returns"})
	for _, e := range entities {
		ret := ""
		if e.Category() == extraction.CategoryFunction {
			ret = e.ReturnType()
		}
		t.AppendRow(table.Row{e.Line(), e.Kind().String(), e.Name(), strings.Join(e.Params(), ", "), ret})
	}
	t.Render()
}

// printSummary reports what a completed run changed.
func printSummary(w io.Writer, result *annotate.Result) {
	fmt.Fprintf(w, "✓ Inserted %d docstring block(s) into %s\n", result.Summary.Blocks, result.FilePath)
	if len(result.Ignored) > 0 {
		fmt.Fprintf(w, "  Ignored by filter: %d\n", len(result.Ignored))
	}
	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(w, "  Parser diagnostics: %d (use --verbose to list)\n", len(result.Diagnostics))
	}
	fmt.Fprintf(w, "  Backup: %s\n", result.BackupPath)
}
