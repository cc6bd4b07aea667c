package parsers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/gencppdoc/internal/extraction"
)

// syntaxDiagnostics reports error and missing nodes left by the parser.
func syntaxDiagnostics(root *sitter.Node, source []byte) []extraction.Diagnostic {
	var diags []extraction.Diagnostic
	if root == nil || !root.HasError() {
		return diags
	}

	walkTree(root, func(n *sitter.Node) bool {
		if !n.HasError() && !n.IsMissing() {
			return false
		}
		pos := n.StartPosition()
		switch {
		case n.IsMissing():
			diags = append(diags, extraction.Diagnostic{
				Severity: extraction.SeverityError,
				Line:     int(pos.Row) + 1,
				Column:   int(pos.Column) + 1,
				Message:  fmt.Sprintf("expected '%s'", n.Kind()),
			})
		case n.IsError():
			diags = append(diags, extraction.Diagnostic{
				Severity: extraction.SeverityError,
				Line:     int(pos.Row) + 1,
				Column:   int(pos.Column) + 1,
				Message:  fmt.Sprintf("unexpected '%s'", snippet(n, source)),
			})
			return false
		}
		return true
	})
	return diags
}

// snippet returns the first line of a node's text, shortened for messages.
func snippet(n *sitter.Node, source []byte) string {
	text := extractNodeText(n, source)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	return text
}

// includeDiagnostics resolves each #include against the including file's
// directory (quoted form only) and the include search path, and warns about
// headers that cannot be found.
func includeDiagnostics(root *sitter.Node, source []byte, filePath string, includePaths []string) []extraction.Diagnostic {
	var diags []extraction.Diagnostic
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "preproc_include" {
			return true
		}
		pathNode := n.ChildByFieldName("path")
		if pathNode == nil {
			return false
		}

		raw := extractNodeText(pathNode, source)
		var dirs []string
		switch pathNode.Kind() {
		case "string_literal":
			dirs = append([]string{filepath.Dir(filePath)}, includePaths...)
		case "system_lib_string":
			dirs = includePaths
		default:
			// macro-expanded includes cannot be resolved without a preprocessor
			return false
		}

		header := strings.Trim(raw, "\"<>")
		if !resolveHeader(header, dirs) {
			pos := n.StartPosition()
			diags = append(diags, extraction.Diagnostic{
				Severity: extraction.SeverityWarning,
				Line:     int(pos.Row) + 1,
				Column:   int(pos.Column) + 1,
				Message:  fmt.Sprintf("'%s' file not found", header),
			})
		}
		return false
	})
	return diags
}

func resolveHeader(header string, dirs []string) bool {
	for _, dir := range dirs {
		info, err := os.Stat(filepath.Join(dir, header))
		if err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
