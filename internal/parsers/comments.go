package parsers

import (
	"bytes"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// docComments holds the end offsets of every documentation comment, in
// source order.
type docComments struct {
	ends []uint
}

// collectDocComments finds every documentation-style comment in the tree.
func collectDocComments(root *sitter.Node, source []byte) docComments {
	var index docComments
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "comment" {
			return true
		}
		if isDocComment(extractNodeText(n, source)) {
			index.ends = append(index.ends, n.EndByte())
		}
		return false
	})
	return index
}

// isDocComment matches the comment styles a documentation tool attaches to
// the following declaration. Trailing member comments (`///<`, `/**<`) and
// the empty block `/**/` are not documentation for what follows.
func isDocComment(text string) bool {
	switch {
	case strings.HasPrefix(text, "/**/"):
		return false
	case strings.HasPrefix(text, "/**<"), strings.HasPrefix(text, "/*!<"),
		strings.HasPrefix(text, "///<"), strings.HasPrefix(text, "//!<"):
		return false
	case strings.HasPrefix(text, "////"):
		return false
	case strings.HasPrefix(text, "/**"), strings.HasPrefix(text, "/*!"),
		strings.HasPrefix(text, "///"), strings.HasPrefix(text, "//!"):
		return true
	}
	return false
}

// attached reports whether the nearest documentation comment before node
// belongs to it: nothing but whitespace, plain comments and blank lines may
// separate them, and none of ";{}#@" may appear in between.
func (d docComments) attached(node *sitter.Node, source []byte) bool {
	start := node.StartByte()
	i := sort.Search(len(d.ends), func(i int) bool { return d.ends[i] > start })
	if i == 0 {
		return false
	}
	between := source[d.ends[i-1]:start]
	return !bytes.ContainsAny(between, ";{}#@")
}
