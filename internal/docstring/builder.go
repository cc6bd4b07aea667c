// Package docstring renders blank Doxygen-style comment blocks for entities.
package docstring

import (
	"strings"

	"github.com/mvp-joe/gencppdoc/internal/extraction"
)

const (
	openMarker   = "/** "
	closeMarker  = " */"
	continuation = " *  "
)

// Builder accumulates one comment block at a time.
// Build resets it, so one Builder can be reused for many entities.
type Builder struct {
	sb strings.Builder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build renders the block for e and returns the builder for chaining.
func (b *Builder) Build(e extraction.Entity) *Builder {
	b.Reset()
	b.sb.WriteString(openMarker)
	switch e.Category() {
	case extraction.CategoryClass:
		b.line(`\class ` + e.Name())
		b.line(continuation + `\brief `)
	case extraction.CategoryFunction:
		b.line(`\brief `)
		for _, p := range e.Params() {
			b.line(continuation + `\param ` + p)
		}
		if e.ReturnType() != "void" {
			b.line(continuation + `\return`)
		}
	}
	b.line(closeMarker)
	return b
}

// String returns the block built so far, one "\n"-terminated line each.
func (b *Builder) String() string {
	return b.sb.String()
}

// Reset discards the current block.
func (b *Builder) Reset() {
	b.sb.Reset()
}

func (b *Builder) line(s string) {
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

// Render is a convenience for building a single block.
func Render(e extraction.Entity) string {
	return NewBuilder().Build(e).String()
}
