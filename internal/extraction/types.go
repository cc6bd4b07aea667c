package extraction

import "fmt"

// Category is the documentation shape an entity receives.
type Category int

const (
	// CategoryNone marks cursors that are never documented.
	CategoryNone Category = iota
	CategoryFunction
	CategoryClass
)

func (c Category) String() string {
	switch c {
	case CategoryFunction:
		return "function"
	case CategoryClass:
		return "class"
	default:
		return "none"
	}
}

// CursorKind is the closed set of syntax node classes the extractor recognizes.
type CursorKind int

const (
	KindOther CursorKind = iota
	KindConstructor
	KindDestructor
	KindMethod
	KindFunction
	KindFunctionTemplate
	KindClass
	KindStruct
	KindClassTemplate
	KindParameter
	KindTemplateDeclaration
)

var kindNames = map[CursorKind]string{
	KindOther:               "other",
	KindConstructor:         "constructor",
	KindDestructor:          "destructor",
	KindMethod:              "method",
	KindFunction:            "function",
	KindFunctionTemplate:    "function_template",
	KindClass:               "class",
	KindStruct:              "struct",
	KindClassTemplate:       "class_template",
	KindParameter:           "parameter",
	KindTemplateDeclaration: "template_declaration",
}

func (k CursorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CursorKind(%d)", int(k))
}

// Category maps a cursor kind to its documentation category.
// Every kind must be listed; an unlisted kind is a programming error.
func (k CursorKind) Category() Category {
	switch k {
	case KindConstructor, KindDestructor, KindMethod, KindFunction, KindFunctionTemplate:
		return CategoryFunction
	case KindClass, KindStruct, KindClassTemplate:
		return CategoryClass
	case KindOther, KindParameter, KindTemplateDeclaration:
		return CategoryNone
	}
	panic(fmt.Sprintf("extraction: unclassified cursor kind %d", int(k)))
}

// IsTemplate reports whether the kind is a templated declaration.
func (k CursorKind) IsTemplate() bool {
	return k == KindFunctionTemplate || k == KindClassTemplate
}

// Entity is one declaration that needs a documentation block.
// It is immutable once built by NewEntity.
type Entity struct {
	category   Category
	kind       CursorKind
	name       string
	line       int
	params     []string
	returnType string
}

// NewEntity builds an Entity for the given cursor kind. Parameters are
// dropped for class entities.
func NewEntity(kind CursorKind, name string, line int, params []string, returnType string) Entity {
	cat := kind.Category()
	var p []string
	if cat == CategoryFunction {
		p = make([]string, len(params))
		copy(p, params)
	} else {
		p = []string{}
	}
	return Entity{
		category:   cat,
		kind:       kind,
		name:       name,
		line:       line,
		params:     p,
		returnType: returnType,
	}
}

func (e Entity) Category() Category { return e.category }
func (e Entity) Kind() CursorKind   { return e.kind }
func (e Entity) Name() string       { return e.name }

// Line is the 1-based anchor line the documentation block goes above.
func (e Entity) Line() int { return e.line }

// Params returns a copy of the parameter display strings.
func (e Entity) Params() []string {
	out := make([]string, len(e.params))
	copy(out, e.params)
	return out
}

func (e Entity) ReturnType() string { return e.returnType }

// Severity classifies a parser diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is an informational message produced while parsing.
type Diagnostic struct {
	Severity Severity
	Line     int
	Column   int
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

// FileExtraction is everything the extractor learned about one file.
type FileExtraction struct {
	FilePath    string
	Language    string
	Entities    []Entity
	Diagnostics []Diagnostic
}
