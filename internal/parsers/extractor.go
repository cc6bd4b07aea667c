package parsers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/gencppdoc/internal/extraction"
)

// Extractor finds undocumented functions and classes in one source file.
type Extractor struct {
	opts   ParseOptions
	parser *treeSitterParser
	logger logrus.FieldLogger
}

// NewExtractor creates an extractor for the configured language mode.
func NewExtractor(opts ParseOptions, logger logrus.FieldLogger) (*Extractor, error) {
	parser, err := newTreeSitterParser(opts.Language)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Extractor{
		opts:   opts,
		parser: parser,
		logger: logger,
	}, nil
}

// ExtractFile reads filePath and extracts its entities.
func (e *Extractor) ExtractFile(ctx context.Context, filePath string) (*extraction.FileExtraction, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return e.Extract(ctx, filePath, source)
}

// Extract parses source and returns the declarations that lack a
// documentation comment, in pre-order traversal order.
//
// Syntax errors and unresolved includes are returned as diagnostics and
// never stop extraction.
func (e *Extractor) Extract(ctx context.Context, filePath string, source []byte) (*extraction.FileExtraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := e.parser.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &extraction.FileExtraction{
		FilePath: filePath,
		Language: e.parser.lang,
		Entities: []extraction.Entity{},
	}

	result.Diagnostics = append(result.Diagnostics, syntaxDiagnostics(root, source)...)
	result.Diagnostics = append(result.Diagnostics, includeDiagnostics(root, source, filePath, e.opts.IncludePaths)...)
	for _, d := range result.Diagnostics {
		e.logger.WithFields(logrus.Fields{
			"file":     filePath,
			"line":     d.Line,
			"column":   d.Column,
			"severity": d.Severity.String(),
		}).Debug(d.Message)
	}

	docs := collectDocComments(root, source)
	walkTree(root, func(n *sitter.Node) bool {
		cur := classify(n)
		if cur.kind.Category() == extraction.CategoryNone {
			return true
		}
		if docs.attached(cur.root, source) {
			return true
		}

		entity := e.buildEntity(cur, source)
		result.Entities = append(result.Entities, entity)
		e.logger.WithFields(logrus.Fields{
			"kind":     entity.Kind().String(),
			"category": entity.Category().String(),
			"name":     entity.Name(),
			"line":     entity.Line(),
			"params":   entity.Params(),
			"return":   entity.ReturnType(),
		}).Debug("found undocumented declaration")
		return true
	})

	return result, nil
}

func (e *Extractor) buildEntity(cur cursor, source []byte) extraction.Entity {
	line := startLine(cur.root)
	if cur.kind.Category() == extraction.CategoryClass {
		return extraction.NewEntity(cur.kind, className(cur.node, source), line, nil, "")
	}
	return extraction.NewEntity(
		cur.kind,
		functionName(cur.fn, source),
		line,
		functionParams(cur.fn, source),
		returnType(cur.node, cur.fn, source),
	)
}

// className returns the unqualified class name, empty for anonymous classes.
func className(node *sitter.Node, source []byte) string {
	return extractNodeText(innermostName(node.ChildByFieldName("name")), source)
}

// functionName returns the unqualified function name.
func functionName(shape *functionShape, source []byte) string {
	if shape.castType != nil {
		return "operator " + normalizedText(shape.castType, source)
	}
	return normalizedText(innermostName(shape.name), source)
}

// returnType spells the declared return type. Constructors and destructors
// return void.
func returnType(node *sitter.Node, shape *functionShape, source []byte) string {
	if shape.castType != nil {
		return normalizedText(shape.castType, source)
	}

	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return "void"
	}

	spelling := normalizedText(typeNode, source)
	if spelling == "auto" && shape.declarator != nil {
		if trailing := findChildByType(shape.declarator, "trailing_return_type"); trailing != nil {
			if desc := firstNamedChild(trailing); desc != nil {
				spelling = normalizedText(desc, source)
			}
		}
	}

	var quals []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.StartByte() >= typeNode.StartByte() {
			break
		}
		if child.Kind() == "type_qualifier" {
			quals = append(quals, extractNodeText(child, source))
		}
	}
	if len(quals) > 0 {
		spelling = strings.Join(quals, " ") + " " + spelling
	}
	if shape.suffix != "" {
		spelling += " " + shape.suffix
	}
	return spelling
}
