package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/gencppdoc/internal/extraction"
)

// cursor is a classified syntax node together with what the extractor needs
// to turn it into an entity.
type cursor struct {
	node *sitter.Node
	kind extraction.CursorKind
	// root is the outermost node owning the declaration: the template,
	// friend or wrapping declaration that the comment must precede.
	root *sitter.Node
	fn   *functionShape
}

// functionShape describes the declarator of a function-like node.
type functionShape struct {
	// declarator carries the parameters field.
	declarator *sitter.Node
	// name is the node spelling the function's name.
	name *sitter.Node
	// castType is set for conversion operators.
	castType *sitter.Node
	// suffix collects pointer and reference modifiers on the return type.
	suffix string
}

// classify maps a syntax node to a cursor kind. Nodes that are not
// declarations the extractor cares about return KindOther.
func classify(node *sitter.Node) cursor {
	cur := cursor{node: node, kind: extraction.KindOther}

	switch node.Kind() {
	case "function_definition", "declaration", "field_declaration":
		if node.Kind() == "declaration" && insideFunctionBody(node) {
			// `Widget w(a, b);` parses like a prototype but is a local variable
			return cur
		}
		shape := unwrapFunction(node.ChildByFieldName("declarator"))
		if shape == nil {
			return cur
		}
		cur.fn = shape
		cur.root = declarationRoot(node, false)
		cur.kind = functionKind(node, cur.root, shape)
	case "class_specifier", "struct_specifier":
		if node.ChildByFieldName("body") == nil {
			return cur
		}
		cur.root = declarationRoot(node, true)
		switch {
		case wrappedByTemplate(node, cur.root):
			cur.kind = extraction.KindClassTemplate
		case node.Kind() == "class_specifier":
			cur.kind = extraction.KindClass
		default:
			cur.kind = extraction.KindStruct
		}
	case "parameter_declaration", "optional_parameter_declaration", "variadic_parameter_declaration":
		cur.kind = extraction.KindParameter
	case "template_declaration":
		cur.kind = extraction.KindTemplateDeclaration
	}
	return cur
}

// functionKind decides which function kind a function-like node is.
func functionKind(node, root *sitter.Node, shape *functionShape) extraction.CursorKind {
	if wrappedByTemplate(node, root) {
		return extraction.KindFunctionTemplate
	}

	name := innermostName(shape.name)
	switch {
	case name != nil && name.Kind() == "destructor_name":
		return extraction.KindDestructor
	case shape.castType != nil:
		return extraction.KindMethod
	case node.ChildByFieldName("type") == nil:
		return extraction.KindConstructor
	case insideFriend(node, root):
		return extraction.KindFunction
	case insideClassBody(root):
		return extraction.KindMethod
	case shape.name != nil && shape.name.Kind() == "qualified_identifier":
		// Out-of-line member definitions; namespace-qualified free
		// functions land here too, which only affects the kind.
		return extraction.KindMethod
	default:
		return extraction.KindFunction
	}
}

// unwrapFunction walks pointer and reference declarators down to the
// function declarator. It returns nil when the declarator does not declare
// a function, including function pointer variables.
func unwrapFunction(decl *sitter.Node) *functionShape {
	suffix := ""
	for decl != nil {
		switch decl.Kind() {
		case "function_declarator":
			inner := decl.ChildByFieldName("declarator")
			if inner == nil || inner.Kind() == "parenthesized_declarator" {
				return nil
			}
			if cast := castOperator(inner); cast != nil {
				return castShape(cast, inner, suffix)
			}
			return &functionShape{declarator: decl, name: inner, suffix: suffix}
		case "operator_cast":
			return castShape(decl, decl, suffix)
		case "qualified_identifier":
			cast := castOperator(decl)
			if cast == nil {
				return nil
			}
			return castShape(cast, decl, suffix)
		case "pointer_declarator":
			suffix += "*"
			decl = decl.ChildByFieldName("declarator")
		case "reference_declarator":
			if tok := decl.Child(0); tok != nil {
				suffix += tok.Kind()
			}
			decl = firstNamedChild(decl)
		case "attributed_declarator":
			decl = firstNamedChild(decl)
		default:
			return nil
		}
	}
	return nil
}

// castOperator returns the operator_cast node named by n, if any.
func castOperator(n *sitter.Node) *sitter.Node {
	name := innermostName(n)
	if name != nil && name.Kind() == "operator_cast" {
		return name
	}
	return nil
}

func castShape(cast, name *sitter.Node, suffix string) *functionShape {
	decl := cast.ChildByFieldName("declarator")
	for decl != nil && decl.Kind() != "abstract_function_declarator" {
		decl = firstNamedChild(decl)
	}
	return &functionShape{
		declarator: decl,
		name:       name,
		castType:   cast.ChildByFieldName("type"),
		suffix:     suffix,
	}
}

// innermostName strips qualification and template arguments off a name.
func innermostName(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Kind() {
		case "qualified_identifier", "template_function", "template_method", "template_type":
			next := n.ChildByFieldName("name")
			if next == nil {
				return n
			}
			n = next
		default:
			return n
		}
	}
	return nil
}

// declarationRoot climbs from a declaration to the node its documentation
// must precede. For class specifiers the wrapping declaration whose type is
// the specifier also counts.
func declarationRoot(node *sitter.Node, isClass bool) *sitter.Node {
	root := node
	for {
		parent := root.Parent()
		if parent == nil {
			return root
		}
		switch parent.Kind() {
		case "template_declaration", "friend_declaration":
			root = parent
		case "linkage_specification":
			if !sameNode(parent.ChildByFieldName("body"), root) {
				return root
			}
			root = parent
		case "declaration", "field_declaration", "type_definition":
			if !isClass || !sameNode(parent.ChildByFieldName("type"), root) {
				return root
			}
			root = parent
		default:
			return root
		}
	}
}

// wrappedByTemplate reports whether a template_declaration sits between
// node and root.
func wrappedByTemplate(node, root *sitter.Node) bool {
	return chainHas(node, root, "template_declaration")
}

func insideFriend(node, root *sitter.Node) bool {
	return chainHas(node, root, "friend_declaration")
}

// chainHas reports whether a node of the given kind lies on the path from
// node (exclusive) up to root (inclusive).
func chainHas(node, root *sitter.Node, kind string) bool {
	for n := node; !sameNode(n, root); {
		n = n.Parent()
		if n == nil {
			return false
		}
		if n.Kind() == kind {
			return true
		}
	}
	return false
}

// insideClassBody reports whether the declaration root is a class member.
func insideClassBody(root *sitter.Node) bool {
	parent := root.Parent()
	for parent != nil && (parent.Kind() == "access_specifier" || parent.Kind() == "preproc_if" ||
		parent.Kind() == "preproc_ifdef" || parent.Kind() == "preproc_else" || parent.Kind() == "preproc_elif") {
		parent = parent.Parent()
	}
	return parent != nil && parent.Kind() == "field_declaration_list"
}

// insideFunctionBody reports whether node sits in a block statement before
// reaching any class body or the top level.
func insideFunctionBody(node *sitter.Node) bool {
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case "compound_statement":
			return true
		case "field_declaration_list", "translation_unit":
			return false
		}
	}
	return false
}
