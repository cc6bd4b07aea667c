package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/gencppdoc/internal/extraction"
)

// functionParams returns the parameter display strings of a function.
//
// The declarator's parameter list is read first. When that comes back as a
// single empty string, or the list holds syntax errors, the whole declarator
// sub-tree is walked for parameter declarations instead. A function with no
// parameters returns an empty slice from the first path.
func functionParams(shape *functionShape, source []byte) []string {
	if shape == nil || shape.declarator == nil {
		return []string{}
	}

	list := shape.declarator.ChildByFieldName("parameters")
	params := listParams(list, source)
	if !needsRecovery(list, params) {
		return params
	}
	return recoverParams(shape.declarator, source)
}

// listParams reads the direct parameter children of a parameter_list.
func listParams(list *sitter.Node, source []byte) []string {
	params := []string{}
	if list == nil {
		return params
	}

	for i := 0; i < int(list.NamedChildCount()); i++ {
		child := list.NamedChild(uint(i))
		if classify(child).kind != extraction.KindParameter {
			continue
		}
		if isVoidParam(child, source) {
			continue
		}
		params = append(params, paramName(child.ChildByFieldName("declarator"), source))
	}
	return params
}

func needsRecovery(list *sitter.Node, params []string) bool {
	if list != nil && list.HasError() {
		return true
	}
	return len(params) == 1 && params[0] == ""
}

// recoverParams collects every parameter declaration below decl in
// appearance order. Unnamed parameters are shown by their source text.
func recoverParams(decl *sitter.Node, source []byte) []string {
	params := []string{}
	walkTree(decl, func(n *sitter.Node) bool {
		if classify(n).kind != extraction.KindParameter {
			return true
		}
		if isVoidParam(n, source) {
			return true
		}
		name := paramName(n.ChildByFieldName("declarator"), source)
		if name == "" {
			name = normalizedText(n, source)
		}
		params = append(params, name)
		return true
	})
	return params
}

// isVoidParam matches the lone `void` of an empty C-style parameter list.
func isVoidParam(param *sitter.Node, source []byte) bool {
	if param.ChildByFieldName("declarator") != nil {
		return false
	}
	return extractNodeText(param.ChildByFieldName("type"), source) == "void"
}

// paramName digs the declared identifier out of a parameter declarator.
func paramName(decl *sitter.Node, source []byte) string {
	for decl != nil {
		switch decl.Kind() {
		case "identifier", "field_identifier":
			return extractNodeText(decl, source)
		case "pointer_declarator", "array_declarator", "function_declarator":
			decl = decl.ChildByFieldName("declarator")
		case "reference_declarator", "parenthesized_declarator", "attributed_declarator", "variadic_declarator":
			decl = firstNamedChild(decl)
		default:
			// abstract declarators carry no name
			return ""
		}
	}
	return ""
}
