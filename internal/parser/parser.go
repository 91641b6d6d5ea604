package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Parser parses Python source into the typed statement model consumed by
// the atomize and rewrite packages. It holds the grammar explicitly so
// tests can construct a hermetic instance; there is no package-level
// parser state.
type Parser struct {
	language *sitter.Language
}

// New creates a Python parser backed by the native tree-sitter bindings.
func New() *Parser {
	return &Parser{
		language: sitter.NewLanguage(python.Language()),
	}
}

// Parse parses source text and returns the module's top-level statements.
// tree-sitter recovers from most syntax errors, so a damaged file yields
// whatever statements were recognizable rather than failing outright.
func (p *Parser) Parse(source []byte) (*Module, error) {
	tsParser := sitter.NewParser()
	defer tsParser.Close()

	tsParser.SetLanguage(p.language)

	tree := tsParser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Line: 1, Column: 0, Message: "failed to parse source"}
	}
	defer tree.Close()

	root := tree.RootNode()

	mod := &Module{Statements: []Statement{}}
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		if stmt, ok := p.convertStatement(child, source); ok {
			mod.Statements = append(mod.Statements, stmt)
		}
	}

	return mod, nil
}

// convertStatement converts one direct child of the module node.
// Unrecognized statements are kept as KindOther so callers can still see
// their source spans.
func (p *Parser) convertStatement(node *sitter.Node, source []byte) (Statement, bool) {
	if node == nil || !node.IsNamed() {
		return Statement{}, false
	}

	stmt := Statement{Kind: KindOther, Loc: nodeLocation(node)}

	switch node.Kind() {
	case "decorated_definition":
		return p.convertDecorated(node, source)

	case "class_definition":
		stmt.Kind = KindClassDef
		stmt.Name = fieldText(node, "name", source)

	case "function_definition":
		stmt.Kind = KindFunctionDef
		if isAsync(node) {
			stmt.Kind = KindAsyncFunctionDef
		}
		stmt.Name = fieldText(node, "name", source)

	case "type_alias_statement":
		stmt.Kind = KindTypeAlias
		stmt.Name = typeAliasName(node, source)
		if right := node.ChildByFieldName("right"); right != nil {
			stmt.Value = convertExpr(right, source)
		}

	case "expression_statement":
		return p.convertExpressionStatement(node, source)

	case "import_statement", "future_import_statement", "import_from_statement":
		return p.convertImport(node, source)
	}

	return stmt, true
}

// convertDecorated unwraps a decorated_definition: the statement's span
// covers the decorators, and the inner definition supplies kind and name.
func (p *Parser) convertDecorated(node *sitter.Node, source []byte) (Statement, bool) {
	inner := node.ChildByFieldName("definition")
	if inner == nil {
		return Statement{Kind: KindOther, Loc: nodeLocation(node)}, true
	}

	stmt, ok := p.convertStatement(inner, source)
	if !ok {
		return Statement{}, false
	}

	// The statement spans from the first decorator through the body end.
	stmt.Loc = nodeLocation(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == "decorator" {
			stmt.Decorators = append(stmt.Decorators, nodeLocation(child))
		}
	}

	return stmt, true
}

// convertExpressionStatement handles module-level assignments. Other
// expression statements (docstrings, bare calls) stay KindOther.
func (p *Parser) convertExpressionStatement(node *sitter.Node, source []byte) (Statement, bool) {
	stmt := Statement{Kind: KindOther, Loc: nodeLocation(node)}

	inner := node.Child(0)
	if inner == nil {
		return stmt, true
	}

	switch inner.Kind() {
	case "assignment":
		left := inner.ChildByFieldName("left")
		stmt.Target = simpleTargetName(left, source)
		if inner.ChildByFieldName("type") != nil {
			stmt.Kind = KindAnnAssign
		} else {
			stmt.Kind = KindAssign
		}
		if right := inner.ChildByFieldName("right"); right != nil {
			stmt.Value = convertExpr(right, source)
		}

	case "augmented_assignment":
		stmt.Kind = KindAugAssign
		stmt.Target = simpleTargetName(inner.ChildByFieldName("left"), source)
		if right := inner.ChildByFieldName("right"); right != nil {
			stmt.Value = convertExpr(right, source)
		}
	}

	return stmt, true
}

// simpleTargetName returns the identifier for a single-name assignment
// target, or "" for tuple/attribute/subscript targets.
func simpleTargetName(node *sitter.Node, source []byte) string {
	if node == nil || node.Kind() != "identifier" {
		return ""
	}
	return nodeText(node, source)
}

// typeAliasName extracts the alias name from "type X = ...".
func typeAliasName(node *sitter.Node, source []byte) string {
	left := node.ChildByFieldName("left")
	if left == nil {
		return ""
	}
	// The left side is a type node wrapping a bare identifier.
	if left.Kind() == "identifier" {
		return nodeText(left, source)
	}
	if left.NamedChildCount() > 0 {
		first := left.NamedChild(0)
		if first != nil && first.Kind() == "identifier" {
			return nodeText(first, source)
		}
	}
	return nodeText(left, source)
}

// isAsync reports whether a function_definition carries the async keyword.
func isAsync(node *sitter.Node) bool {
	first := node.Child(0)
	return first != nil && first.Kind() == "async"
}

// nodeLocation converts tree-sitter coordinates to the package convention:
// 1-indexed inclusive lines, 0-indexed end-exclusive columns.
func nodeLocation(node *sitter.Node) Location {
	start := node.StartPosition()
	end := node.EndPosition()

	endLine := int(end.Row) + 1
	if end.Column == 0 && endLine > int(start.Row)+1 {
		// Node ends exactly at a line boundary; the last content line
		// is the previous one.
		endLine--
	}

	return Location{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column),
		EndLine:   endLine,
		EndCol:    int(end.Column),
	}
}

// nodeText extracts the source text covered by a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// fieldText extracts the text of a named field child.
func fieldText(node *sitter.Node, field string, source []byte) string {
	return nodeText(node.ChildByFieldName(field), source)
}
