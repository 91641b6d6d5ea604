package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// convertImport converts import_statement, future_import_statement, and
// import_from_statement nodes.
//
// tree-sitter grammar shapes:
//
//	import_statement:      "import", (dotted_name | aliased_import)...
//	import_from_statement: "from", (dotted_name | relative_import),
//	                       "import", (dotted_name | aliased_import |
//	                       wildcard_import)...
//	relative_import:       import_prefix (dots), optional dotted_name
func (p *Parser) convertImport(node *sitter.Node, source []byte) (Statement, bool) {
	stmt := Statement{Loc: nodeLocation(node)}
	imp := &ImportStatement{Loc: stmt.Loc}

	switch node.Kind() {
	case "import_statement":
		stmt.Kind = KindImport
		imp.Names = collectImportNames(node, source)

	case "future_import_statement":
		stmt.Kind = KindImportFrom
		imp.Module = "__future__"
		imp.Names = collectImportNames(node, source)

	case "import_from_statement":
		stmt.Kind = KindImportFrom
		moduleNode := node.ChildByFieldName("module_name")
		if moduleNode != nil {
			switch moduleNode.Kind() {
			case "dotted_name":
				imp.Module = nodeText(moduleNode, source)
			case "relative_import":
				imp.Level, imp.Module = splitRelativeImport(moduleNode, source)
			}
		}
		imp.Names = collectImportNames(node, source)
		imp.Star = hasWildcard(node)

	default:
		return Statement{Kind: KindOther, Loc: stmt.Loc}, true
	}

	stmt.Import = imp
	return stmt, true
}

// collectImportNames gathers the imported symbols of an import statement,
// skipping the statement's own module path for from-imports.
func collectImportNames(node *sitter.Node, source []byte) []ImportAlias {
	names := []ImportAlias{}
	moduleNode := node.ChildByFieldName("module_name")

	sawImportKeyword := node.Kind() == "import_statement"
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))

		if !child.IsNamed() {
			if nodeText(child, source) == "import" {
				sawImportKeyword = true
			}
			continue
		}
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}
		if !sawImportKeyword {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			names = append(names, ImportAlias{
				Name: nodeText(child, source),
				Loc:  nodeLocation(child),
			})
		case "aliased_import":
			names = append(names, ImportAlias{
				Name:   fieldText(child, "name", source),
				AsName: fieldText(child, "alias", source),
				Loc:    nodeLocation(child),
			})
		}
	}

	return names
}

// splitRelativeImport separates the leading dots from the module path of
// a relative_import node.
func splitRelativeImport(node *sitter.Node, source []byte) (level int, module string) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "import_prefix":
			level = strings.Count(nodeText(child, source), ".")
		case "dotted_name":
			module = nodeText(child, source)
		}
	}
	return level, module
}

func hasWildcard(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(uint(i)).Kind() == "wildcard_import" {
			return true
		}
	}
	return false
}
