package parser

import sitter "github.com/tree-sitter/go-tree-sitter"

// convertExpr maps a tree-sitter expression node onto the simplified Expr
// model. Only the shapes the binding classifier cares about get their own
// kind; everything else becomes ExprOther with its named children
// converted, so tree walks still reach nested names.
func convertExpr(node *sitter.Node, source []byte) *Expr {
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case "identifier":
		return &Expr{Kind: ExprName, Ident: nodeText(node, source)}

	case "attribute":
		e := &Expr{Kind: ExprAttribute, Ident: fieldText(node, "attribute", source)}
		if obj := convertExpr(node.ChildByFieldName("object"), source); obj != nil {
			e.Children = append(e.Children, obj)
		}
		return e

	case "call":
		e := &Expr{Kind: ExprCall}
		if fn := convertExpr(node.ChildByFieldName("function"), source); fn != nil {
			e.Children = append(e.Children, fn)
		}
		if args := node.ChildByFieldName("arguments"); args != nil {
			e.Children = append(e.Children, convertNamedChildren(args, source)...)
		}
		return e

	case "dictionary":
		return &Expr{Kind: ExprDict, Children: convertNamedChildren(node, source)}

	case "list":
		return &Expr{Kind: ExprList, Children: convertNamedChildren(node, source)}

	case "set":
		return &Expr{Kind: ExprSet, Children: convertNamedChildren(node, source)}

	case "binary_operator":
		e := &Expr{Kind: ExprBinOp}
		if left := convertExpr(node.ChildByFieldName("left"), source); left != nil {
			e.Children = append(e.Children, left)
		}
		if right := convertExpr(node.ChildByFieldName("right"), source); right != nil {
			e.Children = append(e.Children, right)
		}
		return e

	case "string", "concatenated_string":
		return &Expr{Kind: ExprString}

	default:
		return &Expr{Kind: ExprOther, Children: convertNamedChildren(node, source)}
	}
}

func convertNamedChildren(node *sitter.Node, source []byte) []*Expr {
	var children []*Expr
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := convertExpr(node.NamedChild(uint(i)), source); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// Walk visits every node of an expression tree in depth-first order,
// stopping early when the visitor returns false.
func (e *Expr) Walk(visitor func(*Expr) bool) bool {
	if e == nil {
		return true
	}
	if !visitor(e) {
		return false
	}
	for _, child := range e.Children {
		if !child.Walk(visitor) {
			return false
		}
	}
	return true
}

// References reports whether any node in the tree is a bare name equal
// to ident.
func (e *Expr) References(ident string) bool {
	found := false
	e.Walk(func(n *Expr) bool {
		if n.Kind == ExprName && n.Ident == ident {
			found = true
			return false
		}
		return true
	})
	return found
}
