package parser

// Location identifies a span of source text.
//
// Lines are 1-indexed and end-inclusive; columns are 0-indexed and
// end-exclusive. This is the single convention used throughout atomyst;
// tree-sitter's 0-indexed rows are converted at the parse boundary and
// nowhere else.
type Location struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// StatementKind classifies a top-level statement.
type StatementKind int

const (
	KindOther StatementKind = iota
	KindClassDef
	KindFunctionDef
	KindAsyncFunctionDef
	KindAssign
	KindAnnAssign
	KindAugAssign
	KindTypeAlias
	KindImport
	KindImportFrom
)

// Statement is one direct child of the module body.
type Statement struct {
	Kind StatementKind
	Loc  Location

	// Name is set for class/function/type-alias statements.
	Name string

	// Decorators holds the location of each decorator, in source order.
	// Only set for decorated class/function definitions.
	Decorators []Location

	// Target is the assignment target for Assign/AnnAssign/AugAssign.
	// Empty when the target is not a single simple name.
	Target string

	// Value is the right-hand-side expression for assignments and type
	// aliases. Nil for annotation-only declarations (x: int).
	Value *Expr

	// Import is set for Import/ImportFrom statements.
	Import *ImportStatement
}

// ExprKind classifies a node of the right-hand-side expression tree.
// The set is deliberately closed and small: the binding classifier only
// needs to recognize names, collection literals, and the shapes that can
// contain them.
type ExprKind int

const (
	ExprOther ExprKind = iota
	ExprName
	ExprAttribute
	ExprCall
	ExprDict
	ExprList
	ExprSet
	ExprBinOp
	ExprString
)

// Expr is a node in a simplified expression tree.
type Expr struct {
	Kind ExprKind

	// Ident is the identifier text for ExprName, or the attribute name
	// for ExprAttribute.
	Ident string

	Children []*Expr
}

// ImportAlias is one imported symbol within an import statement.
type ImportAlias struct {
	Name   string
	AsName string // empty when no alias
	Loc    Location
}

// ImportStatement is either a plain import or a from-import.
type ImportStatement struct {
	// Module is the dotted module path. Empty only for bare relative
	// imports (from . import x), where Level > 0.
	Module string

	// Level is the number of leading dots. Zero means absolute.
	Level int

	Names []ImportAlias

	// Star is true for "from X import *".
	Star bool

	Loc Location
}

// Module is a parsed source file: its ordered top-level statements.
type Module struct {
	Statements []Statement
}

// ParseError is a structured parse failure.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
