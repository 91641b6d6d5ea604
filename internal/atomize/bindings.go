package atomize

import (
	"strings"

	"github.com/m-gris/atomyst/internal/parser"
)

// ClassifyBinding decides whether a module-level binding may be
// centralized into a shared constants file or must be replicated into
// every extracted file.
//
// The classification is a pure function of the right-hand-side
// expression shape: any reference to __name__ or __file__ anywhere in
// the tree forces per-file replication; a top-level mutable collection
// literal gets a warning; everything else, including annotation-only
// declarations with no right-hand side, is a plain constant.
func ClassifyBinding(name string, rhs *parser.Expr, sourceText string) BindingClassification {
	c := BindingClassification{Name: name, SourceText: sourceText}

	if rhs != nil {
		if rhs.References("__name__") {
			c.Strategy = ReplicatePerFile
			if isLoggerAcquisition(rhs) {
				c.Reason = "logger bound to __name__: each extracted file needs its own"
			} else {
				c.Reason = "depends on __name__"
			}
			return c
		}
		if rhs.References("__file__") {
			c.Strategy = ReplicatePerFile
			c.Reason = "depends on __file__"
			return c
		}

		switch rhs.Kind {
		case parser.ExprDict, parser.ExprList, parser.ExprSet:
			c.Strategy = Warn
			c.Reason = "mutable collection: shared state semantics unclear"
			return c
		}
	}

	c.Strategy = Centralize
	c.Reason = "simple constant"
	return c
}

// ClassifyModuleBindings classifies every simple top-level assignment of
// a parsed module, in source order.
func ClassifyModuleBindings(mod *parser.Module, src *SourceIndex) []BindingClassification {
	if mod == nil {
		return nil
	}

	var out []BindingClassification
	for _, stmt := range mod.Statements {
		switch stmt.Kind {
		case parser.KindAssign, parser.KindAnnAssign:
		default:
			continue
		}
		if stmt.Target == "" || isDunder(stmt.Target) {
			continue
		}
		text := strings.TrimRight(src.Slice(stmt.Loc.StartLine, stmt.Loc.EndLine), "\n")
		out = append(out, ClassifyBinding(stmt.Target, stmt.Value, text))
	}
	return out
}
