package atomize

import (
	"sort"
	"strings"

	"github.com/m-gris/atomyst/internal/parser"
)

// Locate produces the ordered list of named top-level definitions in a
// parsed module: classes, functions, and async functions. Type aliases
// and variable bindings travel through the constants pipeline instead.
//
// Only definitions starting at column 0 are kept; the column check, not
// tree depth, excludes nested definitions, since decorated definitions
// may wrap the real node. A decorated definition's start line is its
// first decorator's line; the end line is always the statement's own end.
func Locate(mod *parser.Module) []Definition {
	if mod == nil {
		return nil
	}

	byName := map[string]int{} // name -> index into defs
	var defs []Definition

	for _, stmt := range mod.Statements {
		kind, ok := definitionKind(stmt.Kind)
		if !ok || stmt.Name == "" || stmt.Loc.StartCol != 0 {
			continue
		}

		start := stmt.Loc.StartLine
		for _, dec := range stmt.Decorators {
			if dec.StartLine < start {
				start = dec.StartLine
			}
		}

		def := Definition{
			Name:      stmt.Name,
			Kind:      kind,
			StartLine: start,
			EndLine:   stmt.Loc.EndLine,
		}

		// Some grammar representations surface a decorated wrapper and
		// its inner definition as separate matches for the same name.
		// Keep only the earliest-starting capture.
		if idx, seen := byName[stmt.Name]; seen {
			if def.StartLine < defs[idx].StartLine {
				defs[idx] = def
			}
			continue
		}
		byName[stmt.Name] = len(defs)
		defs = append(defs, def)
	}

	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].StartLine < defs[j].StartLine
	})

	return defs
}

func definitionKind(k parser.StatementKind) (DefinitionKind, bool) {
	switch k {
	case parser.KindClassDef:
		return KindClass, true
	case parser.KindFunctionDef:
		return KindFunction, true
	case parser.KindAsyncFunctionDef:
		return KindAsyncFunction, true
	default:
		return 0, false
	}
}

// ModuleConstants scans top-level assignments and type alias statements
// with a single simple-name target. Dunder names, augmented assignments,
// and logger-acquisition bindings are excluded by construction; the
// latter belong to the binding classifier, which replicates them per
// file.
func ModuleConstants(mod *parser.Module, src *SourceIndex) []ModuleConstant {
	if mod == nil {
		return nil
	}

	var constants []ModuleConstant
	for _, stmt := range mod.Statements {
		name := ""
		switch stmt.Kind {
		case parser.KindAssign, parser.KindAnnAssign:
			name = stmt.Target
		case parser.KindTypeAlias:
			name = stmt.Name
		default:
			continue
		}

		if name == "" || isDunder(name) {
			continue
		}
		if isLoggerAcquisition(stmt.Value) {
			continue
		}

		constants = append(constants, ModuleConstant{
			Name:       name,
			Loc:        stmt.Loc,
			SourceText: strings.TrimRight(src.Slice(stmt.Loc.StartLine, stmt.Loc.EndLine), "\n"),
		})
	}

	return constants
}

// isDunder reports whether a name both starts and ends with double
// underscores (__all__, __version__, ...).
func isDunder(name string) bool {
	return len(name) >= 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// isLoggerAcquisition matches the X.getLogger(...) call shape.
func isLoggerAcquisition(e *parser.Expr) bool {
	if e == nil || e.Kind != parser.ExprCall || len(e.Children) == 0 {
		return false
	}
	fn := e.Children[0]
	return fn.Kind == parser.ExprAttribute && fn.Ident == "getLogger"
}
