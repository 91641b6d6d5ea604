package rewrite

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/m-gris/atomyst/internal/atomize"
	"github.com/m-gris/atomyst/internal/parser"
)

// FileReader hands source text to the rewriter; the rewriter itself
// never touches the filesystem.
type FileReader func(path string) ([]byte, error)

// Rewriter redirects consumer imports after a module has been atomized.
type Rewriter struct {
	parser   *parser.Parser
	readFile FileReader

	// Progress, when set, is called once per candidate file processed.
	Progress func()
}

// NewRewriter creates a rewriter around an injected parser and reader.
func NewRewriter(p *parser.Parser, readFile FileReader) *Rewriter {
	return &Rewriter{parser: p, readFile: readFile}
}

// RewriteConsumers scans candidate files for from-imports of the
// atomized module, classifies every imported name, and produces the
// rewrites needed to point each name at its true origin.
//
// Wildcard imports fail the entire operation immediately with a
// *StarImportError: no rewrites are produced for any file. An unreadable
// or unparseable candidate is skipped, not fatal.
func (r *Rewriter) RewriteConsumers(atomizedModulePath string, defined map[string]struct{}, reexports map[string]string, candidates []string) (*Report, error) {
	report := &Report{}

	for _, path := range candidates {
		if r.Progress != nil {
			r.Progress()
		}
		if filepath.Clean(path) == filepath.Clean(atomizedModulePath) {
			continue
		}

		source, err := r.readFile(path)
		if err != nil {
			continue
		}
		mod, err := r.parser.Parse(source)
		if err != nil {
			continue
		}
		report.FilesScanned++

		src := atomize.NewSourceIndex(string(source))
		changed := false

		for _, stmt := range mod.Statements {
			if stmt.Kind != parser.KindImportFrom || stmt.Import == nil {
				continue
			}
			imp := stmt.Import
			if !targetsModule(imp, path, atomizedModulePath) {
				continue
			}
			// The wildcard check is scoped to imports of the atomized
			// module on purpose: a star import of some unrelated module
			// never names atomized definitions, so it cannot invalidate
			// the rewrite.
			if imp.Star {
				return nil, &StarImportError{File: path, Line: imp.Loc.StartLine}
			}

			consumer := toConsumerImport(imp)
			rw, unknown := r.planRewrite(path, src, consumer, imp, defined, reexports)
			report.Unknown = append(report.Unknown, unknown...)
			if rw != nil {
				report.Rewrites = append(report.Rewrites, *rw)
				changed = true
			}
		}

		if changed {
			report.FilesChanged = append(report.FilesChanged, path)
		}
	}

	return report, nil
}

// targetsModule decides whether an import statement's module reference
// resolves to the atomized module, either by relative-dot resolution
// against the consumer's own location or by absolute dotted-path suffix
// match.
func targetsModule(imp *parser.ImportStatement, consumerPath, atomizedModulePath string) bool {
	target := filepath.Clean(atomizedModulePath)

	if imp.Level > 0 {
		if imp.Module == "" {
			// "from . import x" imports names out of the package, not
			// the module; it cannot address a sibling module's
			// definitions directly.
			return false
		}
		dir := filepath.Dir(consumerPath)
		for i := 1; i < imp.Level; i++ {
			dir = filepath.Dir(dir)
		}
		resolved := filepath.Clean(filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(imp.Module, ".", "/"))+".py"))
		return resolved == target
	}

	if imp.Module == "" {
		return false
	}
	suffix := filepath.FromSlash(strings.ReplaceAll(imp.Module, ".", "/")) + ".py"
	return target == suffix || strings.HasSuffix(target, string(filepath.Separator)+suffix)
}

func toConsumerImport(imp *parser.ImportStatement) ConsumerImport {
	ci := ConsumerImport{
		TargetModule: moduleRef(imp),
		Loc:          imp.Loc,
		IsRelative:   imp.Level > 0,
		HasStar:      imp.Star,
	}
	for _, alias := range imp.Names {
		name := alias.Name
		if alias.AsName != "" {
			name = alias.AsName
		}
		ci.Names = append(ci.Names, ImportName{
			Name:         name,
			OriginalName: alias.Name,
			HasAlias:     alias.AsName != "",
		})
	}
	return ci
}

// moduleRef reconstructs the module reference as written: leading dots
// plus the dotted path.
func moduleRef(imp *parser.ImportStatement) string {
	return strings.Repeat(".", imp.Level) + imp.Module
}

// planRewrite classifies each imported name and, when any name needs a
// new origin, produces the replacement statement group: one from-import
// per distinct destination module, alias syntax preserved.
func (r *Rewriter) planRewrite(path string, src *atomize.SourceIndex, consumer ConsumerImport, imp *parser.ImportStatement, defined map[string]struct{}, reexports map[string]string) (*Rewrite, []UnknownName) {
	var unknown []UnknownName

	// Names staying on the original module: genuine definitions plus
	// unknowns (conservatively kept, flagged for review).
	var keep []ImportName
	origins := []string{}
	byOrigin := map[string][]ImportName{}

	needsRewrite := false
	for _, name := range consumer.Names {
		if _, ok := defined[name.OriginalName]; ok {
			keep = append(keep, name)
			continue
		}
		if origin, ok := reexports[name.OriginalName]; ok {
			if _, seen := byOrigin[origin]; !seen {
				origins = append(origins, origin)
			}
			byOrigin[origin] = append(byOrigin[origin], name)
			needsRewrite = true
			continue
		}
		keep = append(keep, name)
		unknown = append(unknown, UnknownName{File: path, Name: name.OriginalName, Line: consumer.Loc.StartLine})
	}

	if !needsRewrite {
		return nil, unknown
	}

	var stmts []string
	if len(keep) > 0 {
		stmts = append(stmts, importStatement(consumer.TargetModule, keep))
	}
	for _, origin := range origins {
		stmts = append(stmts, importStatement(origin, byOrigin[origin]))
	}

	old := spanText(src, consumer.Loc)
	return &Rewrite{
		FilePath: path,
		Loc:      consumer.Loc,
		OldText:  old,
		NewText:  strings.Join(stmts, "\n"),
	}, unknown
}

// importStatement renders "from <module> import a, b as c".
func importStatement(module string, names []ImportName) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n.HasAlias {
			parts = append(parts, fmt.Sprintf("%s as %s", n.OriginalName, n.Name))
		} else {
			parts = append(parts, n.OriginalName)
		}
	}
	return fmt.Sprintf("from %s import %s", module, strings.Join(parts, ", "))
}

// spanText extracts the exact text of a statement's location span.
func spanText(src *atomize.SourceIndex, loc parser.Location) string {
	if loc.StartLine == loc.EndLine {
		line := src.Line(loc.StartLine)
		return sliceCols(line, loc.StartCol, loc.EndCol)
	}

	var b strings.Builder
	b.WriteString(sliceCols(src.Line(loc.StartLine), loc.StartCol, len(src.Line(loc.StartLine))))
	for n := loc.StartLine + 1; n < loc.EndLine; n++ {
		b.WriteString(src.Line(n))
	}
	b.WriteString(sliceCols(src.Line(loc.EndLine), 0, loc.EndCol))
	return b.String()
}

func sliceCols(line string, start, end int) string {
	if start > len(line) {
		start = len(line)
	}
	if end > len(line) {
		end = len(line)
	}
	if start > end {
		return ""
	}
	return line[start:end]
}
