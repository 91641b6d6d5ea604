package atomize

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/dominikbraun/graph"
)

// wordPattern returns a regexp matching name as a maximal
// alphanumeric/underscore run. \b treats underscore as a word character,
// which matches Python identifier boundaries exactly.
func wordPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// containsWord reports whether text contains name at identifier
// boundaries. This is word-boundary substring matching, not scope
// analysis: occurrences inside string literals false-positive, but no
// syntactic use is ever missed.
func containsWord(text, name string) bool {
	return wordPattern(name).MatchString(text)
}

// FindSiblingReferences returns the names of other top-level definitions
// referenced by the extracted text, in original definition order.
// The target's own name is excluded.
func FindSiblingReferences(defs []Definition, target Definition, extractedText string) []string {
	var refs []string
	for _, def := range defs {
		if def.Name == target.Name {
			continue
		}
		if containsWord(extractedText, def.Name) {
			refs = append(refs, def.Name)
		}
	}
	return refs
}

// FindConstantReferences returns the constant names referenced by the
// extracted text, preserving the order given.
func FindConstantReferences(constantNames []string, extractedText string) []string {
	var refs []string
	for _, name := range constantNames {
		if containsWord(extractedText, name) {
			refs = append(refs, name)
		}
	}
	return refs
}

// GenerateImportLines synthesizes relative imports for sibling
// references: "from .foo import Foo" where foo is the snake_case form
// of Foo.
func GenerateImportLines(names []string) []string {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("from .%s import %s\n", ToSnakeCase(name), name))
	}
	return lines
}

// GenerateConstantImportLine synthesizes a single import for referenced
// constants out of the shared constants file.
func GenerateConstantImportLine(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	line := "from ._constants import " + sorted[0]
	for _, name := range sorted[1:] {
		line += ", " + name
	}
	return line + "\n"
}

// SiblingCycles builds the directed sibling-reference graph and returns
// groups of definitions that reference each other. Extracted files in a
// cycle import each other, which Python resolves only with forward
// references, so the plan surfaces these as warnings.
func SiblingCycles(defs []Definition, src *SourceIndex) [][]string {
	g := graph.New(graph.StringHash, graph.Directed())
	for _, def := range defs {
		_ = g.AddVertex(def.Name)
	}

	for _, def := range defs {
		text := src.Slice(def.StartLine, def.EndLine)
		for _, ref := range FindSiblingReferences(defs, def, text) {
			_ = g.AddEdge(def.Name, ref)
		}
	}

	components, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil
	}

	var cycles [][]string
	for _, component := range components {
		if len(component) > 1 {
			sort.Strings(component)
			cycles = append(cycles, component)
		}
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}
