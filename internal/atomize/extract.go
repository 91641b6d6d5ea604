package atomize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m-gris/atomyst/internal/parser"
)

// ErrDefinitionNotFound is returned by ExtractOne when the named
// definition does not exist at the module's top level.
var ErrDefinitionNotFound = errors.New("definition not found")

// ProjectURL appears in the provenance block of generated index files.
const ProjectURL = "https://github.com/m-gris/atomyst"

// rationale is the short provenance text embedded in generated
// __init__.py docstrings.
const rationale = "Large files are hostile to AI agents—they read everything to edit anything.\n" +
	"One definition per file. Atomic edits. No collisions.\n" +
	"`tree src/` reveals the architecture at a glance.\n"

// Options tunes extraction behavior.
type Options struct {
	// KindPrefix prepends a kind tag (class_, def_, ...) to generated
	// filenames.
	KindPrefix bool

	// KeepPragmas keeps tool pragma comments in replicated headers.
	KeepPragmas bool

	// Now supplies timestamps for provenance metadata. Defaults to
	// time.Now; tests inject a fixed clock.
	Now func() time.Time
}

// Extractor carves definitions out of Python source files.
type Extractor struct {
	parser *parser.Parser
	opts   Options
}

// NewExtractor creates an extractor around an explicitly injected parser
// instance.
func NewExtractor(p *parser.Parser, opts Options) *Extractor {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Extractor{parser: p, opts: opts}
}

// FindCommentStart scans backward from a definition's 1-indexed start
// line over contiguous comment lines, so comments immediately above a
// definition travel with it. A blank line stops the scan: comments
// separated by a blank line stay orphaned in the remainder.
func FindCommentStart(src *SourceIndex, startLine int) int {
	idx := startLine
	for idx > 1 {
		stripped := strings.TrimSpace(src.Line(idx - 1))
		if strings.HasPrefix(stripped, "#") {
			idx--
			continue
		}
		break
	}
	return idx
}

var relativeFromPattern = regexp.MustCompile(`^(\s*from\s+)(\.+)`)

// AdjustRelativeImports adds depthDelta extra leading dots to every
// relative from-import, for extracted files living depthDelta directory
// levels deeper than their source. Absolute imports are untouched;
// depthDelta 0 is a strict no-op.
func AdjustRelativeImports(lines []string, depthDelta int) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	if depthDelta <= 0 {
		return out
	}

	extra := strings.Repeat(".", depthDelta)
	for i, line := range out {
		out[i] = relativeFromPattern.ReplaceAllString(line, "${1}"+extra+"${2}")
	}
	return out
}

// ExtractOne extracts a single named definition. The result carries the
// new file's content and the remainder: the original source with the
// definition's comment-adjusted line range removed and every other line
// preserved byte-for-byte.
func (e *Extractor) ExtractOne(source, targetName string, depthDelta int) (*ExtractionResult, error) {
	mod, err := e.parser.Parse([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	src := NewSourceIndex(source)
	defs := Locate(mod)

	var target *Definition
	for i := range defs {
		if defs[i].Name == targetName {
			target = &defs[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrDefinitionNotFound, targetName)
	}

	header := SliceHeaderWithOptions(src.Lines(), HeaderOptions{KeepPragmas: e.opts.KeepPragmas})
	headerLines := AdjustRelativeImports(header.Lines, depthDelta)

	actualStart := FindCommentStart(src, target.StartLine)
	extractedText := src.Slice(actualStart, target.EndLine)

	siblings := FindSiblingReferences(defs, *target, extractedText)
	content := assembleFile(header, headerLines, GenerateImportLines(siblings), nil, extractedText)

	return &ExtractionResult{
		Extracted: OutputFile{
			RelativePath: e.fileName(*target),
			Content:      content,
		},
		Remainder: src.Without(actualStart, target.EndLine),
	}, nil
}

// Plan computes the full batch-mode atomization plan: one file per
// definition, an optional shared constants file, and the __init__.py
// index re-exporting every extracted name.
//
// A module with zero top-level definitions yields an empty plan, not an
// error.
func (e *Extractor) Plan(source, sourceName string) (*AtomizePlan, error) {
	mod, err := e.parser.Parse([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	src := NewSourceIndex(source)
	defs := Locate(mod)

	plan := &AtomizePlan{
		PlanID:      uuid.NewString(),
		SourceName:  sourceName,
		Definitions: defs,
	}
	if len(defs) == 0 {
		return plan, nil
	}

	header := SliceHeaderWithOptions(src.Lines(), HeaderOptions{KeepPragmas: e.opts.KeepPragmas})
	constants := ModuleConstants(mod, src)
	classifications := ClassifyModuleBindings(mod, src)

	centralized, replicated := partitionBindings(constants, classifications, plan)

	for _, def := range defs {
		actualStart := FindCommentStart(src, def.StartLine)
		extractedText := src.Slice(actualStart, def.EndLine)

		siblings := FindSiblingReferences(defs, def, extractedText)
		importLines := GenerateImportLines(siblings)
		if refs := FindConstantReferences(names(centralized), extractedText); len(refs) > 0 {
			importLines = append(importLines, GenerateConstantImportLine(refs))
		}

		var inline []string
		for _, binding := range replicated {
			if containsWord(extractedText, binding.Name) {
				inline = append(inline, binding.SourceText)
			}
		}

		content := assembleFile(header, header.Lines, importLines, inline, extractedText)
		plan.OutputFiles = append(plan.OutputFiles, OutputFile{
			RelativePath: e.fileName(def),
			Content:      content,
		})
	}

	if len(centralized) > 0 {
		plan.OutputFiles = append(plan.OutputFiles, buildConstantsFile(header, centralized))
	}
	plan.OutputFiles = append(plan.OutputFiles, e.buildIndexFile(defs, header, sourceName))

	plan.CyclicSiblings = SiblingCycles(defs, src)
	for _, cycle := range plan.CyclicSiblings {
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("circular sibling references: %s", strings.Join(cycle, " <-> ")))
	}

	return plan, nil
}

// partitionBindings splits module-level bindings by classification
// strategy. Replication is driven by the classifications, which also
// cover bindings the constants scan excludes (logger acquisitions).
// Warn-classified bindings are centralized but surfaced as warnings.
func partitionBindings(constants []ModuleConstant, classifications []BindingClassification, plan *AtomizePlan) (centralized []ModuleConstant, replicated []BindingClassification) {
	strategyByName := map[string]BindingClassification{}
	for _, c := range classifications {
		strategyByName[c.Name] = c
		if c.Strategy == ReplicatePerFile {
			replicated = append(replicated, c)
		}
	}

	for _, constant := range constants {
		c, ok := strategyByName[constant.Name]
		if !ok {
			centralized = append(centralized, constant)
			continue
		}
		switch c.Strategy {
		case ReplicatePerFile:
		case Warn:
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("%s: %s", c.Name, c.Reason))
			centralized = append(centralized, constant)
		default:
			centralized = append(centralized, constant)
		}
	}
	return centralized, replicated
}

func names(constants []ModuleConstant) []string {
	out := make([]string, 0, len(constants))
	for _, c := range constants {
		out = append(out, c.Name)
	}
	return out
}

// assembleFile builds an extracted file: condensed docstring, header,
// synthesized imports, replicated bindings, blank separator, then the
// definition text with leading blank lines trimmed.
func assembleFile(header Header, headerLines, importLines, inlineBindings []string, extractedText string) string {
	var b strings.Builder

	if summary := docstringSummary(header.DocstringText); summary != "" {
		b.WriteString(`"""` + summary + `"""` + "\n")
	}
	for _, line := range headerLines {
		b.WriteString(line)
	}
	for _, line := range importLines {
		b.WriteString(line)
	}
	for _, binding := range inlineBindings {
		b.WriteString(binding + "\n")
	}

	b.WriteString("\n\n")
	b.WriteString(strings.TrimLeft(extractedText, "\n"))

	return b.String()
}

// buildConstantsFile emits the shared _constants.py holding every
// centralized binding.
func buildConstantsFile(header Header, constants []ModuleConstant) OutputFile {
	var b strings.Builder
	b.WriteString(`"""Shared constants extracted by atomyst."""` + "\n")
	for _, line := range header.Lines {
		b.WriteString(line)
	}
	b.WriteString("\n")
	for _, c := range constants {
		b.WriteString(c.SourceText + "\n")
	}
	return OutputFile{RelativePath: "_constants.py", Content: b.String()}
}

// buildIndexFile emits the __init__.py re-exporting every extracted
// name, with the original module docstring and a provenance block.
func (e *Extractor) buildIndexFile(defs []Definition, header Header, sourceName string) OutputFile {
	var b strings.Builder

	body := docstringBody(header.DocstringText)
	if body == "" {
		body = "Auto-generated by atomyst."
	}

	b.WriteString(`"""` + body + "\n\n")
	b.WriteString("---\n")
	b.WriteString(fmt.Sprintf("atomyst <%s>\n", ProjectURL))
	b.WriteString(fmt.Sprintf("Source: %s | %s\n\n", sourceName, e.opts.Now().UTC().Format(time.RFC3339)))
	b.WriteString(rationale)
	b.WriteString(`"""` + "\n\n")

	for _, def := range defs {
		b.WriteString(fmt.Sprintf("from .%s import %s\n", e.fileStem(def), def.Name))
	}

	b.WriteString("\n__all__ = [\n")
	for _, def := range defs {
		b.WriteString(fmt.Sprintf("    %q,\n", def.Name))
	}
	b.WriteString("]\n")

	return OutputFile{RelativePath: "__init__.py", Content: b.String()}
}

func (e *Extractor) fileStem(def Definition) string {
	stem := ToSnakeCase(def.Name)
	if e.opts.KindPrefix {
		stem = def.Kind.FilePrefix() + stem
	}
	return stem
}

func (e *Extractor) fileName(def Definition) string {
	return e.fileStem(def) + ".py"
}

// docstringBody strips the triple-quote delimiters from a captured
// module docstring and trims trailing whitespace.
func docstringBody(docstring string) string {
	if docstring == "" {
		return ""
	}
	body := strings.TrimSpace(docstring)
	for _, delim := range []string{`"""`, "'''"} {
		body = strings.TrimPrefix(body, delim)
		body = strings.TrimSuffix(body, delim)
	}
	return strings.TrimRight(body, " \t\n")
}

// docstringSummary returns the first non-empty line of a module
// docstring, used as the condensed docstring of extracted files.
func docstringSummary(docstring string) string {
	for _, line := range strings.Split(docstringBody(docstring), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
