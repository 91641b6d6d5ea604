package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/m-gris/atomyst/internal/atomize"
	"github.com/m-gris/atomyst/internal/rewrite"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json, yaml, or markdown)", s)
	}
}

// planDoc is the serialized shape of an atomization plan, shared by the
// JSON and YAML renderers.
type planDoc struct {
	Source      string        `json:"source" yaml:"source"`
	PlanID      string        `json:"plan_id" yaml:"plan_id"`
	Definitions []planDef     `json:"definitions" yaml:"definitions"`
	OutputFiles []planOutFile `json:"output_files" yaml:"output_files"`
	Warnings    []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type planDef struct {
	Name      string `json:"name" yaml:"name"`
	Kind      string `json:"kind" yaml:"kind"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
}

type planOutFile struct {
	Path  string `json:"path" yaml:"path"`
	Lines int    `json:"lines" yaml:"lines"`
}

func toPlanDoc(plan *atomize.AtomizePlan) planDoc {
	doc := planDoc{
		Source:      plan.SourceName,
		PlanID:      plan.PlanID,
		Definitions: []planDef{},
		OutputFiles: []planOutFile{},
		Warnings:    plan.Warnings,
	}
	for _, d := range plan.Definitions {
		doc.Definitions = append(doc.Definitions, planDef{
			Name:      d.Name,
			Kind:      strings.ReplaceAll(d.Kind.String(), " ", "_"),
			StartLine: d.StartLine,
			EndLine:   d.EndLine,
		})
	}
	for _, f := range plan.OutputFiles {
		doc.OutputFiles = append(doc.OutputFiles, planOutFile{
			Path:  f.RelativePath,
			Lines: f.LineCount(),
		})
	}
	return doc
}

// RenderPlan renders an atomization plan in the requested format.
func RenderPlan(plan *atomize.AtomizePlan, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(toPlanDoc(plan), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatYAML:
		data, err := yaml.Marshal(toPlanDoc(plan))
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil

	case FormatMarkdown:
		return renderPlanMarkdown(plan), nil

	default:
		return renderPlanText(plan), nil
	}
}

func renderPlanText(plan *atomize.AtomizePlan) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Found %d definitions in %s:", len(plan.Definitions), plan.SourceName))

	for _, d := range plan.Definitions {
		lines = append(lines, fmt.Sprintf("  %-15s %-40s lines %d-%d", d.Kind, d.Name, d.StartLine, d.EndLine))
	}

	lines = append(lines, fmt.Sprintf("\nWill create %d files:", len(plan.OutputFiles)))
	for _, f := range plan.OutputFiles {
		lines = append(lines, fmt.Sprintf("  %s (%d lines)", f.RelativePath, f.LineCount()))
	}

	for _, w := range plan.Warnings {
		lines = append(lines, "\nwarning: "+w)
	}

	return strings.Join(lines, "\n")
}

func renderPlanMarkdown(plan *atomize.AtomizePlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Atomization plan: %s\n\n", plan.SourceName)

	b.WriteString("| Kind | Name | Lines |\n|------|------|-------|\n")
	for _, d := range plan.Definitions {
		fmt.Fprintf(&b, "| %s | `%s` | %d-%d |\n", d.Kind, d.Name, d.StartLine, d.EndLine)
	}

	fmt.Fprintf(&b, "\n**Output files (%d):**\n\n", len(plan.OutputFiles))
	for _, f := range plan.OutputFiles {
		fmt.Fprintf(&b, "- `%s` (%d lines)\n", f.RelativePath, f.LineCount())
	}

	if len(plan.Warnings) > 0 {
		b.WriteString("\n**Warnings:**\n\n")
		for _, w := range plan.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// rewriteDoc is the serialized shape of a consumer-rewrite report.
type rewriteDoc struct {
	FilesScanned int           `json:"files_scanned" yaml:"files_scanned"`
	FilesChanged []string      `json:"files_changed" yaml:"files_changed"`
	Rewrites     []rewriteEdit `json:"rewrites" yaml:"rewrites"`
	Unknown      []unknownDoc  `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

type rewriteEdit struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
	Old  string `json:"old" yaml:"old"`
	New  string `json:"new" yaml:"new"`
}

type unknownDoc struct {
	File string `json:"file" yaml:"file"`
	Name string `json:"name" yaml:"name"`
	Line int    `json:"line" yaml:"line"`
}

func toRewriteDoc(report *rewrite.Report) rewriteDoc {
	doc := rewriteDoc{
		FilesScanned: report.FilesScanned,
		FilesChanged: report.FilesChanged,
		Rewrites:     []rewriteEdit{},
	}
	for _, rw := range report.Rewrites {
		doc.Rewrites = append(doc.Rewrites, rewriteEdit{
			File: rw.FilePath,
			Line: rw.Loc.StartLine,
			Old:  rw.OldText,
			New:  rw.NewText,
		})
	}
	for _, u := range report.Unknown {
		doc.Unknown = append(doc.Unknown, unknownDoc{File: u.File, Name: u.Name, Line: u.Line})
	}
	return doc
}

// RenderRewriteReport renders a consumer-rewrite report.
func RenderRewriteReport(report *rewrite.Report, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(toRewriteDoc(report), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatYAML:
		data, err := yaml.Marshal(toRewriteDoc(report))
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil

	case FormatMarkdown:
		return renderRewriteMarkdown(report), nil

	default:
		return renderRewriteText(report), nil
	}
}

func renderRewriteText(report *rewrite.Report) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Scanned %d files, %d need changes.", report.FilesScanned, len(report.FilesChanged)))

	for _, rw := range report.Rewrites {
		lines = append(lines, fmt.Sprintf("  %s:%d", rw.FilePath, rw.Loc.StartLine))
		lines = append(lines, "    - "+strings.ReplaceAll(rw.OldText, "\n", "\n      "))
		lines = append(lines, "    + "+strings.ReplaceAll(rw.NewText, "\n", "\n      "))
	}

	for _, u := range report.Unknown {
		lines = append(lines, fmt.Sprintf("  review: %s:%d imports %q: origin unknown, left unchanged", u.File, u.Line, u.Name))
	}

	return strings.Join(lines, "\n")
}

func renderRewriteMarkdown(report *rewrite.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Import rewrite report\n\nScanned %d files; %d changed.\n", report.FilesScanned, len(report.FilesChanged))

	if len(report.Rewrites) > 0 {
		b.WriteString("\n| File | Line | New imports |\n|------|------|-------------|\n")
		for _, rw := range report.Rewrites {
			fmt.Fprintf(&b, "| `%s` | %d | `%s` |\n", rw.FilePath, rw.Loc.StartLine, strings.ReplaceAll(rw.NewText, "\n", "; "))
		}
	}

	if len(report.Unknown) > 0 {
		b.WriteString("\n**Needs review:**\n\n")
		for _, u := range report.Unknown {
			fmt.Fprintf(&b, "- `%s:%d` imports `%s`: origin unknown\n", u.File, u.Line, u.Name)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
