package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m-gris/atomyst/internal/atomize"
)

// FileWriter persists rewritten content. Implementations must write
// atomically (temp file in the same directory, then rename).
type FileWriter func(path string, content []byte) error

// ApplyToContent applies a file's rewrites to its content. Rewrites are
// sorted by descending start position first, so an edit never shifts the
// coordinates of one applied after it. A multi-line span collapses onto
// its first line; intermediate and last lines are removed.
func ApplyToContent(content string, rewrites []Rewrite) string {
	ordered := append([]Rewrite(nil), rewrites...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Loc.StartLine != ordered[j].Loc.StartLine {
			return ordered[i].Loc.StartLine > ordered[j].Loc.StartLine
		}
		return ordered[i].Loc.StartCol > ordered[j].Loc.StartCol
	})

	for _, rw := range ordered {
		content = applyOne(content, rw)
	}
	return content
}

func applyOne(content string, rw Rewrite) string {
	src := atomize.NewSourceIndex(content)
	lines := src.Lines()
	loc := rw.Loc

	if loc.StartLine < 1 || loc.EndLine > len(lines) {
		return content
	}

	startLine := lines[loc.StartLine-1]
	endLine := lines[loc.EndLine-1]

	startCol := loc.StartCol
	if startCol > len(startLine) {
		startCol = len(startLine)
	}
	endCol := loc.EndCol
	if endCol > len(endLine) {
		endCol = len(endLine)
	}

	var b strings.Builder
	for _, line := range lines[:loc.StartLine-1] {
		b.WriteString(line)
	}
	b.WriteString(startLine[:startCol])
	b.WriteString(rw.NewText)
	b.WriteString(endLine[endCol:])
	for _, line := range lines[loc.EndLine:] {
		b.WriteString(line)
	}
	return b.String()
}

// Apply groups a report's rewrites per file, applies each file's set in
// descending order, and persists the result through the injected writer.
// Files are independent, but writes to one path are never issued twice
// concurrently because grouping serializes them.
func Apply(report *Report, readFile FileReader, writeFile FileWriter) error {
	byFile := map[string][]Rewrite{}
	var order []string
	for _, rw := range report.Rewrites {
		if _, seen := byFile[rw.FilePath]; !seen {
			order = append(order, rw.FilePath)
		}
		byFile[rw.FilePath] = append(byFile[rw.FilePath], rw)
	}

	for _, path := range order {
		source, err := readFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		updated := ApplyToContent(string(source), byFile[path])
		if err := writeFile(path, []byte(updated)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
