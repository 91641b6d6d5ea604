package atomize

import "strings"

// SourceIndex wraps source text as a random-access array of lines with
// their original line endings preserved, so slices re-concatenate
// byte-for-byte.
type SourceIndex struct {
	lines []string
}

// NewSourceIndex splits source into newline-preserving lines.
func NewSourceIndex(source string) *SourceIndex {
	if source == "" {
		return &SourceIndex{lines: []string{}}
	}

	var lines []string
	rest := source
	for rest != "" {
		idx := strings.IndexByte(rest, '\n')
		if idx < 0 {
			lines = append(lines, rest)
			break
		}
		lines = append(lines, rest[:idx+1])
		rest = rest[idx+1:]
	}

	return &SourceIndex{lines: lines}
}

// Len returns the number of lines.
func (s *SourceIndex) Len() int {
	return len(s.lines)
}

// Lines returns all lines.
func (s *SourceIndex) Lines() []string {
	return s.lines
}

// Line returns the 1-indexed line, including its newline. Out-of-range
// requests return "".
func (s *SourceIndex) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// Slice returns lines start..end (1-indexed, inclusive) joined into one
// string. Bounds are clamped to the file.
func (s *SourceIndex) Slice(start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(s.lines) {
		end = len(s.lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(s.lines[start-1:end], "")
}

// Without returns the full source with lines start..end (1-indexed,
// inclusive) removed, everything else preserved verbatim.
func (s *SourceIndex) Without(start, end int) string {
	var b strings.Builder
	for i, line := range s.lines {
		n := i + 1
		if n >= start && n <= end {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
