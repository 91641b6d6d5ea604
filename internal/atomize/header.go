package atomize

import "strings"

// HeaderOptions tunes header slicing.
type HeaderOptions struct {
	// KeepPragmas keeps tool pragma comments (# mypy:, # noqa, ...) in
	// the header instead of dropping them.
	KeepPragmas bool
}

// headerState is the immutable state record threaded through the
// line-by-line fold. Each transition returns a new state; nothing is
// mutated in place, which keeps the machine testable on synthetic line
// sequences.
type headerState struct {
	opts HeaderOptions

	done bool

	inDocstring    bool
	docstringDelim string
	docstringLines []string

	inTypeChecking     bool
	typeCheckingIndent int

	inImports  bool
	parenDepth int

	header           []string
	skippedDocstring bool
	skippedPragmas   bool
	docstringText    string
}

// SliceHeader scans lines left to right and returns the header region:
// shebang, module docstring, pragmas, imports, and a trailing
// TYPE_CHECKING block. Kept lines are preserved byte-for-byte.
func SliceHeader(lines []string) Header {
	return SliceHeaderWithOptions(lines, HeaderOptions{})
}

// SliceHeaderWithOptions is SliceHeader with explicit options.
func SliceHeaderWithOptions(lines []string, opts HeaderOptions) Header {
	state := headerState{opts: opts}
	for _, line := range lines {
		state = stepHeader(state, line)
		if state.done {
			break
		}
	}

	// An unterminated docstring at EOF: keep what was captured so the
	// content is not silently lost.
	if state.inDocstring && state.inImports {
		state.header = append(state.header, state.docstringLines...)
	}

	return Header{
		Lines:            state.header,
		SkippedDocstring: state.skippedDocstring,
		SkippedPragmas:   state.skippedPragmas,
		DocstringText:    state.docstringText,
	}
}

// stepHeader is the single state-transition function of the header scan.
func stepHeader(s headerState, line string) headerState {
	stripped := strings.TrimSpace(line)

	// 1. Multi-line docstring in progress.
	if s.inDocstring {
		s.docstringLines = append(s.docstringLines, line)
		if strings.HasSuffix(stripped, s.docstringDelim) {
			return closeDocstring(s)
		}
		return s
	}

	// 2. TYPE_CHECKING block in progress: blank or deeper-indented lines
	// continue it; anything else ends the header, since the block is the
	// last thing a header may contain.
	if s.inTypeChecking {
		if stripped == "" {
			s.header = append(s.header, line)
			return s
		}
		if indentOf(line) > s.typeCheckingIndent {
			s.header = append(s.header, line)
			return s
		}
		s.done = true
		return s
	}

	// 3. TYPE_CHECKING block opens.
	if strings.HasPrefix(stripped, "if TYPE_CHECKING") {
		s.inTypeChecking = true
		s.typeCheckingIndent = indentOf(line)
		s.inImports = true
		s.header = append(s.header, line)
		return s
	}

	// 4. Pre-import region: shebang, docstring opening, pragmas,
	// ordinary comments.
	if !s.inImports && s.parenDepth == 0 {
		if strings.HasPrefix(stripped, "#!") {
			s.header = append(s.header, line)
			return s
		}
		if delim := docstringDelimiter(stripped); delim != "" {
			s.inDocstring = true
			s.docstringDelim = delim
			s.docstringLines = []string{line}
			if closesOnOpeningLine(stripped, delim) {
				return closeDocstring(s)
			}
			return s
		}
		if strings.HasPrefix(stripped, "#") {
			if isPragma(stripped) {
				s.skippedPragmas = true
				if s.opts.KeepPragmas {
					s.header = append(s.header, line)
				}
			}
			// Non-pragma comments before imports are dropped.
			return s
		}
	}

	// 5. Import statement, or continuation of a parenthesized one.
	if strings.HasPrefix(stripped, "import ") || strings.HasPrefix(stripped, "from ") {
		s.inImports = true
		s.header = append(s.header, line)
		s.parenDepth += strings.Count(line, "(") - strings.Count(line, ")")
		return s
	}
	if s.parenDepth > 0 {
		s.header = append(s.header, line)
		s.parenDepth += strings.Count(line, "(") - strings.Count(line, ")")
		return s
	}

	// 6. Blank lines inside the import section are kept.
	if stripped == "" {
		if s.inImports {
			s.header = append(s.header, line)
		}
		return s
	}

	// 7. Any other non-blank line ends the scan. A docstring opening here
	// (after imports) is ordinary code, not a module docstring.
	s.done = true
	return s
}

// closeDocstring finishes a docstring capture. A docstring closed before
// any import is the module docstring and is reported separately; one
// appearing after imports started is kept verbatim in the header.
func closeDocstring(s headerState) headerState {
	s.inDocstring = false
	if s.inImports {
		s.header = append(s.header, s.docstringLines...)
	} else {
		s.docstringText = strings.Join(s.docstringLines, "")
		s.skippedDocstring = true
	}
	s.docstringLines = nil
	return s
}

// docstringDelimiter returns the triple-quote delimiter opening a
// docstring, or "" when the line does not open one.
func docstringDelimiter(stripped string) string {
	for _, delim := range []string{`"""`, "'''"} {
		if strings.HasPrefix(stripped, delim) {
			return delim
		}
	}
	return ""
}

// closesOnOpeningLine reports whether a docstring opened on this line
// also closes on it ("""one-liner""").
func closesOnOpeningLine(stripped, delim string) bool {
	return len(stripped) >= 2*len(delim) && strings.HasSuffix(stripped, delim)
}

// pragmaPrefixes are the recognized tool pragma markers.
var pragmaPrefixes = []string{"mypy:", "type:", "noqa", "pylint:", "ruff:"}

// isPragma reports whether a comment line is a recognized tool pragma,
// with or without a space after the hash.
func isPragma(stripped string) bool {
	body := strings.TrimLeft(strings.TrimPrefix(stripped, "#"), " ")
	for _, prefix := range pragmaPrefixes {
		if strings.HasPrefix(body, prefix) {
			return true
		}
	}
	return false
}

// indentOf counts leading whitespace characters.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
