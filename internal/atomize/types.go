package atomize

import "github.com/m-gris/atomyst/internal/parser"

// DefinitionKind is the kind of a top-level definition.
type DefinitionKind int

const (
	KindClass DefinitionKind = iota
	KindFunction
	KindAsyncFunction
)

// String returns the human-readable kind name used by the renderers.
func (k DefinitionKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindAsyncFunction:
		return "async function"
	default:
		return "unknown"
	}
}

// FilePrefix returns the filename tag used in kind-prefix mode.
func (k DefinitionKind) FilePrefix() string {
	switch k {
	case KindClass:
		return "class_"
	case KindFunction:
		return "def_"
	case KindAsyncFunction:
		return "async_def_"
	default:
		return ""
	}
}

// Definition is a named top-level definition with its line range.
// Lines are 1-indexed and inclusive; StartLine covers decorators when
// the definition is decorated.
type Definition struct {
	Name      string
	Kind      DefinitionKind
	StartLine int
	EndLine   int
}

// ModuleConstant is a simple top-level assignment eligible for
// centralization or replication.
type ModuleConstant struct {
	Name       string
	Loc        parser.Location
	SourceText string
}

// BindingStrategy decides where a module-level binding lives after
// atomization.
type BindingStrategy int

const (
	// Centralize: the binding is a plain constant, safe to pull into a
	// shared constants file.
	Centralize BindingStrategy = iota
	// ReplicatePerFile: the binding depends on module identity
	// (__name__ / __file__) and must be re-created in every extracted file.
	ReplicatePerFile
	// Warn: mutable collection literal; sharing semantics are unclear,
	// flag for the operator instead of deciding.
	Warn
)

func (s BindingStrategy) String() string {
	switch s {
	case Centralize:
		return "centralize"
	case ReplicatePerFile:
		return "replicate-per-file"
	case Warn:
		return "warn"
	default:
		return "unknown"
	}
}

// BindingClassification is the result of classifying one module-level
// binding.
type BindingClassification struct {
	Name       string
	SourceText string
	Strategy   BindingStrategy
	Reason     string
}

// OutputFile is a file to be written. Pure data; the files package does
// the actual I/O.
type OutputFile struct {
	RelativePath string
	Content      string
}

// LineCount returns the number of lines in the file's content.
func (f OutputFile) LineCount() int {
	n := 0
	for _, c := range f.Content {
		if c == '\n' {
			n++
		}
	}
	return n
}

// ExtractionResult is the outcome of extracting a single definition:
// the new file plus the original source with the definition removed.
type ExtractionResult struct {
	Extracted OutputFile
	Remainder string
}

// AtomizePlan is the complete batch-mode plan: one output file per
// definition plus the __init__.py index file.
type AtomizePlan struct {
	PlanID      string
	SourceName  string
	Definitions []Definition
	OutputFiles []OutputFile

	// CyclicSiblings lists definitions that reference each other,
	// grouped per cycle. Extracted files in a cycle need forward
	// references or a merge; the plan only warns.
	CyclicSiblings [][]string

	// Warnings collects operator-facing notes: mutable bindings with
	// unclear sharing semantics, circular sibling references.
	Warnings []string
}

// Header is the sliced header region of a source file.
type Header struct {
	Lines            []string
	SkippedDocstring bool
	SkippedPragmas   bool
	DocstringText    string
}

// Block returns the header as a single string, preserving the original
// line endings.
func (h Header) Block() string {
	var b []byte
	for _, line := range h.Lines {
		b = append(b, line...)
	}
	return string(b)
}
