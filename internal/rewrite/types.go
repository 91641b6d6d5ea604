package rewrite

import (
	"fmt"

	"github.com/m-gris/atomyst/internal/parser"
)

// NameClass classifies one imported name against the atomized module.
type NameClass int

const (
	// ClassDefinition: the name is genuinely defined in the atomized
	// module and remains addressable there via the generated index file.
	ClassDefinition NameClass = iota
	// ClassReexport: the name was only re-exported; imports must be
	// redirected to its true origin.
	ClassReexport
	// ClassUnknown: origin undeterminable; the import keeps pointing at
	// the original module and is flagged for review.
	ClassUnknown
)

func (c NameClass) String() string {
	switch c {
	case ClassDefinition:
		return "definition"
	case ClassReexport:
		return "reexport"
	case ClassUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// ImportName is one imported symbol of a consumer import statement.
type ImportName struct {
	Name         string // post-alias binding name
	OriginalName string // pre-alias symbol name
	HasAlias     bool
}

// ConsumerImport is a from-import in a consumer file that targets the
// atomized module.
type ConsumerImport struct {
	TargetModule string
	Names        []ImportName
	Loc          parser.Location
	IsRelative   bool
	HasStar      bool
}

// Rewrite is one pending edit to a consumer file. Rewrites against the
// same file must be applied in descending position order so earlier
// edits don't invalidate later coordinates.
type Rewrite struct {
	FilePath string
	Loc      parser.Location
	OldText  string
	NewText  string
}

// UnknownName records a consumer import left pointing at the original
// module because its true origin could not be determined.
type UnknownName struct {
	File string
	Name string
	Line int
}

// Report is the outcome of a successful consumer-rewrite pass.
type Report struct {
	Rewrites     []Rewrite
	FilesChanged []string
	Unknown      []UnknownName
	FilesScanned int
}

// StarImportError fails the whole rewrite operation: a wildcard import's
// effective name set is unknowable without full semantic analysis, and
// guessing risks silently breaking user code.
type StarImportError struct {
	File string
	Line int
}

func (e *StarImportError) Error() string {
	return fmt.Sprintf("star import at %s:%d: cannot rewrite wildcard imports", e.File, e.Line)
}
