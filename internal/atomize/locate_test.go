package atomize

// Test Plan for Definition Location:
// - classes, functions, and async functions are located with 1-indexed
//   inclusive line ranges
// - nested definitions (methods, inner functions) are excluded
// - a decorated definition's range starts at its first decorator
// - duplicate captures of the same name keep the earliest start
// - module constants exclude dunders and logger acquisitions
// - results come back in source order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-gris/atomyst/internal/parser"
)

func parseModule(t *testing.T, source string) *parser.Module {
	t.Helper()
	mod, err := parser.New().Parse([]byte(source))
	require.NoError(t, err)
	return mod
}

func TestLocateBasicDefinitions(t *testing.T) {
	t.Parallel()

	source := `class Foo:
    def method(self):
        pass


def helper():
    def inner():
        pass
    return inner


async def fetch():
    pass
`
	defs := Locate(parseModule(t, source))
	require.Len(t, defs, 3)

	assert.Equal(t, Definition{Name: "Foo", Kind: KindClass, StartLine: 1, EndLine: 3}, defs[0])
	assert.Equal(t, Definition{Name: "helper", Kind: KindFunction, StartLine: 6, EndLine: 9}, defs[1])
	assert.Equal(t, Definition{Name: "fetch", Kind: KindAsyncFunction, StartLine: 12, EndLine: 13}, defs[2])
}

func TestLocateDecoratedDefinition(t *testing.T) {
	t.Parallel()

	source := `import functools


@functools.cache
@other
def slow():
    return 42
`
	defs := Locate(parseModule(t, source))
	require.Len(t, defs, 1)

	// The range covers both decorators through the body end.
	assert.Equal(t, "slow", defs[0].Name)
	assert.Equal(t, 4, defs[0].StartLine)
	assert.Equal(t, 7, defs[0].EndLine)
}

func TestLocateIgnoresNonDefinitions(t *testing.T) {
	t.Parallel()

	source := `import os

X = 1

if os.name == "posix":
    Y = 2
`
	defs := Locate(parseModule(t, source))
	assert.Empty(t, defs)
}

func TestLocateDeduplicatesByEarliestStart(t *testing.T) {
	t.Parallel()

	// Some grammar representations surface a decorated wrapper and its
	// inner definition separately; the earliest-starting capture wins.
	mod := &parser.Module{Statements: []parser.Statement{
		{
			Kind:       parser.KindFunctionDef,
			Name:       "slow",
			Loc:        parser.Location{StartLine: 2, EndLine: 5},
			Decorators: []parser.Location{{StartLine: 1, EndLine: 1}},
		},
		{
			Kind: parser.KindFunctionDef,
			Name: "slow",
			Loc:  parser.Location{StartLine: 2, EndLine: 5},
		},
	}}

	defs := Locate(mod)
	require.Len(t, defs, 1)
	assert.Equal(t, 1, defs[0].StartLine)
	assert.Equal(t, 5, defs[0].EndLine)
}

func TestModuleConstants(t *testing.T) {
	t.Parallel()

	source := `import logging

MAX_SIZE = 100
TIMEOUT: int = 30
type UserID = int
__version__ = "1.0"
logger = logging.getLogger(__name__)
x, y = 1, 2
`
	mod := parseModule(t, source)
	constants := ModuleConstants(mod, NewSourceIndex(source))

	require.Len(t, constants, 3)
	assert.Equal(t, "MAX_SIZE", constants[0].Name)
	assert.Equal(t, "MAX_SIZE = 100", constants[0].SourceText)
	assert.Equal(t, "TIMEOUT", constants[1].Name)
	assert.Equal(t, "TIMEOUT: int = 30", constants[1].SourceText)
	assert.Equal(t, "UserID", constants[2].Name)
	assert.Equal(t, "type UserID = int", constants[2].SourceText)
}
