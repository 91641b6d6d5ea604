package atomize

// Test Plan for Reference Matching and Import Synthesis:
// - containsWord matches identifiers only at word boundaries
// - FOO does not match FOOBAR or BAR_FOO (underscore is a word character)
// - FindSiblingReferences excludes the target itself, keeps source order
// - GenerateImportLines emits one relative import per sibling, snake_cased
// - GenerateConstantImportLine sorts names into a single import
// - SiblingCycles reports mutually referencing definitions and nothing else

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		ident    string
		expected bool
	}{
		{name: "exact use", text: "x = FOO + 1", ident: "FOO", expected: true},
		{name: "call position", text: "helper(a, b)", ident: "helper", expected: true},
		{name: "prefix of longer name", text: "x = FOOBAR", ident: "FOO", expected: false},
		{name: "suffix of longer name", text: "x = BAR_FOO", ident: "FOO", expected: false},
		{name: "underscore joined", text: "x = FOO_BAR", ident: "FOO", expected: false},
		{name: "attribute access", text: "obj.FOO", ident: "FOO", expected: true},
		{name: "absent", text: "y = 2", ident: "FOO", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, containsWord(tt.text, tt.ident))
		})
	}
}

func TestFindSiblingReferences(t *testing.T) {
	t.Parallel()

	defs := []Definition{
		{Name: "Base", StartLine: 1, EndLine: 2},
		{Name: "Helper", StartLine: 4, EndLine: 5},
		{Name: "Child", StartLine: 7, EndLine: 9},
	}

	refs := FindSiblingReferences(defs, defs[2], "class Child(Base):\n    x = Helper()\n")
	assert.Equal(t, []string{"Base", "Helper"}, refs)

	// The target's own name never counts as a reference.
	refs = FindSiblingReferences(defs, defs[0], "class Base:\n    pass\n")
	assert.Empty(t, refs)
}

func TestGenerateImportLines(t *testing.T) {
	t.Parallel()

	lines := GenerateImportLines([]string{"BaseModel", "HTTPClient"})
	assert.Equal(t, []string{
		"from .base_model import BaseModel\n",
		"from .http_client import HTTPClient\n",
	}, lines)
}

func TestGenerateConstantImportLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", GenerateConstantImportLine(nil))
	assert.Equal(t, "from ._constants import MAX_SIZE, TIMEOUT\n",
		GenerateConstantImportLine([]string{"TIMEOUT", "MAX_SIZE"}))
}

func TestSiblingCycles(t *testing.T) {
	t.Parallel()

	source := "class A:\n    b: \"B\"\n\nclass B:\n    a: \"A\"\n\nclass C:\n    pass\n"
	src := NewSourceIndex(source)
	defs := []Definition{
		{Name: "A", StartLine: 1, EndLine: 2},
		{Name: "B", StartLine: 4, EndLine: 5},
		{Name: "C", StartLine: 7, EndLine: 8},
	}

	cycles := SiblingCycles(defs, src)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"A", "B"}, cycles[0])
}

func TestSiblingCyclesNone(t *testing.T) {
	t.Parallel()

	source := "class A:\n    pass\n\nclass B(A):\n    pass\n"
	src := NewSourceIndex(source)
	defs := []Definition{
		{Name: "A", StartLine: 1, EndLine: 2},
		{Name: "B", StartLine: 4, EndLine: 5},
	}

	assert.Empty(t, SiblingCycles(defs, src))
}
