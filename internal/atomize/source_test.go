package atomize

// Test Plan for SourceIndex:
// - splitting preserves line endings so slices re-concatenate exactly
// - a file without a trailing newline keeps its last partial line
// - Line is 1-indexed and returns "" out of range
// - Slice clamps out-of-range bounds to the file
// - Without removes exactly the named range and nothing else
// - Slice + Without of the same range reassemble the original

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceIndexRoundTrip(t *testing.T) {
	t.Parallel()

	source := "a\nb\nc\n"
	src := NewSourceIndex(source)

	assert.Equal(t, 3, src.Len())
	assert.Equal(t, "a\n", src.Line(1))
	assert.Equal(t, "", src.Line(0))
	assert.Equal(t, "", src.Line(4))
	assert.Equal(t, source, src.Slice(1, 3))
}

func TestSourceIndexNoTrailingNewline(t *testing.T) {
	t.Parallel()

	src := NewSourceIndex("a\nb")
	assert.Equal(t, 2, src.Len())
	assert.Equal(t, "b", src.Line(2))
	assert.Equal(t, "a\nb", src.Slice(1, 2))
}

func TestSourceIndexSliceClamping(t *testing.T) {
	t.Parallel()

	src := NewSourceIndex("a\nb\nc\n")
	assert.Equal(t, "a\nb\nc\n", src.Slice(0, 99))
	assert.Equal(t, "", src.Slice(3, 2))
}

func TestSourceIndexWithout(t *testing.T) {
	t.Parallel()

	src := NewSourceIndex("a\nb\nc\nd\n")
	assert.Equal(t, "a\nd\n", src.Without(2, 3))

	// Extracted plus remainder covers every byte of the original.
	extracted := src.Slice(2, 3)
	remainder := src.Without(2, 3)
	assert.Equal(t, len("a\nb\nc\nd\n"), len(extracted)+len(remainder))
}
