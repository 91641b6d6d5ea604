package rewrite

// Test Plan for Consumer Import Rewriting:
// - absolute dotted imports matching the atomized module are rewritten;
//   unrelated modules are untouched
// - relative imports resolve against the consumer's own directory
// - defined names keep importing from the module, re-exported names are
//   redirected and grouped per origin in first-appearance order
// - aliases survive rewriting (Field as F stays "Field as F")
// - unknown names stay on the original module and are flagged, a
//   statement with only known-or-unknown names produces no rewrite
// - a wildcard import of the atomized module fails the whole operation
//   with zero rewrites; wildcards of unrelated modules do not
// - the atomized module itself and unreadable candidates are skipped

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-gris/atomyst/internal/parser"
)

// memReader serves candidate files from a map.
func memReader(files map[string]string) FileReader {
	return func(path string) ([]byte, error) {
		content, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("no such file: %s", path)
		}
		return []byte(content), nil
	}
}

func TestRewriteConsumersGrouping(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"app/views.py": "from models import Query, Field, StrictBaseModel\n\nprint(Query)\n",
	}
	defined := map[string]struct{}{"Query": {}}
	reexports := map[string]string{
		"Field":           "pydantic",
		"StrictBaseModel": ".common",
	}

	r := NewRewriter(parser.New(), memReader(files))
	report, err := r.RewriteConsumers("models.py", defined, reexports, []string{"app/views.py"})
	require.NoError(t, err)

	require.Len(t, report.Rewrites, 1)
	rw := report.Rewrites[0]
	assert.Equal(t, "app/views.py", rw.FilePath)
	assert.Equal(t, "from models import Query, Field, StrictBaseModel", rw.OldText)
	assert.Equal(t,
		"from models import Query\nfrom pydantic import Field\nfrom .common import StrictBaseModel",
		rw.NewText)

	assert.Equal(t, []string{"app/views.py"}, report.FilesChanged)
	assert.Empty(t, report.Unknown)
	assert.Equal(t, 1, report.FilesScanned)
}

func TestRewriteConsumersPreservesAliases(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"use.py": "from models import Field as F\n",
	}
	reexports := map[string]string{"Field": "pydantic"}

	r := NewRewriter(parser.New(), memReader(files))
	report, err := r.RewriteConsumers("models.py", nil, reexports, []string{"use.py"})
	require.NoError(t, err)

	require.Len(t, report.Rewrites, 1)
	assert.Equal(t, "from pydantic import Field as F", report.Rewrites[0].NewText)
}

func TestRewriteConsumersRelativeImport(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"pkg/sub/consumer.py": "from ..models import Field\n",
		"pkg/other.py":        "from .models import Field\n",
	}
	reexports := map[string]string{"Field": "pydantic"}

	r := NewRewriter(parser.New(), memReader(files))
	report, err := r.RewriteConsumers("pkg/models.py", nil, reexports,
		[]string{"pkg/sub/consumer.py", "pkg/other.py"})
	require.NoError(t, err)

	require.Len(t, report.Rewrites, 2)
	assert.Equal(t, "from pydantic import Field", report.Rewrites[0].NewText)
	assert.Equal(t, "from pydantic import Field", report.Rewrites[1].NewText)
}

func TestRewriteConsumersUnknownNames(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"use.py": "from models import Mystery, Field\n",
	}
	reexports := map[string]string{"Field": "pydantic"}

	r := NewRewriter(parser.New(), memReader(files))
	report, err := r.RewriteConsumers("models.py", nil, reexports, []string{"use.py"})
	require.NoError(t, err)

	// Mystery stays on the original module, flagged for review.
	require.Len(t, report.Rewrites, 1)
	assert.Equal(t, "from models import Mystery\nfrom pydantic import Field", report.Rewrites[0].NewText)

	require.Len(t, report.Unknown, 1)
	assert.Equal(t, "Mystery", report.Unknown[0].Name)
	assert.Equal(t, "use.py", report.Unknown[0].File)
	assert.Equal(t, 1, report.Unknown[0].Line)
}

func TestRewriteConsumersNoRewriteNeeded(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"use.py": "from models import Query\nfrom elsewhere import irrelevant\n",
	}
	defined := map[string]struct{}{"Query": {}}

	r := NewRewriter(parser.New(), memReader(files))
	report, err := r.RewriteConsumers("models.py", defined, nil, []string{"use.py"})
	require.NoError(t, err)

	assert.Empty(t, report.Rewrites)
	assert.Empty(t, report.FilesChanged)
	assert.Equal(t, 1, report.FilesScanned)
}

func TestRewriteConsumersStarImportFailsFast(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.py": "from models import Field\n",
		"b.py": "from models import *\n",
	}
	reexports := map[string]string{"Field": "pydantic"}

	r := NewRewriter(parser.New(), memReader(files))
	report, err := r.RewriteConsumers("models.py", nil, reexports, []string{"a.py", "b.py"})

	require.Error(t, err)
	var starErr *StarImportError
	require.ErrorAs(t, err, &starErr)
	assert.Equal(t, "b.py", starErr.File)
	assert.Equal(t, 1, starErr.Line)
	assert.Nil(t, report)
}

func TestRewriteConsumersIgnoresUnrelatedStarImport(t *testing.T) {
	t.Parallel()

	// A wildcard of some other module cannot name atomized definitions,
	// so it does not abort the rewrite.
	files := map[string]string{
		"use.py": "from elsewhere import *\nfrom models import Field\n",
	}
	reexports := map[string]string{"Field": "pydantic"}

	r := NewRewriter(parser.New(), memReader(files))
	report, err := r.RewriteConsumers("models.py", nil, reexports, []string{"use.py"})
	require.NoError(t, err)

	require.Len(t, report.Rewrites, 1)
	assert.Equal(t, "from pydantic import Field", report.Rewrites[0].NewText)
}

func TestRewriteConsumersSkipsSelfAndUnreadable(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"models.py": "from models import Broken\n",
	}
	r := NewRewriter(parser.New(), memReader(files))

	report, err := r.RewriteConsumers("models.py", nil, map[string]string{"X": "y"},
		[]string{"models.py", "missing.py"})
	require.NoError(t, err)

	assert.Zero(t, report.FilesScanned)
	assert.Empty(t, report.Rewrites)
}

func TestTargetsModule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		imp      *parser.ImportStatement
		consumer string
		atomized string
		expected bool
	}{
		{
			name:     "absolute dotted suffix",
			imp:      &parser.ImportStatement{Module: "app.models"},
			consumer: "main.py",
			atomized: "src/app/models.py",
			expected: true,
		},
		{
			name:     "absolute mismatch",
			imp:      &parser.ImportStatement{Module: "app.schemas"},
			consumer: "main.py",
			atomized: "src/app/models.py",
			expected: false,
		},
		{
			name:     "relative sibling",
			imp:      &parser.ImportStatement{Module: "models", Level: 1},
			consumer: "pkg/use.py",
			atomized: "pkg/models.py",
			expected: true,
		},
		{
			name:     "relative parent",
			imp:      &parser.ImportStatement{Module: "models", Level: 2},
			consumer: "pkg/sub/use.py",
			atomized: "pkg/models.py",
			expected: true,
		},
		{
			name:     "bare relative cannot target a module",
			imp:      &parser.ImportStatement{Module: "", Level: 1},
			consumer: "pkg/use.py",
			atomized: "pkg/models.py",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, targetsModule(tt.imp, tt.consumer, tt.atomized))
		})
	}
}
