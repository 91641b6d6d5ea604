package files

// Test Plan for File Discovery:
// - "**/*.py" matches files at the root and in subdirectories
// - ignore patterns exclude whole directory trees by bare name
// - non-matching extensions are excluded
// - invalid glob patterns fail at construction

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, paths []string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("# test\n"), 0644))
	}
}

func TestDiscoverPythonFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, []string{
		"main.py",
		"pkg/models.py",
		"pkg/deep/util.py",
		"README.md",
		".venv/lib/site.py",
		"__pycache__/models.cpython-312.pyc",
	})

	d, err := NewDiscovery(root, []string{"**/*.py"}, []string{".venv", "__pycache__"})
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)

	var rel []string
	for _, f := range found {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)

	assert.Equal(t, []string{"main.py", "pkg/deep/util.py", "pkg/models.py"}, rel)
}

func TestNewDiscoveryInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewDiscovery(t.TempDir(), []string{"[invalid"}, nil)
	assert.Error(t, err)
}
