package files

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery finds candidate Python files under a root directory with
// glob include patterns and ignore rules. It bounds the consumer-scan
// file set when git's tracked-file listing is unavailable.
type Discovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewDiscovery compiles the given patterns. Patterns use '/' as the
// separator regardless of platform.
func NewDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{rootDir: rootDir}

	for _, pattern := range includePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.includePatterns = append(d.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Discover walks the root directory and returns matching file paths.
func (d *Discovery) Discover() ([]string, error) {
	matches := []string{}

	err := filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}
		if d.matchesAnyPattern(relPath, d.includePatterns) {
			matches = append(matches, path)
		}
		return nil
	})

	return matches, err
}

// shouldIgnore checks ignore patterns against the path itself and each
// of its ancestor directories, so a bare directory name like ".venv"
// ignores everything under .venv/.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if d.matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}
	if d.matchesAnyPattern(relPath+"/**", d.ignorePatterns) {
		return true
	}

	segments := strings.Split(relPath, "/")
	for i := 1; i < len(segments); i++ {
		prefix := strings.Join(segments[:i], "/")
		if d.matchesAnyPattern(prefix, d.ignorePatterns) {
			return true
		}
	}
	return false
}

// matchesAnyPattern checks a path against patterns, retrying root-level
// paths against "**/"-prefixed patterns with the prefix stripped, so
// "**/*.py" matches both "main.py" and "pkg/main.py".
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
