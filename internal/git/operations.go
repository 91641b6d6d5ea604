package git

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// DeleteSafety is the three-valued answer to "may the atomized original
// be deleted?".
type DeleteSafety int

const (
	// SafeToDelete: the file is tracked and has no uncommitted changes.
	SafeToDelete DeleteSafety = iota
	// NotSafe: untracked, dirty, or not inside a repository. The caller
	// degrades to keeping the original.
	NotSafe
	// SafetyUnknown: git itself failed; treated like NotSafe by callers.
	SafetyUnknown
)

func (s DeleteSafety) String() string {
	switch s {
	case SafeToDelete:
		return "safe"
	case NotSafe:
		return "not safe"
	case SafetyUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Operations defines the git plumbing atomyst consumes. The engine
// functions with reduced automation when these report NotSafe or fail:
// originals are kept and consumer scans fall back to a caller-supplied
// file list.
type Operations interface {
	// CheckDeleteSafety reports whether a file is tracked and clean.
	CheckDeleteSafety(path string) DeleteSafety

	// ListTrackedFiles returns tracked files matching a pathspec glob,
	// relative paths resolved against the repository root.
	ListTrackedFiles(repoDir, pattern string) ([]string, error)

	// WorktreeRoot returns the repository root, or dir itself when not
	// inside a repository.
	WorktreeRoot(dir string) string
}

// gitOps is the real implementation using exec.Command.
type gitOps struct{}

// NewOperations returns the default git operations implementation.
func NewOperations() Operations {
	return &gitOps{}
}

func (g *gitOps) CheckDeleteSafety(path string) DeleteSafety {
	dir := filepath.Dir(path)
	name := filepath.Base(path)

	// Tracked?
	cmd := exec.Command("git", "ls-files", "--error-unmatch", "--", name)
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return NotSafe
		}
		return SafetyUnknown
	}

	// Clean?
	cmd = exec.Command("git", "status", "--porcelain", "--", name)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return SafetyUnknown
	}
	if len(strings.TrimSpace(string(output))) != 0 {
		return NotSafe
	}
	return SafeToDelete
}

func (g *gitOps) ListTrackedFiles(repoDir, pattern string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "--", pattern)
	cmd.Dir = repoDir
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, filepath.Join(repoDir, filepath.FromSlash(line)))
	}
	return paths, nil
}

func (g *gitOps) WorktreeRoot(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return dir
	}
	return strings.TrimSpace(string(output))
}
