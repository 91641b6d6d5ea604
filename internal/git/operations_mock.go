package git

// MockGitOps is a mock implementation of Operations for testing.
type MockGitOps struct {
	Safety       DeleteSafety
	TrackedFiles []string
	TrackedError error
	Root         string
}

// NewMockGitOps creates a mock with sensible defaults.
func NewMockGitOps() *MockGitOps {
	return &MockGitOps{
		Safety: NotSafe,
		Root:   "/tmp/test-repo",
	}
}

func (m *MockGitOps) CheckDeleteSafety(path string) DeleteSafety {
	return m.Safety
}

func (m *MockGitOps) ListTrackedFiles(repoDir, pattern string) ([]string, error) {
	if m.TrackedError != nil {
		return nil, m.TrackedError
	}
	return m.TrackedFiles, nil
}

func (m *MockGitOps) WorktreeRoot(dir string) string {
	return m.Root
}
