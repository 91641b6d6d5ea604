package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes content to path via a temp file in the same
// directory followed by a rename, so a partially written file is never
// observable.
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".atomyst-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// WriteOutputFiles writes a set of generated files under outputDir,
// creating the directory if needed. Returns the paths written.
func WriteOutputFiles(outputDir string, outputs []Output) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(outputDir, out.RelativePath)
		if err := WriteFileAtomic(path, []byte(out.Content)); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// Output is a file to write: a relative path under the output directory
// plus its content.
type Output struct {
	RelativePath string
	Content      string
}
