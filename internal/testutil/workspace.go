package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempWorkspace creates a throwaway project root with a VQL directory
// inside it and returns both paths.
func TempWorkspace(t *testing.T) (root, vqlDir string) {
	t.Helper()
	root = t.TempDir()
	vqlDir = filepath.Join(root, "VQL")
	if err := os.Mkdir(vqlDir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", vqlDir, err)
	}
	return root, vqlDir
}

// WriteFile writes a file under dir, creating parent directories, and
// returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
