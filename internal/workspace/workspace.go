// Package workspace locates the VQL directory for a project and converts
// asset paths between absolute and project-relative form.
//
// The workspace root is the parent of the VQL directory. All paths stored
// in the document are forward-slash separated and relative to that root,
// regardless of host platform.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// StorageFile is the name of the JSON document inside the VQL directory.
const StorageFile = "vql_storage.json"

// dirNames are the accepted spellings of the VQL directory, checked in
// order of preference.
var dirNames = []string{"VQL", "vql"}

// FindRoot walks up from start looking for a VQL directory. It returns
// the workspace root (the parent of the VQL directory) and the VQL
// directory path itself.
func FindRoot(start string) (root, vqlDir string, err error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", "", fmt.Errorf("resolve start directory: %w", err)
	}

	for {
		for _, name := range dirNames {
			candidate := filepath.Join(dir, name)
			if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
				return dir, candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("VQL directory not found in %s or any parent; run 'vql setup' first", start)
		}
		dir = parent
	}
}

// StoragePath returns the document path inside a VQL directory.
func StoragePath(vqlDir string) string {
	return filepath.Join(vqlDir, StorageFile)
}

// EnsureDir creates the VQL directory under root if it does not exist
// and returns its path. An existing directory (either spelling) is
// reused.
func EnsureDir(root string) (string, error) {
	for _, name := range dirNames {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	dir := filepath.Join(root, dirNames[0])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create VQL directory: %w", err)
	}
	return dir, nil
}
