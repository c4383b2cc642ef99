package workspace

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// OutsideWorkspaceError reports a path that escapes the workspace root.
type OutsideWorkspaceError struct {
	Path string
	Root string
}

// Error implements the error interface.
func (e *OutsideWorkspaceError) Error() string {
	return fmt.Sprintf("path %q is outside the workspace root %q", e.Path, e.Root)
}

// Normalizer converts asset paths between absolute and project-relative
// form, anchored at a workspace root.
type Normalizer struct {
	root string
}

// NewNormalizer creates a Normalizer for the given workspace root.
func NewNormalizer(root string) *Normalizer {
	return &Normalizer{root: filepath.Clean(root)}
}

// Root returns the workspace root.
func (n *Normalizer) Root() string {
	return n.root
}

// ToRelative converts an absolute or relative input path to the stored
// form: forward-slash separated, relative to the workspace root, a
// strict descendant of it. Inputs that resolve outside the root, to the
// root itself, or are empty fail with OutsideWorkspaceError.
func (n *Normalizer) ToRelative(p string) (string, error) {
	candidate := Slashes(p)

	if !path.IsAbs(candidate) && !filepath.IsAbs(p) {
		// Already relative: clean and reject escapes and the root
		// itself (Clean maps the empty string to ".").
		cleaned := path.Clean(candidate)
		if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
			return "", &OutsideWorkspaceError{Path: p, Root: n.root}
		}
		return cleaned, nil
	}

	rel, err := filepath.Rel(n.root, filepath.FromSlash(candidate))
	if err != nil {
		return "", &OutsideWorkspaceError{Path: p, Root: n.root}
	}
	rel = Slashes(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", &OutsideWorkspaceError{Path: p, Root: n.root}
	}
	return path.Clean(rel), nil
}

// ToAbsolute converts a stored project-relative path back to an absolute
// host path. Absolute inputs are returned unchanged. Used by consumers
// of the document, never by persistence.
func (n *Normalizer) ToAbsolute(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(n.root, filepath.FromSlash(rel))
}

// Slashes converts all path separators to forward slash.
func Slashes(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
