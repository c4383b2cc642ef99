package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/vql/internal/schema"
	"github.com/roach88/vql/internal/workspace"
)

// Options tune store behavior. The zero value is not usable directly;
// start from DefaultOptions and override fields as needed.
type Options struct {
	// Clock supplies the current time for every timestamp the store
	// writes. Tests inject a fixed clock for deterministic documents.
	Clock func() time.Time

	// StrictIdentifiers enforces single-character short names for
	// principles and asset types, matching the documented convention.
	StrictIdentifiers bool

	// ExtractRatings enables the keyword scan that derives a rating
	// from review text when none is supplied explicitly.
	ExtractRatings bool

	// StaleCheck refuses a save when the on-disk document advanced past
	// the state seen at load, instead of silently overwriting it.
	StaleCheck bool
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		Clock:             time.Now,
		StrictIdentifiers: true,
		ExtractRatings:    true,
		StaleCheck:        true,
	}
}

// Store owns the canonical document for the duration of one process
// invocation: load, mutate, persist, exit. It is not safe for concurrent
// use; the consistency contract lives at the file level (atomic rename,
// last writer wins).
type Store struct {
	vqlDir      string
	doc         *schema.Document
	loadedStamp string
	opts        Options
}

// Open loads the document from a VQL directory with default options.
// Fails with NOT_FOUND if the file is absent and CORRUPT if the bytes do
// not form a well-formed document.
func Open(vqlDir string) (*Store, error) {
	return OpenWith(vqlDir, DefaultOptions())
}

// OpenWith is Open with explicit options.
func OpenWith(vqlDir string, opts Options) (*Store, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	doc, err := load(workspace.StoragePath(vqlDir))
	if err != nil {
		return nil, err
	}
	return &Store{
		vqlDir:      vqlDir,
		doc:         doc,
		loadedStamp: doc.LastModified,
		opts:        opts,
	}, nil
}

// Init synthesizes a fresh document in the VQL directory if none exists
// and returns a store over it. An existing document is loaded, not
// overwritten; setup is safe to repeat.
func Init(vqlDir string, opts Options) (*Store, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	path := workspace.StoragePath(vqlDir)
	if _, err := os.Stat(path); err == nil {
		return OpenWith(vqlDir, opts)
	}

	s := &Store{
		vqlDir: vqlDir,
		doc:    schema.NewDocument(opts.Clock()),
		opts:   opts,
	}
	if err := s.Save(); err != nil {
		return nil, err
	}
	s.loadedStamp = s.doc.LastModified
	return s, nil
}

// Document exposes the in-memory document for read-only callers such as
// report generation. Mutations must go through store operations.
func (s *Store) Document() *schema.Document {
	return s.doc
}

// Dir returns the VQL directory this store persists into.
func (s *Store) Dir() string {
	return s.vqlDir
}

// Options returns the configuration this store was opened with.
func (s *Store) Options() Options {
	return s.opts
}

// Root returns the workspace root: the parent of the VQL directory.
// Asset paths are stored relative to it.
func (s *Store) Root() string {
	return filepath.Dir(s.vqlDir)
}

// Save persists the document atomically: marshal, write to a temporary
// file in the same directory, rename over the destination. A crash
// mid-write never leaves a truncated document.
//
// With the stale check enabled, Save refuses to overwrite a document
// whose on-disk last_modified advanced past the value seen at load,
// failing with STALE_DOCUMENT instead of losing the other writer's
// update.
func (s *Store) Save() error {
	path := workspace.StoragePath(s.vqlDir)

	if s.opts.StaleCheck && s.loadedStamp != "" {
		if onDisk, err := load(path); err == nil && onDisk.LastModified > s.loadedStamp {
			return &Error{
				Code:    ErrCodeStaleDocument,
				Message: fmt.Sprintf("document modified externally at %s (loaded at %s)", onDisk.LastModified, s.loadedStamp),
			}
		}
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return ioError("serialize", path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.vqlDir, ".vql_storage-*.json")
	if err != nil {
		return ioError("create temp file in", s.vqlDir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return ioError("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ioError("close", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return ioError("rename over", path, err)
	}

	s.loadedStamp = s.doc.LastModified
	return nil
}

// load reads and validates the document at path.
func load(path string) (*schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{
				Code:    ErrCodeNotFound,
				Message: fmt.Sprintf("no VQL document at %s; run 'vql setup' first", path),
			}
		}
		return nil, ioError("read", path, err)
	}

	if err := schema.ValidateDocumentBytes(data); err != nil {
		return nil, &Error{
			Code:    ErrCodeCorrupt,
			Message: fmt.Sprintf("document at %s is corrupt", path),
			Err:     err,
		}
	}

	var doc schema.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{
			Code:    ErrCodeCorrupt,
			Message: fmt.Sprintf("document at %s is corrupt", path),
			Err:     err,
		}
	}

	// principles is the only collection the schema lets a document
	// omit; the rest are required keys and validated above.
	if doc.Principles == nil {
		doc.Principles = map[string]schema.Principle{}
	}

	return &doc, nil
}
