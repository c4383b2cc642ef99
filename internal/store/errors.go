package store

import (
	"errors"
	"fmt"

	"github.com/roach88/vql/internal/schema"
)

// ErrorCode categorizes store failures. Every failure the engine can
// produce maps to exactly one code; callers branch on codes, not on
// message text.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the document file is absent.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeCorrupt indicates the document bytes do not parse as a
	// well-formed document.
	ErrCodeCorrupt ErrorCode = "CORRUPT"

	// ErrCodeNameConflict indicates the identifier is already used
	// elsewhere in the unified namespace.
	ErrCodeNameConflict ErrorCode = "NAME_CONFLICT"

	// ErrCodeUnknownEntity indicates a reference to a nonexistent entity.
	ErrCodeUnknownEntity ErrorCode = "UNKNOWN_ENTITY"

	// ErrCodeUnknownAssetType indicates a reference to a nonexistent
	// asset type.
	ErrCodeUnknownAssetType ErrorCode = "UNKNOWN_ASSET_TYPE"

	// ErrCodeUnknownAsset indicates a reference to a nonexistent asset.
	ErrCodeUnknownAsset ErrorCode = "UNKNOWN_ASSET"

	// ErrCodeUnknownPrinciple indicates a reference to a nonexistent
	// principle.
	ErrCodeUnknownPrinciple ErrorCode = "UNKNOWN_PRINCIPLE"

	// ErrCodeInvalidIdentifier indicates a syntactically invalid short
	// name.
	ErrCodeInvalidIdentifier ErrorCode = "INVALID_IDENTIFIER"

	// ErrCodeInvalidRating indicates a rating outside H/M/L.
	ErrCodeInvalidRating ErrorCode = "INVALID_RATING"

	// ErrCodeOutsideWorkspace indicates a path that escapes the
	// workspace root.
	ErrCodeOutsideWorkspace ErrorCode = "OUTSIDE_WORKSPACE"

	// ErrCodeStaleDocument indicates the on-disk document advanced past
	// the state seen at load; the save was refused.
	ErrCodeStaleDocument ErrorCode = "STALE_DOCUMENT"

	// ErrCodeIO indicates a filesystem failure on read or write.
	ErrCodeIO ErrorCode = "IO_ERROR"
)

// Error is the typed failure surfaced by every store operation.
//
// Name carries the identifier involved (when there is one) and Kind the
// collection it belongs to. Err holds the underlying cause, if any.
type Error struct {
	Code    ErrorCode
	Message string
	Name    string
	Kind    schema.Kind
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the ErrorCode from an error chain. Errors that did not
// originate in the store report the empty code.
func CodeOf(err error) ErrorCode {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsNameConflict reports whether err is a unified-namespace collision.
func IsNameConflict(err error) bool {
	return IsCode(err, ErrCodeNameConflict)
}

// IsNotFound reports whether err means the document file is absent.
func IsNotFound(err error) bool {
	return IsCode(err, ErrCodeNotFound)
}

func nameConflict(name string, existing schema.Kind) *Error {
	return &Error{
		Code:    ErrCodeNameConflict,
		Message: fmt.Sprintf("identifier already used by a %s", existing),
		Name:    name,
		Kind:    existing,
	}
}

func unknownRef(code ErrorCode, kind schema.Kind, name string) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf("%s does not exist", kind),
		Name:    name,
		Kind:    kind,
	}
}

func ioError(op, path string, err error) *Error {
	return &Error{
		Code:    ErrCodeIO,
		Message: fmt.Sprintf("%s %s", op, path),
		Err:     err,
	}
}
