package store

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/vql/internal/schema"
)

// NormalizeIdentifier brings an identifier to NFC form so that composed
// and decomposed spellings of the same identifier collide instead of
// silently coexisting in the namespace.
func NormalizeIdentifier(id string) string {
	return norm.NFC.String(id)
}

// ValidateIdentifier checks identifier syntax for a collection kind:
// non-empty, no whitespace, no path separators. When singleRune is set,
// the identifier must additionally be exactly one rune; the store applies
// that to principles and asset types unless configured otherwise.
func ValidateIdentifier(id string, kind schema.Kind, singleRune bool) error {
	if id == "" {
		return &Error{
			Code:    ErrCodeInvalidIdentifier,
			Message: fmt.Sprintf("%s identifier must not be empty", kind),
			Kind:    kind,
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return &Error{
			Code:    ErrCodeInvalidIdentifier,
			Message: fmt.Sprintf("%s identifier must not contain path separators", kind),
			Name:    id,
			Kind:    kind,
		}
	}
	for _, r := range id {
		if unicode.IsSpace(r) {
			return &Error{
				Code:    ErrCodeInvalidIdentifier,
				Message: fmt.Sprintf("%s identifier must not contain whitespace", kind),
				Name:    id,
				Kind:    kind,
			}
		}
	}
	if singleRune && utf8.RuneCountInString(id) != 1 {
		return &Error{
			Code:    ErrCodeInvalidIdentifier,
			Message: fmt.Sprintf("%s identifier must be a single character", kind),
			Name:    id,
			Kind:    kind,
		}
	}
	return nil
}

// LookupKind reports which collection, if any, currently owns an
// identifier.
func LookupKind(doc *schema.Document, id string) (schema.Kind, bool) {
	if _, ok := doc.Principles[id]; ok {
		return schema.KindPrinciple, true
	}
	if _, ok := doc.Entities[id]; ok {
		return schema.KindEntity, true
	}
	if _, ok := doc.AssetTypes[id]; ok {
		return schema.KindAssetType, true
	}
	if _, ok := doc.AssetReferences[id]; ok {
		return schema.KindAssetReference, true
	}
	return "", false
}

// CheckAvailable enforces the unified namespace rule: an identifier may
// be reused only within its own collection (overwrite semantics); any
// occurrence in another collection is a conflict. Must be called inside
// the same load-mutate-save cycle that inserts the identifier.
func CheckAvailable(doc *schema.Document, id string, kind schema.Kind) error {
	existing, ok := LookupKind(doc, id)
	if !ok || existing == kind {
		return nil
	}
	return nameConflict(id, existing)
}
