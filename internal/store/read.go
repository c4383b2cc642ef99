package store

import (
	"sort"

	"github.com/roach88/vql/internal/schema"
)

// QueryReviews returns the reviews recorded for an asset, optionally
// filtered to the given principle identifiers. Principle identifiers not
// present on the asset are silently omitted, not reported as errors.
// Fails with UNKNOWN_ASSET when the asset itself does not exist.
func (s *Store) QueryReviews(asset string, principles []string) (map[string]schema.Review, error) {
	ref, ok := s.doc.AssetReferences[asset]
	if !ok {
		return nil, unknownRef(ErrCodeUnknownAsset, schema.KindAssetReference, asset)
	}

	out := map[string]schema.Review{}
	if len(principles) == 0 {
		for short, review := range ref.PrincipleReviews {
			out[short] = review
		}
		return out, nil
	}

	for _, short := range principles {
		if review, ok := ref.PrincipleReviews[short]; ok {
			out[short] = review
		}
	}
	return out, nil
}

// GetPrinciple looks up one principle.
func (s *Store) GetPrinciple(short string) (schema.Principle, error) {
	p, ok := s.doc.Principles[short]
	if !ok {
		return schema.Principle{}, unknownRef(ErrCodeUnknownPrinciple, schema.KindPrinciple, short)
	}
	return p, nil
}

// GetAssetReference looks up one asset reference.
func (s *Store) GetAssetReference(short string) (schema.AssetReference, error) {
	ref, ok := s.doc.AssetReferences[short]
	if !ok {
		return schema.AssetReference{}, unknownRef(ErrCodeUnknownAsset, schema.KindAssetReference, short)
	}
	return ref, nil
}

// ListPrinciples enumerates principles sorted by identifier. The store
// itself makes no ordering guarantee; sorting happens here so CLI output
// is stable.
func (s *Store) ListPrinciples() []schema.Principle {
	out := make([]schema.Principle, 0, len(s.doc.Principles))
	for _, short := range sortedKeys(s.doc.Principles) {
		out = append(out, s.doc.Principles[short])
	}
	return out
}

// ListEntities enumerates entities sorted by identifier.
func (s *Store) ListEntities() []schema.Entity {
	out := make([]schema.Entity, 0, len(s.doc.Entities))
	for _, short := range sortedKeys(s.doc.Entities) {
		out = append(out, s.doc.Entities[short])
	}
	return out
}

// ListAssetTypes enumerates asset types sorted by identifier.
func (s *Store) ListAssetTypes() []schema.AssetType {
	out := make([]schema.AssetType, 0, len(s.doc.AssetTypes))
	for _, short := range sortedKeys(s.doc.AssetTypes) {
		out = append(out, s.doc.AssetTypes[short])
	}
	return out
}

// ListAssetReferences enumerates asset references sorted by identifier.
func (s *Store) ListAssetReferences() []schema.AssetReference {
	out := make([]schema.AssetReference, 0, len(s.doc.AssetReferences))
	for _, short := range sortedKeys(s.doc.AssetReferences) {
		out = append(out, s.doc.AssetReferences[short])
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
