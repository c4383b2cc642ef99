package store

import (
	"fmt"

	"github.com/roach88/vql/internal/schema"
	"github.com/roach88/vql/internal/workspace"
)

// AddPrinciple upserts a principle. A new identifier must pass the
// namespace check; re-adding an existing principle overwrites it.
func (s *Store) AddPrinciple(short, longName, guidance string) (schema.Principle, error) {
	short = NormalizeIdentifier(short)
	if err := ValidateIdentifier(short, schema.KindPrinciple, s.opts.StrictIdentifiers); err != nil {
		return schema.Principle{}, err
	}
	if err := CheckAvailable(s.doc, short, schema.KindPrinciple); err != nil {
		return schema.Principle{}, err
	}

	ts := s.doc.Touch(s.opts.Clock())
	p := schema.Principle{
		ShortName:    short,
		LongName:     longName,
		Guidance:     guidance,
		LastModified: ts,
	}
	s.doc.Principles[short] = p
	return p, nil
}

// AddEntity upserts an entity.
func (s *Store) AddEntity(short, description string) (schema.Entity, error) {
	short = NormalizeIdentifier(short)
	if err := ValidateIdentifier(short, schema.KindEntity, false); err != nil {
		return schema.Entity{}, err
	}
	if err := CheckAvailable(s.doc, short, schema.KindEntity); err != nil {
		return schema.Entity{}, err
	}

	ts := s.doc.Touch(s.opts.Clock())
	e := schema.Entity{
		ShortName:    short,
		Description:  description,
		LastModified: ts,
	}
	s.doc.Entities[short] = e
	return e, nil
}

// AddAssetType upserts an asset type.
func (s *Store) AddAssetType(short, description string) (schema.AssetType, error) {
	short = NormalizeIdentifier(short)
	if err := ValidateIdentifier(short, schema.KindAssetType, s.opts.StrictIdentifiers); err != nil {
		return schema.AssetType{}, err
	}
	if err := CheckAvailable(s.doc, short, schema.KindAssetType); err != nil {
		return schema.AssetType{}, err
	}

	ts := s.doc.Touch(s.opts.Clock())
	at := schema.AssetType{
		ShortName:    short,
		Description:  description,
		LastModified: ts,
	}
	s.doc.AssetTypes[short] = at
	return at, nil
}

// AddAssetReference registers a tracked file. The entity and asset type
// must already exist; rawPath is normalized to project-relative,
// forward-slash form and must not escape the workspace root. Re-adding
// an existing asset reference overwrites it, dropping accumulated
// reviews.
func (s *Store) AddAssetReference(short, entity, assetType, rawPath string) (schema.AssetReference, error) {
	short = NormalizeIdentifier(short)
	if err := ValidateIdentifier(short, schema.KindAssetReference, false); err != nil {
		return schema.AssetReference{}, err
	}
	if err := CheckAvailable(s.doc, short, schema.KindAssetReference); err != nil {
		return schema.AssetReference{}, err
	}
	if _, ok := s.doc.Entities[entity]; !ok {
		return schema.AssetReference{}, unknownRef(ErrCodeUnknownEntity, schema.KindEntity, entity)
	}
	if _, ok := s.doc.AssetTypes[assetType]; !ok {
		return schema.AssetReference{}, unknownRef(ErrCodeUnknownAssetType, schema.KindAssetType, assetType)
	}

	rel, err := s.normalizePath(rawPath)
	if err != nil {
		return schema.AssetReference{}, err
	}

	ts := s.doc.Touch(s.opts.Clock())
	ref := schema.AssetReference{
		ShortName:        short,
		Entity:           entity,
		AssetType:        assetType,
		Path:             rel,
		Exemplar:         false,
		LastModified:     ts,
		PrincipleReviews: map[string]schema.Review{},
	}
	s.doc.AssetReferences[short] = ref
	return ref, nil
}

// SetAssetPath repoints an existing asset reference at a new file,
// normalizing the path the same way as creation.
func (s *Store) SetAssetPath(asset, rawPath string) (schema.AssetReference, error) {
	ref, ok := s.doc.AssetReferences[asset]
	if !ok {
		return schema.AssetReference{}, unknownRef(ErrCodeUnknownAsset, schema.KindAssetReference, asset)
	}

	rel, err := s.normalizePath(rawPath)
	if err != nil {
		return schema.AssetReference{}, err
	}

	ts := s.doc.Touch(s.opts.Clock())
	ref.Path = rel
	ref.LastModified = ts
	s.doc.AssetReferences[asset] = ref
	return ref, nil
}

// SetExemplar marks or unmarks an asset reference as a best-practice
// example.
func (s *Store) SetExemplar(asset string, flag bool) (schema.AssetReference, error) {
	ref, ok := s.doc.AssetReferences[asset]
	if !ok {
		return schema.AssetReference{}, unknownRef(ErrCodeUnknownAsset, schema.KindAssetReference, asset)
	}

	ts := s.doc.Touch(s.opts.Clock())
	ref.Exemplar = flag
	ref.LastModified = ts
	s.doc.AssetReferences[asset] = ref
	return ref, nil
}

// SetCompliance sets the rating for one (asset, principle) pair. The
// review record is created if absent; an existing review keeps its
// analysis text and only the rating changes.
func (s *Store) SetCompliance(asset, principle string, rating schema.Rating) (schema.Review, error) {
	if !rating.Valid() {
		return schema.Review{}, &Error{
			Code:    ErrCodeInvalidRating,
			Message: fmt.Sprintf("invalid rating %q: must be H, M, or L", string(rating)),
		}
	}
	ref, ok := s.doc.AssetReferences[asset]
	if !ok {
		return schema.Review{}, unknownRef(ErrCodeUnknownAsset, schema.KindAssetReference, asset)
	}
	if _, ok := s.doc.Principles[principle]; !ok {
		return schema.Review{}, unknownRef(ErrCodeUnknownPrinciple, schema.KindPrinciple, principle)
	}

	ts := s.doc.Touch(s.opts.Clock())
	review := ref.PrincipleReviews[principle]
	review.Rating = rating
	review.LastModified = ts

	if ref.PrincipleReviews == nil {
		ref.PrincipleReviews = map[string]schema.Review{}
	}
	ref.PrincipleReviews[principle] = review
	ref.LastModified = ts
	s.doc.AssetReferences[asset] = ref
	return review, nil
}

// StoreReview records a principle's review of an asset, replacing any
// prior review for the pair in full: latest review wins, there is no
// history. When rating is absent and extraction is enabled, a rating is
// derived from the text; a text with no recognizable level is stored
// unrated, which is a valid state, not an error.
func (s *Store) StoreReview(asset, principle, text string, rating schema.Rating) (schema.Review, error) {
	if rating != "" && !rating.Valid() {
		return schema.Review{}, &Error{
			Code:    ErrCodeInvalidRating,
			Message: fmt.Sprintf("invalid rating %q: must be H, M, or L", string(rating)),
		}
	}
	ref, ok := s.doc.AssetReferences[asset]
	if !ok {
		return schema.Review{}, unknownRef(ErrCodeUnknownAsset, schema.KindAssetReference, asset)
	}
	if _, ok := s.doc.Principles[principle]; !ok {
		return schema.Review{}, unknownRef(ErrCodeUnknownPrinciple, schema.KindPrinciple, principle)
	}

	if rating == "" && s.opts.ExtractRatings {
		rating = schema.ExtractRating(text)
	}

	ts := s.doc.Touch(s.opts.Clock())
	review := schema.Review{
		Rating:       rating,
		Analysis:     text,
		LastModified: ts,
	}

	if ref.PrincipleReviews == nil {
		ref.PrincipleReviews = map[string]schema.Review{}
	}
	ref.PrincipleReviews[principle] = review
	ref.LastModified = ts
	s.doc.AssetReferences[asset] = ref
	return review, nil
}

// normalizePath converts a raw user path to the stored project-relative
// form, mapping escapes to OUTSIDE_WORKSPACE.
func (s *Store) normalizePath(rawPath string) (string, error) {
	n := workspace.NewNormalizer(s.Root())
	rel, err := n.ToRelative(rawPath)
	if err != nil {
		return "", &Error{
			Code:    ErrCodeOutsideWorkspace,
			Message: fmt.Sprintf("path %q escapes the workspace root %s", rawPath, s.Root()),
			Err:     err,
		}
	}
	return rel, nil
}
