// Package schema defines the on-disk document model for VQL storage.
//
// One JSON document (vql_storage.json) holds everything the tool knows
// about a project: principles, entities, asset types, asset references,
// and the per-principle reviews attached to each asset reference.
//
// # Invariants
//
// The document maintains:
//   - Unified namespace: short identifiers are unique across principles,
//     entities, asset types, and asset references combined.
//   - Referential integrity: an asset reference's entity and asset type
//     must exist at creation time.
//   - Relative paths: asset paths are forward-slash, relative to the
//     workspace root (the parent of the VQL directory).
//   - Monotonic timestamps: last_modified never moves backwards, and a
//     mutated sub-entity is stamped with the same instant as the document.
//
// Structural validation of loaded bytes happens against the embedded CUE
// schema in schema.cue; see ValidateDocumentBytes.
//
// Field names and value encodings are part of the external contract and
// must not change: snake_case keys, collections are JSON objects keyed by
// short identifier, timestamps are ISO 8601 with a literal Z suffix, and
// ratings are the single letters "H", "M", "L".
package schema
