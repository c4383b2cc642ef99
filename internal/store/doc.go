// Package store is the engine over the persisted VQL document: it loads,
// mutates, and atomically rewrites vql_storage.json, and enforces every
// invariant the document carries.
//
// # Operation model
//
// Every operation runs inside one short-lived process invocation as a
// synchronous load-mutate-save cycle. Callers open a store (one load),
// apply exactly one logical mutation, and Save (one atomic rewrite).
// Nothing is held open between operations.
//
// # Consistency
//
// There is no cross-process locking. Two invocations racing between
// their load and their save resolve as last writer wins at whole-document
// granularity. The atomic temp-file-plus-rename write means readers never
// observe a torn file, only a stale one; readers must re-load per query.
// The optional stale check (Options.StaleCheck) detects an external
// write between load and save and refuses the save with STALE_DOCUMENT
// rather than overwriting it.
//
// # Enforced invariants
//
//   - Unified namespace across principles, entities, asset types, and
//     asset references (CheckAvailable).
//   - Referential integrity at asset-reference creation time.
//   - Stored paths are forward-slash, workspace-relative, never escaping
//     the root.
//   - Document last_modified is monotonically non-decreasing, and every
//     mutated sub-entity is stamped with the same instant.
//   - A review's rating is one of H/M/L or absent; absent is a distinct
//     state, not a fourth value.
package store
