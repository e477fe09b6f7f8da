// Package datitems defines the catalog data model: machines, the closed set of
// item variants they own, content hashes, and the identity rules used to decide
// whether two item records denote the same underlying artifact.
//
// # Variants
//
// Items are a tagged union. Every Item carries the shared envelope (name, size,
// hashes, status, owning machine, source provenance) and a small type-specific
// payload. Behaviour that differs between variants dispatches on Item.Type
// through a compile-time metadata table rather than on dynamic type identity.
//
// # Ownership
//
// A Machine is owned by value by each Item. Two items of the same set carry
// equal copies; mutating one item's machine never reaches another item.
// Re-association is explicit (assign a new Machine value).
//
// # Identity
//
// Duplicates implements the duplicate predicate:
//   - names equal, unless matching under a hash bucket key where a shared hash suffices
//   - every hash kind present on both sides must be equal (case-insensitive)
//   - sizes must be equal when both are known
//
// DuplicateStatus classifies a confirmed pair as Internal (same source) or
// External (different sources), and as All (every hash of the variant present
// and equal on both sides) or Hash (partial match).
package datitems
