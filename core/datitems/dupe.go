package datitems

import "strings"

// DupeType classifies a confirmed duplicate. It is a flag set: exactly one of
// Internal or External combined with exactly one of All or Hash.
type DupeType uint8

const (
	DupeAll      DupeType = 1 << 0
	DupeHash     DupeType = 1 << 1
	DupeInternal DupeType = 1 << 2
	DupeExternal DupeType = 1 << 3

	DupeNone         DupeType = 0
	DupeInternalAll           = DupeInternal | DupeAll
	DupeInternalHash          = DupeInternal | DupeHash
	DupeExternalAll           = DupeExternal | DupeAll
	DupeExternalHash          = DupeExternal | DupeHash
)

// Has reports whether every flag of f is set.
func (d DupeType) Has(f DupeType) bool {
	return f != 0 && d&f == f
}

func (d DupeType) String() string {
	if d == DupeNone {
		return "none"
	}
	var parts []string
	if d.Has(DupeInternal) {
		parts = append(parts, "internal")
	}
	if d.Has(DupeExternal) {
		parts = append(parts, "external")
	}
	if d.Has(DupeAll) {
		parts = append(parts, "all")
	}
	if d.Has(DupeHash) {
		parts = append(parts, "hash")
	}
	return strings.Join(parts, "|")
}

// MatchOptions tunes the duplicate predicate.
type MatchOptions struct {
	// AllowNameMismatch lets items with different names match when they share
	// at least one hash. Set when the active bucket key is a hash kind.
	AllowNameMismatch bool

	// Strict requires every hash kind of the variant to be present and equal
	// on both sides.
	Strict bool
}

// Duplicates reports whether a and b denote the same artifact.
// Items of different types never match.
func Duplicates(a, b *Item, opts MatchOptions) bool {
	if a == nil || b == nil || a.Type != b.Type {
		return false
	}
	if !a.Type.HasHashes() {
		return payloadEqual(a, b)
	}

	shared := 0
	for _, kind := range a.Type.HashKinds() {
		va, vb := a.Hashes[kind], b.Hashes[kind]
		if va == "" || vb == "" {
			if opts.Strict {
				return false
			}
			continue
		}
		if !strings.EqualFold(va, vb) {
			return false
		}
		shared++
	}

	if a.SizeKnown() && b.SizeKnown() && a.Size != b.Size {
		return false
	}

	if a.Name != b.Name {
		return opts.AllowNameMismatch && shared > 0
	}
	return true
}

// payloadEqual compares the identifying fields of variants without hashes.
func payloadEqual(a, b *Item) bool {
	switch a.Type {
	case ItemTypeBlank:
		return a.Machine.Name == b.Machine.Name
	case ItemTypeRelease:
		return a.Name == b.Name && a.Region == b.Region && a.Language == b.Language &&
			a.Date == b.Date && a.Default == b.Default
	case ItemTypeBiosSet:
		return a.Name == b.Name && a.Description == b.Description && a.Default == b.Default
	case ItemTypeInfo, ItemTypeSharedFeature, ItemTypePartFeature:
		return a.Name == b.Name && a.Value == b.Value
	case ItemTypeDipSwitch:
		return a.Name == b.Name && a.Tag == b.Tag && a.Mask == b.Mask
	case ItemTypeChip:
		return a.Name == b.Name && a.Tag == b.Tag
	case ItemTypeSound:
		return a.Channels == b.Channels
	case ItemTypeDisplay:
		return a.Tag == b.Tag
	default:
		return a.Name == b.Name
	}
}

// DuplicateStatus classifies incoming against keep. It assumes the pair has
// already been confirmed by Duplicates.
func DuplicateStatus(keep, incoming *Item) DupeType {
	var status DupeType
	switch {
	case keep.Source != nil && incoming.Source != nil:
		if keep.Source.Index == incoming.Source.Index {
			status = DupeInternal
		} else {
			status = DupeExternal
		}
	case keep.Source == nil && incoming.Source == nil && keep.Machine.Name == incoming.Machine.Name:
		status = DupeInternal
	default:
		status = DupeExternal
	}

	if fullHashMatch(keep, incoming) {
		return status | DupeAll
	}
	return status | DupeHash
}

// fullHashMatch reports whether every hash kind the variant supports is
// present and equal on both sides. Variants without hashes compare by payload
// and always count as a full match.
func fullHashMatch(a, b *Item) bool {
	kinds := a.Type.HashKinds()
	if len(kinds) == 0 {
		return true
	}
	for _, kind := range kinds {
		va, vb := a.Hashes[kind], b.Hashes[kind]
		if va == "" || vb == "" || !strings.EqualFold(va, vb) {
			return false
		}
	}
	return true
}

// FillMissingHashes copies every hash that keep lacks from incoming, and
// adopts incoming's size when keep's is unknown. It reports whether keep
// changed.
func FillMissingHashes(keep, incoming *Item) bool {
	changed := false
	for _, kind := range keep.Type.HashKinds() {
		if keep.Hashes.Has(kind) {
			continue
		}
		v, ok := incoming.Hashes.Get(kind)
		if !ok {
			continue
		}
		if cur, had := keep.Hashes.Get(kind); had && cur == v {
			continue
		}
		keep.SetHash(kind, v)
		changed = true
	}
	if !keep.SizeKnown() && incoming.SizeKnown() {
		keep.Size = incoming.Size
		changed = true
	}
	return changed
}
