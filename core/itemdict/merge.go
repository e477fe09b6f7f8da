package itemdict

import "dat-manager/core/datitems"

// MergeOptions controls canonical merging.
type MergeOptions struct {
	// Mode restricts which pairs may be merged. DedupeNone yields one group
	// per live item.
	Mode DedupeMode

	// Match is passed to the duplicate predicate.
	Match datitems.MatchOptions
}

// Group is one canonical item and the items folded into it.
type Group struct {
	// Canonical is a clone of the first-seen member carrying every upgraded
	// hash and the union of its members' classifications.
	Canonical *datitems.Item

	// Members holds the original items in fold order. Members[0] is the
	// first-seen item the others were merged into.
	Members []*datitems.Item

	// Status holds each member's classification against the canonical item.
	// Status[0] is always DupeNone.
	Status []datitems.DupeType
}

// Sources returns the distinct source indexes of the group's members in
// first-seen order.
func (g *Group) Sources() []int {
	seen := make(map[int]struct{}, len(g.Members))
	var out []int
	for _, m := range g.Members {
		idx := m.SourceIndex()
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

// Merge folds duplicates within items, which must already be in canonical
// order. Removed items are skipped. Each item is compared with the running
// canonical of every earlier group and merged into the first that matches.
// The inputs are not modified; see Apply.
func Merge(items []*datitems.Item, opts MergeOptions) []*Group {
	var groups []*Group
	for _, it := range items {
		if it == nil || it.Remove {
			continue
		}
		if opts.Mode != DedupeNone {
			if g := findGroup(groups, it, opts); g != nil {
				status := datitems.DuplicateStatus(g.Canonical, it)
				datitems.FillMissingHashes(g.Canonical, it)
				g.Canonical.DupeType |= status
				g.Members = append(g.Members, it)
				g.Status = append(g.Status, status)
				continue
			}
		}
		groups = append(groups, &Group{
			Canonical: it.Clone(),
			Members:   []*datitems.Item{it},
			Status:    []datitems.DupeType{datitems.DupeNone},
		})
	}
	return groups
}

func findGroup(groups []*Group, it *datitems.Item, opts MergeOptions) *Group {
	for _, g := range groups {
		if opts.Mode == DedupeInternal && !sameSource(g.Members[0], it) {
			continue
		}
		if datitems.Duplicates(g.Canonical, it, opts.Match) {
			return g
		}
	}
	return nil
}

func sameSource(a, b *datitems.Item) bool {
	if a.Source == nil && b.Source == nil {
		return a.Machine.Name == b.Machine.Name
	}
	return a.SourceIndex() == b.SourceIndex()
}

// Apply writes the merge result back onto the member items: the first-seen
// member receives the canonical hashes, size and classification, every other
// member is flagged removed and classified.
func (g *Group) Apply() {
	if len(g.Members) < 2 {
		return
	}
	keep := g.Members[0]
	keep.Hashes = g.Canonical.Hashes.Clone()
	keep.Size = g.Canonical.Size
	keep.DupeType = g.Canonical.DupeType
	for i, m := range g.Members[1:] {
		m.Remove = true
		m.DupeType = g.Status[i+1]
	}
}
