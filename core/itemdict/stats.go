package itemdict

import "dat-manager/core/datitems"

// Statistics aggregates counters over a collection.
type Statistics struct {
	// TotalCount counts every physically retained item, removed or not.
	TotalCount int64 `json:"total"`

	// RemovedCount counts items flagged removed.
	RemovedCount int64 `json:"removed"`

	// TotalSize sums the known sizes of live items.
	TotalSize int64 `json:"total_size"`

	// ItemCounts counts live items per type.
	ItemCounts map[datitems.ItemType]int64 `json:"-"`

	// HashCounts counts live items carrying a non-empty hash of each kind.
	HashCounts map[datitems.HashKind]int64 `json:"-"`

	// StatusCounts counts live items per dump status.
	StatusCounts map[datitems.Status]int64 `json:"-"`
}

func newStatistics() Statistics {
	return Statistics{
		ItemCounts:   make(map[datitems.ItemType]int64),
		HashCounts:   make(map[datitems.HashKind]int64),
		StatusCounts: make(map[datitems.Status]int64),
	}
}

func (s *Statistics) add(it *datitems.Item) {
	s.TotalCount++
	if it.Remove {
		s.RemovedCount++
		return
	}
	s.ItemCounts[it.Type]++
	if it.SizeKnown() {
		s.TotalSize += it.Size
	}
	for kind, v := range it.Hashes {
		if v != "" {
			s.HashCounts[kind]++
		}
	}
	if it.Status != datitems.StatusNone {
		s.StatusCounts[it.Status]++
	}
}

func (s Statistics) clone() Statistics {
	c := newStatistics()
	c.TotalCount, c.RemovedCount, c.TotalSize = s.TotalCount, s.RemovedCount, s.TotalSize
	for k, v := range s.ItemCounts {
		c.ItemCounts[k] = v
	}
	for k, v := range s.HashCounts {
		c.HashCounts[k] = v
	}
	for k, v := range s.StatusCounts {
		c.StatusCounts[k] = v
	}
	return c
}

// Counts flattens the per-type, per-hash and per-status counters into a map
// keyed by their names.
func (s Statistics) Counts() map[string]int64 {
	out := make(map[string]int64, len(s.ItemCounts)+len(s.HashCounts)+len(s.StatusCounts))
	for k, v := range s.ItemCounts {
		out[k.String()] = v
	}
	for k, v := range s.HashCounts {
		out["hash."+k.String()] = v
	}
	for k, v := range s.StatusCounts {
		out["status."+k.String()] = v
	}
	return out
}

// Statistics returns a snapshot of the cached counters.
func (d *Dict) Statistics() Statistics {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats.clone()
}

// GetItemCount returns the cached live count for an item type.
func (d *Dict) GetItemCount(t datitems.ItemType) int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats.ItemCounts[t]
}

// RecalculateStats rebuilds every counter from a full scan.
func (d *Dict) RecalculateStats() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recalculateLocked()
}

func (d *Dict) recalculateLocked() {
	d.stats = newStatistics()
	for _, items := range d.buckets {
		for _, it := range items {
			d.stats.add(it)
		}
	}
}

// ResetStatistics zeroes every counter without touching the items.
func (d *Dict) ResetStatistics() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats = newStatistics()
}
