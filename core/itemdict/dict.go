package itemdict

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"dat-manager/core/datitems"

	"go.uber.org/zap"
)

// cancelCheckEvery is how many items are scanned between context checks.
const cancelCheckEvery = 1024

// Dict is a bucketed, multi-valued item collection.
type Dict struct {
	mu         sync.RWMutex
	buckets    map[string][]*datitems.Item
	bucketedBy ItemKey
	seq        map[*datitems.Item]uint64
	next       uint64
	stats      Statistics
	strict     bool
	logger     *zap.Logger
}

// Option configures a Dict.
type Option func(*Dict)

// WithStrictMatching makes deduplication require full hash identity.
func WithStrictMatching(strict bool) Option {
	return func(d *Dict) { d.strict = strict }
}

// WithLogger sets the logger used for bucketing diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dict) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates an empty, unbucketed collection.
func New(opts ...Option) *Dict {
	d := &Dict{
		buckets: make(map[string][]*datitems.Item),
		seq:     make(map[*datitems.Item]uint64),
		stats:   newStatistics(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BucketedBy returns the current key strategy.
func (d *Dict) BucketedBy() ItemKey {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bucketedBy
}

// Strict reports whether deduplication requires full hash identity.
func (d *Dict) Strict() bool {
	return d.strict
}

// Add inserts an item under the key derived from the current strategy and
// returns that key. Nil items are ignored.
func (d *Dict) Add(it *datitems.Item) string {
	if it == nil {
		return ""
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	key := KeyFor(it, d.bucketedBy)
	d.addLocked(key, it)
	return key
}

// AddRange inserts items in order.
func (d *Dict) AddRange(items []*datitems.Item) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range items {
		if it == nil {
			continue
		}
		d.addLocked(KeyFor(it, d.bucketedBy), it)
	}
}

func (d *Dict) addLocked(key string, it *datitems.Item) {
	if _, ok := d.seq[it]; !ok {
		d.seq[it] = d.next
		d.next++
	}
	d.buckets[key] = append(d.buckets[key], it)
	d.stats.add(it)
}

// Get returns a copy of the bucket's item list. Missing buckets yield nil.
func (d *Dict) Get(key string) []*datitems.Item {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.buckets[key])
}

// Set replaces a bucket's contents. Statistics are not updated; call
// RecalculateStats afterwards.
func (d *Dict) Set(key string, items []*datitems.Item) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range items {
		if _, ok := d.seq[it]; !ok {
			d.seq[it] = d.next
			d.next++
		}
	}
	d.buckets[key] = slices.Clone(items)
}

// Remove drops a whole bucket. Statistics are not updated.
func (d *Dict) Remove(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range d.buckets[key] {
		delete(d.seq, it)
	}
	delete(d.buckets, key)
}

// Keys returns the bucket keys in sorted order.
func (d *Dict) Keys() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	keys := make([]string, 0, len(d.buckets))
	for k := range d.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of physically retained items.
func (d *Dict) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for _, items := range d.buckets {
		n += len(items)
	}
	return n
}

// Items returns every retained item in canonical order.
func (d *Dict) Items() []*datitems.Item {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.orderedLocked()
}

func (d *Dict) orderedLocked() []*datitems.Item {
	out := make([]*datitems.Item, 0, len(d.seq))
	for _, items := range d.buckets {
		out = append(out, items...)
	}
	d.sortLocked(out)
	return out
}

func (d *Dict) sortLocked(items []*datitems.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := items[i].SourceIndex(), items[j].SourceIndex()
		if si != sj {
			return si < sj
		}
		return d.seq[items[i]] < d.seq[items[j]]
	})
}

// BucketBy rebuilds the mapping under strategy key and optionally collapses
// duplicates. KeyNull is a no-op. Calling it again with the same arguments
// yields the same key set and membership.
func (d *Dict) BucketBy(ctx context.Context, key ItemKey, mode DedupeMode) error {
	if key == KeyNull {
		return nil
	}
	start := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	rebuilt := make(map[string][]*datitems.Item, len(d.buckets))
	for i, it := range d.orderedLocked() {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("bucket by %s: %w", key, err)
			}
		}
		k := KeyFor(it, key)
		rebuilt[k] = append(rebuilt[k], it)
	}

	var groups []*Group
	if mode != DedupeNone {
		opts := MergeOptions{
			Mode:  mode,
			Match: datitems.MatchOptions{AllowNameMismatch: key.IsHash(), Strict: d.strict},
		}
		for k, items := range rebuilt {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("bucket by %s: %w", key, err)
			}
			bucketOpts := opts
			if k == NoHashKey {
				// Items without the key hash only merge when they share a name.
				bucketOpts.Match.AllowNameMismatch = false
			}
			groups = append(groups, Merge(items, bucketOpts)...)
		}
	}

	merged := 0
	for _, g := range groups {
		g.Apply()
		merged += len(g.Members) - 1
	}
	d.buckets = rebuilt
	d.bucketedBy = key
	if merged > 0 {
		d.recalculateLocked()
	}

	d.logger.Debug("Bucketed items",
		zap.String("key", key.String()),
		zap.String("dedupe", mode.String()),
		zap.Int("buckets", len(rebuilt)),
		zap.Int("merged", merged),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// ClearEmpty removes every bucket holding no items.
func (d *Dict) ClearEmpty() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, items := range d.buckets {
		if len(items) == 0 {
			delete(d.buckets, k)
		}
	}
}

// ClearMarked physically drops every item flagged removed. Buckets that end
// up empty are kept.
func (d *Dict) ClearMarked() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, items := range d.buckets {
		kept := make([]*datitems.Item, 0, len(items))
		for _, it := range items {
			if it.Remove {
				d.stats.TotalCount--
				d.stats.RemovedCount--
				delete(d.seq, it)
				continue
			}
			kept = append(kept, it)
		}
		d.buckets[k] = kept
	}
}

// GetDuplicates returns the live items in probe's bucket that are duplicates
// of probe under the current strategy.
func (d *Dict) GetDuplicates(probe *datitems.Item) []*datitems.Item {
	if probe == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	key := d.bucketedBy.effective()
	opts := datitems.MatchOptions{AllowNameMismatch: key.IsHash(), Strict: d.strict}
	var out []*datitems.Item
	for _, it := range d.buckets[KeyFor(probe, key)] {
		if it.Remove {
			continue
		}
		if datitems.Duplicates(it, probe, opts) {
			out = append(out, it)
		}
	}
	return out
}

// HasDuplicates reports whether GetDuplicates would return anything.
func (d *Dict) HasDuplicates(probe *datitems.Item) bool {
	if probe == nil {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	key := d.bucketedBy.effective()
	opts := datitems.MatchOptions{AllowNameMismatch: key.IsHash(), Strict: d.strict}
	for _, it := range d.buckets[KeyFor(probe, key)] {
		if !it.Remove && datitems.Duplicates(it, probe, opts) {
			return true
		}
	}
	return false
}
