package reconcile

import (
	"context"
	"fmt"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
	"dat-manager/core/itemdict"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// baseIndex is a read-only bucket index over a base catalog's live items.
type baseIndex struct {
	key     itemdict.ItemKey
	buckets map[string][]*datitems.Item
	match   datitems.MatchOptions
}

func newBaseIndex(base *datfile.DatFile, key itemdict.ItemKey, strict bool) *baseIndex {
	idx := &baseIndex{
		key:     key,
		buckets: make(map[string][]*datitems.Item),
		match:   datitems.MatchOptions{AllowNameMismatch: key.IsHash(), Strict: strict},
	}
	for _, it := range base.Items.Items() {
		if it.Remove {
			continue
		}
		k := itemdict.KeyFor(it, key)
		idx.buckets[k] = append(idx.buckets[k], it)
	}
	return idx
}

// first returns the earliest base item that duplicates probe.
func (b *baseIndex) first(probe *datitems.Item) *datitems.Item {
	k := itemdict.KeyFor(probe, b.key)
	match := b.match
	if k == itemdict.NoHashKey {
		match.AllowNameMismatch = false
	}
	for _, it := range b.buckets[k] {
		if datitems.Duplicates(it, probe, match) {
			return it
		}
	}
	return nil
}

// DiffAgainst flags every candidate item that duplicates an item of base as
// removed and classifies it. What stays live in each candidate is what it
// adds over base. Matching uses hash buckets, or machines when ByGame is
// set. Base is never modified. Candidates are processed concurrently and
// returned as outputs in order.
func DiffAgainst(ctx context.Context, base *datfile.DatFile, candidates []*datfile.DatFile, opts AgainstOptions) ([]Output, error) {
	start := time.Now()

	key := opts.key()
	if opts.ByGame {
		key = itemdict.KeyMachine
	}
	idx := newBaseIndex(base, key, opts.Strict)

	outputs := make([]Output, len(candidates))
	removed := make([]int, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, cand := range candidates {
		g.Go(func() error {
			for n, it := range cand.Items.Items() {
				if n%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if it.Remove {
					continue
				}
				if match := idx.first(it); match != nil {
					// Base and candidate are always distinct catalogs,
					// whatever source index each was loaded with.
					status := datitems.DuplicateStatus(match, it)
					it.DupeType = status&^datitems.DupeInternal | datitems.DupeExternal
					it.Remove = true
					removed[i]++
				}
			}
			cand.Items.RecalculateStats()
			outputs[i] = Output{Name: cand.Header.FileName, Source: i, Dat: cand}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("diff against: %w", err)
	}

	total := 0
	for _, n := range removed {
		total += n
	}
	opts.logger().Info("Diffed against base",
		zap.String("key", key.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("removed", total),
		zap.Duration("duration", time.Since(start)),
	)
	return outputs, nil
}
