package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
	"dat-manager/core/itemdict"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// groupItems buckets the live items under key and folds every bucket with
// itemdict.Merge. Buckets are merged concurrently. Groups come back ordered by
// the position of their first member in items, which must be in canonical
// order.
func groupItems(ctx context.Context, items []*datitems.Item, mode itemdict.DedupeMode, opts Options) ([]*itemdict.Group, error) {
	start := time.Now()
	key := opts.key()

	pos := make(map[*datitems.Item]int, len(items))
	buckets := make(map[string][]*datitems.Item)
	var keys []string
	for i, it := range items {
		if it.Remove {
			continue
		}
		pos[it] = i
		k := itemdict.KeyFor(it, key)
		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], it)
	}

	results := make([][]*itemdict.Group, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, k := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = itemdict.Merge(buckets[k], itemdict.MergeOptions{
				Mode: mode,
				Match: datitems.MatchOptions{
					AllowNameMismatch: key.IsHash() && k != itemdict.NoHashKey,
					Strict:            opts.Strict,
				},
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var groups []*itemdict.Group
	for _, r := range results {
		groups = append(groups, r...)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return pos[groups[a].Members[0]] < pos[groups[b].Members[0]]
	})

	opts.logger().Debug("Grouped items",
		zap.String("key", key.String()),
		zap.String("dedupe", mode.String()),
		zap.Int("items", len(pos)),
		zap.Int("buckets", len(keys)),
		zap.Int("groups", len(groups)),
		zap.Duration("duration", time.Since(start)),
	)
	return groups, nil
}

func newDat(header datfile.Header, opts Options) *datfile.DatFile {
	return datfile.New(header,
		itemdict.WithStrictMatching(opts.Strict),
		itemdict.WithLogger(opts.Logger),
	)
}

// withSuffix clones it and appends " (suffix)" to its set name.
func withSuffix(it *datitems.Item, suffix string) *datitems.Item {
	c := it.Clone()
	if suffix != "" {
		c.Machine.Name += " (" + suffix + ")"
	}
	return c
}

// sourceNames returns one distinct label per input. Inputs keep their stem
// unless another input shares it; those use their relative path with
// separators shown as " - ", then "<index> - <stem>" if that still collides.
func sourceNames(inputs []Input) []string {
	count := func(label func(Input) string) map[string]int {
		seen := make(map[string]int, len(inputs))
		for _, in := range inputs {
			seen[label(in)]++
		}
		return seen
	}
	relative := func(in Input) string {
		return strings.ReplaceAll(in.Relative(), "/", " - ")
	}
	stems := count(Input.Stem)
	rels := count(relative)

	names := make([]string, len(inputs))
	for i, in := range inputs {
		switch {
		case stems[in.Stem()] == 1:
			names[i] = in.Stem()
		case rels[relative(in)] == 1:
			names[i] = relative(in)
		default:
			names[i] = fmt.Sprintf("%d - %s", i, in.Stem())
		}
	}
	return names
}

// sourceStem labels the input an item came from, using names from
// sourceNames when the item carries a known index.
func sourceStem(names []string, it *datitems.Item) string {
	idx := it.SourceIndex()
	if idx >= 0 && idx < len(names) {
		return names[idx]
	}
	if it.Source != nil {
		return Input{Path: it.Source.Name}.Stem()
	}
	return ""
}

// outputHeader derives the header of a result catalog from the combined
// header: name and description get " (suffix)" appended.
func outputHeader(base datfile.Header, fileName, suffix string) datfile.Header {
	h := base
	h.FileName = fileName
	if suffix != "" {
		h.Name = base.Name + " (" + suffix + ")"
		h.Description = base.Description + " (" + suffix + ")"
	}
	h.EnsureFields()
	return h
}

// DefaultHeader fills an empty combined header the way merge and diff runs
// name their results: "DiffDAT" or "MergeDAT", with "-SuperDAT" and
// "-deduped" markers.
func DefaultHeader(h datfile.Header, diff, superDAT, deduped bool) datfile.Header {
	name := "MergeDAT"
	if diff {
		name = "DiffDAT"
	}
	if superDAT {
		name += "-SuperDAT"
	}
	if deduped {
		name += "-deduped"
	}
	if h.Name == "" {
		h.Name = name
	}
	if h.Description == "" {
		h.Description = name
	}
	if h.FileName == "" {
		h.FileName = h.Name
	}
	if h.Category == "" && diff {
		h.Category = "DiffDAT"
	}
	if h.Date == "" {
		h.Date = time.Now().Format("2006-01-02")
	}
	if h.Author == "" {
		h.Author = "dat-manager"
	}
	if superDAT {
		h.Type = "SuperDAT"
	}
	return h
}
