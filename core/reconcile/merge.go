package reconcile

import (
	"context"
	"fmt"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
	"dat-manager/core/itemdict"

	"go.uber.org/zap"
)

// Merge returns the union of every live item in dat. With SuperDAT set each
// set name, and the clone/rom/sample references inside the same source, are
// prefixed with the source's relative path. With Dedupe set the union is
// bucketed and collapsed; collapsed items stay in the result flagged removed.
func Merge(ctx context.Context, dat *datfile.DatFile, inputs []Input, opts MergeOptions) (*Output, error) {
	start := time.Now()

	header := DefaultHeader(dat.Header, false, opts.SuperDAT, opts.Dedupe != itemdict.DedupeNone)
	out := newDat(header, opts.Options)

	var items []*datitems.Item
	for _, it := range dat.Items.Items() {
		if it.Remove {
			continue
		}
		c := it.Clone()
		if opts.SuperDAT {
			prefixMachine(&c.Machine, superDATPrefix(inputs, c))
		}
		items = append(items, c)
	}
	out.Items.AddRange(items)

	if opts.Dedupe != itemdict.DedupeNone {
		if err := out.Items.BucketBy(ctx, opts.key(), opts.Dedupe); err != nil {
			return nil, fmt.Errorf("merge: %w", err)
		}
	}

	stats := out.Items.Statistics()
	opts.logger().Info("Merged catalogs",
		zap.Int("inputs", len(inputs)),
		zap.Bool("superdat", opts.SuperDAT),
		zap.String("dedupe", opts.Dedupe.String()),
		zap.Int64("items", stats.TotalCount-stats.RemovedCount),
		zap.Int64("removed", stats.RemovedCount),
		zap.Duration("duration", time.Since(start)),
	)
	return &Output{Name: header.FileName, Source: -1, Dat: out}, nil
}

func superDATPrefix(inputs []Input, it *datitems.Item) string {
	idx := it.SourceIndex()
	if idx >= 0 && idx < len(inputs) {
		return inputs[idx].Relative()
	}
	return sourceStem(nil, it)
}

func prefixMachine(m *datitems.Machine, prefix string) {
	if prefix == "" {
		return
	}
	m.Name = prefix + "/" + m.Name
	for _, ref := range []*string{&m.CloneOf, &m.RomOf, &m.SampleOf} {
		if *ref != "" {
			*ref = prefix + "/" + *ref
		}
	}
}
