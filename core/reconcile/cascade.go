package reconcile

import (
	"context"
	"fmt"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/itemdict"

	"go.uber.org/zap"
)

// DiffCascade splits dat into one output per input in priority order. Output
// i receives every item whose first occurrence is source i; later sources
// only contribute items no earlier source claimed. Duplicates within a source
// collapse into their first occurrence, carrying upgraded hashes.
func DiffCascade(ctx context.Context, dat *datfile.DatFile, inputs []Input, opts CascadeOptions) ([]Output, error) {
	start := time.Now()

	groups, err := groupItems(ctx, dat.Items.Items(), itemdict.DedupeFull, opts.Options)
	if err != nil {
		return nil, fmt.Errorf("cascade: %w", err)
	}

	base := DefaultHeader(dat.Header, true, false, false)
	outputs := make([]Output, len(inputs))
	for i, name := range sourceNames(inputs) {
		outputs[i] = Output{
			Name:   name,
			Source: i,
			Dat:    newDat(outputHeader(base, name, name), opts.Options),
		}
	}

	for _, g := range groups {
		idx := g.Members[0].SourceIndex()
		if idx < 0 || idx >= len(outputs) {
			continue
		}
		outputs[idx].Dat.Items.Add(g.Canonical.Clone())
		outputs[idx].Groups++
	}

	if opts.SkipFirst && len(outputs) > 0 {
		outputs = outputs[1:]
	}

	opts.logger().Info("Cascaded catalogs",
		zap.Int("inputs", len(inputs)),
		zap.Int("outputs", len(outputs)),
		zap.Int("groups", len(groups)),
		zap.Duration("duration", time.Since(start)),
	)
	return outputs, nil
}
