package reconcile

import (
	"context"
	"fmt"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/itemdict"

	"go.uber.org/zap"
)

// DiffDuplicates pools every source and returns the items found in at least
// two distinct sources. Each group contributes its first occurrence from
// every source it spans, with the source name appended to the set name.
func DiffDuplicates(ctx context.Context, dat *datfile.DatFile, inputs []Input, opts Options) (*Output, error) {
	groups, err := groupItems(ctx, dat.Items.Items(), itemdict.DedupeFull, opts)
	if err != nil {
		return nil, fmt.Errorf("diff duplicates: %w", err)
	}
	out := duplicatesOutput(dat.Header, inputs, groups, opts)
	opts.logger().Info("Collected duplicates",
		zap.Int("inputs", len(inputs)),
		zap.Int("groups", out.Groups),
	)
	return out, nil
}

// DiffNoDuplicates pools every source and returns the items found in exactly
// one source, with the source name appended to the set name.
func DiffNoDuplicates(ctx context.Context, dat *datfile.DatFile, inputs []Input, opts Options) (*Output, error) {
	groups, err := groupItems(ctx, dat.Items.Items(), itemdict.DedupeFull, opts)
	if err != nil {
		return nil, fmt.Errorf("diff no duplicates: %w", err)
	}
	out := noDuplicatesOutput(dat.Header, inputs, groups, opts)
	opts.logger().Info("Collected unique items",
		zap.Int("inputs", len(inputs)),
		zap.Int("groups", out.Groups),
	)
	return out, nil
}

// DiffIndividuals returns one output per source holding that source's items
// after internal deduplication. Items that also exist in other sources are
// kept.
func DiffIndividuals(ctx context.Context, dat *datfile.DatFile, inputs []Input, opts Options) ([]Output, error) {
	start := time.Now()
	groups, err := groupItems(ctx, dat.Items.Items(), itemdict.DedupeInternal, opts)
	if err != nil {
		return nil, fmt.Errorf("diff individuals: %w", err)
	}

	base := DefaultHeader(dat.Header, true, false, false)
	outputs := perSourceOutputs(base, inputs, "", opts)
	for _, g := range groups {
		idx := g.Members[0].SourceIndex()
		if idx < 0 || idx >= len(outputs) {
			continue
		}
		outputs[idx].Dat.Items.Add(g.Canonical.Clone())
		outputs[idx].Groups++
	}

	opts.logger().Info("Split catalogs per source",
		zap.Int("inputs", len(inputs)),
		zap.Int("groups", len(groups)),
		zap.Duration("duration", time.Since(start)),
	)
	return outputs, nil
}

// DiffAll computes, from a single grouping pass, the no-duplicates output,
// the duplicates output and one "<input> Only" output per source holding the
// items no other source has.
func DiffAll(ctx context.Context, dat *datfile.DatFile, inputs []Input, opts Options) ([]Output, error) {
	start := time.Now()
	groups, err := groupItems(ctx, dat.Items.Items(), itemdict.DedupeFull, opts)
	if err != nil {
		return nil, fmt.Errorf("diff all: %w", err)
	}

	outputs := []Output{
		*noDuplicatesOutput(dat.Header, inputs, groups, opts),
		*duplicatesOutput(dat.Header, inputs, groups, opts),
	}

	base := DefaultHeader(dat.Header, true, false, false)
	only := perSourceOutputs(base, inputs, "Only", opts)
	for _, g := range groups {
		srcs := g.Sources()
		if len(srcs) != 1 || srcs[0] < 0 || srcs[0] >= len(only) {
			continue
		}
		only[srcs[0]].Dat.Items.Add(g.Canonical.Clone())
		only[srcs[0]].Groups++
	}
	outputs = append(outputs, only...)

	opts.logger().Info("Diffed catalogs",
		zap.Int("inputs", len(inputs)),
		zap.Int("outputs", len(outputs)),
		zap.Int("groups", len(groups)),
		zap.Duration("duration", time.Since(start)),
	)
	return outputs, nil
}

func duplicatesOutput(header datfile.Header, inputs []Input, groups []*itemdict.Group, opts Options) *Output {
	base := DefaultHeader(header, true, false, false)
	h := outputHeader(base, base.FileName+" (Duplicates)", "Duplicates")
	out := &Output{Name: h.FileName, Source: -1, Dat: newDat(h, opts)}
	names := sourceNames(inputs)

	for _, g := range groups {
		if len(g.Sources()) < 2 {
			continue
		}
		out.Groups++
		seen := make(map[int]struct{})
		for i, m := range g.Members {
			idx := m.SourceIndex()
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			c := withSuffix(m, sourceStem(names, m))
			c.DupeType = g.Status[i]
			if i == 0 {
				c.Hashes = g.Canonical.Hashes.Clone()
				c.Size = g.Canonical.Size
				c.DupeType = g.Canonical.DupeType
			}
			out.Dat.Items.Add(c)
		}
	}
	return out
}

func noDuplicatesOutput(header datfile.Header, inputs []Input, groups []*itemdict.Group, opts Options) *Output {
	base := DefaultHeader(header, true, false, false)
	h := outputHeader(base, base.FileName+" (No Duplicates)", "No Duplicates")
	out := &Output{Name: h.FileName, Source: -1, Dat: newDat(h, opts)}
	names := sourceNames(inputs)

	for _, g := range groups {
		if len(g.Sources()) != 1 {
			continue
		}
		out.Groups++
		out.Dat.Items.Add(withSuffix(g.Canonical, sourceStem(names, g.Canonical)))
	}
	return out
}

func perSourceOutputs(base datfile.Header, inputs []Input, suffix string, opts Options) []Output {
	outputs := make([]Output, len(inputs))
	for i, name := range sourceNames(inputs) {
		label := name
		if suffix != "" {
			name += " (" + suffix + ")"
			label += " " + suffix
		}
		outputs[i] = Output{
			Name:   name,
			Source: i,
			Dat:    newDat(outputHeader(base, name, label), opts),
		}
	}
	return outputs
}
