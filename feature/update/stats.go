package update

import (
	"context"
	"fmt"

	"dat-manager/core/itemdict"
	"dat-manager/core/reconcile"
)

// CatalogStats summarizes one parsed input.
type CatalogStats struct {
	Path     string           `json:"path"`
	Name     string           `json:"name"`
	Machines int              `json:"machines"`
	Total    int64            `json:"total"`
	Removed  int64            `json:"removed"`
	Size     int64            `json:"total_size"`
	Counts   map[string]int64 `json:"counts"`
}

// Stats parses each input on its own and reports its counters.
func (s *Service) Stats(ctx context.Context, paths []string) ([]CatalogStats, error) {
	opts, err := s.options(Request{})
	if err != nil {
		return nil, err
	}
	inputs, err := s.resolver.Expand(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	out := make([]CatalogStats, 0, len(inputs))
	for _, in := range inputs {
		dat, err := reconcile.LoadOne(ctx, in, s.cache, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Path, err)
		}
		out = append(out, catalogStats(in.Path, dat.Header.Name, dat.Items))
	}
	return out, nil
}

func catalogStats(path, name string, items *itemdict.Dict) CatalogStats {
	stats := items.Statistics()
	machines := make(map[string]struct{})
	for _, it := range items.Items() {
		if !it.Remove {
			machines[it.Machine.Name] = struct{}{}
		}
	}
	return CatalogStats{
		Path:     path,
		Name:     name,
		Machines: len(machines),
		Total:    stats.TotalCount,
		Removed:  stats.RemovedCount,
		Size:     stats.TotalSize,
		Counts:   stats.Counts(),
	}
}
