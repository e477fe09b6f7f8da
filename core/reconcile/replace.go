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

// DefaultReplaceFields is used when BaseReplace is given no fields.
var DefaultReplaceFields = datitems.FieldSet{Item: []datitems.ItemField{datitems.ItemFieldName}}

// replaceIndex finds base items and machines for BaseReplace.
type replaceIndex struct {
	byHash   map[datitems.HashKind]map[string][]*datitems.Item
	byName   map[string][]*datitems.Item
	machines map[string]datitems.Machine
	strict   bool
}

func newReplaceIndex(base *datfile.DatFile, strict bool) *replaceIndex {
	idx := &replaceIndex{
		byHash:   make(map[datitems.HashKind]map[string][]*datitems.Item),
		byName:   make(map[string][]*datitems.Item),
		machines: make(map[string]datitems.Machine),
		strict:   strict,
	}
	for _, kind := range datitems.AllHashKinds {
		idx.byHash[kind] = make(map[string][]*datitems.Item)
	}
	for _, it := range base.Items.Items() {
		if it.Remove {
			continue
		}
		if _, ok := idx.machines[it.Machine.Name]; !ok {
			idx.machines[it.Machine.Name] = it.Machine
		}
		k := itemdict.KeyFor(it, itemdict.KeyMachine)
		idx.byName[k] = append(idx.byName[k], it)
		for _, kind := range it.Type.HashKinds() {
			if v := it.Hash(kind); v != "" {
				idx.byHash[kind][v] = append(idx.byHash[kind][v], it)
			}
		}
	}
	return idx
}

// item returns the earliest base item that duplicates probe. The weakest
// hash probe carries selects the bucket; names may then differ. Items
// without hashes match within their machine by name.
func (r *replaceIndex) item(probe *datitems.Item) *datitems.Item {
	for _, kind := range probe.Type.HashKinds() {
		v := probe.Hash(kind)
		if v == "" {
			continue
		}
		opts := datitems.MatchOptions{AllowNameMismatch: true, Strict: r.strict}
		for _, it := range r.byHash[kind][v] {
			if datitems.Duplicates(it, probe, opts) {
				return it
			}
		}
		return nil
	}
	opts := datitems.MatchOptions{Strict: r.strict}
	for _, it := range r.byName[probe.Machine.Name] {
		if datitems.Duplicates(it, probe, opts) {
			return it
		}
	}
	return nil
}

// BaseReplace copies the selected fields from base onto every candidate item
// that matches it. Item fields come from the first duplicate base item;
// machine fields come from the base machine of the same name. Unmatched
// items pass through unchanged. Candidates are modified in place and
// returned as outputs.
func BaseReplace(ctx context.Context, base *datfile.DatFile, candidates []*datfile.DatFile, opts ReplaceOptions) ([]Output, error) {
	start := time.Now()

	fields := opts.Fields
	if fields.Empty() {
		fields = DefaultReplaceFields
	}
	idx := newReplaceIndex(base, opts.Strict)

	outputs := make([]Output, len(candidates))
	replaced := make([]int, len(candidates))

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
				touched := false
				if len(fields.Item) > 0 {
					if match := idx.item(it); match != nil {
						datitems.ReplaceItemFields(it, match, fields.Item, opts.OnlySame)
						touched = true
					}
				}
				if len(fields.Machine) > 0 {
					if m, ok := idx.machines[it.Machine.Name]; ok {
						datitems.ReplaceMachineFields(&it.Machine, m, fields.Machine, opts.OnlySame)
						touched = true
					}
				}
				if touched {
					replaced[i]++
				}
			}
			cand.Items.RecalculateStats()
			outputs[i] = Output{Name: cand.Header.FileName, Source: i, Dat: cand}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("base replace: %w", err)
	}

	total := 0
	for _, n := range replaced {
		total += n
	}
	opts.logger().Info("Replaced fields from base",
		zap.Strings("fields", fields.Strings()),
		zap.Bool("only_same", opts.OnlySame),
		zap.Int("candidates", len(candidates)),
		zap.Int("items", total),
		zap.Duration("duration", time.Since(start)),
	)
	return outputs, nil
}
