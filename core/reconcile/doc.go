// Package reconcile implements the multi-source reconciliation engine: it
// ingests N catalog sources into one collection tagged by source index and
// computes merges, priority diffs and duplicate partitions over it.
//
// # Architecture
//
// The engine runs in three phases:
//
// 1. Ingestion: every Input is parsed by a Loader concurrently into its own
// staging list. Staging lists are then appended to the shared collection in
// source order by a single writer, so item order is deterministic.
//
// 2. Grouping: live items are bucketed under a key strategy and each bucket is
// folded into canonical groups (itemdict.Merge). Buckets are disjoint, so
// they are merged concurrently; groups are then re-sorted into input order.
//
// 3. Output: each operation turns groups into one or more Output catalogs.
// ApplyPlan serializes every output through a Sink concurrently.
//
// # Operations
//
//   - Merge: plain union, optionally deduplicated, optionally SuperDAT prefixed
//   - DiffCascade: output i holds what source i contributes first
//   - DiffAgainst: flag candidate items already present in a base
//   - BaseReplace: copy selected fields from matching base items
//   - DiffDuplicates / DiffNoDuplicates: items seen in several sources, or one
//   - DiffIndividuals: every source after internal deduplication
//   - DiffAll: no-duplicates, duplicates and per-source unique outputs at once
//   - SplitByExtension: partition a catalog by item file extension
//
// Ties always resolve to the lowest source index, then the earliest insertion.
//
// # Usage Example
//
//	dat := datfile.New(datfile.Header{})
//	if _, err := reconcile.Populate(ctx, dat, inputs, loader, opts); err != nil {
//	    return err
//	}
//	outputs, err := reconcile.DiffCascade(ctx, dat, inputs, reconcile.CascadeOptions{Options: opts})
//	plan := reconcile.NewPlan("cascade", len(inputs), outputs)
//	written, err := reconcile.ApplyPlan(ctx, plan, reconcile.DirSink{Dir: "out"}, applyOpts)
package reconcile
