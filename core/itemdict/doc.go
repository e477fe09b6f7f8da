// Package itemdict implements the bucketed item collection that the
// reconciliation engine operates on.
//
// # Buckets
//
// A Dict maps a bucket key to an ordered list of items. The key strategy is
// chosen with BucketBy: machine name, one of the hash kinds, or item type.
// Items lacking the chosen hash are kept under NoHashKey rather than dropped.
// Within a bucket items are ordered by source index, then by insertion order,
// so the first-seen item always leads.
//
// # Deduplication
//
// BucketBy can collapse duplicates while rebucketing. Merge is the pure form:
// it walks a bucket in order and folds every duplicate into the running
// first-seen item (hash upgrade), returning one Group per canonical item.
// BucketBy applies the groups in place by flagging the folded items removed
// and classifying them. Items are never physically deleted until ClearMarked.
//
// # Statistics
//
// Totals count every physically retained item; RemovedCount is the flagged
// subset; per-type counts cover live items only. Counters are maintained on
// Add and ClearMarked. Callers that flip Remove directly must call
// RecalculateStats before trusting them.
//
// # Concurrency
//
// A Dict is safe for concurrent use. BucketBy checks its context between
// buckets and swaps the rebuilt mapping in only when it completes, so a
// cancelled rebucket leaves the previous state untouched.
package itemdict
