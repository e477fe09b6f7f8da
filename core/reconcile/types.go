package reconcile

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
	"dat-manager/core/itemdict"

	"go.uber.org/zap"
)

// ErrNoOutputs is returned by ApplyPlan when no output has anything to write.
var ErrNoOutputs = errors.New("no writable outputs")

// Input is one catalog source.
type Input struct {
	// Path locates the catalog (file path, object key or catalog reference).
	Path string `json:"path"`

	// Parent is the root the input was discovered under. SuperDAT set names
	// are built from Path relative to Parent.
	Parent string `json:"parent,omitempty"`
}

// Stem returns the file name of the input without its extension.
func (in Input) Stem() string {
	base := filepath.Base(filepath.ToSlash(in.Path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Relative returns Path relative to Parent, without extension and with
// forward slashes.
func (in Input) Relative() string {
	rel := filepath.ToSlash(in.Path)
	if in.Parent != "" {
		parent := strings.TrimSuffix(filepath.ToSlash(in.Parent), "/") + "/"
		rel = strings.TrimPrefix(rel, parent)
	} else {
		rel = filepath.ToSlash(filepath.Base(in.Path))
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return strings.Trim(rel, "/")
}

// Options are shared by every engine operation.
type Options struct {
	// Key is the bucket strategy used for duplicate matching.
	// KeyNull selects KeyCRC.
	Key itemdict.ItemKey

	// Strict requires full hash identity for duplicates.
	Strict bool

	// Workers bounds concurrent ingestion, bucket merging and output
	// writing. Zero uses GOMAXPROCS.
	Workers int

	// Logger receives phase diagnostics. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) key() itemdict.ItemKey {
	if o.Key == itemdict.KeyNull {
		return itemdict.KeyCRC
	}
	return o.Key
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Output is one result catalog.
type Output struct {
	// Name is the file stem the output should be written under.
	Name string `json:"name"`

	// Source is the input index the output belongs to, or -1 for outputs
	// pooled across sources.
	Source int `json:"source"`

	// Groups counts the duplicate groups the output was built from, where
	// that is meaningful.
	Groups int `json:"groups,omitempty"`

	// Dat holds the result items.
	Dat *datfile.DatFile `json:"-"`
}

// MergeOptions configures Merge.
type MergeOptions struct {
	Options

	// SuperDAT prefixes every set name with its source's relative path.
	SuperDAT bool

	// Dedupe collapses duplicates in the merged result.
	Dedupe itemdict.DedupeMode
}

// CascadeOptions configures DiffCascade.
type CascadeOptions struct {
	Options

	// SkipFirst drops the first output while still letting it claim items.
	SkipFirst bool
}

// AgainstOptions configures DiffAgainst.
type AgainstOptions struct {
	Options

	// ByGame matches within machines instead of hash buckets.
	ByGame bool
}

// ReplaceOptions configures BaseReplace.
type ReplaceOptions struct {
	Options

	// Fields selects what is copied from base items. Empty selects the
	// item name.
	Fields datitems.FieldSet

	// OnlySame only overwrites fields still blank or at their default on the
	// candidate. A machine description equal to the machine name counts as
	// default.
	OnlySame bool
}
