package datfile

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"dat-manager/core/datitems"
	"dat-manager/core/itemdict"
)

// Header carries the catalog-level metadata of a DAT.
type Header struct {
	FileName    string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Homepage    string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Comment     string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Type is "SuperDAT" for merged catalogs that keep source paths in set
	// names.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// EnsureFields fills FileName, Name and Description from one another when
// any of them is missing, falling back to "Default".
func (h *Header) EnsureFields() {
	switch {
	case h.FileName == "" && h.Name == "" && h.Description == "":
		h.FileName, h.Name, h.Description = "Default", "Default", "Default"
	case h.FileName == "" && h.Name == "":
		h.FileName, h.Name = h.Description, h.Description
	case h.FileName == "" && h.Description == "":
		h.FileName, h.Description = h.Name, h.Name
	case h.Name == "" && h.Description == "":
		h.Name = strings.TrimSuffix(h.FileName, filepath.Ext(h.FileName))
		h.Description = h.Name
	case h.FileName == "":
		h.FileName = h.Description
	case h.Name == "":
		h.Name = h.Description
	case h.Description == "":
		h.Description = h.Name
	}
}

// DatFile is a header plus its items.
type DatFile struct {
	Header Header
	Items  *itemdict.Dict
}

// New creates an empty DatFile.
func New(header Header, opts ...itemdict.Option) *DatFile {
	return &DatFile{Header: header, Items: itemdict.New(opts...)}
}

// HasWritable reports whether the DAT has at least one live item.
// Statistics are recalculated first.
func (d *DatFile) HasWritable() bool {
	d.Items.RecalculateStats()
	stats := d.Items.Statistics()
	return stats.TotalCount > 0 && stats.TotalCount != stats.RemovedCount
}

// Stream is the lazy, non-restartable output of a format parser.
type Stream struct {
	Header Header
	Items  iter.Seq2[*datitems.Item, error]
}

// Collect drains a stream into a slice, tagging every item with src when it
// is non-nil. It stops at the first parse error or when ctx is done.
func Collect(ctx context.Context, s *Stream, src *datitems.Source) ([]*datitems.Item, error) {
	var out []*datitems.Item
	if s == nil || s.Items == nil {
		return out, nil
	}
	for it, err := range s.Items {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if it == nil {
			continue
		}
		if it.Type == datitems.ItemTypeNull {
			return nil, fmt.Errorf("item %q in machine %q has no type", it.Name, it.Machine.Name)
		}
		if src != nil {
			tagged := *src
			it.Source = &tagged
		}
		out = append(out, it)
	}
	return out, nil
}

// FromItems builds a stream over a fixed slice.
func FromItems(header Header, items []*datitems.Item) *Stream {
	return &Stream{
		Header: header,
		Items: func(yield func(*datitems.Item, error) bool) {
			for _, it := range items {
				if !yield(it, nil) {
					return
				}
			}
		},
	}
}
