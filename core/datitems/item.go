package datitems

// SizeUnknown marks an item whose size was not supplied.
const SizeUnknown int64 = -1

// Source records which input produced an item.
type Source struct {
	// Index is the zero-based position of the input in the reconcile order.
	Index int `json:"index"`

	// Name is the input path or identifier the item was read from.
	Name string `json:"name"`
}

// Item is a single cataloged artifact. Only the payload fields relevant to
// Type are meaningful; the rest stay at their zero value.
type Item struct {
	// Type discriminates the variant.
	Type ItemType `json:"-"`

	// Name is required for hash-bearing variants.
	Name string `json:"name"`

	// Size in bytes, or SizeUnknown.
	Size int64 `json:"size"`

	// Hashes holds the content hashes supplied for the item.
	Hashes Hashes `json:"-"`

	// Status is the dump status (Rom and Disk only).
	Status Status `json:"-"`

	// Machine is the owning set, held by value.
	Machine Machine `json:"-"`

	// Source is nil until the item is ingested into a reconciliation.
	Source *Source `json:"-"`

	// DupeType is assigned by the reconciliation engine only.
	DupeType DupeType `json:"-"`

	// Remove flags the item as logically deleted.
	Remove bool `json:"-"`

	// Payload fields.
	Merge       string `json:"merge,omitempty"`
	Bios        string `json:"bios,omitempty"`
	Region      string `json:"region,omitempty"`
	Language    string `json:"language,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Mask        string `json:"mask,omitempty"`
	Default     bool   `json:"default,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
	Channels    int    `json:"channels,omitempty"`
}

// NewItem creates an item of the given type owned by machine. All other
// fields are unset.
func NewItem(t ItemType, machine Machine) *Item {
	return &Item{
		Type:    t,
		Size:    SizeUnknown,
		Machine: machine,
	}
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	c.Hashes = i.Hashes.Clone()
	if i.Source != nil {
		src := *i.Source
		c.Source = &src
	}
	return &c
}

// SetHash stores a hash value, allocating the map on first use.
func (i *Item) SetHash(kind HashKind, value string) {
	if i.Hashes == nil {
		i.Hashes = make(Hashes)
	}
	i.Hashes[kind] = value
}

// Hash returns the hash of kind, or "" when absent.
func (i *Item) Hash(kind HashKind) string {
	return i.Hashes[kind]
}

// SizeKnown reports whether the item's size takes part in identity tests.
func (i *Item) SizeKnown() bool {
	return i.Size >= 0
}

// SourceIndex returns the source index, or -1 when the item has no source.
func (i *Item) SourceIndex() int {
	if i.Source == nil {
		return -1
	}
	return i.Source.Index
}

// IsBlank reports whether the item is a placeholder that writers may skip
// when asked to ignore blanks.
func (i *Item) IsBlank() bool {
	switch i.Type {
	case ItemTypeBlank:
		return true
	case ItemTypeRom:
		return i.Size == 0
	}
	return false
}

// HasAnyHash reports whether the item carries at least one non-empty hash.
func (i *Item) HasAnyHash() bool {
	for _, v := range i.Hashes {
		if v != "" {
			return true
		}
	}
	return false
}
