package formats

import (
	"context"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
)

// document is the shape shared by the JSON and YAML dialects.
type document struct {
	Header   datfile.Header `json:"header" yaml:"header"`
	Machines []docMachine   `json:"machines" yaml:"machines"`
}

type docMachine struct {
	datitems.Machine `yaml:",inline"`

	Type  string    `json:"type,omitempty" yaml:"type,omitempty"`
	Items []docItem `json:"items,omitempty" yaml:"items,omitempty"`
}

type docItem struct {
	Type        string  `json:"type" yaml:"type"`
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	Size        *int64  `json:"size,omitempty" yaml:"size,omitempty"`
	CRC         *string `json:"crc,omitempty" yaml:"crc,omitempty"`
	MD5         *string `json:"md5,omitempty" yaml:"md5,omitempty"`
	SHA1        *string `json:"sha1,omitempty" yaml:"sha1,omitempty"`
	SHA256      *string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	SHA384      *string `json:"sha384,omitempty" yaml:"sha384,omitempty"`
	SHA512      *string `json:"sha512,omitempty" yaml:"sha512,omitempty"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty"`
	Merge       string  `json:"merge,omitempty" yaml:"merge,omitempty"`
	Bios        string  `json:"bios,omitempty" yaml:"bios,omitempty"`
	Region      string  `json:"region,omitempty" yaml:"region,omitempty"`
	Language    string  `json:"language,omitempty" yaml:"language,omitempty"`
	Date        string  `json:"date,omitempty" yaml:"date,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Value       string  `json:"value,omitempty" yaml:"value,omitempty"`
	Tag         string  `json:"tag,omitempty" yaml:"tag,omitempty"`
	Mask        string  `json:"mask,omitempty" yaml:"mask,omitempty"`
	Default     bool    `json:"default,omitempty" yaml:"default,omitempty"`
	Optional    bool    `json:"optional,omitempty" yaml:"optional,omitempty"`
	Channels    int     `json:"channels,omitempty" yaml:"channels,omitempty"`
}

func (d *docItem) hashField(kind datitems.HashKind) **string {
	switch kind {
	case datitems.HashCRC:
		return &d.CRC
	case datitems.HashMD5:
		return &d.MD5
	case datitems.HashSHA1:
		return &d.SHA1
	case datitems.HashSHA256:
		return &d.SHA256
	case datitems.HashSHA384:
		return &d.SHA384
	default:
		return &d.SHA512
	}
}

func (d *docItem) toItem(machine datitems.Machine) *datitems.Item {
	t := datitems.ParseItemType(d.Type)
	it := datitems.NewItem(t, machine)
	it.Name = d.Name
	if d.Size != nil {
		it.Size = *d.Size
	}
	for _, kind := range t.HashKinds() {
		p := *d.hashField(kind)
		if p == nil {
			continue
		}
		if v, ok := datitems.NormalizeHash(kind, *p); ok {
			it.SetHash(kind, v)
		}
	}
	it.Status = datitems.ParseStatus(d.Status)
	it.Merge, it.Bios, it.Region, it.Language = d.Merge, d.Bios, d.Region, d.Language
	it.Date, it.Description, it.Value = d.Date, d.Description, d.Value
	it.Tag, it.Mask = d.Tag, d.Mask
	it.Default, it.Optional, it.Channels = d.Default, d.Optional, d.Channels
	return it
}

func fromItem(it *datitems.Item) docItem {
	d := docItem{
		Type:        it.Type.String(),
		Name:        it.Name,
		Status:      it.Status.String(),
		Merge:       it.Merge,
		Bios:        it.Bios,
		Region:      it.Region,
		Language:    it.Language,
		Date:        it.Date,
		Description: it.Description,
		Value:       it.Value,
		Tag:         it.Tag,
		Mask:        it.Mask,
		Default:     it.Default,
		Optional:    it.Optional,
		Channels:    it.Channels,
	}
	if it.SizeKnown() {
		size := it.Size
		d.Size = &size
	}
	for _, kind := range it.Type.HashKinds() {
		if v, ok := it.Hashes.Get(kind); ok {
			*d.hashField(kind) = &v
		}
	}
	return d
}

// stream turns a decoded document into a lazy item stream. Items of unknown
// type are dropped; machines without items yield a blank placeholder.
func (doc *document) stream(ctx context.Context) *datfile.Stream {
	return &datfile.Stream{
		Header: doc.Header,
		Items: func(yield func(*datitems.Item, error) bool) {
			for _, dm := range doc.Machines {
				if err := ctx.Err(); err != nil {
					yield(nil, err)
					return
				}
				machine := dm.Machine
				machine.Type = datitems.ParseMachineType(dm.Type)
				emitted := false
				for i := range dm.Items {
					it := dm.Items[i].toItem(machine)
					if it.Type == datitems.ItemTypeNull {
						continue
					}
					emitted = true
					if !yield(it, nil) {
						return
					}
				}
				if !emitted {
					if !yield(datitems.NewItem(datitems.ItemTypeBlank, machine), nil) {
						return
					}
				}
			}
		},
	}
}

// buildDocument flattens a DAT through its set traversal.
func buildDocument(ctx context.Context, dat *datfile.DatFile, ignoreBlanks bool) (*document, error) {
	doc := &document{Header: dat.Header, Machines: []docMachine{}}
	for _, set := range dat.Items.Sets(ignoreBlanks) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dm := docMachine{Machine: set.Machine, Type: set.Machine.Type.String()}
		for _, it := range set.Items {
			if it.Type == datitems.ItemTypeBlank {
				continue
			}
			dm.Items = append(dm.Items, fromItem(it))
		}
		doc.Machines = append(doc.Machines, dm)
	}
	return doc, nil
}
