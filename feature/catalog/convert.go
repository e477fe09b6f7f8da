package catalog

import (
	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
)

// hashColumn addresses the nullable column of kind. NULL means absent and
// an empty string is a known blank.
func hashColumn(r *Record, kind datitems.HashKind) **string {
	switch kind {
	case datitems.HashCRC:
		return &r.CRC
	case datitems.HashMD5:
		return &r.MD5
	case datitems.HashSHA1:
		return &r.SHA1
	case datitems.HashSHA256:
		return &r.SHA256
	case datitems.HashSHA384:
		return &r.SHA384
	case datitems.HashSHA512:
		return &r.SHA512
	}
	return nil
}

func toRecord(catalogID uint, it *datitems.Item) Record {
	r := Record{
		CatalogID:          catalogID,
		Machine:            it.Machine.Name,
		MachineDescription: it.Machine.Description,
		MachineType:        it.Machine.Type.String(),
		CloneOf:            it.Machine.CloneOf,
		RomOf:              it.Machine.RomOf,
		SampleOf:           it.Machine.SampleOf,
		Year:               it.Machine.Year,
		Manufacturer:       it.Machine.Manufacturer,
		MachineComment:     it.Machine.Comment,
		MachineCategory:    it.Machine.Category,
		Type:               it.Type.String(),
		Name:               it.Name,
		Size:               it.Size,
		Status:             it.Status.String(),
		Merge:              it.Merge,
		Bios:               it.Bios,
		Region:             it.Region,
		Language:           it.Language,
		Date:               it.Date,
		Description:        it.Description,
		Value:              it.Value,
		Tag:                it.Tag,
		Mask:               it.Mask,
		IsDefault:          it.Default,
		Optional:           it.Optional,
		Channels:           it.Channels,
	}
	for _, kind := range datitems.AllHashKinds {
		if v, ok := it.Hashes.Get(kind); ok {
			*hashColumn(&r, kind) = &v
		}
	}
	return r
}

func (r Record) toItem() *datitems.Item {
	m := datitems.Machine{
		Name:         r.Machine,
		Description:  r.MachineDescription,
		CloneOf:      r.CloneOf,
		RomOf:        r.RomOf,
		SampleOf:     r.SampleOf,
		Type:         datitems.ParseMachineType(r.MachineType),
		Year:         r.Year,
		Manufacturer: r.Manufacturer,
		Comment:      r.MachineComment,
		Category:     r.MachineCategory,
	}
	it := datitems.NewItem(datitems.ParseItemType(r.Type), m)
	it.Name = r.Name
	it.Size = r.Size
	it.Status = datitems.ParseStatus(r.Status)
	it.Merge = r.Merge
	it.Bios = r.Bios
	it.Region = r.Region
	it.Language = r.Language
	it.Date = r.Date
	it.Description = r.Description
	it.Value = r.Value
	it.Tag = r.Tag
	it.Mask = r.Mask
	it.Default = r.IsDefault
	it.Optional = r.Optional
	it.Channels = r.Channels
	for _, kind := range datitems.AllHashKinds {
		if v := *hashColumn(&r, kind); v != nil && it.Type.Supports(kind) {
			it.SetHash(kind, *v)
		}
	}
	return it
}

func toCatalog(h datfile.Header) Catalog {
	return Catalog{
		Name:        h.Name,
		FileName:    h.FileName,
		Description: h.Description,
		Category:    h.Category,
		Version:     h.Version,
		Date:        h.Date,
		Author:      h.Author,
		Homepage:    h.Homepage,
		Comment:     h.Comment,
		DatType:     h.Type,
	}
}

func (c Catalog) header() datfile.Header {
	return datfile.Header{
		FileName:    c.FileName,
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Version:     c.Version,
		Date:        c.Date,
		Author:      c.Author,
		Homepage:    c.Homepage,
		Comment:     c.Comment,
		Type:        c.DatType,
	}
}
