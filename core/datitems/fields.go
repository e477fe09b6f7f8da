package datitems

import (
	"fmt"
	"slices"
	"strings"
)

// MachineField names a replaceable machine attribute.
type MachineField int

const (
	MachineFieldName MachineField = iota
	MachineFieldDescription
	MachineFieldCloneOf
	MachineFieldRomOf
	MachineFieldSampleOf
	MachineFieldType
	MachineFieldYear
	MachineFieldManufacturer
	MachineFieldComment
	MachineFieldCategory
)

// ItemField names a replaceable item attribute.
type ItemField int

const (
	ItemFieldName ItemField = iota
	ItemFieldSize
	ItemFieldCRC
	ItemFieldMD5
	ItemFieldSHA1
	ItemFieldSHA256
	ItemFieldSHA384
	ItemFieldSHA512
	ItemFieldStatus
	ItemFieldMerge
	ItemFieldBios
	ItemFieldRegion
	ItemFieldLanguage
	ItemFieldDate
	ItemFieldDescription
)

type machineAccessor struct {
	name  string
	blank func(m *Machine) bool
	copy  func(dst *Machine, src Machine)
}

type itemAccessor struct {
	name  string
	blank func(i *Item) bool
	copy  func(dst, src *Item)
}

func machineString(name string, get func(m *Machine) *string) machineAccessor {
	return machineAccessor{
		name:  name,
		blank: func(m *Machine) bool { return *get(m) == "" },
		copy:  func(dst *Machine, src Machine) { *get(dst) = *get(&src) },
	}
}

func itemString(name string, get func(i *Item) *string) itemAccessor {
	return itemAccessor{
		name:  name,
		blank: func(i *Item) bool { return *get(i) == "" },
		copy:  func(dst, src *Item) { *get(dst) = *get(src) },
	}
}

func itemHash(name string, kind HashKind) itemAccessor {
	return itemAccessor{
		name:  name,
		blank: func(i *Item) bool { return !i.Hashes.Has(kind) },
		copy: func(dst, src *Item) {
			if v, ok := src.Hashes.Get(kind); ok {
				dst.SetHash(kind, v)
			}
		},
	}
}

var machineFields = [...]machineAccessor{
	MachineFieldName: machineString("machine.name", func(m *Machine) *string { return &m.Name }),
	MachineFieldDescription: {
		name:  "machine.description",
		blank: func(m *Machine) bool { return m.Description == "" || m.Description == m.Name },
		copy:  func(dst *Machine, src Machine) { dst.Description = src.Description },
	},
	MachineFieldCloneOf:  machineString("machine.cloneof", func(m *Machine) *string { return &m.CloneOf }),
	MachineFieldRomOf:    machineString("machine.romof", func(m *Machine) *string { return &m.RomOf }),
	MachineFieldSampleOf: machineString("machine.sampleof", func(m *Machine) *string { return &m.SampleOf }),
	MachineFieldType: {
		name:  "machine.type",
		blank: func(m *Machine) bool { return m.Type == MachineTypeNone },
		copy:  func(dst *Machine, src Machine) { dst.Type = src.Type },
	},
	MachineFieldYear:         machineString("machine.year", func(m *Machine) *string { return &m.Year }),
	MachineFieldManufacturer: machineString("machine.manufacturer", func(m *Machine) *string { return &m.Manufacturer }),
	MachineFieldComment:      machineString("machine.comment", func(m *Machine) *string { return &m.Comment }),
	MachineFieldCategory:     machineString("machine.category", func(m *Machine) *string { return &m.Category }),
}

var itemFields = [...]itemAccessor{
	ItemFieldName: itemString("item.name", func(i *Item) *string { return &i.Name }),
	ItemFieldSize: {
		name:  "item.size",
		blank: func(i *Item) bool { return !i.SizeKnown() },
		copy:  func(dst, src *Item) { dst.Size = src.Size },
	},
	ItemFieldCRC:    itemHash("item.crc", HashCRC),
	ItemFieldMD5:    itemHash("item.md5", HashMD5),
	ItemFieldSHA1:   itemHash("item.sha1", HashSHA1),
	ItemFieldSHA256: itemHash("item.sha256", HashSHA256),
	ItemFieldSHA384: itemHash("item.sha384", HashSHA384),
	ItemFieldSHA512: itemHash("item.sha512", HashSHA512),
	ItemFieldStatus: {
		name:  "item.status",
		blank: func(i *Item) bool { return i.Status == StatusNone },
		copy:  func(dst, src *Item) { dst.Status = src.Status },
	},
	ItemFieldMerge:       itemString("item.merge", func(i *Item) *string { return &i.Merge }),
	ItemFieldBios:        itemString("item.bios", func(i *Item) *string { return &i.Bios }),
	ItemFieldRegion:      itemString("item.region", func(i *Item) *string { return &i.Region }),
	ItemFieldLanguage:    itemString("item.language", func(i *Item) *string { return &i.Language }),
	ItemFieldDate:        itemString("item.date", func(i *Item) *string { return &i.Date }),
	ItemFieldDescription: itemString("item.description", func(i *Item) *string { return &i.Description }),
}

func (f MachineField) String() string { return machineFields[f].name }

func (f ItemField) String() string { return itemFields[f].name }

// FieldSet selects the machine and item fields an operation touches.
type FieldSet struct {
	Machine []MachineField
	Item    []ItemField
}

// Empty reports whether no field is selected.
func (fs FieldSet) Empty() bool {
	return len(fs.Machine) == 0 && len(fs.Item) == 0
}

// HasMachine reports whether f is selected.
func (fs FieldSet) HasMachine(f MachineField) bool {
	return slices.Contains(fs.Machine, f)
}

// HasItem reports whether f is selected.
func (fs FieldSet) HasItem(f ItemField) bool {
	return slices.Contains(fs.Item, f)
}

// Strings returns the selected field names.
func (fs FieldSet) Strings() []string {
	out := make([]string, 0, len(fs.Machine)+len(fs.Item))
	for _, f := range fs.Machine {
		out = append(out, f.String())
	}
	for _, f := range fs.Item {
		out = append(out, f.String())
	}
	return out
}

// ParseFieldSet resolves names such as "machine.description" or "item.crc".
// A bare name ("crc", "year") is looked up among item fields first.
func ParseFieldSet(names []string) (FieldSet, error) {
	var fs FieldSet
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if f, ok := lookupItemField(name); ok {
			if !fs.HasItem(f) {
				fs.Item = append(fs.Item, f)
			}
			continue
		}
		if f, ok := lookupMachineField(name); ok {
			if !fs.HasMachine(f) {
				fs.Machine = append(fs.Machine, f)
			}
			continue
		}
		return FieldSet{}, fmt.Errorf("unknown field %q", raw)
	}
	return fs, nil
}

func lookupItemField(name string) (ItemField, bool) {
	for i, a := range itemFields {
		if a.name == name || strings.TrimPrefix(a.name, "item.") == name {
			return ItemField(i), true
		}
	}
	return 0, false
}

func lookupMachineField(name string) (MachineField, bool) {
	for i, a := range machineFields {
		if a.name == name || strings.TrimPrefix(a.name, "machine.") == name {
			return MachineField(i), true
		}
	}
	return 0, false
}

// ReplaceMachineFields copies the selected fields of src onto dst. With
// onlyBlank set, a field is only written when dst holds its blank or default
// value.
func ReplaceMachineFields(dst *Machine, src Machine, fields []MachineField, onlyBlank bool) {
	for _, f := range fields {
		a := machineFields[f]
		if onlyBlank && !a.blank(dst) {
			continue
		}
		a.copy(dst, src)
	}
}

// ReplaceItemFields copies the selected fields of src onto dst. With
// onlyBlank set, a field is only written when dst holds its blank or default
// value. Hash fields are skipped for variants that cannot carry them.
func ReplaceItemFields(dst, src *Item, fields []ItemField, onlyBlank bool) {
	for _, f := range fields {
		if kind, ok := f.hashKind(); ok && !dst.Type.Supports(kind) {
			continue
		}
		a := itemFields[f]
		if onlyBlank && !a.blank(dst) {
			continue
		}
		a.copy(dst, src)
	}
}

func (f ItemField) hashKind() (HashKind, bool) {
	if f >= ItemFieldCRC && f <= ItemFieldSHA512 {
		return HashKind(f - ItemFieldCRC), true
	}
	return 0, false
}
