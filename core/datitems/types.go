package datitems

import "strings"

// ItemType discriminates the item variants.
type ItemType int

const (
	ItemTypeNull ItemType = iota
	ItemTypeRom
	ItemTypeDisk
	ItemTypeMedia
	ItemTypeRelease
	ItemTypeBiosSet
	ItemTypeSample
	ItemTypeBlank
	ItemTypeInfo
	ItemTypeSharedFeature
	ItemTypePartFeature
	ItemTypeDipSwitch
	ItemTypeSound
	ItemTypeChip
	ItemTypeDisplay
)

// typeInfo is the static description of a variant.
type typeInfo struct {
	name   string
	hashes []HashKind
	sized  bool
}

var itemTypes = [...]typeInfo{
	ItemTypeNull:          {name: ""},
	ItemTypeRom:           {name: "rom", hashes: AllHashKinds, sized: true},
	ItemTypeDisk:          {name: "disk", hashes: []HashKind{HashMD5, HashSHA1}},
	ItemTypeMedia:         {name: "media", hashes: []HashKind{HashMD5, HashSHA1, HashSHA256}},
	ItemTypeRelease:       {name: "release"},
	ItemTypeBiosSet:       {name: "biosset"},
	ItemTypeSample:        {name: "sample"},
	ItemTypeBlank:         {name: "blank"},
	ItemTypeInfo:          {name: "info"},
	ItemTypeSharedFeature: {name: "sharedfeat"},
	ItemTypePartFeature:   {name: "feature"},
	ItemTypeDipSwitch:     {name: "dipswitch"},
	ItemTypeSound:         {name: "sound"},
	ItemTypeChip:          {name: "chip"},
	ItemTypeDisplay:       {name: "display"},
}

// ItemTypes lists every concrete variant in declaration order.
var ItemTypes = []ItemType{
	ItemTypeRom, ItemTypeDisk, ItemTypeMedia, ItemTypeRelease, ItemTypeBiosSet,
	ItemTypeSample, ItemTypeBlank, ItemTypeInfo, ItemTypeSharedFeature,
	ItemTypePartFeature, ItemTypeDipSwitch, ItemTypeSound, ItemTypeChip, ItemTypeDisplay,
}

func (t ItemType) info() typeInfo {
	if t < 0 || int(t) >= len(itemTypes) {
		return itemTypes[ItemTypeNull]
	}
	return itemTypes[t]
}

// String returns the element name used by catalog formats.
func (t ItemType) String() string {
	return t.info().name
}

// HashKinds returns the hash kinds the variant can carry.
func (t ItemType) HashKinds() []HashKind {
	return t.info().hashes
}

// HasHashes reports whether the variant is identified by content hashes.
func (t ItemType) HasHashes() bool {
	return len(t.info().hashes) > 0
}

// Supports reports whether the variant can carry the given hash kind.
func (t ItemType) Supports(kind HashKind) bool {
	for _, k := range t.info().hashes {
		if k == kind {
			return true
		}
	}
	return false
}

// Sized reports whether size participates in identity for the variant.
func (t ItemType) Sized() bool {
	return t.info().sized
}

// ParseItemType resolves a variant name case-insensitively.
// Unknown names return ItemTypeNull.
func ParseItemType(name string) ItemType {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return ItemTypeNull
	case "game", "machine":
		return ItemTypeNull
	case "part_feature", "partfeature":
		return ItemTypePartFeature
	case "shared_feat", "sharedfeature":
		return ItemTypeSharedFeature
	}
	for _, t := range ItemTypes {
		if t.String() == name {
			return t
		}
	}
	return ItemTypeNull
}

// Status is the dump status of a Rom or Disk.
type Status int

const (
	StatusNone Status = iota
	StatusGood
	StatusBadDump
	StatusNodump
	StatusVerified
)

var statusNames = map[Status]string{
	StatusNone:     "",
	StatusGood:     "good",
	StatusBadDump:  "baddump",
	StatusNodump:   "nodump",
	StatusVerified: "verified",
}

func (s Status) String() string {
	return statusNames[s]
}

// ParseStatus resolves a status name; unknown values map to StatusNone.
func ParseStatus(s string) Status {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range statusNames {
		if v == s {
			return k
		}
	}
	return StatusNone
}

// MachineType classifies a machine.
type MachineType int

const (
	MachineTypeNone MachineType = iota
	MachineTypeBios
	MachineTypeDevice
	MachineTypeMechanical
)

func (m MachineType) String() string {
	switch m {
	case MachineTypeBios:
		return "bios"
	case MachineTypeDevice:
		return "device"
	case MachineTypeMechanical:
		return "mechanical"
	default:
		return ""
	}
}

// ParseMachineType resolves a machine type name.
func ParseMachineType(s string) MachineType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bios":
		return MachineTypeBios
	case "device":
		return MachineTypeDevice
	case "mechanical":
		return MachineTypeMechanical
	default:
		return MachineTypeNone
	}
}
