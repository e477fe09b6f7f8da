package itemdict

import (
	"strings"

	"dat-manager/core/datitems"
)

// ItemKey is a bucket key strategy.
type ItemKey int

const (
	// KeyNull means the collection has not been bucketed yet.
	KeyNull ItemKey = iota
	KeyMachine
	KeyCRC
	KeyMD5
	KeySHA1
	KeySHA256
	KeySHA384
	KeySHA512
	KeyItemType
)

// NoHashKey holds items that lack the hash a bucket strategy asks for.
const NoHashKey = "_nohash"

var keyNames = [...]string{
	KeyNull:     "null",
	KeyMachine:  "machine",
	KeyCRC:      "crc",
	KeyMD5:      "md5",
	KeySHA1:     "sha1",
	KeySHA256:   "sha256",
	KeySHA384:   "sha384",
	KeySHA512:   "sha512",
	KeyItemType: "type",
}

func (k ItemKey) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return ""
	}
	return keyNames[k]
}

// ParseItemKey resolves a key strategy name. Unknown names return KeyNull
// and false.
func ParseItemKey(name string) (ItemKey, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "game", "name":
		return KeyMachine, true
	case "crc32":
		return KeyCRC, true
	case "itemtype":
		return KeyItemType, true
	}
	for i, n := range keyNames {
		if n == name {
			return ItemKey(i), true
		}
	}
	return KeyNull, false
}

// HashKind returns the hash kind behind a hash key strategy.
func (k ItemKey) HashKind() (datitems.HashKind, bool) {
	if k >= KeyCRC && k <= KeySHA512 {
		return datitems.HashKind(k - KeyCRC), true
	}
	return 0, false
}

// IsHash reports whether the strategy buckets by a content hash.
func (k ItemKey) IsHash() bool {
	_, ok := k.HashKind()
	return ok
}

// effective maps KeyNull to the machine strategy used for fresh collections.
func (k ItemKey) effective() ItemKey {
	if k == KeyNull {
		return KeyMachine
	}
	return k
}

// KeyFor derives the bucket key of an item under strategy k.
func KeyFor(it *datitems.Item, k ItemKey) string {
	switch k.effective() {
	case KeyMachine:
		return it.Machine.Name
	case KeyItemType:
		return it.Type.String()
	}
	kind, _ := k.HashKind()
	if !it.Type.Supports(kind) {
		return NoHashKey
	}
	v := it.Hash(kind)
	if v == "" {
		return NoHashKey
	}
	return strings.ToLower(v)
}

// DedupeMode selects whether bucketing collapses duplicates.
type DedupeMode int

const (
	DedupeNone DedupeMode = iota
	// DedupeInternal only merges duplicates that come from the same source.
	DedupeInternal
	// DedupeFull merges duplicates regardless of source.
	DedupeFull
)

func (m DedupeMode) String() string {
	switch m {
	case DedupeInternal:
		return "internal"
	case DedupeFull:
		return "full"
	default:
		return "none"
	}
}

// ParseDedupeMode resolves a dedupe mode name. Empty selects DedupeNone.
func ParseDedupeMode(name string) (DedupeMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "false":
		return DedupeNone, true
	case "internal", "game":
		return DedupeInternal, true
	case "full", "true":
		return DedupeFull, true
	default:
		return DedupeNone, false
	}
}
