package datitems

import (
	"maps"
	"strings"
)

// HashKind identifies a content hash algorithm.
type HashKind int

const (
	HashCRC HashKind = iota
	HashMD5
	HashSHA1
	HashSHA256
	HashSHA384
	HashSHA512
)

// AllHashKinds lists every hash kind known to the system, weakest first.
var AllHashKinds = []HashKind{HashCRC, HashMD5, HashSHA1, HashSHA256, HashSHA384, HashSHA512}

var hashNames = [...]string{
	HashCRC:    "crc",
	HashMD5:    "md5",
	HashSHA1:   "sha1",
	HashSHA256: "sha256",
	HashSHA384: "sha384",
	HashSHA512: "sha512",
}

var hashLengths = [...]int{
	HashCRC:    8,
	HashMD5:    32,
	HashSHA1:   40,
	HashSHA256: 64,
	HashSHA384: 96,
	HashSHA512: 128,
}

func (k HashKind) String() string {
	if k < 0 || int(k) >= len(hashNames) {
		return ""
	}
	return hashNames[k]
}

// Length returns the hex length of a normalized hash of this kind.
func (k HashKind) Length() int {
	if k < 0 || int(k) >= len(hashLengths) {
		return 0
	}
	return hashLengths[k]
}

// ParseHashKind resolves a hash kind name ("crc", "crc32", "sha1", ...).
func ParseHashKind(name string) (HashKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "crc32" {
		return HashCRC, true
	}
	for i, n := range hashNames {
		if n == name {
			return HashKind(i), true
		}
	}
	return 0, false
}

// Hashes maps a hash kind to its lowercase hex value.
// A key present with an empty value means the hash is known to be blank;
// a missing key means the hash was not supplied.
type Hashes map[HashKind]string

// Get returns the value for kind and whether it was supplied.
func (h Hashes) Get(kind HashKind) (string, bool) {
	v, ok := h[kind]
	return v, ok
}

// Has reports whether a non-empty value is present for kind.
func (h Hashes) Has(kind HashKind) bool {
	return h[kind] != ""
}

// Clone returns an independent copy.
func (h Hashes) Clone() Hashes {
	if h == nil {
		return nil
	}
	return maps.Clone(h)
}

// NormalizeHash returns the canonical form of a raw hash value: trimmed,
// lowercased, an optional 0x prefix removed and left-padded with zeros to the
// kind's length. The empty string is a valid "known blank" value. ok is false
// when the value has an invalid charset or is longer than the kind allows.
func NormalizeHash(kind HashKind, raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.TrimPrefix(v, "0x")
	if v == "" || v == "-" {
		return "", true
	}
	for _, r := range v {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", false
		}
	}
	n := kind.Length()
	if n == 0 || len(v) > n {
		return "", false
	}
	return strings.Repeat("0", n-len(v)) + v, true
}
