package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt64 converts various types to int64 using explicit type switching.
// Strings may be decimal or 0x-prefixed hex. Unparseable input yields
// fallback.
func ToInt64(val any, fallback int64) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		return parseInt64(v, fallback)
	case []byte:
		return parseInt64(string(v), fallback)
	case nil:
		return fallback
	default:
		return parseInt64(fmt.Sprintf("%v", v), fallback)
	}
}

func parseInt64(s string, fallback int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return fallback
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		if i, err := strconv.ParseInt(lower[2:], 16, 64); err == nil {
			return i
		}
		return fallback
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return fallback
}

// ToInt converts various types to int; unparseable input yields 0.
func ToInt(val any) int {
	return int(ToInt64(val, 0))
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true", "yes").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32:
		return ToInt64(v, 0) == 1
	case string:
		return parseBool(v)
	case []byte:
		return parseBool(string(v))
	default:
		return false
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// YesNo renders a flag the way XML catalogs spell it.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
