package formats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"dat-manager/core/datfile"
)

// ErrUnknownFormat is returned when no format matches a name or extension.
var ErrUnknownFormat = errors.New("unknown catalog format")

// Parser reads a catalog into a lazy item stream.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) (*datfile.Stream, error)
}

// Writer serializes a catalog. Removed items are never written; with
// ignoreBlanks set, blank placeholders and zero-size roms are skipped too.
type Writer interface {
	Write(ctx context.Context, w io.Writer, dat *datfile.DatFile, ignoreBlanks bool) error
}

// Format is a named catalog dialect.
type Format interface {
	Parser
	Writer

	// Name is the identifier used in configuration ("logiqx", "json", "yaml").
	Name() string

	// Extensions lists the file extensions the dialect claims, with the
	// preferred output extension first.
	Extensions() []string
}

var registry = map[string]Format{}

// Register adds a format to the registry, replacing any format of the same
// name.
func Register(f Format) {
	registry[f.Name()] = f
}

func init() {
	Register(Logiqx{})
	Register(JSON{})
	Register(YAML{})
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// ForPath picks a format from a file's extension.
func ForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, name := range Names() {
		f := registry[name]
		for _, e := range f.Extensions() {
			if e == ext {
				return f, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
}

// Names returns the registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// OutputName returns base with the format's preferred extension.
func OutputName(f Format, base string) string {
	return base + f.Extensions()[0]
}

// AllExtensions returns every extension claimed by a registered format.
func AllExtensions() []string {
	var exts []string
	for _, name := range Names() {
		exts = append(exts, registry[name].Extensions()...)
	}
	return exts
}
