package formats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"dat-manager/core/datfile"
)

// JSON reads and writes the JSON document dialect.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Extensions() []string { return []string{".json"} }

func (JSON) Parse(ctx context.Context, r io.Reader) (*datfile.Stream, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode json catalog: %w", err)
	}
	return doc.stream(ctx), nil
}

func (JSON) Write(ctx context.Context, w io.Writer, dat *datfile.DatFile, ignoreBlanks bool) error {
	doc, err := buildDocument(ctx, dat, ignoreBlanks)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode json catalog: %w", err)
	}
	return nil
}
