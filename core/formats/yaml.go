package formats

import (
	"context"
	"fmt"
	"io"

	"dat-manager/core/datfile"

	"github.com/goccy/go-yaml"
)

// YAML reads and writes the YAML document dialect.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAML) Parse(ctx context.Context, r io.Reader) (*datfile.Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read yaml catalog: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode yaml catalog: %w", err)
	}
	return doc.stream(ctx), nil
}

func (YAML) Write(ctx context.Context, w io.Writer, dat *datfile.DatFile, ignoreBlanks bool) error {
	doc, err := buildDocument(ctx, dat, ignoreBlanks)
	if err != nil {
		return err
	}
	data, err := yaml.MarshalWithOptions(doc, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to encode yaml catalog: %w", err)
	}
	_, err = w.Write(data)
	return err
}
