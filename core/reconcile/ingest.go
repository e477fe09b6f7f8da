package reconcile

import (
	"context"
	"fmt"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Loader opens an input and parses it into a stream.
type Loader interface {
	Load(ctx context.Context, in Input) (*datfile.Stream, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, in Input) (*datfile.Stream, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, in Input) (*datfile.Stream, error) {
	return f(ctx, in)
}

// Populate parses every input concurrently into its own staging list, then
// appends the lists to dat in input order. Item i of input n is tagged with
// source index n. It returns the parsed headers in input order. On error dat
// is left untouched.
func Populate(ctx context.Context, dat *datfile.DatFile, inputs []Input, loader Loader, opts Options) ([]datfile.Header, error) {
	start := time.Now()
	log := opts.logger()

	staged := make([][]*datitems.Item, len(inputs))
	headers := make([]datfile.Header, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, in := range inputs {
		g.Go(func() error {
			stream, err := loader.Load(gctx, in)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", in.Path, err)
			}
			items, err := datfile.Collect(gctx, stream, &datitems.Source{Index: i, Name: in.Path})
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", in.Path, err)
			}
			staged[i] = items
			headers[i] = stream.Header
			log.Debug("Parsed input",
				zap.String("path", in.Path),
				zap.Int("source", i),
				zap.Int("items", len(items)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, items := range staged {
		dat.Items.AddRange(items)
		total += len(items)
	}

	log.Info("Populated catalog",
		zap.Int("inputs", len(inputs)),
		zap.Int("items", total),
		zap.Duration("duration", time.Since(start)),
	)
	return headers, nil
}

// LoadOne parses a single input into its own DatFile, tagging items with
// source index 0.
func LoadOne(ctx context.Context, in Input, loader Loader, opts Options) (*datfile.DatFile, error) {
	dat := newDat(datfile.Header{}, opts)
	headers, err := Populate(ctx, dat, []Input{in}, loader, opts)
	if err != nil {
		return nil, err
	}
	dat.Header = headers[0]
	if dat.Header.FileName == "" {
		dat.Header.FileName = in.Stem()
	}
	dat.Header.EnsureFields()
	return dat, nil
}
