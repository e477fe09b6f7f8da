package reconcile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"dat-manager/core/formats"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Plan is the result of an engine run before anything is written.
type Plan struct {
	// Mode names the operation that produced the plan.
	Mode string `json:"mode"`

	// Outputs holds every result catalog in order.
	Outputs []Output `json:"outputs"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Inputs is the number of sources reconciled.
	Inputs int `json:"inputs"`

	// Outputs is the number of result catalogs.
	Outputs int `json:"outputs"`

	// Writable counts outputs holding at least one live item.
	Writable int `json:"writable"`

	// Items counts live items across all outputs.
	Items int64 `json:"items"`

	// Removed counts items flagged removed across all outputs.
	Removed int64 `json:"removed"`

	// Groups sums the per-output group counts.
	Groups int `json:"groups"`
}

// NewPlan wraps outputs in a plan and computes its summary.
func NewPlan(mode string, inputs int, outputs []Output) *Plan {
	p := &Plan{Mode: mode, Outputs: outputs}
	p.Summary.Inputs = inputs
	p.Summary.Outputs = len(outputs)
	for _, out := range outputs {
		out.Dat.Items.RecalculateStats()
		stats := out.Dat.Items.Statistics()
		live := stats.TotalCount - stats.RemovedCount
		if live > 0 {
			p.Summary.Writable++
		}
		p.Summary.Items += live
		p.Summary.Removed += stats.RemovedCount
		p.Summary.Groups += out.Groups
	}
	return p
}

// Sink receives serialized outputs.
type Sink interface {
	// Create opens a destination for the named file.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// Aborter is implemented by sink writers that can discard a partial
// output. ApplyPlan aborts instead of closing when serialization fails.
type Aborter interface {
	CloseWithError(err error) error
}

// DirSink writes outputs as files under Dir.
type DirSink struct {
	Dir string
}

// Create creates Dir if needed and opens a temporary file for name inside
// it. The file is renamed into place on Close and removed on abort.
func (s DirSink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	dest := filepath.Join(s.Dir, filepath.Base(name))
	f, err := os.CreateTemp(s.Dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dest, err)
	}
	return &fileWriter{File: f, dest: dest}, nil
}

// fileWriter renames its temporary file to dest once fully written.
type fileWriter struct {
	*os.File
	dest string
}

func (w *fileWriter) Close() error {
	if err := w.File.Chmod(0o644); err != nil {
		_ = w.CloseWithError(err)
		return err
	}
	if err := w.File.Close(); err != nil {
		_ = os.Remove(w.Name())
		return err
	}
	if err := os.Rename(w.Name(), w.dest); err != nil {
		_ = os.Remove(w.Name())
		return err
	}
	return nil
}

func (w *fileWriter) CloseWithError(error) error {
	_ = w.File.Close()
	return os.Remove(w.Name())
}

// abort discards a partially written output.
func abort(w io.WriteCloser, cause error) {
	if a, ok := w.(Aborter); ok {
		_ = a.CloseWithError(cause)
		return
	}
	_ = w.Close()
}

// ApplyOptions controls how a plan is written.
type ApplyOptions struct {
	// Format serializes each output.
	Format formats.Format

	// Prefix is prepended to every output file name.
	Prefix string

	// IgnoreBlanks skips blank placeholders and zero-size roms.
	IgnoreBlanks bool

	// DryRun computes the writable outputs without writing.
	DryRun bool

	Workers int
	Logger  *zap.Logger
}

// ApplyPlan writes every output with live items through sink concurrently
// and returns how many were written. Outputs with nothing live are skipped.
// ErrNoOutputs is returned when no output is writable.
func ApplyPlan(ctx context.Context, plan *Plan, sink Sink, opts ApplyOptions) (int, error) {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Format == nil {
		return 0, fmt.Errorf("apply plan: no output format")
	}

	var written atomic.Int64
	writable := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Options{Workers: opts.Workers}.workers())
	for _, out := range plan.Outputs {
		if !out.Dat.HasWritable() {
			log.Debug("Skipping empty output", zap.String("name", out.Name))
			continue
		}
		writable++
		if opts.DryRun {
			continue
		}
		g.Go(func() error {
			name := formats.OutputName(opts.Format, opts.Prefix+out.Name)
			w, err := sink.Create(gctx, name)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", name, err)
			}
			if err := opts.Format.Write(gctx, w, out.Dat, opts.IgnoreBlanks); err != nil {
				abort(w, err)
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", name, err)
			}
			written.Add(1)
			log.Debug("Wrote output", zap.String("name", name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(written.Load()), err
	}
	if writable == 0 {
		return 0, ErrNoOutputs
	}
	if opts.DryRun {
		return 0, nil
	}

	log.Info("Applied plan",
		zap.String("mode", plan.Mode),
		zap.Int64("written", written.Load()),
		zap.Duration("duration", time.Since(start)),
	)
	return int(written.Load()), nil
}
