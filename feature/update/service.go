package update

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
	"dat-manager/core/formats"
	"dat-manager/core/itemdict"
	"dat-manager/core/reconcile"
	"dat-manager/core/storage"

	"go.uber.org/zap"
)

// Options configures a Service.
type Options struct {
	// Client and Bucket locate s3:// inputs and storage outputs. Client may
	// be nil for local runs.
	Client storage.Client
	Bucket string
	// OutputPrefix is the key prefix storage outputs are written under.
	OutputPrefix string
	// Catalogs loads db:// inputs. May be nil.
	Catalogs reconcile.Loader
	// Reconcile holds the engine defaults.
	Reconcile reconcile.Config
	Logger    *zap.Logger
}

// Service plans and applies update runs.
type Service struct {
	resolver *Resolver
	cache    *reconcile.SourceCache
	client   storage.Client
	bucket   string
	prefix   string
	cfg      reconcile.Config
	logger   *zap.Logger
}

// NewService creates a new update service. Parsed inputs are cached for the
// configured TTL.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := NewResolver(opts.Client, opts.Bucket, opts.Catalogs)
	return &Service{
		resolver: resolver,
		cache:    reconcile.NewSourceCache(resolver, opts.Reconcile.CacheTTL),
		client:   opts.Client,
		bucket:   opts.Bucket,
		prefix:   opts.OutputPrefix,
		cfg:      opts.Reconcile,
		logger:   logger,
	}
}

// Invalidate drops cached copies of paths.
func (s *Service) Invalidate(paths ...string) {
	for _, p := range paths {
		s.cache.Invalidate(p)
	}
}

func (s *Service) options(req Request) (reconcile.Options, error) {
	cfg := s.cfg
	if req.Key != "" {
		cfg.Key = req.Key
	}
	cfg.Strict = cfg.Strict || req.Strict
	opts, err := cfg.Options(s.logger)
	if err != nil {
		return reconcile.Options{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return opts, nil
}

func (s *Service) format(req Request) (formats.Format, error) {
	name := req.Format
	if name == "" {
		name = s.cfg.OutputFormat
	}
	if name == "" {
		name = formats.Logiqx{}.Name()
	}
	return formats.Lookup(name)
}

// populate parses inputs into one combined DatFile.
func (s *Service) populate(ctx context.Context, inputs []reconcile.Input, header datfile.Header, opts reconcile.Options) (*datfile.DatFile, error) {
	dat := datfile.New(header,
		itemdict.WithStrictMatching(opts.Strict),
		itemdict.WithLogger(opts.Logger),
	)
	if _, err := reconcile.Populate(ctx, dat, inputs, s.cache, opts); err != nil {
		return nil, err
	}
	return dat, nil
}

func (s *Service) loadEach(ctx context.Context, inputs []reconcile.Input, opts reconcile.Options) ([]*datfile.DatFile, error) {
	dats := make([]*datfile.DatFile, len(inputs))
	for i, in := range inputs {
		dat, err := reconcile.LoadOne(ctx, in, s.cache, opts)
		if err != nil {
			return nil, err
		}
		dats[i] = dat
	}
	return dats, nil
}

// Plan runs the requested operation without writing anything.
func (s *Service) Plan(ctx context.Context, req Request) (*reconcile.Plan, error) {
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, req.Mode)
	}
	opts, err := s.options(req)
	if err != nil {
		return nil, err
	}

	inputs, err := s.resolver.Expand(ctx, req.Inputs)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	header := datfile.Header{Name: req.Name, Description: req.Description}
	var outputs []reconcile.Output

	switch mode {
	case ModeMerge:
		dedupe, ok := itemdict.ParseDedupeMode(req.Dedupe)
		if !ok {
			return nil, fmt.Errorf("%w: unknown dedupe mode %q", ErrInvalidRequest, req.Dedupe)
		}
		dat, err := s.populate(ctx, inputs, header, opts)
		if err != nil {
			return nil, err
		}
		out, err := reconcile.Merge(ctx, dat, inputs, reconcile.MergeOptions{Options: opts, SuperDAT: req.SuperDAT, Dedupe: dedupe})
		if err != nil {
			return nil, err
		}
		outputs = []reconcile.Output{*out}

	case ModeCascade, ModeReverseCascade:
		if mode == ModeReverseCascade {
			slices.Reverse(inputs)
		}
		dat, err := s.populate(ctx, inputs, header, opts)
		if err != nil {
			return nil, err
		}
		outputs, err = reconcile.DiffCascade(ctx, dat, inputs, reconcile.CascadeOptions{Options: opts, SkipFirst: req.SkipFirst})
		if err != nil {
			return nil, err
		}

	case ModeDupes, ModeNoDupes:
		dat, err := s.populate(ctx, inputs, header, opts)
		if err != nil {
			return nil, err
		}
		diff := reconcile.DiffDuplicates
		if mode == ModeNoDupes {
			diff = reconcile.DiffNoDuplicates
		}
		out, err := diff(ctx, dat, inputs, opts)
		if err != nil {
			return nil, err
		}
		outputs = []reconcile.Output{*out}

	case ModeIndividuals, ModeAll:
		dat, err := s.populate(ctx, inputs, header, opts)
		if err != nil {
			return nil, err
		}
		diff := reconcile.DiffIndividuals
		if mode == ModeAll {
			diff = reconcile.DiffAll
		}
		outputs, err = diff(ctx, dat, inputs, opts)
		if err != nil {
			return nil, err
		}

	case ModeAgainst, ModeBaseReplace, ModeReverseBaseReplace:
		outputs, err = s.planAgainstBase(ctx, mode, req, inputs, opts)
		if err != nil {
			return nil, err
		}

	case ModeSplit:
		if len(req.Extensions) == 0 {
			return nil, fmt.Errorf("%w: split needs at least one extension", ErrInvalidRequest)
		}
		dats, err := s.loadEach(ctx, inputs, opts)
		if err != nil {
			return nil, err
		}
		for _, dat := range dats {
			matched, rest := reconcile.SplitByExtension(dat, req.Extensions, opts)
			outputs = append(outputs, *matched, *rest)
		}
	}

	return reconcile.NewPlan(string(mode), len(inputs), outputs), nil
}

func (s *Service) planAgainstBase(ctx context.Context, mode Mode, req Request, inputs []reconcile.Input, opts reconcile.Options) ([]reconcile.Output, error) {
	bases, err := s.resolver.Expand(ctx, req.Bases)
	if err != nil {
		return nil, err
	}
	if len(bases) == 0 {
		return nil, ErrNoBases
	}
	if mode == ModeReverseBaseReplace {
		slices.Reverse(bases)
	}

	base, err := s.populate(ctx, bases, datfile.Header{}, opts)
	if err != nil {
		return nil, err
	}
	candidates, err := s.loadEach(ctx, inputs, opts)
	if err != nil {
		return nil, err
	}

	if mode == ModeAgainst {
		return reconcile.DiffAgainst(ctx, base, candidates, reconcile.AgainstOptions{Options: opts, ByGame: req.ByGame})
	}

	fields, err := datitems.ParseFieldSet(req.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return reconcile.BaseReplace(ctx, base, candidates, reconcile.ReplaceOptions{Options: opts, Fields: fields, OnlySame: req.OnlySame})
}

// Run plans req and writes the outputs through sink. A nil sink writes to
// object storage under the configured output prefix. Runs whose outputs are
// all empty succeed with nothing written.
func (s *Service) Run(ctx context.Context, req Request, sink reconcile.Sink) (*Response, error) {
	start := time.Now()

	f, err := s.format(req)
	if err != nil {
		return nil, err
	}

	plan, err := s.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &Response{Mode: req.Mode, Summary: plan.Summary, Outputs: describe(plan)}

	if sink == nil {
		if s.client == nil {
			return nil, errors.New("object storage not configured")
		}
		if !req.DryRun {
			if err := storage.EnsureBucket(ctx, s.client, s.bucket, ""); err != nil {
				return nil, err
			}
			if req.Clean && s.prefix != "" {
				n, err := storage.RemovePrefix(ctx, s.client, s.bucket, s.prefix)
				if err != nil {
					return nil, err
				}
				resp.Cleaned = n
			}
		}
		sink = ObjectSink{Client: s.client, Bucket: s.bucket, Prefix: s.prefix}
	}

	written, err := reconcile.ApplyPlan(ctx, plan, sink, reconcile.ApplyOptions{
		Format:       f,
		Prefix:       req.Prefix,
		IgnoreBlanks: req.IgnoreBlanks || s.cfg.IgnoreBlanks,
		DryRun:       req.DryRun,
		Workers:      s.cfg.Workers,
		Logger:       s.logger,
	})
	if err != nil && !errors.Is(err, reconcile.ErrNoOutputs) {
		return nil, err
	}
	resp.Written = written
	resp.Duration = time.Since(start).String()

	s.logger.Info("Update completed",
		zap.String("mode", string(req.Mode)),
		zap.Int("inputs", plan.Summary.Inputs),
		zap.Int("outputs", plan.Summary.Outputs),
		zap.Int("written", written),
		zap.Bool("dry_run", req.DryRun),
	)
	return resp, nil
}
