package plugin

import (
	"context"
	stderrors "errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	wasmbundler "github.com/wippyai/wasm-bundler"
	"github.com/wippyai/wasm-bundler/delivery"
	"github.com/wippyai/wasm-bundler/errors"
	"github.com/wippyai/wasm-bundler/inspect"
	"github.com/wippyai/wasm-bundler/placement"
	"github.com/wippyai/wasm-bundler/shim"
	"github.com/wippyai/wasm-bundler/wasm"
)

// Extension is the file suffix the plugin claims.
const Extension = ".wasm"

const defaultDecisionCacheSize = 1024

// Plugin orchestrates the per-file pipeline between the host's resolve
// and load hooks. It holds no per-file mutable state; the decision
// cache is the only shared structure and is safe for the host's
// concurrency policy.
type Plugin struct {
	cfg       Config
	host      wasmbundler.Host
	inspector *inspect.Inspector
	decisions *lru.Cache[string, placement.Decision]
	metrics   *Metrics
	cacheSize int
}

// Option configures a Plugin at construction.
type Option func(*Plugin)

// WithMetrics attaches pipeline counters.
func WithMetrics(m *Metrics) Option {
	return func(p *Plugin) { p.metrics = m }
}

// WithDecisionCacheSize bounds the resolve-to-load decision cache.
func WithDecisionCacheSize(n int) Option {
	return func(p *Plugin) { p.cacheSize = n }
}

// New validates cfg and creates a plugin bound to the given host.
func New(ctx context.Context, host wasmbundler.Host, cfg Config, opts ...Option) (*Plugin, error) {
	if host == nil {
		return nil, errors.Config("a host is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Plugin{
		cfg:       cfg,
		host:      host,
		cacheSize: defaultDecisionCacheSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	cache, err := lru.New[string, placement.Decision](p.cacheSize)
	if err != nil {
		return nil, errors.Config("decision cache size %d: %v", p.cacheSize, err)
	}
	p.decisions = cache
	p.inspector = inspect.New(ctx)

	Logger().Debug("plugin created", zap.String("config", cfg.String()))
	return p, nil
}

// Close releases the plugin's introspection runtime.
func (p *Plugin) Close(ctx context.Context) error {
	return p.inspector.Close(ctx)
}

// Resolve implements the host's resolution hook for .wasm specifiers.
// It returns ok=false when the specifier is not this plugin's to
// handle. On success the placement decision is precomputed and cached
// under the absolute identifier so Load does not recompute it.
func (p *Plugin) Resolve(ctx context.Context, specifier, importer string) (absID string, ok bool, err error) {
	if !strings.HasSuffix(specifier, Extension) {
		return "", false, nil
	}

	absID, err = p.host.Resolve(ctx, specifier, importer)
	if err != nil {
		return "", false, p.report(specifier, errors.Resolve(specifier, err))
	}
	if absID == "" {
		return "", false, nil
	}

	size, err := p.host.StatSize(ctx, absID)
	if err != nil {
		return "", false, p.report(absID, errors.Read("stat module file", err))
	}

	decision := placement.Decide(size, p.cfg.TargetEnv, p.cfg.MaxFileSize, absID)
	p.decisions.Add(absID, decision)

	if p.metrics != nil {
		p.metrics.decided(decision)
	}
	Logger().Debug("placement decided",
		zap.String("file", absID),
		zap.Int64("size", size),
		zap.Bool("external", decision.External),
		zap.String("asset", decision.AssetName))

	return absID, true, nil
}

// Load implements the host's load hook. It reads the file once, runs
// introspection and delivery preparation concurrently over the same
// buffer, and returns the generated shim source.
func (p *Plugin) Load(ctx context.Context, absID string) (source string, ok bool, err error) {
	if !strings.HasSuffix(absID, Extension) {
		return "", false, nil
	}

	data, err := p.host.ReadFile(ctx, absID)
	if err != nil {
		return "", false, p.report(absID, errors.Read("read module file", err))
	}

	decision, cached := p.decisions.Get(absID)
	if !cached {
		// Load without a prior resolve for this path; decide from the
		// bytes already in hand.
		decision = placement.Decide(int64(len(data)), p.cfg.TargetEnv, p.cfg.MaxFileSize, absID)
	}

	var (
		surface *wasm.Surface
		wasmURL string
	)

	// Introspection and delivery preparation share the buffer but have
	// no data dependency on each other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := p.inspector.Inspect(gctx, data)
		if err != nil {
			return err
		}
		surface = s
		return nil
	})
	g.Go(func() error {
		if decision.External {
			if err := p.host.RegisterAsset(gctx, decision.AssetName, data); err != nil {
				return errors.Register(decision.AssetName, err)
			}
			wasmURL = decision.AssetName
			return nil
		}
		if err := gctx.Err(); err != nil {
			return errors.Encode("encode data uri", err)
		}
		wasmURL = delivery.DataURI(data)
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", false, p.report(absID, err)
	}

	source, err = shim.Generate(surface.Groups(), surface.ExportNames(), wasmURL)
	if err != nil {
		return "", false, p.report(absID, err)
	}

	if p.metrics != nil {
		p.metrics.loaded(decision, len(data))
	}
	Logger().Debug("shim generated",
		zap.String("file", absID),
		zap.Int("imports", len(surface.Imports)),
		zap.Int("exports", len(surface.Exports)),
		zap.Bool("external", decision.External))

	return source, true, nil
}

// report surfaces a per-file failure through the host exactly once and
// returns the error for the hook result.
func (p *Plugin) report(file string, err error) error {
	var e *errors.Error
	if stderrors.As(err, &e) && e.File == "" {
		err = e.WithFile(file)
	}
	p.host.ReportError(file, err)
	if p.metrics != nil {
		p.metrics.failed()
	}
	return err
}
