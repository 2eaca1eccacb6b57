package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inkpress/inkpress/pkg/cache"
	"github.com/inkpress/inkpress/pkg/element"
	docio "github.com/inkpress/inkpress/pkg/io"
	"github.com/inkpress/inkpress/pkg/observability"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → assemble → emit pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.SourceFormat)
	d, err := Load(opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.SourceFormat, 0, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PageCount = len(d.Pages)
	result.Stats.ElementCount = countElements(d)
	observability.Pipeline().OnLoadComplete(ctx, opts.SourceFormat,
		result.Stats.PageCount, result.Stats.ElementCount, result.Stats.LoadTime, nil)

	// The hash of the normalized description keys every artifact, so
	// formatting differences in the input never split the cache.
	docHash, err := hashDocument(d)
	if err != nil {
		return nil, fmt.Errorf("hash document: %w", err)
	}
	result.DocHash = docHash

	r.Logger.Info("loaded document",
		"pages", result.Stats.PageCount,
		"elements", result.Stats.ElementCount,
		"duration", result.Stats.LoadTime)

	// Stage 2 + 3: Assemble and emit, cached per format
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.EmitWithCacheInfo(ctx, d, docHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// EmitWithCacheInfo produces artifacts with caching and reports
// whether every format came from cache.
func (r *Runner) EmitWithCacheInfo(ctx context.Context, d *element.Document, docHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Emit(d, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashDocument computes the content hash of a normalized document.
func hashDocument(d *element.Document) (string, error) {
	var buf bytes.Buffer
	if err := docio.WriteJSON(d, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

func countElements(d *element.Document) int {
	total := 0
	for _, p := range d.Pages {
		for _, el := range p.Content {
			total += el.Count()
		}
	}
	return total
}
