// Package compiler implements the source compiler (§4.G) and filter
// compiler (§4.H): the orchestration that fetches every configured
// source, applies the transformation pipeline at both source and global
// scope, and emits the final header-and-checksum-stamped list. The
// concurrent-fetch-then-ordered-merge shape is grounded on the teacher's
// ReloadRules (feng2208-adblocker engine/engine.go), adapted from a
// group/trie rebuild into an ordered per-source pipeline run.
package compiler

import (
	"context"
	"sync"
	"time"

	"github.com/hostlistc/hostlistc/internal/cache"
	"github.com/hostlistc/hostlistc/internal/checksum"
	"github.com/hostlistc/hostlistc/internal/config"
	"github.com/hostlistc/hostlistc/internal/errs"
	"github.com/hostlistc/hostlistc/internal/events"
	"github.com/hostlistc/hostlistc/internal/fetch"
	"github.com/hostlistc/hostlistc/internal/header"
	"github.com/hostlistc/hostlistc/internal/logging"
	"github.com/hostlistc/hostlistc/internal/metrics"
	"github.com/hostlistc/hostlistc/internal/transform"
)

// PackageInfo names the compiling program itself, rendered into the
// "Compiled by" header line.
type PackageInfo struct {
	Name    string
	Version string
}

// Result is the outcome of one full compilation.
type Result struct {
	Lines          []string
	Metrics        metrics.CompilationMetrics
	Warnings       []string
	SkippedSources []string
}

// Compiler runs the end-to-end pipeline for one Config (spec §4.H).
type Compiler struct {
	Fetcher  fetch.Fetcher
	Registry *transform.Registry
	Logger   logging.Logger
	Bus      *events.Bus
	Package  PackageInfo

	// Cache holds per-source compiled output keyed by source + content
	// hash, skipping a re-run of the transformation pipeline when a
	// source's content hasn't changed since the last compile (spec §3
	// Lifecycle, the IncrementalCompiler cache). Nil disables caching.
	Cache *cache.SourceCache

	// Now is injectable for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

// defaultCacheCapacity bounds the per-process IncrementalCompiler cache;
// most deployments compile well under a hundred distinct sources.
const defaultCacheCapacity = 256

// New builds a Compiler with sensible defaults, including a bounded
// source cache enabling incremental recompilation across runs that share
// a Compiler instance.
func New(f fetch.Fetcher, pkg PackageInfo, logger logging.Logger, bus *events.Bus) *Compiler {
	if bus == nil {
		bus = events.NewBus(nil, logger)
	}
	sc, _ := cache.New(defaultCacheCapacity)
	return &Compiler{
		Fetcher:  f,
		Registry: transform.NewRegistry(),
		Logger:   logging.OrNop(logger),
		Bus:      bus,
		Package:  pkg,
		Cache:    sc,
		Now:      time.Now,
	}
}

type sourceOutcome struct {
	rules []TaggedRule
	err   error
}

// Compile runs the full pipeline: per-source compile (concurrent fetch,
// ordered merge) -> concatenate -> global transformations -> global
// Exclude/Include -> header -> checksum (spec §4.G/4.H).
func (c *Compiler) Compile(ctx context.Context, cfg *config.Config) (Result, error) {
	collector := metrics.NewCollector()
	pipeline := transform.NewPipeline(c.Registry, c.Logger)

	outcomes := make([]sourceOutcome, len(cfg.Sources))
	var wg sync.WaitGroup
	for i, src := range cfg.Sources {
		wg.Add(1)
		go func(i int, src config.Source) {
			defer wg.Done()
			rules, _, err := metrics.TimeAsync(sourceMetricName(src), -1, func() ([]TaggedRule, error) {
				return compileSource(ctx, c.Fetcher, pipeline, cfg.Platform, src, c.Bus, c.Cache)
			})
			outcomes[i] = sourceOutcome{rules: rules, err: err}
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Result{}, errs.New(errs.Cancelled, "compilation cancelled", err)
	}

	var merged []TaggedRule
	var warnings []string
	var skipped []string
	for i, src := range cfg.Sources {
		outcome := outcomes[i]
		if outcome.err != nil {
			name := src.Name
			if name == "" {
				name = src.Source
			}
			if !cfg.IgnoreFailedSources {
				return Result{}, asSourceFetchFailed(name, outcome.err)
			}
			warnings = append(warnings, "skipped source "+name+": "+outcome.err.Error())
			skipped = append(skipped, name)
			continue
		}
		merged = append(merged, outcome.rules...)
	}

	lines := make([]string, len(merged))
	for i, r := range merged {
		lines[i] = r.Text
	}

	globalExclusions, err := resolvePatterns(ctx, c.Fetcher, cfg.Exclusions, cfg.ExclusionsSources, cfg.Platform)
	if err != nil {
		return Result{}, err
	}
	globalInclusions, err := resolvePatterns(ctx, c.Fetcher, cfg.Inclusions, cfg.InclusionsSources, cfg.Platform)
	if err != nil {
		return Result{}, err
	}

	var conflicts []transform.Conflict
	opts := transform.Options{Logger: c.Logger, Conflicts: &conflicts}

	globalLines, globalMetric, err := metrics.TimeAsync("global-transformations", len(lines), func() ([]string, error) {
		return pipeline.Run(lines, namesOf(cfg.Transformations), opts, transform.ExcludeIncludeSpec{
			Exclusions: globalExclusions,
			Inclusions: globalInclusions,
		})
	})
	collector.Record(globalMetric)
	if err != nil {
		return Result{}, err
	}

	body := header.StripUpstreamMetadata(globalLines)
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	headerLines := header.Render(header.Info{
		Name:           cfg.Name,
		Description:    cfg.Description,
		Homepage:       cfg.Homepage,
		License:        cfg.License,
		Version:        cfg.Version,
		PackageName:    c.Package.Name,
		PackageVersion: c.Package.Version,
		CompiledAt:     now(),
	})

	final := append(append([]string{}, headerLines...), body...)
	final = checksum.Insert(final)

	c.Bus.Emit(events.Event{Kind: events.KindCompilationComplete, Current: len(final)})

	agg := collector.Finish(len(cfg.Sources), len(merged), len(final))
	return Result{Lines: final, Metrics: agg, Warnings: warnings, SkippedSources: skipped}, nil
}

func sourceMetricName(src config.Source) string {
	if src.Name != "" {
		return "source:" + src.Name
	}
	return "source:" + src.Source
}
