package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/hostlistc/hostlistc/internal/cache"
	"github.com/hostlistc/hostlistc/internal/config"
	"github.com/hostlistc/hostlistc/internal/errs"
	"github.com/hostlistc/hostlistc/internal/events"
	"github.com/hostlistc/hostlistc/internal/fetch"
	"github.com/hostlistc/hostlistc/internal/transform"
)

// TaggedRule is a compiled line tagged with the source it came from,
// carried through to the filter compiler for diagnostics (spec §4.G).
type TaggedRule struct {
	Text       string
	SourceName string
}

// compileSource implements spec §4.G: fetch lines, apply source-level
// transformations, then source-level Exclude -> Include. When sc is
// non-nil, a source whose fetched content hash matches a prior run skips
// re-running the transformation pipeline and reuses the cached output
// (the IncrementalCompiler cache, grounded on the teacher's
// server/cache.go TTLCache via internal/cache).
func compileSource(ctx context.Context, f fetch.Fetcher, pipeline *transform.Pipeline, platform string, src config.Source, bus *events.Bus, sc *cache.SourceCache) ([]TaggedRule, error) {
	name := src.Name
	if name == "" {
		name = src.Source
	}

	bus.Emit(events.Event{Kind: events.KindSourceStart, Source: name})

	lines, err := fetch.Resolve(ctx, f, src.Source, platform)
	if err != nil {
		bus.Emit(events.Event{Kind: events.KindSourceError, Source: name, Err: err})
		return nil, err
	}

	contentHash := hashLines(lines)
	if sc != nil {
		if entry, ok := sc.Get(src.Source); ok && entry.ContentHash == contentHash {
			tagged := make([]TaggedRule, len(entry.Lines))
			for i, l := range entry.Lines {
				tagged[i] = TaggedRule{Text: l, SourceName: name}
			}
			bus.Emit(events.Event{Kind: events.KindSourceComplete, Source: name, Current: len(tagged)})
			return tagged, nil
		}
	}

	exclusions, err := resolvePatterns(ctx, f, src.Exclusions, src.ExclusionsSources, platform)
	if err != nil {
		bus.Emit(events.Event{Kind: events.KindSourceError, Source: name, Err: err})
		return nil, err
	}
	inclusions, err := resolvePatterns(ctx, f, src.Inclusions, src.InclusionsSources, platform)
	if err != nil {
		bus.Emit(events.Event{Kind: events.KindSourceError, Source: name, Err: err})
		return nil, err
	}

	requested := namesOf(src.Transformations)
	result, err := pipeline.Run(lines, requested, transform.Options{}, transform.ExcludeIncludeSpec{
		Exclusions: exclusions,
		Inclusions: inclusions,
	})
	if err != nil {
		bus.Emit(events.Event{Kind: events.KindSourceError, Source: name, Err: err})
		return nil, err
	}

	tagged := make([]TaggedRule, len(result))
	for i, l := range result {
		tagged[i] = TaggedRule{Text: l, SourceName: name}
	}

	if sc != nil {
		sc.Put(src.Source, cache.Entry{Key: src.Source, ContentHash: contentHash, Lines: result, FetchedAt: time.Now()})
	}

	bus.Emit(events.Event{Kind: events.KindSourceComplete, Source: name, Current: len(tagged)})
	return tagged, nil
}

func hashLines(lines []string) string {
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

func namesOf(raw []string) []transform.Name {
	out := make([]transform.Name, len(raw))
	for i, r := range raw {
		out[i] = transform.Name(r)
	}
	return out
}

// asSourceFetchFailed wraps a source-level error in SourceFetchFailed when
// it isn't already a taxonomy error, so ignoreFailedSources can classify
// it uniformly.
func asSourceFetchFailed(sourceName string, err error) error {
	var te *errs.Error
	if errors.As(err, &te) {
		return err
	}
	return errs.New(errs.SourceFetchFailed, "compiling source "+sourceName, err).WithContext("source", sourceName)
}
