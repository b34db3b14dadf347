package funnify

import (
	"context"
	"math/rand"
	"time"

	"funnypdf/internal/logger"
)

// TextRewriter is the optional externally-delegated rewrite stage. It must
// fail open: on any per-paragraph failure the implementation returns the
// paragraph's pre-rewrite form, never an error.
type TextRewriter interface {
	Rewrite(ctx context.Context, text string, style Style) string
}

// Options control a single pipeline invocation.
type Options struct {
	Style        Style
	EmojiEnabled bool
	// Seed fixes the random sequence when SeedSet is true; otherwise each
	// invocation acquires a fresh time-based seed.
	Seed    int64
	SeedSet bool
}

// Pipeline applies the transform stages in a fixed order:
// word substitution, optional external rewrite, emoji sprinkling, citation
// injection. Each invocation operates on its own random source, so a single
// Pipeline value is safe for concurrent use.
type Pipeline struct {
	tables   *Tables
	rewriter TextRewriter // nil disables the rewrite stage
}

// NewPipeline builds a pipeline over the given tables. rewriter may be nil.
func NewPipeline(tables *Tables, rewriter TextRewriter) *Pipeline {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Pipeline{tables: tables, rewriter: rewriter}
}

// Tables returns the static pools the pipeline was built with.
func (p *Pipeline) Tables() *Tables {
	return p.tables
}

// Apply runs the full transform sequence over text and returns the result.
// The input is never mutated; every stage produces a new string.
func (p *Pipeline) Apply(ctx context.Context, text string, opts Options) string {
	rng := p.newRand(opts)
	intensity := opts.Style.Intensity()

	logger.Debug("pipeline start",
		logger.Any("style", opts.Style),
		logger.Float64("intensity", intensity),
		logger.Bool("emoji", opts.EmojiEnabled),
		logger.Bool("rewrite", p.rewriter != nil))

	out := SubstituteWords(text, intensity, p.tables, rng)
	if p.rewriter != nil {
		out = p.rewriter.Rewrite(ctx, out, opts.Style)
	}
	if opts.EmojiEnabled {
		out = SprinkleEmojis(out, intensity, p.tables, rng)
	}
	out = InjectCitations(out, intensity, p.tables, rng)

	return out
}

func (p *Pipeline) newRand(opts Options) *rand.Rand {
	seed := opts.Seed
	if !opts.SeedSet {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
