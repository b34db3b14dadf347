package funnify

import (
	"context"
	"strings"
	"testing"
)

type stubRewriter struct {
	sawText  string
	sawStyle Style
	output   string
}

func (s *stubRewriter) Rewrite(_ context.Context, text string, style Style) string {
	s.sawText = text
	s.sawStyle = style
	if s.output != "" {
		return s.output
	}
	return text
}

func TestPipelineApply(t *testing.T) {
	tables := testTables(t)

	t.Run("fixed seed gives byte-identical output", func(t *testing.T) {
		p := NewPipeline(tables, nil)
		text := "The boss held a meeting.\n\nEveryone worked hard. It was fine."
		opts := Options{Style: StyleChaotic, EmojiEnabled: true, Seed: 1234, SeedSet: true}

		a := p.Apply(context.Background(), text, opts)
		b := p.Apply(context.Background(), text, opts)
		if a != b {
			t.Errorf("same seed produced different output:\n%q\n%q", a, b)
		}
	})

	t.Run("rewriter sees substituted text and its output flows on", func(t *testing.T) {
		stub := &stubRewriter{output: "rewritten body"}
		p := NewPipeline(tables, stub)

		p.Apply(context.Background(), "meeting", Options{Style: StyleChaotic, Seed: 5, SeedSet: true})

		if stub.sawStyle != StyleChaotic {
			t.Errorf("rewriter saw style %s, want %s", stub.sawStyle, StyleChaotic)
		}
		if stub.sawText == "" {
			t.Fatal("rewriter was never invoked")
		}

		got := p.Apply(context.Background(), "plain", Options{Style: StyleMild, Seed: 5, SeedSet: true})
		if !strings.Contains(got, "rewritten body") {
			t.Errorf("rewriter output not carried forward: %q", got)
		}
	})

	t.Run("emoji stage is skipped when disabled", func(t *testing.T) {
		emojiOnly := &Tables{
			Replacements: nil,
			Emojis:       []string{"😂"},
			Citations:    []string{"(Source: Trust me bro)"},
		}
		p := NewPipeline(emojiOnly, nil)
		got := p.Apply(context.Background(), "no punctuation here", Options{
			Style: StyleChaotic, EmojiEnabled: false, Seed: 9, SeedSet: true,
		})
		if strings.Contains(got, "😂") {
			t.Errorf("emoji appeared with stage disabled: %q", got)
		}
	})

	t.Run("nil tables default to the built-in pools", func(t *testing.T) {
		p := NewPipeline(nil, nil)
		if p.Tables() == nil {
			t.Fatal("expected default tables")
		}
		if len(p.Tables().Replacements) == 0 || len(p.Tables().Emojis) == 0 || len(p.Tables().Citations) == 0 {
			t.Error("default tables are missing pools")
		}
	})
}
