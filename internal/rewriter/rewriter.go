// Package rewriter implements the optional externally-delegated rewrite
// stage. Each paragraph is sent independently to an OpenAI-compatible chat
// model; any per-paragraph failure falls back to the paragraph's pre-rewrite
// form, so the stage degrades but never aborts the pipeline.
package rewriter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"funnypdf/internal/funnify"
	"funnypdf/internal/logger"
)

const (
	// DefaultModel is the default chat model for the rewrite stage
	DefaultModel = "gpt-4o-mini"
	// DefaultTimeout bounds each per-paragraph model call
	DefaultTimeout = 30 * time.Second
	// MaxParagraphRunes is the per-paragraph truncation bound before delegation
	MaxParagraphRunes = 1200
	// maxCompletionTokens bounds the rewritten paragraph length
	maxCompletionTokens = 300
	// temperature keeps the rewrites playful rather than literal
	temperature = float32(0.9)
)

// Config configures the rewrite stage. An empty APIKey disables the stage
// entirely; Rewrite then returns its input byte-identical.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ParagraphResult records the outcome of one paragraph's rewrite attempt.
// Err is set when the paragraph fell back to its pre-rewrite form.
type ParagraphResult struct {
	Index     int
	Rewritten bool
	Err       error
}

// Rewriter delegates per-paragraph rewriting to a chat model. It implements
// funnify.TextRewriter.
type Rewriter struct {
	cfg Config

	mu        sync.Mutex
	chatModel model.BaseChatModel
}

// New creates a Rewriter from config, applying defaults for empty fields.
func New(cfg Config) *Rewriter {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Rewriter{cfg: cfg}
}

// Enabled reports whether the stage has a credential and will call out.
func (r *Rewriter) Enabled() bool {
	return r.cfg.APIKey != ""
}

// Rewrite satisfies funnify.TextRewriter. It returns the rewritten text,
// discarding the per-paragraph outcome records.
func (r *Rewriter) Rewrite(ctx context.Context, text string, style funnify.Style) string {
	out, _ := r.RewriteWithResults(ctx, text, style)
	return out
}

// RewriteWithResults splits text into blank-line paragraphs, truncates each
// to MaxParagraphRunes, and rewrites each independently. Paragraph order and
// blank-line structure are preserved; whitespace-only paragraphs are not
// delegated. The returned results let callers observe degradation without
// being forced to react to it.
func (r *Rewriter) RewriteWithResults(ctx context.Context, text string, style funnify.Style) (string, []ParagraphResult) {
	if !r.Enabled() || text == "" {
		return text, nil
	}

	paragraphs := strings.Split(text, "\n\n")
	results := make([]ParagraphResult, 0, len(paragraphs))

	for i, para := range paragraphs {
		if strings.TrimSpace(para) == "" {
			continue
		}

		rewritten, err := r.rewriteParagraph(ctx, para, style)
		if err != nil {
			logger.Warn("paragraph rewrite failed, keeping original",
				logger.Int("paragraph", i), logger.Err(err))
			results = append(results, ParagraphResult{Index: i, Rewritten: false, Err: err})
			continue
		}

		paragraphs[i] = rewritten
		results = append(results, ParagraphResult{Index: i, Rewritten: true})
	}

	return strings.Join(paragraphs, "\n\n"), results
}

func (r *Rewriter) rewriteParagraph(ctx context.Context, para string, style funnify.Style) (string, error) {
	seg := strings.TrimSpace(para)
	if runes := []rune(seg); len(runes) > MaxParagraphRunes {
		seg = string(runes[:MaxParagraphRunes])
	}

	cm, err := r.model(ctx)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	resp, err := cm.Generate(callCtx, []*schema.Message{
		schema.SystemMessage(systemPrompt(style)),
		schema.UserMessage(seg),
	})
	if err != nil {
		return "", fmt.Errorf("chat model call failed: %w", err)
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", fmt.Errorf("chat model returned empty content")
	}
	return content, nil
}

// model lazily constructs the chat model once; construction failures are
// reported per call so the stage stays fail-open.
func (r *Rewriter) model(ctx context.Context) (model.BaseChatModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.chatModel != nil {
		return r.chatModel, nil
	}

	maxTokens := maxCompletionTokens
	temp := temperature
	cfg := &openai.ChatModelConfig{
		Model:       r.cfg.Model,
		APIKey:      r.cfg.APIKey,
		MaxTokens:   &maxTokens,
		Temperature: &temp,
		Timeout:     r.cfg.Timeout,
	}
	if r.cfg.BaseURL != "" {
		cfg.BaseURL = r.cfg.BaseURL
	}

	cm, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	r.chatModel = cm
	return cm, nil
}

func systemPrompt(style funnify.Style) string {
	return "Rewrite user text with playful, meme-like humor; keep meaning; " +
		"avoid slurs/insults; keep it PG-13; add mild sarcasm; " +
		fmt.Sprintf("style=%s.", style)
}
