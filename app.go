package main

import (
	"context"
	"sync"
	"time"

	"funnypdf/internal/catimg"
	"funnypdf/internal/config"
	"funnypdf/internal/funnify"
	"funnypdf/internal/logger"
	"funnypdf/internal/pdf"
	"funnypdf/internal/render"
	"funnypdf/internal/results"
	"funnypdf/internal/rewriter"
	"funnypdf/internal/types"
)

// App wires the pipeline components together and runs whole jobs:
// validate → extract → transform → render → store.
type App struct {
	configMgr *config.Manager
	tables    *funnify.Tables
	results   *results.Manager

	mu     sync.RWMutex
	status types.Status
}

// ProcessOptions configure one pipeline run.
type ProcessOptions struct {
	Style         string
	EmojiEnabled  bool
	InsertCats    bool
	CatEvery      int
	EnableRewrite bool
	// Seed fixes the transform random sequence when SeedSet is true.
	Seed    int64
	SeedSet bool
	// OutputPath overrides the default per-job output location.
	OutputPath string
	Title      string
}

// ProcessResult reports what a run produced, including any observed
// degradation in the best-effort stages.
type ProcessResult struct {
	JobID          string
	OutputPath     string
	Info           *pdf.PDFInfo
	Stats          *render.Stats
	RewriteResults []rewriter.ParagraphResult
}

// NewApp builds an App from loaded configuration.
func NewApp(configMgr *config.Manager) (*App, error) {
	resultMgr, err := results.NewManager(configMgr.GetResultsDir())
	if err != nil {
		return nil, types.NewAppError(types.ErrConfig, "failed to prepare results directory", err)
	}

	return &App{
		configMgr: configMgr,
		tables:    funnify.DefaultTables(),
		results:   resultMgr,
		status:    types.Status{Phase: types.PhaseIdle},
	}, nil
}

// Status reports the current pipeline phase and progress.
func (a *App) Status() types.Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

func (a *App) setStatus(phase types.ProcessPhase, progress int, message string) {
	if !types.IsValidPhase(phase) {
		phase = types.PhaseError
	}
	a.mu.Lock()
	a.status = types.Status{Phase: phase, Progress: progress, Message: message}
	a.mu.Unlock()
}

func (a *App) failStatus(message string, err error) {
	a.mu.Lock()
	a.status = types.Status{Phase: types.PhaseError, Message: message, Error: err.Error()}
	a.mu.Unlock()
}

// recordingRewriter adapts rewriter.Rewriter to funnify.TextRewriter while
// keeping the per-paragraph outcome records for the caller.
type recordingRewriter struct {
	rw      *rewriter.Rewriter
	results []rewriter.ParagraphResult
}

func (r *recordingRewriter) Rewrite(ctx context.Context, text string, style funnify.Style) string {
	out, res := r.rw.RewriteWithResults(ctx, text, style)
	r.results = res
	return out
}

// ProcessPDF runs the full pipeline over one input document. Only the
// absence of usable text (or unusable input) is fatal; the rewrite and
// image stages degrade in place and report through the result.
func (a *App) ProcessPDF(ctx context.Context, inputPath string, opts ProcessOptions) (*ProcessResult, error) {
	style := funnify.ParseStyle(opts.Style)
	logger.Info("processing PDF",
		logger.String("input", inputPath),
		logger.String("style", string(style)),
		logger.Bool("cats", opts.InsertCats),
		logger.Int("catEvery", opts.CatEvery),
		logger.Bool("emoji", opts.EmojiEnabled),
		logger.Bool("rewrite", opts.EnableRewrite))

	a.setStatus(types.PhaseExtracting, 10, "validating and extracting text")
	extractor := pdf.NewExtractor()

	info, err := extractor.GetPDFInfo(inputPath)
	if err != nil {
		a.failStatus("input validation failed", err)
		return nil, err
	}

	text, err := extractor.ExtractText(inputPath)
	if err != nil {
		a.failStatus("text extraction failed", err)
		return nil, err
	}
	if pdf.IsEmptyText(text) {
		err := types.NewAppError(types.ErrEmptyContent,
			"no extractable text found (scanned PDFs need OCR)", nil)
		a.failStatus("no usable text", err)
		return nil, err
	}

	var recording *recordingRewriter
	var textRewriter funnify.TextRewriter
	if opts.EnableRewrite {
		rw := rewriter.New(rewriter.Config{
			APIKey:  a.configMgr.GetAPIKey(),
			BaseURL: a.configMgr.GetBaseURL(),
			Model:   a.configMgr.GetModel(),
		})
		if rw.Enabled() {
			recording = &recordingRewriter{rw: rw}
			textRewriter = recording
		} else {
			logger.Warn("rewrite requested but no API key configured; stage disabled")
		}
	}

	if textRewriter != nil {
		a.setStatus(types.PhaseRewriting, 40, "rewriting and applying humor transforms")
	} else {
		a.setStatus(types.PhaseFunnifying, 40, "applying humor transforms")
	}
	pipeline := funnify.NewPipeline(a.tables, textRewriter)
	funnyText := pipeline.Apply(ctx, text, funnify.Options{
		Style:        style,
		EmojiEnabled: opts.EmojiEnabled,
		Seed:         opts.Seed,
		SeedSet:      opts.SeedSet,
	})

	jobID, err := a.results.NewJob()
	if err != nil {
		appErr := types.NewAppError(types.ErrInternal, "failed to allocate job directory", err)
		a.failStatus("job setup failed", appErr)
		return nil, appErr
	}
	if err := a.results.CopyOriginal(jobID, inputPath); err != nil {
		logger.Warn("failed to store original copy", logger.String("job", jobID), logger.Err(err))
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = a.results.FunnyPath(jobID)
	}

	var images render.ImageSource
	if opts.InsertCats {
		images = catimg.NewFetcher(a.configMgr.GetCatImageURL())
	}
	renderer := render.NewRenderer(render.Options{
		Title:      opts.Title,
		InsertCats: opts.InsertCats,
		CatEvery:   opts.CatEvery,
		FontPath:   a.configMgr.GetFontPath(),
	}, images)

	a.setStatus(types.PhaseRendering, 70, "rendering document")
	stats, err := renderer.RenderFile(ctx, funnyText, outputPath)
	if err != nil {
		a.failStatus("rendering failed", err)
		return nil, err
	}

	jobInfo := &results.JobInfo{
		ID:             jobID,
		Style:          string(style),
		EmojiEnabled:   opts.EmojiEnabled,
		CatsEnabled:    opts.InsertCats,
		CatEvery:       opts.CatEvery,
		RewriteEnabled: textRewriter != nil,
		CreatedAt:      time.Now(),
		SourceFileName: info.FileName,
		OriginalPDF:    a.results.OriginalPath(jobID),
		FunnyPDF:       outputPath,
		Paragraphs:     stats.Paragraphs,
		Images:         stats.Images,
		Placeholders:   stats.Placeholders,
		Pages:          stats.Pages,
	}
	if opts.SeedSet {
		jobInfo.Seed = opts.Seed
	}
	if err := a.results.SaveJobInfo(jobInfo); err != nil {
		logger.Warn("failed to save job metadata", logger.String("job", jobID), logger.Err(err))
	}

	result := &ProcessResult{
		JobID:      jobID,
		OutputPath: outputPath,
		Info:       info,
		Stats:      stats,
	}
	if recording != nil {
		result.RewriteResults = recording.results
	}

	a.setStatus(types.PhaseComplete, 100, "done")
	logger.Info("processing complete",
		logger.String("job", jobID),
		logger.String("output", outputPath),
		logger.Int("paragraphs", stats.Paragraphs),
		logger.Int("images", stats.Images))
	return result, nil
}

// ListJobs returns metadata for previous runs, newest first.
func (a *App) ListJobs() ([]*results.JobInfo, error) {
	return a.results.ListJobs()
}
