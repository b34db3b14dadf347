package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"funnypdf/internal/config"
	"funnypdf/internal/logger"
	"funnypdf/internal/render"
)

func main() {
	var (
		output     = flag.String("o", "", "output PDF path (default: per-job results directory)")
		style      = flag.String("style", "", "humor style: mild, spicy, chaotic")
		emoji      = flag.Bool("emoji", true, "sprinkle emojis")
		cats       = flag.Bool("cats", true, "insert cat images")
		catEvery   = flag.Int("cat-every", render.DefaultCatEvery, "paragraphs between cat images (minimum 1)")
		ai         = flag.Bool("ai", false, "rewrite paragraphs with an OpenAI-compatible model (needs OPENAI_API_KEY)")
		seed       = flag.Int64("seed", 0, "fixed random seed for deterministic output")
		title      = flag.String("title", "", "document header title")
		configPath = flag.String("config", "", "path to config file")
		verbose    = flag.Bool("v", false, "log to console as well as file")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.pdf\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	logCfg := logger.DefaultConfig()
	logCfg.EnableConsole = *verbose
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	configMgr, err := config.NewManager(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := configMgr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	app, err := NewApp(configMgr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	styleLabel := *style
	if styleLabel == "" {
		styleLabel = configMgr.GetDefaultStyle()
	}

	opts := ProcessOptions{
		Style:         styleLabel,
		EmojiEnabled:  *emoji,
		InsertCats:    *cats,
		CatEvery:      *catEvery,
		EnableRewrite: *ai,
		OutputPath:    *output,
		Title:         *title,
	}
	seedFlagSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedFlagSet = true
		}
	})
	if seedFlagSet {
		opts.Seed = *seed
		opts.SeedSet = true
	}

	result, err := app.ProcessPDF(context.Background(), inputPath, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✨ funny PDF written to %s\n", result.OutputPath)
	fmt.Printf("   %d paragraphs, %d pages, %d cat images (%d placeholders)\n",
		result.Stats.Paragraphs, result.Stats.Pages, result.Stats.Images, result.Stats.Placeholders)
	for _, pr := range result.RewriteResults {
		if pr.Err != nil {
			fmt.Printf("   paragraph %d kept original text: %v\n", pr.Index, pr.Err)
		}
	}
}
