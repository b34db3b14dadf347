// Package render writes the processed text out as a paginated PDF: wrapped
// paragraph blocks on an A4 page flow with a fixed header and footer, and an
// optional cat image after every Nth paragraph.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"funnypdf/internal/catimg"
	"funnypdf/internal/logger"
	"funnypdf/internal/types"
)

const (
	// DefaultTitle is the header title drawn on every page
	DefaultTitle = "Chaotic PDF Reader – Fun Edition"
	// DefaultCatEvery is the paragraph interval used when none is given
	DefaultCatEvery = 4
	// targetImageWidthMM is the fixed width images are scaled to
	targetImageWidthMM = 80.0
	// bodyFontSize and lineHeightMM control the paragraph text flow
	bodyFontSize = 12.0
	lineHeightMM = 6.0
	// bottomMarginMM is the auto page break margin
	bottomMarginMM = 15.0
)

// ImageSource supplies one image per call. Implementations must not fail;
// catimg.Fetcher substitutes a placeholder on any fetch error.
type ImageSource interface {
	Fetch(ctx context.Context) *catimg.Image
}

// Options configure one rendered document.
type Options struct {
	// Title is the header text; empty selects DefaultTitle.
	Title string
	// InsertCats enables image insertion after every CatEvery paragraphs.
	InsertCats bool
	// CatEvery is the paragraph interval between images. Values below 1
	// are coerced to 1 rather than rejected.
	CatEvery int
	// FontPath optionally names a UTF-8 TTF file used for all text; when
	// empty the built-in Helvetica core font is used.
	FontPath string
}

// State tracks the renderer through its one-way lifecycle.
type State int

const (
	// StateNew means no content has been added yet.
	StateNew State = iota
	// StateAdding means paragraphs and images are being drawn.
	StateAdding
	// StateFinalized is terminal; the document has been flushed.
	StateFinalized
)

// Stats describes what a finished render produced.
type Stats struct {
	Paragraphs   int `json:"paragraphs"`
	Images       int `json:"images"`
	Placeholders int `json:"placeholders"`
	Pages        int `json:"pages"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Renderer writes one document and is then spent; build a new Renderer per
// document.
type Renderer struct {
	doc        *fpdf.Fpdf
	opts       Options
	images     ImageSource
	state      State
	stats      Stats
	fontFamily string
	imageCount int
}

// NewRenderer builds a renderer for a single document. images may be nil
// when Options.InsertCats is false.
func NewRenderer(opts Options, images ImageSource) *Renderer {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.CatEvery < 1 {
		opts.CatEvery = 1
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, bottomMarginMM)

	r := &Renderer{
		doc:        doc,
		opts:       opts,
		images:     images,
		state:      StateNew,
		fontFamily: "Helvetica",
	}

	if opts.FontPath != "" {
		doc.AddUTF8Font("docfont", "", opts.FontPath)
		doc.AddUTF8Font("docfont", "B", opts.FontPath)
		if !doc.Err() {
			r.fontFamily = "docfont"
		} else {
			logger.Warn("failed to load font, falling back to Helvetica",
				logger.String("path", opts.FontPath), logger.Err(doc.Error()))
			// Reset the accumulated font error so rendering can proceed.
			doc = fpdf.New("P", "mm", "A4", "")
			doc.SetAutoPageBreak(true, bottomMarginMM)
			r.doc = doc
		}
	}

	generatedAt := time.Now().Format("2006-01-02 15:04")
	r.doc.SetHeaderFunc(func() {
		r.doc.SetFont(r.fontFamily, "B", 10)
		r.doc.CellFormat(0, 8, opts.Title, "", 0, "C", false, 0, "")
		r.doc.Ln(10)
	})
	r.doc.SetFooterFunc(func() {
		r.doc.SetY(-bottomMarginMM)
		r.doc.SetFont(r.fontFamily, "", 8)
		footer := fmt.Sprintf("Page %d  •  generated %s", r.doc.PageNo(), generatedAt)
		r.doc.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})

	return r
}

// State returns the renderer's lifecycle state.
func (r *Renderer) State() State {
	return r.state
}

// Render draws the text as a paginated document and writes the result to w.
// Paragraphs are the blank-line blocks of text; when cat insertion is on,
// one image follows every CatEvery-th paragraph. Render can run once per
// Renderer; a finalized renderer rejects further calls.
func (r *Renderer) Render(ctx context.Context, text string, w io.Writer) (*Stats, error) {
	if r.state != StateNew {
		return nil, types.NewAppError(types.ErrRender, "renderer already used; finalized state is terminal", nil)
	}

	r.state = StateAdding
	r.doc.AddPage()
	r.doc.SetFont(r.fontFamily, "", bodyFontSize)

	paragraphs := strings.Split(text, "\n\n")
	for i, para := range paragraphs {
		r.drawParagraph(para)
		r.stats.Paragraphs++

		if r.opts.InsertCats && (i+1)%r.opts.CatEvery == 0 {
			r.drawImage(ctx)
		}
	}

	r.state = StateFinalized
	r.stats.Pages = r.doc.PageCount()

	if err := r.doc.Output(w); err != nil {
		return nil, types.NewAppError(types.ErrRender, "failed to write document", err)
	}

	logger.Info("document rendered",
		logger.Int("paragraphs", r.stats.Paragraphs),
		logger.Int("images", r.stats.Images),
		logger.Int("placeholders", r.stats.Placeholders),
		logger.Int("pages", r.stats.Pages))

	stats := r.stats
	return &stats, nil
}

// RenderFile is Render writing to a file path.
func (r *Renderer) RenderFile(ctx context.Context, text, path string) (*Stats, error) {
	var buf bytes.Buffer
	stats, err := r.Render(ctx, text, &buf)
	if err != nil {
		return nil, err
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return nil, types.NewAppError(types.ErrRender, "failed to write output file", err)
	}
	return stats, nil
}

func (r *Renderer) drawParagraph(para string) {
	para = strings.ReplaceAll(para, "\t", " ")
	para = whitespaceRun.ReplaceAllString(para, " ")
	r.doc.MultiCell(0, lineHeightMM, para, "", "L", false)
	r.doc.Ln(2)
}

// drawImage fetches one image, scales it to the target width preserving
// aspect ratio, and centers it horizontally in the text flow.
func (r *Renderer) drawImage(ctx context.Context) {
	if r.images == nil {
		return
	}

	img := r.images.Fetch(ctx)
	if img == nil || len(img.JPEG) == 0 || img.Width <= 0 || img.Height <= 0 {
		return
	}

	r.imageCount++
	name := fmt.Sprintf("cat-%d", r.imageCount)
	opts := fpdf.ImageOptions{ImageType: "JPEG"}
	info := r.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.JPEG))
	if r.doc.Err() || info == nil {
		logger.Warn("failed to embed image", logger.Err(r.doc.Error()))
		return
	}

	w := targetImageWidthMM
	pageW, _ := r.doc.GetPageSize()
	x := (pageW - w) / 2

	// Height 0 keeps the aspect ratio; flow placement advances the cursor
	// and breaks the page if needed.
	r.doc.ImageOptions(name, x, 0, w, 0, true, opts, 0, "")
	r.doc.Ln(5)

	r.stats.Images++
	if img.Placeholder {
		r.stats.Placeholders++
	}
}

// ImageSlots returns the 1-based paragraph positions after which an image
// is inserted for the given paragraph count and interval: N, 2N, ... up to
// the paragraph count. Intervals below 1 are coerced to 1.
func ImageSlots(paragraphs, interval int) []int {
	if interval < 1 {
		interval = 1
	}
	var slots []int
	for p := interval; p <= paragraphs; p += interval {
		slots = append(slots, p)
	}
	return slots
}
