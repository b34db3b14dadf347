package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/text/unicode/norm"

	"funnypdf/internal/logger"
)

// Extractor pulls the plain-text layer out of a source PDF, one block per
// page. Pages without extractable text contribute an empty block; deciding
// whether the document as a whole is empty is left to the caller.
type Extractor struct{}

// NewExtractor creates a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Validate checks that the path points at a readable, well-formed PDF.
// Non-PDF input is reported before any extraction begins.
func (e *Extractor) Validate(pdfPath string) error {
	fileInfo, err := os.Stat(pdfPath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewPDFError(ErrPDFNotFound, "file does not exist", err)
		}
		return NewPDFError(ErrPDFInvalid, "cannot access file", err)
	}
	if fileInfo.IsDir() {
		return NewPDFError(ErrPDFInvalid, "path points to a directory, not a file", nil)
	}
	if !strings.EqualFold(filepath.Ext(pdfPath), ".pdf") {
		return NewPDFError(ErrPDFInvalid, "input is not a PDF file", nil)
	}

	if err := api.ValidateFile(pdfPath, nil); err != nil {
		logger.Warn("pdfcpu validation failed", logger.String("path", pdfPath), logger.Err(err))
		return NewPDFErrorWithDetails(ErrPDFInvalid, "not a valid PDF document", err.Error(), err)
	}
	return nil
}

// GetPDFInfo returns basic information about the document (page count, size,
// whether a text layer is present).
func (e *Extractor) GetPDFInfo(pdfPath string) (*PDFInfo, error) {
	if err := e.Validate(pdfPath); err != nil {
		return nil, err
	}

	fileInfo, err := os.Stat(pdfPath)
	if err != nil {
		return nil, NewPDFError(ErrPDFInvalid, "cannot access file", err)
	}

	ctx, err := api.ReadContextFile(pdfPath)
	if err != nil {
		return nil, NewPDFError(ErrPDFInvalid, "cannot read PDF structure", err)
	}

	isTextPDF, err := e.HasTextLayer(pdfPath)
	if err != nil {
		// If we can't determine text status, default to false but don't fail
		isTextPDF = false
	}

	return &PDFInfo{
		FilePath:  pdfPath,
		FileName:  filepath.Base(pdfPath),
		PageCount: ctx.PageCount,
		FileSize:  fileInfo.Size(),
		IsTextPDF: isTextPDF,
	}, nil
}

// HasTextLayer checks whether the PDF contains extractable text by sampling
// the first few pages. Scanned documents without a text layer return false.
func (e *Extractor) HasTextLayer(pdfPath string) (bool, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return false, NewPDFError(ErrPDFInvalid, "cannot open PDF file", err)
	}
	defer f.Close()

	maxPagesToCheck := 3
	if r.NumPage() < maxPagesToCheck {
		maxPagesToCheck = r.NumPage()
	}

	totalTextLength := 0
	for pageNum := 1; pageNum <= maxPagesToCheck; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		for _, c := range content {
			if !unicode.IsSpace(c) {
				totalTextLength++
			}
		}

		if totalTextLength > 50 {
			return true, nil
		}
	}

	return totalTextLength > 0, nil
}

// ExtractText extracts the plain text of every page and joins the page
// blocks with newlines. Pages yielding no text contribute an empty string
// rather than an error. The result is NFC-normalized.
func (e *Extractor) ExtractText(pdfPath string) (string, error) {
	if err := e.Validate(pdfPath); err != nil {
		return "", err
	}

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", NewPDFError(ErrPDFInvalid, "cannot open PDF file", err)
	}
	defer f.Close()

	totalPages := r.NumPage()
	logger.Info("extracting text", logger.String("path", filepath.Base(pdfPath)), logger.Int("pages", totalPages))

	chunks := make([]string, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			chunks = append(chunks, "")
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is not fatal; it contributes nothing.
			logger.Warn("page text extraction failed", logger.Int("page", pageNum), logger.Err(err))
			chunks = append(chunks, "")
			continue
		}
		chunks = append(chunks, content)
	}

	text := norm.NFC.String(strings.Join(chunks, "\n"))
	logger.Debug("extraction complete", logger.Int("chars", len(text)))
	return text, nil
}

// IsEmptyText reports whether extracted text contains no usable content.
func IsEmptyText(text string) bool {
	return strings.TrimSpace(text) == ""
}
