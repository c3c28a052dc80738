// Package pdftext extracts per-page text from PDF files using pdfcpu. It is
// the input-boundary collaborator for the pipeline: a document becomes an
// ordered sequence of (page number, raw text) pairs. Extraction is pure Go
// with no external binaries.
package pdftext

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdfsift/pdfsift/constants"
	"github.com/pdfsift/pdfsift/internal/common"
)

// Config configures the extractor.
type Config struct {
	// MaxFileSize is the largest file the extractor will open, in bytes
	// (default 50 MB). Oversized files are reported as unreadable so the
	// pipeline records a skip instead of aborting.
	MaxFileSize int64

	// Logger for debug messages.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = constants.MaxFileSizeMBDefault * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Page is one page of extracted text. Err is set when this page's content
// stream could not be extracted; the page then carries no text.
type Page struct {
	Number int // 1-based
	Text   string
	Err    string
}

// Extractor reads PDFs page by page.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

// NewExtractor creates an Extractor with the given configuration.
func NewExtractor(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{cfg: cfg, logger: cfg.Logger}
}

// ExtractPages returns every page of the PDF in order. A returned error
// means the whole document is unreadable (missing, oversized, or not a
// parseable PDF); per-page extraction failures are recorded on the page
// itself and never fail the document.
func (e *Extractor) ExtractPages(path string) ([]Page, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, common.NewAppError("DOCUMENT_UNREADABLE", fmt.Sprintf("stat %s", path), common.ErrUnreadable)
	}
	if info.Size() > e.cfg.MaxFileSize {
		return nil, common.NewAppError("DOCUMENT_UNREADABLE",
			fmt.Sprintf("file too large: %d bytes (max %d)", info.Size(), e.cfg.MaxFileSize), common.ErrUnreadable)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewAppError("DOCUMENT_UNREADABLE", fmt.Sprintf("open %s: %v", path, err), common.ErrUnreadable)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("pdftext.close.failed", "path", path, "error", cerr)
		}
	}()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, common.NewAppError("DOCUMENT_UNREADABLE", fmt.Sprintf("pdfcpu read %s: %v", path, err), common.ErrUnreadable)
	}

	e.logger.Debug("pdftext.extract", "path", path, "pages", pdfCtx.PageCount)

	pages := make([]Page, 0, pdfCtx.PageCount)
	for nr := 1; nr <= pdfCtx.PageCount; nr++ {
		text, err := extractPageText(pdfCtx, nr)
		if err != nil {
			pages = append(pages, Page{Number: nr, Err: err.Error()})
			continue
		}
		pages = append(pages, Page{Number: nr, Text: text})
	}
	return pages, nil
}
