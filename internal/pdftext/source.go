package pdftext

import (
	"context"

	"github.com/pdfsift/pdfsift/internal/pipeline"
)

// FileSource adapts one PDF file to the pipeline's Source boundary.
type FileSource struct {
	// DisplayName is the name attributed to result rows; it may differ
	// from the file's base name after duplicate-name disambiguation.
	DisplayName string
	Path        string
	Extractor   *Extractor
}

// Name implements pipeline.Source.
func (s *FileSource) Name() string {
	return s.DisplayName
}

// Pages implements pipeline.Source.
func (s *FileSource) Pages(_ context.Context) ([]pipeline.Page, error) {
	pages, err := s.Extractor.ExtractPages(s.Path)
	if err != nil {
		return nil, err
	}
	out := make([]pipeline.Page, len(pages))
	for i, p := range pages {
		out[i] = pipeline.Page{Number: p.Number, Text: p.Text, Err: p.Err}
	}
	return out, nil
}
