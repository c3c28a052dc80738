package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pdfsift/pdfsift/internal/pipeline"
)

const (
	// SheetRows holds the accepted units; SheetSummary the run totals.
	SheetRows    = "Extracted"
	SheetSummary = "Summary"

	maxColWidth = 80
)

// Service renders a result table and run summary to XLSX bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildXLSX returns a workbook with the result rows (fixed column order:
// document name, page, text) and a summary sheet that reconciles the run.
func (s *Service) BuildXLSX(rows []pipeline.ResultRow, sum pipeline.Summary) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetRows); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Document Name", "Page", "Text"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetRows, cell, h)
		widths[i] = len(h)
	}

	for i, row := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, i+2)
			_ = f.SetCellValue(SheetRows, cell, v)
		}
		write(1, row.Document)
		write(2, row.Page)
		write(3, row.Text)

		if n := len(row.Document); n > widths[0] {
			widths[0] = n
		}
		if n := len(row.Text); n > widths[2] {
			widths[2] = n
		}
	}

	for i, w := range widths {
		if w > maxColWidth {
			w = maxColWidth
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetRows, col, col, float64(w+2))
	}

	if err := s.writeSummary(f, sum); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"run_id", sum.RunID,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeSummary(f *excelize.File, sum pipeline.Summary) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	totalUnits := sum.UnitsAccepted + sum.UnitsRejected
	pct := "0%"
	if totalUnits > 0 {
		pct = fmt.Sprintf("%.1f%%", float64(sum.UnitsAccepted)/float64(totalUnits)*100)
	}

	metrics := []struct {
		name  string
		value any
	}{
		{"Run ID", sum.RunID},
		{"Mode", string(sum.Mode)},
		{"Documents Total", sum.DocumentsTotal},
		{"Documents Attempted", sum.DocumentsAttempted},
		{"Documents Processed", sum.DocumentsProcessed},
		{"Documents Skipped", sum.DocumentsSkipped},
		{"Units Accepted", sum.UnitsAccepted},
		{"Units Rejected", sum.UnitsRejected},
		{"Accept Percentage", pct},
		{"Cancelled", sum.Cancelled},
	}

	row := 1
	write := func(col, r int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, r)
		_ = f.SetCellValue(SheetSummary, cell, v)
	}
	write(1, row, "Metric")
	write(2, row, "Value")
	row++
	for _, m := range metrics {
		write(1, row, m.name)
		write(2, row, m.value)
		row++
	}

	// Skip reasons and per-document notes, one line each.
	for _, d := range sum.Documents {
		if d.Skipped {
			write(1, row, fmt.Sprintf("Skipped: %s", d.Name))
			write(2, row, d.SkipReason)
			row++
		} else if d.Note != "" {
			write(1, row, fmt.Sprintf("Note: %s", d.Name))
			write(2, row, d.Note)
			row++
		}
	}

	_ = f.SetColWidth(SheetSummary, "A", "A", 32)
	_ = f.SetColWidth(SheetSummary, "B", "B", 48)
	return nil
}
