// Package pipeline orchestrates an extraction run: for each document, for
// each page in order, segment the text and classify every unit, collecting
// accepted units into the result table. Processing is strictly sequential by
// design; predictable progress reporting takes priority over throughput.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdfsift/pdfsift/constants"
	"github.com/pdfsift/pdfsift/internal/classify"
	"github.com/pdfsift/pdfsift/internal/segment"
)

// Runner coordinates segmentation and classification over a set of sources.
type Runner struct {
	seg    *segment.Segmenter
	cls    *classify.Classifier
	obs    Observer
	logger *slog.Logger
}

// NewRunner wires a runner. A nil observer disables progress reporting.
func NewRunner(seg *segment.Segmenter, cls *classify.Classifier, obs Observer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if obs == nil {
		obs = ObserverFunc(func(Event) {})
	}
	return &Runner{seg: seg, cls: cls, obs: obs, logger: logger}
}

// Run processes every source exactly once and returns the ordered result
// table and the run summary. Row order is document order, then page order,
// then unit order within page. Cancellation is cooperative: the context is
// checked between documents, and a cancelled run returns the partial table
// built so far; accepted rows are never rolled back.
func (r *Runner) Run(ctx context.Context, docs []Source) ([]ResultRow, Summary) {
	start := time.Now()
	sum := Summary{
		RunID:          uuid.NewString(),
		State:          constants.RunStatePending,
		Mode:           r.seg.Mode(),
		DocumentsTotal: len(docs),
	}
	var rows []ResultRow

	r.logger.Info("pipeline.run.start",
		"run_id", sum.RunID,
		"mode", string(sum.Mode),
		"documents", len(docs),
	)

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			sum.Cancelled = true
		default:
		}
		if sum.Cancelled {
			r.logger.Warn("pipeline.run.cancelled",
				"run_id", sum.RunID,
				"documents_done", sum.DocumentsAttempted,
			)
			break
		}

		sum.State = constants.RunStateProcessing
		res, docRows := r.processDocument(ctx, doc)
		sum.DocumentsAttempted++
		if res.Skipped {
			sum.DocumentsSkipped++
		} else {
			sum.DocumentsProcessed++
			rows = append(rows, docRows...)
		}
		sum.UnitsAccepted += res.UnitsAccepted
		sum.UnitsRejected += res.UnitsRejected
		sum.Documents = append(sum.Documents, res)

		r.obs.DocumentDone(Event{
			DocumentsDone:   sum.DocumentsAttempted,
			DocumentsTotal:  sum.DocumentsTotal,
			CurrentDocument: doc.Name(),
		})
	}

	sum.State = constants.RunStateDone
	sum.Elapsed = time.Since(start)
	r.logger.Info("pipeline.run.done",
		"run_id", sum.RunID,
		"documents_attempted", sum.DocumentsAttempted,
		"documents_skipped", sum.DocumentsSkipped,
		"units_accepted", sum.UnitsAccepted,
		"units_rejected", sum.UnitsRejected,
		"cancelled", sum.Cancelled,
		"elapsed_ms", sum.Elapsed.Milliseconds(),
	)
	return rows, sum
}

// processDocument runs segment then classify over every page of one
// document. Accepted rows are returned alongside the result so a skipped
// document never contributes rows.
func (r *Runner) processDocument(ctx context.Context, doc Source) (DocumentResult, []ResultRow) {
	res := DocumentResult{Name: doc.Name()}
	var rows []ResultRow

	pages, err := doc.Pages(ctx)
	if err != nil {
		res.Skipped = true
		res.SkipReason = err.Error()
		r.logger.Warn("pipeline.document.skipped", "document", res.Name, "reason", res.SkipReason)
		return res, nil
	}

	for _, page := range pages {
		res.PagesTotal++
		if page.Err != "" {
			res.PagesFailed++
			r.logger.Warn("pipeline.page.failed",
				"document", res.Name,
				"page", page.Number,
				"reason", page.Err,
			)
			continue
		}
		for unit := range r.seg.Units(page.Text) {
			v := r.cls.Classify(unit.Text)
			if v.Accept {
				res.UnitsAccepted++
				rows = append(rows, ResultRow{Document: res.Name, Page: page.Number, Text: unit.Text})
			} else {
				res.UnitsRejected++
			}
		}
	}

	if res.PagesTotal > 0 && res.PagesFailed == res.PagesTotal {
		res.Note = fmt.Sprintf("all %d pages failed extraction", res.PagesTotal)
	} else if res.PagesFailed > 0 {
		res.Note = fmt.Sprintf("%d of %d pages failed extraction", res.PagesFailed, res.PagesTotal)
	}

	r.logger.Info("pipeline.document.ok",
		"document", res.Name,
		"pages", res.PagesTotal,
		"pages_failed", res.PagesFailed,
		"units_accepted", res.UnitsAccepted,
		"units_rejected", res.UnitsRejected,
	)
	return res, rows
}
