package pipeline

import (
	"context"
	"time"

	"github.com/pdfsift/pdfsift/constants"
	"github.com/pdfsift/pdfsift/internal/segment"
)

// Page is one page of extracted text. A non-empty Err means extraction
// failed for this page; the page then yields zero units and the run
// continues.
type Page struct {
	Number int // 1-based
	Text   string
	Err    string
}

// Source supplies a document's pages. The pipeline never reads files or
// bytes itself; PDF parsing sits behind this boundary.
type Source interface {
	// Name is the display name attributed to result rows.
	Name() string
	// Pages returns the document's pages in order. A non-nil error means
	// the whole document is unreadable and will be skipped.
	Pages(ctx context.Context) ([]Page, error)
}

// ResultRow is one accepted text unit in the exportable table.
type ResultRow struct {
	Document string
	Page     int
	Text     string
}

// Event is emitted to the progress observer after each document completes,
// whether processed or skipped.
type Event struct {
	DocumentsDone   int
	DocumentsTotal  int
	CurrentDocument string
}

// Observer receives progress events. Implementations must not block.
type Observer interface {
	DocumentDone(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) DocumentDone(ev Event) { f(ev) }

// DocumentResult is the per-document outcome collected into the summary.
// A document is either processed (possibly with zero units) or skipped with
// a reason; failures are recorded here rather than raised.
type DocumentResult struct {
	Name          string
	Skipped       bool
	SkipReason    string
	PagesTotal    int
	PagesFailed   int
	UnitsAccepted int
	UnitsRejected int
	Note          string
}

// Summary is the aggregate outcome of one run. It always reconciles:
// DocumentsAttempted == DocumentsProcessed + DocumentsSkipped.
type Summary struct {
	RunID              string
	State              constants.RunState
	Mode               segment.Mode
	DocumentsTotal     int
	DocumentsAttempted int
	DocumentsProcessed int
	DocumentsSkipped   int
	UnitsAccepted      int
	UnitsRejected      int
	Cancelled          bool
	Elapsed            time.Duration
	Documents          []DocumentResult
}
