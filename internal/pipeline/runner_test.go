package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdfsift/pdfsift/internal/classify"
	"github.com/pdfsift/pdfsift/internal/segment"
)

type fakeSource struct {
	name  string
	pages []Page
	err   error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Pages(context.Context) ([]Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func newRunner(t *testing.T, mode segment.Mode, obs Observer) *Runner {
	t.Helper()
	seg, err := segment.New(segment.Config{Mode: mode})
	if err != nil {
		t.Fatalf("segment.New: %v", err)
	}
	cls, err := classify.New(classify.DefaultConfig())
	if err != nil {
		t.Fatalf("classify.New: %v", err)
	}
	return NewRunner(seg, cls, obs, nil)
}

func TestRun_CollectsAcceptedUnitsInOrder(t *testing.T) {
	r := newRunner(t, segment.ModeSentence, nil)
	docs := []Source{
		&fakeSource{name: "a.pdf", pages: []Page{
			{Number: 1, Text: "First sentence here. Second sentence follows."},
			{Number: 2, Text: "Third sentence closes."},
		}},
		&fakeSource{name: "b.pdf", pages: []Page{
			{Number: 1, Text: "Another document entirely."},
		}},
	}

	rows, sum := r.Run(context.Background(), docs)

	want := []ResultRow{
		{Document: "a.pdf", Page: 1, Text: "First sentence here."},
		{Document: "a.pdf", Page: 1, Text: "Second sentence follows."},
		{Document: "a.pdf", Page: 2, Text: "Third sentence closes."},
		{Document: "b.pdf", Page: 1, Text: "Another document entirely."},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}

	if sum.DocumentsProcessed != 2 || sum.DocumentsSkipped != 0 {
		t.Errorf("processed/skipped = %d/%d, want 2/0", sum.DocumentsProcessed, sum.DocumentsSkipped)
	}
	if sum.UnitsAccepted != 4 {
		t.Errorf("units accepted = %d, want 4", sum.UnitsAccepted)
	}

	// Page numbering within each document's rows never decreases.
	lastPage := 0
	for _, row := range rows {
		if row.Document != "a.pdf" {
			break
		}
		if row.Page < lastPage {
			t.Errorf("page order regressed: %d after %d", row.Page, lastPage)
		}
		lastPage = row.Page
	}
}

func TestRun_RejectedUnitsExcluded(t *testing.T) {
	r := newRunner(t, segment.ModeSentence, nil)
	docs := []Source{
		&fakeSource{name: "mixed.pdf", pages: []Page{
			{Number: 1, Text: "This line reads fine. a b c d e f g."},
		}},
	}
	rows, sum := r.Run(context.Background(), docs)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if sum.UnitsRejected != 1 {
		t.Errorf("units rejected = %d, want 1", sum.UnitsRejected)
	}
	if strings.Contains(rows[0].Text, "a b c") {
		t.Errorf("rejected unit leaked into table: %q", rows[0].Text)
	}
}

func TestRun_EmptyPageYieldsNoUnits(t *testing.T) {
	r := newRunner(t, segment.ModeSentence, nil)
	docs := []Source{
		&fakeSource{name: "blank.pdf", pages: []Page{{Number: 1, Text: ""}}},
	}
	rows, sum := r.Run(context.Background(), docs)
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
	if sum.UnitsAccepted != 0 || sum.UnitsRejected != 0 {
		t.Errorf("units = %d/%d, want 0/0", sum.UnitsAccepted, sum.UnitsRejected)
	}
	if sum.DocumentsProcessed != 1 {
		t.Errorf("document with empty page should count as processed")
	}
}

func TestRun_AllPagesFailedStillProcessed(t *testing.T) {
	r := newRunner(t, segment.ModeSentence, nil)
	docs := []Source{
		&fakeSource{name: "scan.pdf", pages: []Page{
			{Number: 1, Err: "content stream damaged"},
			{Number: 2, Err: "content stream damaged"},
		}},
	}
	rows, sum := r.Run(context.Background(), docs)
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
	if sum.DocumentsProcessed != 1 || sum.DocumentsSkipped != 0 {
		t.Errorf("processed/skipped = %d/%d, want 1/0", sum.DocumentsProcessed, sum.DocumentsSkipped)
	}
	doc := sum.Documents[0]
	if doc.PagesFailed != 2 || doc.Note == "" {
		t.Errorf("doc result = %+v, want 2 failed pages and a note", doc)
	}
}

func TestRun_UnreadableDocumentSkipped(t *testing.T) {
	r := newRunner(t, segment.ModeSentence, nil)
	docs := []Source{
		&fakeSource{name: "broken.pdf", err: errors.New("not a pdf")},
		&fakeSource{name: "good.pdf", pages: []Page{
			{Number: 1, Text: "Readable content survives."},
		}},
	}
	rows, sum := r.Run(context.Background(), docs)

	if sum.DocumentsTotal != 2 || sum.DocumentsSkipped != 1 {
		t.Errorf("total/skipped = %d/%d, want 2/1", sum.DocumentsTotal, sum.DocumentsSkipped)
	}
	if sum.DocumentsAttempted != sum.DocumentsProcessed+sum.DocumentsSkipped {
		t.Errorf("summary does not reconcile: attempted %d, processed %d, skipped %d",
			sum.DocumentsAttempted, sum.DocumentsProcessed, sum.DocumentsSkipped)
	}
	if len(rows) != 1 || rows[0].Document != "good.pdf" {
		t.Errorf("rows = %+v, want only good.pdf rows", rows)
	}
	if sum.Documents[0].SkipReason == "" {
		t.Error("skipped document has no recorded reason")
	}
}

func TestRun_ProgressEvents(t *testing.T) {
	var events []Event
	obs := ObserverFunc(func(ev Event) { events = append(events, ev) })
	r := newRunner(t, segment.ModeSentence, obs)

	docs := []Source{
		&fakeSource{name: "a.pdf", pages: []Page{{Number: 1, Text: "One line."}}},
		&fakeSource{name: "b.pdf", err: errors.New("unreadable")},
	}
	r.Run(context.Background(), docs)

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 (one per document, including skips)", len(events))
	}
	for i, ev := range events {
		if ev.DocumentsDone != i+1 || ev.DocumentsTotal != 2 {
			t.Errorf("event %d = %+v", i, ev)
		}
	}
	if events[0].CurrentDocument != "a.pdf" || events[1].CurrentDocument != "b.pdf" {
		t.Errorf("event document names = %q, %q", events[0].CurrentDocument, events[1].CurrentDocument)
	}
}

func TestRun_CancellationBetweenDocuments(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	obs := ObserverFunc(func(Event) { cancel() })
	r := newRunner(t, segment.ModeSentence, obs)

	docs := []Source{
		&fakeSource{name: "a.pdf", pages: []Page{{Number: 1, Text: "Kept row here."}}},
		&fakeSource{name: "b.pdf", pages: []Page{{Number: 1, Text: "Never reached."}}},
	}
	rows, sum := r.Run(ctx, docs)

	if !sum.Cancelled {
		t.Error("summary not marked cancelled")
	}
	if sum.DocumentsAttempted != 1 {
		t.Errorf("attempted = %d, want 1", sum.DocumentsAttempted)
	}
	// Rows accepted before cancellation are never rolled back.
	if len(rows) != 1 || rows[0].Document != "a.pdf" {
		t.Errorf("rows = %+v, want the first document's row", rows)
	}
}

func TestRun_EmptyDocumentSet(t *testing.T) {
	r := newRunner(t, segment.ModeSentence, nil)
	rows, sum := r.Run(context.Background(), nil)
	if len(rows) != 0 || sum.DocumentsAttempted != 0 {
		t.Errorf("rows/attempted = %d/%d, want 0/0", len(rows), sum.DocumentsAttempted)
	}
	if sum.RunID == "" {
		t.Error("summary missing run id")
	}
}
