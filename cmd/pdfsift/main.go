package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pdfsift/pdfsift/internal/classify"
	"github.com/pdfsift/pdfsift/internal/common"
	"github.com/pdfsift/pdfsift/internal/export"
	"github.com/pdfsift/pdfsift/internal/ingest"
	"github.com/pdfsift/pdfsift/internal/pdftext"
	"github.com/pdfsift/pdfsift/internal/pipeline"
	"github.com/pdfsift/pdfsift/internal/segment"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir        = flag.String("dir", "", "directory to scan for PDF files (or pass file paths as arguments)")
		out        = flag.String("out", "", "output XLSX file path (optional, defaults next to the input)")
		mode       = flag.String("mode", "", "segmentation mode: sentence or activity (default from PDFSIFT_MODE)")
		heuristics = flag.String("heuristics", "", "path to heuristics JSON config (optional)")
		maxMB      = flag.Int("max-mb", 0, "per-file size limit in MB (default from PDFSIFT_MAX_FILE_MB)")
	)
	flag.Parse()

	if *dir == "" && flag.NArg() == 0 {
		printError("Error: --dir or at least one PDF path is required\n")
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load configuration, with flags taking precedence over environment.
	cfg := common.LoadConfig()
	if *mode != "" {
		cfg.Segment.Mode = *mode
	}
	if *maxMB > 0 {
		cfg.Extract.MaxFileSizeMB = *maxMB
	}
	if *heuristics != "" {
		cfg.Output.HeuristicsPath = *heuristics
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if cfg.Output.Path == "" {
		if *dir != "" {
			cfg.Output.Path = filepath.Join(filepath.Dir(*dir), "extracted.xlsx")
		} else {
			cfg.Output.Path = "extracted.xlsx"
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Heuristic thresholds: defaults, or a validated JSON file.
	hcfg := classify.DefaultConfig()
	if cfg.Output.HeuristicsPath != "" {
		var err error
		hcfg, err = classify.LoadFile(cfg.Output.HeuristicsPath)
		if err != nil {
			logger.Error("invalid heuristics configuration", "path", cfg.Output.HeuristicsPath, "error", err)
			os.Exit(1)
		}
	}
	classifier, err := classify.New(hcfg)
	if err != nil {
		logger.Error("invalid heuristics configuration", "error", err)
		os.Exit(1)
	}

	segMode, err := segment.ParseMode(cfg.Segment.Mode)
	if err != nil {
		logger.Error("invalid mode", "error", err)
		os.Exit(1)
	}
	segmenter, err := segment.New(segment.Config{Mode: segMode})
	if err != nil {
		logger.Error("invalid segmenter configuration", "error", err)
		os.Exit(1)
	}

	// Discover input files
	discoverer := ingest.NewDiscoverer(cfg.Extract.SkipHidden, logger)
	var files []ingest.FileInfo
	if *dir != "" {
		files, _, err = discoverer.DiscoverDirectory(*dir)
	} else {
		files, _, err = discoverer.DiscoverPaths(flag.Args())
	}
	if err != nil {
		logger.Error("failed to discover input files", "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		printError("Error: no PDF files found\n")
		os.Exit(1)
	}

	// Build sources over the PDF extractor
	extractor := pdftext.NewExtractor(pdftext.Config{
		MaxFileSize: int64(cfg.Extract.MaxFileSizeMB) * 1024 * 1024,
		Logger:      logger,
	})
	sources := make([]pipeline.Source, 0, len(files))
	for _, fi := range files {
		sources = append(sources, &pdftext.FileSource{
			DisplayName: fi.DisplayName,
			Path:        fi.Path,
			Extractor:   extractor,
		})
	}

	// Progress: log after each document completes.
	observer := pipeline.ObserverFunc(func(ev pipeline.Event) {
		logger.Info("progress",
			"documents_done", ev.DocumentsDone,
			"documents_total", ev.DocumentsTotal,
			"current_document", ev.CurrentDocument,
		)
	})

	runner := pipeline.NewRunner(segmenter, classifier, observer, logger)
	rows, summary := runner.Run(ctx, sources)

	// Export to XLSX
	exportService := export.NewService(logger)
	xlsxBytes, err := exportService.BuildXLSX(rows, summary)
	if err != nil {
		logger.Error("failed to build workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(cfg.Output.Path, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Extraction complete!\n")
	fmt.Printf("- Documents attempted: %d\n", summary.DocumentsAttempted)
	fmt.Printf("- Documents skipped: %d\n", summary.DocumentsSkipped)
	fmt.Printf("- Units accepted: %d\n", summary.UnitsAccepted)
	fmt.Printf("- Units rejected: %d\n", summary.UnitsRejected)
	fmt.Printf("- Output: %s\n", cfg.Output.Path)
	if summary.Cancelled {
		fmt.Printf("- Run cancelled before completion; results are partial\n")
	}
}
