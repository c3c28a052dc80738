// runclassify is a debug tool: classify a single text unit from the command
// line and print the verdict with the triggering heuristic.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pdfsift/pdfsift/internal/classify"
)

func main() {
	heuristics := flag.String("heuristics", "", "path to heuristics JSON config (optional)")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	if flag.NArg() == 0 {
		log.Error("usage: runclassify [-heuristics file.json] <text>")
		os.Exit(2)
	}
	text := strings.Join(flag.Args(), " ")

	cfg := classify.DefaultConfig()
	if *heuristics != "" {
		var err error
		cfg, err = classify.LoadFile(*heuristics)
		if err != nil {
			log.Fatalw("invalid heuristics configuration", "path", *heuristics, "error", err)
		}
	}

	classifier, err := classify.New(cfg)
	if err != nil {
		log.Fatalw("invalid heuristics configuration", "error", err)
	}

	verdict := classifier.Classify(text)
	log.Infow("classified",
		"accept", verdict.Accept,
		"reason", verdict.Reason,
		"chars", len(text),
	)
	if verdict.Accept {
		fmt.Printf("ACCEPT (%s)\n", verdict.Reason)
	} else {
		fmt.Printf("REJECT (%s)\n", verdict.Reason)
	}
}
