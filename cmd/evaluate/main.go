// Command evaluate compares mapped concepts against the gold annotation of a
// final mapping TSV and writes the annotated accuracy table plus a text
// report with per-concept precision, recall and F1.
//
// Flags:
//
//	--config  path to evaluate YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/KleeAn/automated-dictionary-linking/internal/app/evaluate"
)

func main() {
	configFlag := flag.String("config", "", "path to evaluate YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := evaluate.LoadConfig(*configFlag)
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	evaluator := evaluate.NewEvaluator(logger, *cfg)
	summary, err := evaluator.Run()
	if err != nil {
		logger.Error("evaluation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("evaluation completed",
		slog.Int("rows", summary.Rows),
		slog.Int("exact", summary.Exact),
		slog.Int("relevant", summary.Relevant),
	)
}
