// Command extract normalizes a raw dictionary TSV export: headwords become
// clean lemma variants in Lemma_bereinigt, definitions lose editorial
// shorthand and grammar markers are mapped to a Wortart column.
//
// Flags:
//
//	--config  path to extract YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/KleeAn/automated-dictionary-linking/internal/app/extract"
)

func main() {
	configFlag := flag.String("config", "", "path to extract YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := extract.LoadConfig(*configFlag)
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	extractor := extract.NewExtractor(logger, *cfg)
	result, err := extractor.Run(context.Background())
	if err != nil {
		logger.Error("normalization failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("normalization completed",
		slog.Int("rows", result.Rows),
		slog.Int("pos_mapped", result.POSMapped),
		slog.Int("pos_unknown", result.POSUnknown),
	)
}
