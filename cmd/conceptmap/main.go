// Command conceptmap runs the staged concept mapping pipeline over one
// dictionary TSV: definitions are split into fragments, then lemma, short
// definition, long definition and sentence root matching assign concept keys
// from the vocabulary. The final table is written next to the input name.
//
// Flags:
//
//	--config  path to conceptmap YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/KleeAn/automated-dictionary-linking/internal/adapter/provider/udpipe"
	"github.com/KleeAn/automated-dictionary-linking/internal/app/conceptmap"
	"github.com/KleeAn/automated-dictionary-linking/internal/vocab"
)

func main() {
	configFlag := flag.String("config", "", "path to conceptmap YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := conceptmap.LoadConfig(*configFlag)
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	voc, err := vocab.LoadFile(cfg.VocabPath)
	if err != nil {
		logger.Error("load vocabulary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("vocabulary loaded",
		slog.String("path", cfg.VocabPath),
		slog.Int("concepts", voc.Len()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	parser := udpipe.NewParserWithURL(cfg.ParserURL, cfg.ParserModel, logger)

	pipeline := conceptmap.NewPipeline(logger, *cfg, voc, parser)
	if err := pipeline.Run(ctx); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
