// Command vocab2ttl converts the concept vocabulary TSV into an OntoLex/SKOS
// Turtle document, appending one lexical entry and sense per vocabulary row
// to the prefix and concept preamble.
//
// Flags:
//
//	--config  path to vocabttl YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/KleeAn/automated-dictionary-linking/internal/app/vocabttl"
)

func main() {
	configFlag := flag.String("config", "", "path to vocabttl YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := vocabttl.LoadConfig(*configFlag)
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	converter := vocabttl.NewConverter(logger, *cfg)
	entries, err := converter.Run(context.Background())
	if err != nil {
		logger.Error("conversion failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("conversion completed", slog.Int("entries", entries))
}
