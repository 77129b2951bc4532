// Command llm-map asks a chat model to assign one root concept per
// dictionary entry and writes the answers next to the gold annotation.
// The Anthropic API key is taken from ANTHROPIC_API_KEY.
//
// Flags:
//
//	--config  path to llmmap YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/KleeAn/automated-dictionary-linking/internal/app/llmmap"
	"github.com/KleeAn/automated-dictionary-linking/internal/vocab"
)

func main() {
	configFlag := flag.String("config", "", "path to llmmap YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := llmmap.LoadConfig(*configFlag)
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	voc, err := vocab.LoadFile(cfg.VocabPath)
	if err != nil {
		logger.Error("load vocabulary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	prompt, err := os.ReadFile(cfg.PromptPath)
	if err != nil {
		logger.Error("load prompt template", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	chat := llmmap.NewAnthropicClient(anthropic.NewClient(), cfg.Model)

	mapper := llmmap.NewMapper(logger, *cfg, voc, chat, string(prompt))
	result, err := mapper.Run(ctx)
	if err != nil {
		logger.Error("mapping failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("mapping completed",
		slog.Int("mapped", result.Mapped),
		slog.Int("invalid", result.Invalid),
		slog.Int("skipped", result.Skipped),
		slog.Int("resumed", result.Resumed),
	)
}
