// Command store loads a final mapping TSV into Postgres. It applies pending
// migrations first, then bulk-inserts one row per dictionary entry; entries
// already stored for the same source file are skipped.
//
// Database settings come from the app config (CONFIG_PATH / ./config.yaml),
// load settings from the store config.
//
// Flags:
//
//	--store-config  path to store YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/KleeAn/automated-dictionary-linking/internal/adapter/postgres"
	"github.com/KleeAn/automated-dictionary-linking/internal/adapter/postgres/mapping"
	"github.com/KleeAn/automated-dictionary-linking/internal/app"
	"github.com/KleeAn/automated-dictionary-linking/internal/app/store"
	"github.com/KleeAn/automated-dictionary-linking/internal/config"
	"github.com/KleeAn/automated-dictionary-linking/migrations"
)

// Compile-time interface assertions.
var (
	_ store.MappingRepo = (*mapping.Repo)(nil)
	_ store.TxManager   = (*postgres.TxManager)(nil)
)

func main() {
	storeConfigFlag := flag.String("store-config", "", "path to store YAML config file")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)
	logger.Info("store starting", slog.String("version", app.BuildVersion()))

	storeCfg, err := store.LoadConfig(*storeConfigFlag)
	if err != nil {
		logger.Error("load store config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := migrate(ctx, appCfg.Database.DSN); err != nil {
		logger.Error("apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	loader := store.NewLoader(logger, *storeCfg, mapping.New(pool), postgres.NewTxManager(pool))
	result, err := loader.Run(ctx)
	if err != nil {
		logger.Error("load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("load completed",
		slog.Int("rows", result.Rows),
		slog.Int("inserted", result.Inserted),
	)
}

// migrate applies pending goose migrations. Goose requires *sql.DB, so a
// short-lived database/sql connection is used next to the pgx pool.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	_, err = provider.Up(ctx)
	return err
}
