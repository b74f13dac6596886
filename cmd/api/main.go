// Command api serves a read-only HTTP view of the GnuCash ledger.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mkovacs/financ/internal/api"
	"github.com/mkovacs/financ/internal/infrastructure/config"
	"github.com/mkovacs/financ/internal/infrastructure/logging"
	"github.com/mkovacs/financ/internal/infrastructure/storage"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	dbPath := flag.String("db", "", "GnuCash SQLite file (overrides config)")
	flag.Parse()

	cfg := config.LoadOrEnv(*configPath)
	logger := logging.NewLogger(cfg.Observability.Logging)

	path := cfg.Ledger.DatabasePath
	if *dbPath != "" {
		path = *dbPath
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: no ledger database configured (use -db, financ.yaml or DATABASE_URL)")
		os.Exit(1)
	}

	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("starting api server",
		slog.Int("port", cfg.API.Port),
		slog.String("database", path))
	if err := api.NewServer(cfg.API, store, logger).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
