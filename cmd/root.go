package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/edgar-cli/internal/config"
	"github.com/sells-group/edgar-cli/internal/fetcher"
	"github.com/sells-group/edgar-cli/internal/store"
	"github.com/sells-group/edgar-cli/internal/xbrl"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "edgar-cli",
	Short: "SEC XBRL extraction and normalization pipeline",
	Long:  "Downloads 10-K/10-Q filings from SEC EDGAR, extracts tagged financial facts from standalone and inline XBRL, and persists normalized values to SQLite or Postgres.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newFetcher builds the shared EDGAR HTTP fetcher from config.
func newFetcher() *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.Edgar.UserAgent,
		Timeout:    time.Duration(cfg.Edgar.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Edgar.MaxRetries,
	})
}

// openStore opens and migrates the configured store.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// loadAliases returns the configured alias table, falling back to the
// built-in metric set.
func loadAliases() (*xbrl.AliasTable, error) {
	if cfg.Edgar.AliasFile == "" {
		return xbrl.DefaultAliasTable(), nil
	}
	return xbrl.LoadAliasTable(cfg.Edgar.AliasFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
