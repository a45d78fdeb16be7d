package main

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/edgar-cli/internal/edgar"
	"github.com/sells-group/edgar-cli/internal/fetcher"
	"github.com/sells-group/edgar-cli/internal/model"
	"github.com/sells-group/edgar-cli/internal/store"
	"github.com/sells-group/edgar-cli/internal/xbrl"
)

var (
	syncTickers   string
	syncStartYear int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download filings for tickers and extract financial facts",
	Long:  "Resolves each ticker to a CIK, lists its 10-K/10-Q XBRL filings, extracts facts from each filing's financial document, and upserts them into the store. Per-ticker and per-filing failures are logged and skipped; the batch always runs to completion.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncTickers == "" {
			return eris.New("sync: --tickers is required")
		}
		tickers := splitTickers(syncTickers)
		if len(tickers) == 0 {
			return eris.New("sync: no tickers given")
		}

		startYear := syncStartYear
		if startYear == 0 {
			startYear = cfg.Sync.StartYear
		}

		ctx := cmd.Context()

		aliases, err := loadAliases()
		if err != nil {
			return err
		}
		engine, err := xbrl.NewEngine(aliases)
		if err != nil {
			return err
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		f := newFetcher()

		cikMap, err := edgar.FetchCIKMap(ctx, f)
		if err != nil {
			return err
		}

		runID := uuid.New().String()
		runLog := zap.L().With(zap.String("run_id", runID))

		var totalFacts, totalFilings, totalSkipped int64
		for _, ticker := range tickers {
			log := runLog.With(zap.String("ticker", ticker))

			cik, ok := cikMap.Lookup(ticker)
			if !ok {
				log.Warn("unknown ticker, skipping")
				continue
			}
			if err := st.UpsertCompany(ctx, store.Company{CIK: cik, Ticker: ticker}); err != nil {
				log.Error("upsert company failed", zap.Error(err))
				continue
			}

			filings, err := edgar.ListFilings(ctx, f, cik)
			if err != nil {
				log.Error("list filings failed", zap.Error(err))
				continue
			}

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(cfg.Sync.MaxConcurrentFilings)

			for _, filing := range filings {
				if startYear > 0 && filing.Year() < startYear {
					continue
				}
				filing := filing
				g.Go(func() error {
					facts, outcome := processFiling(gctx, f, engine, filing)
					flog := log.With(
						zap.String("accession", filing.AccessionNumber),
						zap.String("form", string(filing.FormType)),
					)
					switch outcome.Status {
					case model.OutcomeSkipped:
						atomic.AddInt64(&totalSkipped, 1)
						flog.Info("filing skipped", zap.String("reason", outcome.Reason))
						return nil
					case model.OutcomePartial:
						flog.Warn("partial extraction", zap.Strings("warnings", outcome.Warnings))
					}

					n, err := st.SaveFacts(gctx, facts)
					if err != nil {
						flog.Error("save facts failed", zap.Error(err))
						return nil
					}
					atomic.AddInt64(&totalFacts, int64(n))
					atomic.AddInt64(&totalFilings, 1)
					flog.Info("filing extracted", zap.Int("facts", n))
					return nil
				})
			}

			// Workers swallow their own errors; Wait only propagates
			// context cancellation.
			if err := g.Wait(); err != nil {
				return err
			}
		}

		runLog.Info("sync complete",
			zap.Int64("filings", totalFilings),
			zap.Int64("facts", totalFacts),
			zap.Int64("skipped", totalSkipped),
		)
		return nil
	},
}

// processFiling runs the fetch-and-extract path for one filing,
// converting every failure into an outcome.
func processFiling(ctx context.Context, f fetcher.Fetcher, engine *xbrl.Engine, filing model.Filing) ([]model.CanonicalFact, model.Outcome) {
	url, strategy, err := edgar.ResolveDocument(ctx, f, filing)
	if err != nil {
		return nil, model.Outcome{Status: model.OutcomeSkipped, Reason: eris.ToString(err, false)}
	}

	body, err := f.DownloadBytes(ctx, url)
	if err != nil {
		return nil, model.Outcome{Status: model.OutcomeSkipped, Reason: eris.ToString(err, false)}
	}

	return engine.Extract(filing, xbrl.Document{URL: url, Body: body, Strategy: strategy})
}

func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	syncCmd.Flags().StringVar(&syncTickers, "tickers", "", "comma-separated ticker symbols (required)")
	syncCmd.Flags().IntVar(&syncStartYear, "start-year", 0, "skip filings reported before this year (default from config)")
	rootCmd.AddCommand(syncCmd)
}
