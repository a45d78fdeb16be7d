package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/edgar-cli/internal/edgar"
	"github.com/sells-group/edgar-cli/internal/model"
	"github.com/sells-group/edgar-cli/internal/store"
)

var (
	factsTicker   string
	factsMetric   string
	factsForm     string
	factsFromYear int
	factsLimit    int
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Query stored facts for a ticker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if factsTicker == "" {
			return eris.New("facts: --ticker is required")
		}

		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		// Resolve the ticker against stored companies first; the SEC
		// map is only needed for tickers never synced.
		cik := ""
		companies, err := st.ListCompanies(ctx)
		if err != nil {
			return err
		}
		for _, c := range companies {
			if c.Ticker == factsTicker {
				cik = c.CIK
				break
			}
		}
		if cik == "" {
			cikMap, err := edgar.FetchCIKMap(ctx, newFetcher())
			if err != nil {
				return err
			}
			var ok bool
			if cik, ok = cikMap.Lookup(factsTicker); !ok {
				return eris.Errorf("facts: unknown ticker %q", factsTicker)
			}
		}

		facts, err := st.ListFacts(ctx, store.FactFilter{
			CIK:      cik,
			Metric:   factsMetric,
			FormType: model.FormType(factsForm),
			FromYear: factsFromYear,
			Limit:    factsLimit,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(facts)
	},
}

func init() {
	factsCmd.Flags().StringVar(&factsTicker, "ticker", "", "ticker symbol (required)")
	factsCmd.Flags().StringVar(&factsMetric, "metric", "", "filter by canonical metric")
	factsCmd.Flags().StringVar(&factsForm, "form", "", "filter by form type (10-K or 10-Q)")
	factsCmd.Flags().IntVar(&factsFromYear, "from-year", 0, "only fiscal years at or after this year")
	factsCmd.Flags().IntVar(&factsLimit, "limit", 0, "maximum rows (default 1000)")
	rootCmd.AddCommand(factsCmd)
}
