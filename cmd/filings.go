package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/edgar-cli/internal/edgar"
)

var filingsTicker string

var filingsCmd = &cobra.Command{
	Use:   "filings",
	Short: "List a company's 10-K/10-Q XBRL filings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if filingsTicker == "" {
			return eris.New("filings: --ticker is required")
		}

		ctx := cmd.Context()
		f := newFetcher()

		cikMap, err := edgar.FetchCIKMap(ctx, f)
		if err != nil {
			return err
		}
		cik, ok := cikMap.Lookup(filingsTicker)
		if !ok {
			return eris.Errorf("filings: unknown ticker %q", filingsTicker)
		}

		filings, err := edgar.ListFilings(ctx, f, cik)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(filings)
	},
}

func init() {
	filingsCmd.Flags().StringVar(&filingsTicker, "ticker", "", "ticker symbol (required)")
	rootCmd.AddCommand(filingsCmd)
}
