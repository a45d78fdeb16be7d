package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/edgar-cli/internal/edgar"
	"github.com/sells-group/edgar-cli/internal/model"
	"github.com/sells-group/edgar-cli/internal/xbrl"
)

var (
	extractTicker    string
	extractAccession string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract facts from a single filing and print them",
	Long:  "Resolves one filing by accession number, runs the extraction engine over its financial document, and prints the normalized facts and the per-filing outcome as JSON. Nothing is persisted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if extractTicker == "" || extractAccession == "" {
			return eris.New("extract: --ticker and --accession are required")
		}

		ctx := cmd.Context()
		f := newFetcher()

		aliases, err := loadAliases()
		if err != nil {
			return err
		}
		engine, err := xbrl.NewEngine(aliases)
		if err != nil {
			return err
		}

		cikMap, err := edgar.FetchCIKMap(ctx, f)
		if err != nil {
			return err
		}
		cik, ok := cikMap.Lookup(extractTicker)
		if !ok {
			return eris.Errorf("extract: unknown ticker %q", extractTicker)
		}

		filings, err := edgar.ListFilings(ctx, f, cik)
		if err != nil {
			return err
		}

		var filing *model.Filing
		for i := range filings {
			if filings[i].AccessionNumber == extractAccession {
				filing = &filings[i]
				break
			}
		}
		if filing == nil {
			return eris.Errorf("extract: accession %s not found for %s", extractAccession, extractTicker)
		}

		facts, outcome := processFiling(ctx, f, engine, *filing)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Facts   []model.CanonicalFact `json:"facts"`
			Outcome model.Outcome         `json:"outcome"`
		}{facts, outcome})
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractTicker, "ticker", "", "ticker symbol (required)")
	extractCmd.Flags().StringVar(&extractAccession, "accession", "", "accession number with dashes (required)")
	rootCmd.AddCommand(extractCmd)
}
