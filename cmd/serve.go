package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/edgar-cli/internal/model"
	"github.com/sells-group/edgar-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a read-only HTTP API over stored facts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		mux := newServeMux(st)

		port := servePort
		if port == 0 {
			port = cfg.Serve.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newServeMux builds the API routes, separated from the command so
// tests can exercise handlers without a listener.
func newServeMux(st store.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /companies", func(w http.ResponseWriter, r *http.Request) {
		companies, err := st.ListCompanies(r.Context())
		if err != nil {
			zap.L().Error("list companies failed", zap.Error(err))
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}
		if companies == nil {
			companies = []store.Company{}
		}
		writeJSON(w, http.StatusOK, companies)
	})

	mux.HandleFunc("GET /facts/{cik}", func(w http.ResponseWriter, r *http.Request) {
		filter := store.FactFilter{
			CIK:      r.PathValue("cik"),
			Metric:   r.URL.Query().Get("metric"),
			FormType: model.FormType(r.URL.Query().Get("form")),
		}
		if y := r.URL.Query().Get("from_year"); y != "" {
			year, err := strconv.Atoi(y)
			if err != nil {
				http.Error(w, `{"error":"invalid from_year"}`, http.StatusBadRequest)
				return
			}
			filter.FromYear = year
		}

		facts, err := st.ListFacts(r.Context(), filter)
		if err != nil {
			zap.L().Error("list facts failed", zap.Error(err))
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}
		if facts == nil {
			facts = []model.CanonicalFact{}
		}
		writeJSON(w, http.StatusOK, facts)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
