// cmd/covmerge/serve.go
// Implements `covmerge serve`: a minimal net/http server exposing /metrics
// (Prometheus) and /healthz, for running `covmerge watch` as a sidecar.
package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Voskan/covmerge/internal/logging"
	"github.com/Voskan/covmerge/internal/metrics"
	"github.com/Voskan/covmerge/internal/store"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose /metrics and /healthz for a covmerge sidecar deployment",
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics.Register()

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/healthz", handleHealthz)

			srv := &http.Server{
				Addr:         addr,
				Handler:      mux,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			logging.Sugar().Infow("covmerge serve: listening", "addr", addr)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9090", "HTTP listen address for /metrics and /healthz")
	return cmd
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	snap := store.Global.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{
		"runs":      snap.Runs,
		"functions": snap.Functions,
		"errors":    snap.Errors,
	})
}
