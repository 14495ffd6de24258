package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/greenprocure/internal/config"
	"github.com/rshade/greenprocure/internal/supplier"
)

const (
	readHeaderTimeout = 5 * time.Second
	maxBodyBytes      = 1 << 20
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recommendation engine and its metrics over HTTP",
		Long: `Serve JSON endpoints over the loaded pool until interrupted:

  POST /v1/recommendations  {"requirements": {...}, "history": [...]}
  POST /v1/allocations      {"requirements": {...}}
  POST /v1/advice           {"supplierIds": [...], "requirements": {...}}
  GET  /metrics             Prometheus metrics
  GET  /healthz             liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, a.cfg.Serve.Listen)
		},
	}
	cmd.Flags().String("listen", "", "address to listen on (default :9090)")
	_ = a.v.BindPFlag(config.KeyServeListen, cmd.Flags().Lookup("listen"))
	return cmd
}

// serve blocks until ctx is done or the listener fails, then shuts down
// gracefully within the configured timeout.
func (a *app) serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	server := &http.Server{
		Handler:           a.handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(ln) }()
	a.logger.Info().Str("addr", ln.Addr().String()).Msg("serving greenprocure")

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Serve.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("shutdown failed")
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info().Msg("server stopped")
	return nil
}

type recommendationsRequest struct {
	Requirements supplier.Requirements   `json:"requirements"`
	History      []supplier.HistoryEntry `json:"history"`
}

type adviceRequest struct {
	SupplierIDs  []string              `json:"supplierIds"`
	Requirements supplier.Requirements `json:"requirements"`
}

func (a *app) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", a.metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte("ok\n")); err != nil {
			a.logger.Error().Err(err).Msg("failed to write response")
		}
	})
	mux.HandleFunc("POST /v1/recommendations", func(w http.ResponseWriter, r *http.Request) {
		var req recommendationsRequest
		if !a.decode(w, r, &req) || !a.validRequirements(w, req.Requirements) {
			return
		}
		a.respond(w, http.StatusOK, a.engine.SupplierRecommendations(req.Requirements, req.History))
	})
	mux.HandleFunc("POST /v1/allocations", func(w http.ResponseWriter, r *http.Request) {
		var req recommendationsRequest
		if !a.decode(w, r, &req) || !a.validRequirements(w, req.Requirements) {
			return
		}
		eligible := a.engine.EligibleSuppliers(req.Requirements)
		a.respond(w, http.StatusOK, a.engine.AllocationRecommendations(eligible, req.Requirements))
	})
	mux.HandleFunc("POST /v1/advice", func(w http.ResponseWriter, r *http.Request) {
		var req adviceRequest
		if !a.decode(w, r, &req) {
			return
		}
		roster, err := a.suppliers(req.SupplierIDs)
		if err != nil {
			a.fail(w, http.StatusNotFound, err)
			return
		}
		a.respond(w, http.StatusOK, a.engine.ProcurementRecommendations(roster, req.Requirements))
	})
	return mux
}

func (a *app) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		a.fail(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return false
	}
	return true
}

func (a *app) validRequirements(w http.ResponseWriter, req supplier.Requirements) bool {
	if err := req.Validate(); err != nil {
		a.fail(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (a *app) fail(w http.ResponseWriter, status int, err error) {
	a.logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	a.respond(w, status, map[string]string{"error": err.Error()})
}

func (a *app) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error().Err(err).Msg("failed to write response")
	}
}
