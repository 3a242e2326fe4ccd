package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/orgball2608/affiliate-post-bot/internal/metrics"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
)

func newHttpServer(log logger.Logger, cfg *config.Config, m *metrics.Metrics) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           newMux(log, m),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func newMux(log logger.Logger, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})
	mux.Handle("/metrics", m.Handler())
	return mux
}

func startHttpServer(log logger.Logger, srv *http.Server) {
	log.Info(fmt.Sprintf("Starting server on %s", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server failed", "Error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Debug("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
