package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl"
)

type templateResponse struct {
	URL      string `json:"url"`
	Template string `json:"template"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func serveAction(c *cli.Context) error {
	s, err := settingsFrom(c)
	if err != nil {
		return err
	}
	eng, err := buildEngine(c.Context, s)
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              c.String("addr"),
		Handler:           newMux(eng),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		eng.log.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	eng.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newMux(eng *engine) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /template", eng.handleTemplate)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (e *engine) handleTemplate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing url parameter"})
		return
	}

	res := e.templater.Analyze(r.Context(), raw)
	if err := e.record(r.Context(), []pathtmpl.Result{res}); err != nil {
		e.log.Warn("record observation failed", "url", raw, "error", err)
	}
	writeJSON(w, http.StatusOK, templateResponse{URL: res.RawURL, Template: res.Template})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
