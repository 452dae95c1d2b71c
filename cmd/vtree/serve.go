package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/internal/telemetry"
	"github.com/vango-dev/vtree/pkg/hosttree"
	"github.com/vango-dev/vtree/pkg/reactive"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/wire"
)

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo app over a websocket",
		Long: `Serve the demo app.

  GET /         server-rendered markup of the app
  GET /ws       websocket session streaming host ops
  GET /metrics  Prometheus metrics (metrics.enabled)
  GET /healthz  liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides server.address)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)
	handler := newRouter(cfg, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}
	if cfg.Server.H2C {
		srv.Handler = h2c.NewHandler(handler, &http2.Server{})
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	printBanner()
	success("Listening on http://%s", cfg.Server.Address)
	info("websocket: ws://%s%s", cfg.Server.Address, cfg.Server.Path)
	if cfg.Metrics.Enabled {
		info("metrics:   http://%s/metrics", cfg.Server.Address)
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newRouter(cfg *config.Config, logger *slog.Logger) http.Handler {
	var metrics *telemetry.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics(
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithRegistry(registry),
		)
	}
	opts := runtimeOptions(cfg, logger, metrics)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		page, err := renderPage(opts, cfg.Server.Path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Handle(cfg.Server.Path, &wire.Handler{
		Config: wire.Config{
			ReadTimeout:  cfg.ReadTimeout(),
			WriteTimeout: cfg.WriteTimeout(),
		},
		Runtime: opts,
		Mount: func(rt *reactive.Runtime, tree *hosttree.Tree) {
			render.New(rt, tree).Mount(tree.Root(), demo.App, nil)
		},
	})

	return r
}

// renderPage renders the app once on a throwaway runtime.
func renderPage(opts []reactive.Option, wsPath string) (string, error) {
	rt := reactive.New(opts...)
	tree := hosttree.New()
	app := render.New(rt, tree).Mount(tree.Root(), demo.App, nil)
	defer app.Destroy()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>vtree</title></head>\n")
	fmt.Fprintf(&b, "<body data-ws=%q>\n<div id=\"app\">", wsPath)
	if err := hosttree.WriteMarkup(&b, tree.Root(), hosttree.MarkupOptions{IDs: true}); err != nil {
		return "", err
	}
	b.WriteString("</div>\n</body></html>\n")
	return b.String(), nil
}
