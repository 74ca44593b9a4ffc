package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/rangeslider/internal/config"
	"github.com/vango-dev/rangeslider/internal/errors"
	"github.com/vango-dev/rangeslider/pkg/server"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	configPath string
	addr       string
	watch      bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live slider",
		Long: `Serve the slider and its demo panel over HTTP.

Each browser tab gets its own slider on the server. Gestures travel to
the server over a websocket and come back as DOM patches.

With --watch, edits to the config file are pushed to every open tab.

Examples:
  slider serve
  slider serve --addr=:9000
  slider serve --config slider.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (default from config, then :8080)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reload the config file on change")

	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.watch && cfg.Path() == "" {
		return errors.New("E104").
			WithDetail("--watch needs a config file").
			WithSuggestion("Pass --config together with --watch")
	}

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		if stderrors.Is(err, syscall.EADDRINUSE) {
			return errors.New("E121").
				WithDetail(cfg.Server.Addr + " is already in use").
				WithSuggestion("Pick another address with --addr")
		}
		return errors.New("E120").Wrap(err)
	}

	srv := server.New(cfg.ServerConfig(logger))
	httpSrv := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printBanner()
	success("Listening on http://%s", displayAddr(ln.Addr()))
	info("Metrics on %s", cfg.Server.MetricsPath)
	if opts.watch {
		info("Watching %s", cfg.Path())
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpSrv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.New("E120").Wrap(err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("sessions did not close in time", "error", err)
		}
		return httpSrv.Shutdown(shutdownCtx)
	})

	if opts.watch {
		g.Go(func() error {
			return config.Watch(gctx, cfg.Path(), logger, func(next *config.Config) {
				srv.Broadcast(next.Slider)
			})
		})
	}

	return g.Wait()
}

// displayAddr turns a wildcard listen address into one a browser can open.
func displayAddr(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok || !tcp.IP.IsUnspecified() {
		return addr.String()
	}
	return net.JoinHostPort("localhost", strconv.Itoa(tcp.Port))
}
