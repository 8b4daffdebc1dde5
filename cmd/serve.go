package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/josexy/hosts-whitelist/matcher"
	"github.com/josexy/hosts-whitelist/server"
	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "serve the compiled whitelist over http",
	Example: "  hosts-whitelist serve -l 127.0.0.1:8080 -i 30m -CV 2",
	Run: func(cmd *cobra.Command, args []string) {
		defer func() {
			if err := recover(); err != nil {
				if e, ok := err.(error); ok {
					logger.Logger.FatalBy(e)
				}
			}
		}()
		if err := startServe(); err != nil {
			logger.Logger.FatalBy(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&cfg.Serve.Listen, "listen", "l", cfg.Serve.Listen, "http listening address")
	serveCmd.Flags().StringVar(&cfg.Serve.MetricsPath, "metrics-path", cfg.Serve.MetricsPath, "prometheus metrics path")
	serveCmd.Flags().DurationVarP(&cfg.Serve.ReloadInterval, "reload-interval", "i", cfg.Serve.ReloadInterval, "whitelist reload interval, 0 disables periodic reloading")
}

func startServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	holder := server.NewHolder()
	loader := server.LoaderFunc(func(ctx context.Context) (*matcher.Index, error) {
		return buildIndex(ctx, cfg)
	})
	// the server answers 503 until a first load succeeds, the updater
	// retries a failed one with backoff
	if err := server.LoadOnce(ctx, 2*cfg.Fetch.Timeout, loader, holder); err != nil {
		logger.Logger.Errorf("initial whitelist load failed: %v", err)
	}

	srv := server.New(server.Options{
		Addr:             cfg.Serve.Listen,
		MetricsPath:      cfg.Serve.MetricsPath,
		Workers:          cfg.Filter.Workers,
		AlreadyFormatted: cfg.Filter.AlreadyFormatted,
	}, holder)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		return server.RunUpdater(ctx, server.UpdaterConfig{
			Interval: cfg.Serve.ReloadInterval,
			Timeout:  2 * cfg.Fetch.Timeout,
		}, loader, holder)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Close(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Logger.Info("server stopped")
	return nil
}
