package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
	"github.com/felixgeelhaar/studiorate/internal/infrastructure/watch"
	"github.com/felixgeelhaar/studiorate/internal/infrastructure/web"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the studio page and rating dialog over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, ws, err := loadServices(nil)
		if err != nil {
			return err
		}
		logger := services.Logger
		defer func() { _ = logger.Sync() }()

		addr := serveAddr
		if addr == "" {
			addr = services.Config.Server.Addr
		}
		server, err := web.NewServer(addr, services)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if serveWatch {
			watcher, err := watch.NewConfigWatcher(ws.ConfigPath, watch.DefaultDebounce, func(cfg *config.WidgetConfig) {
				config.ApplyEnv(cfg)
				_ = server.Reload(cfg)
			}, logger)
			if err != nil {
				return err
			}
			go func() {
				if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("config watcher stopped", zap.Error(err))
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("shutting down web server")
			return server.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to server.addr from the config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the config when the file changes")
	RootCmd.AddCommand(serveCmd)
}
