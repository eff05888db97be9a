package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/server"
)

// serveCmd 启动 HTTP 服务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	Long:  `启动问答 HTTP 服务，提供 /ask 接口、首页、历史记录和 Prometheus 指标。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logx.Error("Failed to close resources: %v", err)
			}
		}()

		server.InitVersionHandler(Version, GitCommit, BuildTime)

		srv, err := server.NewHTTPGinServer(cfg, server.Deps{
			Asker:     app.pipeline,
			ChatLogs:  app.chatLogs,
			Knowledge: app.store,
		})
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			return fmt.Errorf("http server stopped: %w", err)
		case sig := <-sigCh:
			logx.Info("Received signal %s, shutting down", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop http server: %w", err)
		}

		logx.Info("👋 Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
