package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mjzilver/BankOverview/internal/cli"
	apphttp "github.com/mjzilver/BankOverview/internal/http"
	"github.com/mjzilver/BankOverview/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenLabelStore(logger, cfg.Data.LabelDB)
	defer store.Close()

	overview := services.NewOverview(cfg.Data.DataDir, cfg.Bank.IgnoredAccountNames, store)
	if _, err := overview.Refresh(context.Background()); err != nil {
		logger.Error("Initial load failed", "error", err, "data_dir", cfg.Data.DataDir)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Server.Port, overview)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting bankoverview server",
		"port", cfg.Server.Port,
		"data_dir", cfg.Data.DataDir,
		"label_db", cfg.Data.LabelDB)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Server.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
