// cmd/mint/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
	appcfg "github.com/metadataee/metadata/internal/infra/config"
	"github.com/metadataee/metadata/internal/platform/di"
	"github.com/metadataee/metadata/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := appcfg.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	cont, err := di.NewContainer(ctx, cfg, logger, os.Stdout)
	if err != nil {
		logger.Error("di init failed", zap.Error(err))
		return 1
	}
	defer func() {
		if err := cont.Close(); err != nil {
			logger.Warn("close failed", zap.Error(err))
		}
	}()

	logger.Info("launch starting",
		zap.String("cluster", clusterLabel(cont)),
		zap.String("symbol", cont.Settings.Asset.Symbol),
		zap.Uint8("decimals", cont.Settings.Asset.Decimals),
		zap.Uint64("supply", cont.Settings.Asset.Supply),
	)

	res, err := cont.Run(ctx)
	if err != nil {
		logger.Error("launch failed", zap.String("kind", classify(err)), zap.Error(err))
		return 1
	}

	logger.Info("launch confirmed",
		zap.String("signature", res.Signature),
		zap.String("mint", res.Mint.ToBase58()),
		zap.String("holder", res.HolderAccount.ToBase58()),
		zap.Uint64("baseUnits", res.BaseUnits),
	)
	return 0
}

func classify(err error) string {
	switch {
	case tokendom.IsCredential(err):
		return "credential"
	case tokendom.IsConfirmationTimeout(err):
		return "confirmation_timeout"
	case tokendom.IsNetwork(err):
		return "network"
	case tokendom.IsInvalid(err):
		return "invalid"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}

func clusterLabel(c *di.Container) string {
	if c.Settings.Cluster.Name != "" {
		return c.Settings.Cluster.Name
	}
	return "custom"
}
