// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	mintapp "github.com/metadataee/metadata/internal/application/mint"
	"github.com/metadataee/metadata/internal/application/mint/presenter"
	appcfg "github.com/metadataee/metadata/internal/infra/config"
	solanainfra "github.com/metadataee/metadata/internal/infra/solana"
	"github.com/metadataee/metadata/internal/platform/di/shared"
	"github.com/metadataee/metadata/internal/platform/logging"
)

// Container is the dependency bundle used by cmd/mint. It exists so that
// main.go stays thin.
type Container struct {
	Settings shared.RuntimeSettings
	Warnings []string

	Infra   *shared.Infra
	Session *solanainfra.Session
	Mint    *mintapp.MintUsecase
}

// NewContainer resolves settings, creates the clients the run needs and
// wires the launch usecase. Progress lines go to out.
func NewContainer(ctx context.Context, cfg *appcfg.Config, logger *zap.Logger, out io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}
	logger = logging.OrNop(logger)

	settings, warns, err := shared.ResolveRuntimeSettings(cfg)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	for _, w := range warns {
		logger.Warn(w)
	}

	inf, err := shared.NewInfra(ctx, cfg, settings, logger)
	if err != nil {
		return nil, err
	}

	session := solanainfra.NewSession(settings.Cluster, solanainfra.SessionOptions{
		Commitment:     settings.Commitment,
		PollInterval:   settings.PollInterval,
		ConfirmTimeout: settings.ConfirmTimeout,
		Logger:         logger,
	})

	cluster := settings.Cluster
	uc, err := mintapp.NewMintUsecase(
		mintapp.Config{
			Asset:       settings.Asset,
			Description: settings.Description,
			Image:       settings.Image,
		},
		mintapp.Deps{
			Identity: inf.Identity,
			Query:    session,
			Submit:   session,
			Tx:       solanainfra.TxBuilder{},
			Uploader: inf.MetadataUploader,
			Inspect:  session,
			Notifier: inf.Notifier,
			Reporter: presenter.NewConsole(out),
			Explorer: func(sig string) string { return solanainfra.ExplorerLink(cluster, sig) },
			Logger:   logger,
		},
	)
	if err != nil {
		_ = inf.Close()
		return nil, fmt.Errorf("di: %w", err)
	}

	return &Container{
		Settings: settings,
		Warnings: warns,
		Infra:    inf,
		Session:  session,
		Mint:     uc,
	}, nil
}

// Run executes one launch. The confirmation timeout is applied by the
// session around the wait after submission, not to the whole run.
func (c *Container) Run(ctx context.Context) (*mintapp.Result, error) {
	return c.Mint.Run(ctx)
}

// Close releases the clients owned by Infra.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Infra.Close()
}
