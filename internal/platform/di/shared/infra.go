// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	gcsadapter "github.com/metadataee/metadata/internal/adapters/out/gcs"
	mailadapter "github.com/metadataee/metadata/internal/adapters/out/mail"
	mintapp "github.com/metadataee/metadata/internal/application/mint"
	arweaveinfra "github.com/metadataee/metadata/internal/infra/arweave"
	appcfg "github.com/metadataee/metadata/internal/infra/config"
	solanainfra "github.com/metadataee/metadata/internal/infra/solana"
	"github.com/metadataee/metadata/internal/platform/logging"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (GCS/SecretManager); nil when their feature is off
// - owns the signer source, the optional metadata uploader and the optional
//   launch notifier
//
// Clients are created lazily by feature: a run with SOLANA_PRIVATE_KEY and a
// fixed TOKEN_URI never talks to GCP.
type Infra struct {
	Config *appcfg.Config

	// Clients (owned; Close-managed)
	GCS           *storage.Client
	SecretManager *secretmanager.Client

	Identity         mintapp.IdentityLoader
	MetadataUploader mintapp.MetadataUploader
	Notifier         mintapp.LaunchNotifier

	log *zap.Logger
}

// NewInfra initializes shared infra for settings s.
// Secret Manager is strict when SOLANA_MINT_KEY_SECRET is set; GCS is strict
// when an upload to METADATA_BUCKET is required.
func NewInfra(ctx context.Context, cfg *appcfg.Config, s RuntimeSettings, logger *zap.Logger) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}
	log := logging.OrNop(logger).Named("shared.infra")

	inf := &Infra{Config: cfg, log: log}

	// Credentials file (optional; mainly for local dev)
	var clientOpts []option.ClientOption
	if credFile := strings.TrimSpace(cfg.GCPCreds); credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Debug("using credentials file for GCP clients", zap.String("file", redactPath(credFile)))
	}

	// 1) Signer source
	if name := strings.TrimSpace(cfg.MintKeySecret); name != "" {
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: secretmanager.NewClient failed: %w", err)
		}
		inf.SecretManager = sm
		inf.Identity = solanainfra.SecretManagerKeyLoader{Client: sm, Name: name, Logger: logger}
		log.Info("signer source: Secret Manager", zap.String("secret", name))
	} else {
		inf.Identity = solanainfra.EnvKeyLoader{Secret: cfg.PrivateKey}
		log.Debug("signer source: environment")
	}

	// 2) Metadata hosting (only when no TOKEN_URI is configured)
	if strings.TrimSpace(s.Asset.URI) == "" {
		switch {
		case s.MetadataBucket != "":
			gcsClient, err := storage.NewClient(ctx, clientOpts...)
			if err != nil {
				_ = inf.Close()
				return nil, fmt.Errorf("shared.infra: storage.NewClient failed: %w", err)
			}
			inf.GCS = gcsClient
			inf.MetadataUploader = gcsadapter.NewMetadataRepositoryGCS(gcsClient, s.MetadataBucket, s.MetadataPrefix, s.Asset.Symbol, logger)
			log.Info("metadata uploader: GCS", zap.String("bucket", s.MetadataBucket))
		case s.ArweaveBaseURL != "":
			inf.MetadataUploader = arweaveinfra.NewHTTPUploader(s.ArweaveBaseURL, cfg.ArweaveAPIKey, logger)
			log.Info("metadata uploader: Arweave", zap.String("baseURL", s.ArweaveBaseURL))
		}
	}

	// 3) Launch report mail
	if s.NotifyEnabled {
		client := mailadapter.NewSendGridClient(cfg.SendGridAPIKey, cfg.NotifyFromName, logger)
		mailer, err := mailadapter.NewLaunchMailer(client, cfg.NotifyFrom, cfg.NotifyTo, s.Cluster.Name)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: %w", err)
		}
		inf.Notifier = mailer
		log.Info("launch notifier: SendGrid", zap.Int("recipients", len(mailadapter.SplitRecipients(cfg.NotifyTo))))
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	if i.GCS != nil {
		errs = append(errs, i.GCS.Close())
	}
	if i.SecretManager != nil {
		errs = append(errs, i.SecretManager.Close())
	}
	return errors.Join(errs...)
}

func redactPath(p string) string {
	// Do not log full path (Windows/Unix compatible light masking)
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	// Keep only the last segment
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
