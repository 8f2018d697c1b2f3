// internal/platform/di/shared/runtime_settings.go
package shared

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
	appcfg "github.com/metadataee/metadata/internal/infra/config"
	solanainfra "github.com/metadataee/metadata/internal/infra/solana"
)

// RuntimeSettings are the config-resolved values of one run (normalized once).
// It intentionally contains only values, no external clients.
//
// Policy:
// - Normalization (trim, cluster aliases, commitment) happens here.
// - Hard validation lives in runtime_settings_validate.go.
type RuntimeSettings struct {
	Cluster        solanainfra.Cluster
	Commitment     rpc.Commitment
	ConfirmTimeout time.Duration
	PollInterval   time.Duration

	Asset       tokendom.AssetDescriptor
	Description string
	Image       string

	// Metadata hosting (only consulted when Asset.URI is empty)
	MetadataBucket string
	MetadataPrefix string
	ArweaveBaseURL string

	// Launch report mail
	NotifyEnabled bool
}

// ResolveRuntimeSettings resolves and normalizes settings from cfg.
//
// Notes:
// - This function is side-effect free (no logging).
// - It returns warnings as strings so callers can decide how to surface them.
func ResolveRuntimeSettings(cfg *appcfg.Config) (RuntimeSettings, []string, error) {
	if cfg == nil {
		return RuntimeSettings{}, nil, errors.New("shared.runtime_settings: cfg is nil")
	}

	var warns []string
	var s RuntimeSettings

	cluster, err := solanainfra.ResolveEndpoint(cfg.Network)
	if err != nil {
		return RuntimeSettings{}, nil, fmt.Errorf("shared.runtime_settings: %w", err)
	}
	s.Cluster = cluster
	if cluster.Name == solanainfra.ClusterMainnet {
		warns = append(warns, "SOLANA_NETWORK is mainnet (the launch spends real SOL)")
	}

	s.Commitment = rpc.Commitment(strings.ToLower(strings.TrimSpace(cfg.Commitment)))
	if s.Commitment == "" {
		s.Commitment = rpc.CommitmentConfirmed
	}
	s.ConfirmTimeout = cfg.ConfirmTimeout
	s.PollInterval = cfg.PollInterval

	s.Asset = tokendom.AssetDescriptor{
		Name:                 strings.TrimSpace(cfg.TokenName),
		Symbol:               strings.TrimSpace(cfg.TokenSymbol),
		URI:                  strings.TrimSpace(cfg.TokenURI),
		Decimals:             cfg.TokenDecimals,
		Supply:               cfg.TokenSupply,
		SellerFeeBasisPoints: cfg.SellerFeeBasisPoints,
		IsMutable:            cfg.TokenMutable,
	}
	if s.Asset.IsMutable {
		warns = append(warns, "TOKEN_MUTABLE is true (metadata stays updatable by the signer)")
	}
	s.Description = strings.TrimSpace(cfg.TokenDescription)
	s.Image = strings.TrimSpace(cfg.TokenImage)

	s.MetadataBucket = strings.TrimSpace(cfg.MetadataBucket)
	s.MetadataPrefix = strings.Trim(strings.TrimSpace(cfg.MetadataPrefix), "/")
	s.ArweaveBaseURL = normalizeBaseURL(cfg.ArweaveBaseURL)

	if s.Asset.URI != "" && (s.MetadataBucket != "" || s.ArweaveBaseURL != "") {
		warns = append(warns, "TOKEN_URI is set; metadata hosting settings are ignored")
	}
	if strings.TrimSpace(cfg.PrivateKey) != "" && strings.TrimSpace(cfg.MintKeySecret) != "" {
		warns = append(warns, "both SOLANA_PRIVATE_KEY and SOLANA_MINT_KEY_SECRET are set; Secret Manager wins")
	}

	s.NotifyEnabled = cfg.HasLaunchNotify()
	if !s.NotifyEnabled && (cfg.SendGridAPIKey != "" || cfg.NotifyTo != "") {
		warns = append(warns, "launch notification is partially configured (needs SENDGRID_API_KEY, LAUNCH_NOTIFY_FROM and LAUNCH_NOTIFY_TO); no mail will be sent")
	}

	return s, warns, nil
}

func normalizeBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	return strings.TrimRight(u, "/")
}
