// internal/infra/solana/mint_authority_loader.go
package solana

import (
	"context"
	"fmt"
	"strings"

	smpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
	"github.com/metadataee/metadata/internal/platform/logging"
)

// SecretAccessor is the part of *secretmanager.Client the loader needs.
type SecretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *smpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*smpb.AccessSecretVersionResponse, error)
}

// SecretManagerKeyLoader reads the launch identity from a Secret Manager
// version, e.g. "projects/<PROJECT_ID>/secrets/<SECRET_ID>/versions/latest".
// The payload is anything DecodeSecret accepts.
type SecretManagerKeyLoader struct {
	Client SecretAccessor
	Name   string
	Logger *zap.Logger
}

func (l SecretManagerKeyLoader) Load(ctx context.Context) (types.Account, error) {
	if l.Client == nil {
		return types.Account{}, tokendom.WrapCredential(nil, "secret manager client is not configured")
	}
	name := strings.TrimSpace(l.Name)
	if name == "" {
		return types.Account{}, tokendom.WrapCredential(nil, "SOLANA_MINT_KEY_SECRET is empty")
	}

	res, err := l.Client.AccessSecretVersion(ctx, &smpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return types.Account{}, tokendom.WrapCredential(err,
			fmt.Sprintf("access secret version %s (code=%s)", name, status.Code(err)))
	}
	if res == nil || res.GetPayload() == nil || len(res.GetPayload().GetData()) == 0 {
		return types.Account{}, tokendom.WrapCredential(nil, fmt.Sprintf("secret %s has no payload", name))
	}

	acc, err := DecodeSecret(string(res.GetPayload().GetData()))
	if err != nil {
		return types.Account{}, err
	}

	logging.OrNop(l.Logger).Named("mint_authority").Info("loaded signer from Secret Manager",
		zap.String("secret", name),
		zap.String("pubkey", acc.PublicKey.ToBase58()),
	)
	return acc, nil
}

// IsSecretNotFound reports whether err came from a missing secret or version.
func IsSecretNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
