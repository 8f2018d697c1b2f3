// internal/infra/solana/mint_reader.go
package solana

import (
	"context"
	"fmt"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/token"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

// InspectMint reads the mint account at the session commitment and decodes
// it. A missing account is reported as a network error: right after
// confirmation it means the node is behind, not that the launch failed.
func (s *Session) InspectMint(ctx context.Context, mint common.PublicKey) (tokendom.MintState, error) {
	info, err := s.RPC.GetAccountInfoWithConfig(ctx, mint.ToBase58(), client.GetAccountInfoConfig{
		Commitment: s.commitment,
	})
	if err != nil {
		return tokendom.MintState{}, tokendom.WrapNetwork(err, "getAccountInfo")
	}
	if len(info.Data) == 0 {
		return tokendom.MintState{}, tokendom.WrapNetwork(nil, fmt.Sprintf("mint account %s not found", mint.ToBase58()))
	}

	acc, err := token.MintAccountFromData(info.Data)
	if err != nil {
		return tokendom.MintState{}, tokendom.WrapInvalid(err, "decode mint account")
	}
	return tokendom.MintState{
		Supply:          acc.Supply,
		Decimals:        acc.Decimals,
		Initialized:     acc.IsInitialized,
		MintAuthority:   acc.MintAuthority,
		FreezeAuthority: acc.FreezeAuthority,
	}, nil
}
