// internal/application/mint/planner.go
package mint

import (
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/token"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

// PlanInput is everything the planner needs. It is pure data; BuildPlan
// performs no I/O.
type PlanInput struct {
	Identity     common.PublicKey
	Mint         common.PublicKey
	Asset        tokendom.AssetDescriptor
	Addresses    tokendom.DerivedAddresses
	RentLamports uint64
	TokenProgram common.PublicKey
}

// BuildPlan produces the seven launch steps in their only valid order:
// create mint account, initialize mint, metadata, holder account, mint
// supply, then revoke mint and freeze authority. The identity is payer,
// owner and every authority.
func BuildPlan(in PlanInput) (tokendom.Plan, error) {
	var zero common.PublicKey
	if in.Identity == zero || in.Mint == zero {
		return nil, tokendom.WrapInvalid(nil, "identity and mint addresses are required")
	}
	if in.Addresses.Metadata == zero || in.Addresses.HolderAccount == zero {
		return nil, tokendom.WrapInvalid(nil, "derived addresses are required")
	}
	if in.TokenProgram != common.TokenProgramID {
		return nil, fmt.Errorf("%w: %s", tokendom.ErrUnsupportedProgram, in.TokenProgram.ToBase58())
	}

	asset := in.Asset
	if err := asset.Validate(); err != nil {
		return nil, tokendom.WrapInvalid(err, "asset descriptor")
	}
	if strings.TrimSpace(asset.URI) == "" {
		return nil, tokendom.WrapInvalid(tokendom.ErrInvalidURI, "metadata uri is empty")
	}
	amount, err := asset.BaseUnits()
	if err != nil {
		return nil, tokendom.WrapInvalid(err, "mint amount")
	}

	owner := in.Identity
	mint := in.Mint
	freeze := owner

	plan := tokendom.Plan{
		tokendom.CreateAccount{
			Payer:      owner,
			NewAccount: mint,
			Owner:      in.TokenProgram,
			Lamports:   in.RentLamports,
			Space:      token.MintAccountSize,
		},
		tokendom.InitializeMint{
			Mint:            mint,
			Decimals:        asset.Decimals,
			MintAuthority:   owner,
			FreezeAuthority: &freeze,
		},
		tokendom.CreateMetadata{
			Metadata:             in.Addresses.Metadata,
			Mint:                 mint,
			MintAuthority:        owner,
			Payer:                owner,
			UpdateAuthority:      owner,
			Name:                 strings.TrimSpace(asset.Name),
			Symbol:               strings.TrimSpace(asset.Symbol),
			URI:                  strings.TrimSpace(asset.URI),
			SellerFeeBasisPoints: asset.SellerFeeBasisPoints,
			Creators:             asset.Creators,
			IsMutable:            asset.IsMutable,
		},
		tokendom.CreateHolderAccount{
			Payer:   owner,
			Owner:   owner,
			Mint:    mint,
			Account: in.Addresses.HolderAccount,
		},
		tokendom.MintTo{
			Mint:        mint,
			Destination: in.Addresses.HolderAccount,
			Authority:   owner,
			Amount:      amount,
		},
		tokendom.RevokeAuthority{
			Mint:             mint,
			CurrentAuthority: owner,
			Authority:        tokendom.AuthorityMintTokens,
		},
		tokendom.RevokeAuthority{
			Mint:             mint,
			CurrentAuthority: owner,
			Authority:        tokendom.AuthorityFreezeAccount,
		},
	}
	if err := plan.Validate(); err != nil {
		return nil, tokendom.WrapInvalid(err, "launch plan")
	}
	return plan, nil
}
