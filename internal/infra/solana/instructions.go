// internal/infra/solana/instructions.go
package solana

import (
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

// EncodePlan turns a validated plan into SDK instructions, one per step,
// in plan order.
func EncodePlan(plan tokendom.Plan) ([]types.Instruction, error) {
	if err := plan.Validate(); err != nil {
		return nil, tokendom.WrapInvalid(err, "launch plan")
	}

	out := make([]types.Instruction, 0, len(plan))
	for i, step := range plan {
		ins, err := EncodeStep(step)
		if err != nil {
			return nil, fmt.Errorf("encode step %d (%s): %w", i, step.Kind(), err)
		}
		out = append(out, ins)
	}
	return out, nil
}

// EncodeStep encodes a single step descriptor.
func EncodeStep(step tokendom.Step) (types.Instruction, error) {
	switch s := step.(type) {
	case tokendom.CreateAccount:
		return system.CreateAccount(system.CreateAccountParam{
			From:     s.Payer,
			New:      s.NewAccount,
			Owner:    s.Owner,
			Lamports: s.Lamports,
			Space:    s.Space,
		}), nil

	case tokendom.InitializeMint:
		return token.InitializeMint(token.InitializeMintParam{
			Decimals:   s.Decimals,
			Mint:       s.Mint,
			MintAuth:   s.MintAuthority,
			FreezeAuth: s.FreezeAuthority,
		}), nil

	case tokendom.CreateMetadata:
		creators, err := metadataCreators(s.Creators)
		if err != nil {
			return types.Instruction{}, err
		}
		return token_metadata.CreateMetadataAccountV3(token_metadata.CreateMetadataAccountV3Param{
			Metadata:                s.Metadata,
			Mint:                    s.Mint,
			MintAuthority:           s.MintAuthority,
			Payer:                   s.Payer,
			UpdateAuthority:         s.UpdateAuthority,
			UpdateAuthorityIsSigner: true,
			IsMutable:               s.IsMutable,
			Data: token_metadata.DataV2{
				Name:                 s.Name,
				Symbol:               s.Symbol,
				Uri:                  s.URI,
				SellerFeeBasisPoints: s.SellerFeeBasisPoints,
				Creators:             creators,
			},
			CollectionDetails: nil,
		}), nil

	case tokendom.CreateHolderAccount:
		return associated_token_account.CreateAssociatedTokenAccount(
			associated_token_account.CreateAssociatedTokenAccountParam{
				Funder:                 s.Payer,
				Owner:                  s.Owner,
				Mint:                   s.Mint,
				AssociatedTokenAccount: s.Account,
			},
		), nil

	case tokendom.MintTo:
		return token.MintTo(token.MintToParam{
			Mint:   s.Mint,
			To:     s.Destination,
			Auth:   s.Authority,
			Amount: s.Amount,
		}), nil

	case tokendom.RevokeAuthority:
		authType, err := authorityType(s.Authority)
		if err != nil {
			return types.Instruction{}, err
		}
		return token.SetAuthority(token.SetAuthorityParam{
			Account:  s.Mint,
			NewAuth:  nil,
			AuthType: authType,
			Auth:     s.CurrentAuthority,
		}), nil

	default:
		return types.Instruction{}, tokendom.WrapInvalid(nil, fmt.Sprintf("unknown step type %T", step))
	}
}

func authorityType(k tokendom.AuthorityKind) (token.AuthorityType, error) {
	switch k {
	case tokendom.AuthorityMintTokens:
		return token.AuthorityTypeMintTokens, nil
	case tokendom.AuthorityFreezeAccount:
		return token.AuthorityTypeFreezeAccount, nil
	default:
		return 0, tokendom.WrapInvalid(nil, fmt.Sprintf("unsupported authority kind %d", k))
	}
}

// metadataCreators returns nil for "no creators", matching the on-chain
// Option::None encoding.
func metadataCreators(cs []tokendom.Creator) (*[]token_metadata.Creator, error) {
	if cs == nil {
		return nil, nil
	}
	out := make([]token_metadata.Creator, 0, len(cs))
	for i, c := range cs {
		pk, err := ParsePublicKey(c.Address)
		if err != nil {
			return nil, fmt.Errorf("creators[%d]: %w", i, err)
		}
		out = append(out, token_metadata.Creator{
			Address:  pk,
			Verified: c.Verified,
			Share:    c.Share,
		})
	}
	return &out, nil
}

const publicKeyLength = 32

// ParsePublicKey decodes a base58 address and rejects anything that is not
// exactly 32 bytes.
func ParsePublicKey(s string) (common.PublicKey, error) {
	b, err := base58.Decode(strings.TrimSpace(s))
	if err != nil {
		return common.PublicKey{}, tokendom.WrapInvalid(err, fmt.Sprintf("address %q", s))
	}
	if len(b) != publicKeyLength {
		return common.PublicKey{}, tokendom.WrapInvalid(nil, fmt.Sprintf("address %q is %d bytes, want %d", s, len(b), publicKeyLength))
	}
	return common.PublicKeyFromBytes(b), nil
}
