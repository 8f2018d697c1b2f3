package token

import (
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
)

// ============================================================
// Plan step descriptors
// ============================================================

// StepKind tags each step of a launch plan. The numeric order is the
// required on-chain order.
type StepKind int

const (
	StepCreateAccount StepKind = iota + 1
	StepInitializeMint
	StepCreateMetadata
	StepCreateHolderAccount
	StepMintTo
	StepRevokeMintAuthority
	StepRevokeFreezeAuthority
)

func (k StepKind) String() string {
	switch k {
	case StepCreateAccount:
		return "create_account"
	case StepInitializeMint:
		return "initialize_mint"
	case StepCreateMetadata:
		return "create_metadata"
	case StepCreateHolderAccount:
		return "create_holder_account"
	case StepMintTo:
		return "mint_to"
	case StepRevokeMintAuthority:
		return "revoke_mint_authority"
	case StepRevokeFreezeAuthority:
		return "revoke_freeze_authority"
	default:
		return fmt.Sprintf("step(%d)", int(k))
	}
}

// LaunchOrder is the only accepted step sequence.
var LaunchOrder = []StepKind{
	StepCreateAccount,
	StepInitializeMint,
	StepCreateMetadata,
	StepCreateHolderAccount,
	StepMintTo,
	StepRevokeMintAuthority,
	StepRevokeFreezeAuthority,
}

// Step is one on-chain operation of the plan.
type Step interface {
	Kind() StepKind
}

// CreateAccount allocates the mint account, funded rent-exempt and owned by
// the token program.
type CreateAccount struct {
	Payer      common.PublicKey
	NewAccount common.PublicKey
	Owner      common.PublicKey
	Lamports   uint64
	Space      uint64
}

// InitializeMint sets decimals and both authorities.
type InitializeMint struct {
	Mint            common.PublicKey
	Decimals        uint8
	MintAuthority   common.PublicKey
	FreezeAuthority *common.PublicKey
}

// CreateMetadata writes the Metaplex metadata account (v3).
type CreateMetadata struct {
	Metadata             common.PublicKey
	Mint                 common.PublicKey
	MintAuthority        common.PublicKey
	Payer                common.PublicKey
	UpdateAuthority      common.PublicKey
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
	IsMutable            bool
}

// CreateHolderAccount creates the owner's associated token account.
type CreateHolderAccount struct {
	Payer   common.PublicKey
	Owner   common.PublicKey
	Mint    common.PublicKey
	Account common.PublicKey
}

// MintTo mints Amount base units into Destination.
type MintTo struct {
	Mint        common.PublicKey
	Destination common.PublicKey
	Authority   common.PublicKey
	Amount      uint64
}

// AuthorityKind mirrors the token program's AuthorityType values used here.
type AuthorityKind uint8

const (
	AuthorityMintTokens    AuthorityKind = 0
	AuthorityFreezeAccount AuthorityKind = 1
)

// RevokeAuthority sets Authority on Mint to none.
type RevokeAuthority struct {
	Mint             common.PublicKey
	CurrentAuthority common.PublicKey
	Authority        AuthorityKind
}

func (CreateAccount) Kind() StepKind       { return StepCreateAccount }
func (InitializeMint) Kind() StepKind      { return StepInitializeMint }
func (CreateMetadata) Kind() StepKind      { return StepCreateMetadata }
func (CreateHolderAccount) Kind() StepKind { return StepCreateHolderAccount }
func (MintTo) Kind() StepKind              { return StepMintTo }

func (r RevokeAuthority) Kind() StepKind {
	if r.Authority == AuthorityFreezeAccount {
		return StepRevokeFreezeAuthority
	}
	return StepRevokeMintAuthority
}

// ============================================================
// Plan
// ============================================================

var ErrInvalidPlan = errors.New("token: invalid plan")

// Plan is the ordered step list placed into one transaction.
type Plan []Step

func (p Plan) Kinds() []StepKind {
	out := make([]StepKind, 0, len(p))
	for _, s := range p {
		out = append(out, s.Kind())
	}
	return out
}

// Validate checks the plan against LaunchOrder: same length, same kinds,
// same positions.
func (p Plan) Validate() error {
	if len(p) != len(LaunchOrder) {
		return fmt.Errorf("%w: got %d steps, want %d", ErrInvalidPlan, len(p), len(LaunchOrder))
	}
	for i, s := range p {
		if s == nil {
			return fmt.Errorf("%w: step %d is nil", ErrInvalidPlan, i)
		}
		if s.Kind() != LaunchOrder[i] {
			return fmt.Errorf("%w: step %d is %s, want %s", ErrInvalidPlan, i, s.Kind(), LaunchOrder[i])
		}
	}
	return nil
}

// IndexOf returns the position of the first step of kind k, or -1.
func (p Plan) IndexOf(k StepKind) int {
	for i, s := range p {
		if s != nil && s.Kind() == k {
			return i
		}
	}
	return -1
}
