package token

import (
	"context"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// ========================================
// Network ports
// ========================================

// BlockRef is a recent blockhash and the last block height at which a
// transaction referencing it can still land.
type BlockRef struct {
	Blockhash            string
	LastValidBlockHeight uint64
}

// DerivedAddresses are computed from the mint and owner; never stored.
type DerivedAddresses struct {
	Metadata      common.PublicKey
	HolderAccount common.PublicKey
}

// QueryPort is the read side of a network session.
type QueryPort interface {
	GetBalance(ctx context.Context, address common.PublicKey) (uint64, error)
	GetLatestBlockRef(ctx context.Context) (BlockRef, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, space uint64) (uint64, error)
}

// SubmitPort is the write side. SendAndConfirm blocks until the network
// confirms, rejects, or the blockhash in ref expires.
type SubmitPort interface {
	SendAndConfirm(ctx context.Context, tx types.Transaction, ref BlockRef) (string, error)
}

// ========================================
// Launched mint state
// ========================================

// MintState is the on-chain mint account as read back after a launch.
type MintState struct {
	Supply          uint64
	Decimals        uint8
	Initialized     bool
	MintAuthority   *common.PublicKey
	FreezeAuthority *common.PublicKey
}

// Fixed reports whether both authorities are revoked, i.e. supply can never
// change and no holder can be frozen.
func (m MintState) Fixed() bool {
	return m.MintAuthority == nil && m.FreezeAuthority == nil
}
