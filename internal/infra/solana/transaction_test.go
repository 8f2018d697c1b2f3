package solana

import (
	"crypto/ed25519"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

func testBlockRef() tokendom.BlockRef {
	return tokendom.BlockRef{
		Blockhash:            types.NewAccount().PublicKey.ToBase58(),
		LastValidBlockHeight: 150,
	}
}

func TestHolderAddress_Deterministic(t *testing.T) {
	owner := types.NewAccount().PublicKey
	mint := types.NewAccount().PublicKey

	a, err := HolderAddress(mint, owner, common.TokenProgramID)
	require.NoError(t, err)
	b, err := HolderAddress(mint, owner, common.TokenProgramID)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	want, _, err := common.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, want, a)

	other, err := HolderAddress(mint, types.NewAccount().PublicKey, common.TokenProgramID)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestHolderAddress_UnsupportedProgram(t *testing.T) {
	_, err := HolderAddress(types.NewAccount().PublicKey, types.NewAccount().PublicKey, types.NewAccount().PublicKey)
	assert.ErrorIs(t, err, tokendom.ErrUnsupportedProgram)
}

func TestDeriveAddresses(t *testing.T) {
	owner := types.NewAccount().PublicKey
	mint := types.NewAccount().PublicKey

	got, err := TxBuilder{}.DeriveAddresses(mint, owner, common.TokenProgramID)
	require.NoError(t, err)

	wantMeta, err := token_metadata.GetTokenMetaPubkey(mint)
	require.NoError(t, err)
	assert.Equal(t, wantMeta, got.Metadata)
	assert.NotEqual(t, got.Metadata, got.HolderAccount)
}

func TestAssembleMessage_Errors(t *testing.T) {
	payer := types.NewAccount().PublicKey

	_, err := AssembleMessage(payer, testBlockRef(), nil)
	assert.ErrorIs(t, err, ErrEmptyTransaction)

	k := newLaunchKeys(t)
	ins, err := EncodePlan(launchPlan(k, 1))
	require.NoError(t, err)
	_, err = AssembleMessage(payer, tokendom.BlockRef{Blockhash: "  "}, ins)
	assert.True(t, tokendom.IsInvalid(err))
}

func TestAssemble_PreservesOrder(t *testing.T) {
	k := newLaunchKeys(t)
	plan := launchPlan(k, 42)

	ins, err := EncodePlan(plan)
	require.NoError(t, err)

	msg, err := TxBuilder{}.Assemble(k.identity.PublicKey, testBlockRef(), plan)
	require.NoError(t, err)
	require.Len(t, msg.Instructions, len(ins))
	assert.Equal(t, k.identity.PublicKey, msg.Accounts[0], "fee payer comes first")

	for i, ci := range msg.Instructions {
		assert.Equal(t, ins[i].ProgramID, msg.Accounts[ci.ProgramIDIndex], "instruction %d", i)
		assert.Equal(t, ins[i].Data, ci.Data, "instruction %d", i)
	}
}

func TestSign(t *testing.T) {
	k := newLaunchKeys(t)
	msg, err := TxBuilder{}.Assemble(k.identity.PublicKey, testBlockRef(), launchPlan(k, 1))
	require.NoError(t, err)

	// The mint account must co-sign its own creation.
	_, err = TxBuilder{}.Sign(msg, k.identity)
	require.ErrorIs(t, err, ErrMissingSignature)
	assert.Contains(t, err.Error(), k.mint.PublicKey.ToBase58())
	assert.NotContains(t, err.Error(), k.identity.PublicKey.ToBase58())

	_, err = TxBuilder{}.Sign(msg)
	require.ErrorIs(t, err, ErrMissingSignature)
	assert.Contains(t, err.Error(), k.identity.PublicKey.ToBase58())

	tx, err := TxBuilder{}.Sign(msg, k.identity, k.mint)
	require.NoError(t, err)
	require.Len(t, tx.Signatures, 2)

	raw, err := msg.Serialize()
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(k.identity.PublicKey.Bytes(), raw, tx.Signatures[0]))
	for i := 0; i < int(msg.Header.NumRequireSignatures); i++ {
		assert.True(t, ed25519.Verify(msg.Accounts[i].Bytes(), raw, tx.Signatures[i]), "signature %d", i)
	}

	sig := TransactionSignature(tx)
	assert.Equal(t, base58.Encode(tx.Signatures[0]), sig)
	assert.Empty(t, TransactionSignature(types.Transaction{}))
}
