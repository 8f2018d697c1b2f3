// internal/infra/solana/transaction.go
package solana

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

var (
	ErrEmptyTransaction = errors.New("solana: transaction has no instructions")
	ErrMissingSignature = errors.New("solana: required signature missing")
)

// TxBuilder derives addresses, assembles and signs launch transactions.
// It holds no state; the zero value is ready to use.
type TxBuilder struct{}

// DeriveAddresses computes the Metaplex metadata PDA and the owner's
// associated token account for mint. The holder address is a pure function
// of (mint, owner, tokenProgram).
func (TxBuilder) DeriveAddresses(mint, owner, tokenProgram common.PublicKey) (tokendom.DerivedAddresses, error) {
	holder, err := HolderAddress(mint, owner, tokenProgram)
	if err != nil {
		return tokendom.DerivedAddresses{}, err
	}
	metadata, err := token_metadata.GetTokenMetaPubkey(mint)
	if err != nil {
		return tokendom.DerivedAddresses{}, fmt.Errorf("GetTokenMetaPubkey: %w", err)
	}
	return tokendom.DerivedAddresses{Metadata: metadata, HolderAccount: holder}, nil
}

// HolderAddress is the associated token account of owner for mint.
// Only the classic token program is supported because the SDK's token and
// ATA instructions are bound to it.
func HolderAddress(mint, owner, tokenProgram common.PublicKey) (common.PublicKey, error) {
	if tokenProgram != common.TokenProgramID {
		return common.PublicKey{}, fmt.Errorf("%w: %s", tokendom.ErrUnsupportedProgram, tokenProgram.ToBase58())
	}
	ata, _, err := common.FindProgramAddress(
		[][]byte{owner.Bytes(), tokenProgram.Bytes(), mint.Bytes()},
		common.SPLAssociatedTokenAccountProgramID,
	)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("FindProgramAddress: %w", err)
	}
	return ata, nil
}

// Assemble encodes plan and packages it with the fee payer and blockhash.
func (TxBuilder) Assemble(feePayer common.PublicKey, ref tokendom.BlockRef, plan tokendom.Plan) (types.Message, error) {
	ins, err := EncodePlan(plan)
	if err != nil {
		return types.Message{}, err
	}
	return AssembleMessage(feePayer, ref, ins)
}

// Sign signs msg with every required signer.
func (TxBuilder) Sign(msg types.Message, signers ...types.Account) (types.Transaction, error) {
	return SignTransaction(msg, signers...)
}

// AssembleMessage builds a legacy message. Instructions are kept exactly as
// given: same order, none dropped or duplicated.
func AssembleMessage(feePayer common.PublicKey, ref tokendom.BlockRef, instructions []types.Instruction) (types.Message, error) {
	if len(instructions) == 0 {
		return types.Message{}, ErrEmptyTransaction
	}
	if strings.TrimSpace(ref.Blockhash) == "" {
		return types.Message{}, tokendom.WrapInvalid(nil, "recent blockhash is empty")
	}
	ins := make([]types.Instruction, len(instructions))
	copy(ins, instructions)

	return types.NewMessage(types.NewMessageParam{
		FeePayer:        feePayer,
		RecentBlockhash: ref.Blockhash,
		Instructions:    ins,
	}), nil
}

// SignTransaction produces a fully signed transaction. The SDK rejects
// signers the message does not need but leaves a zero slot for a required
// signer that was not given; that is ErrMissingSignature here.
func SignTransaction(msg types.Message, signers ...types.Account) (types.Transaction, error) {
	tx, err := types.NewTransaction(types.NewTransactionParam{
		Message: msg,
		Signers: signers,
	})
	if err != nil {
		return types.Transaction{}, fmt.Errorf("NewTransaction: %w", err)
	}

	var missing []string
	for i := 0; i < int(msg.Header.NumRequireSignatures); i++ {
		if i >= len(tx.Signatures) || isZeroSignature(tx.Signatures[i]) {
			missing = append(missing, msg.Accounts[i].ToBase58())
		}
	}
	if len(missing) > 0 {
		return types.Transaction{}, fmt.Errorf("%w: %s", ErrMissingSignature, strings.Join(missing, ", "))
	}
	return tx, nil
}

func isZeroSignature(sig types.Signature) bool {
	for _, b := range sig {
		if b != 0 {
			return false
		}
	}
	return true
}

// TransactionSignature is the fee payer's signature in base58, the id the
// network reports for tx.
func TransactionSignature(tx types.Transaction) string {
	if len(tx.Signatures) == 0 {
		return ""
	}
	return base58.Encode(tx.Signatures[0])
}
