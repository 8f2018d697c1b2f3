// internal/application/mint/ports.go
package mint

import (
	"context"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

// ============================================================
// Signer identity
// ============================================================

// IdentityLoader yields the operator keypair. Implementations must not touch
// the network to talk to the chain; failures are tokendom.ErrCredential.
type IdentityLoader interface {
	Load(ctx context.Context) (types.Account, error)
}

// ============================================================
// Transaction building
// ============================================================

// TxBuilder is implemented by infra/solana.TxBuilder.
type TxBuilder interface {
	DeriveAddresses(mint, owner, tokenProgram common.PublicKey) (tokendom.DerivedAddresses, error)
	Assemble(feePayer common.PublicKey, ref tokendom.BlockRef, plan tokendom.Plan) (types.Message, error)
	Sign(msg types.Message, signers ...types.Account) (types.Transaction, error)
}

// ============================================================
// Off-chain metadata
// ============================================================

// MetadataUploader is implemented by infra/arweave.HTTPUploader and
// adapters/out/gcs.MetadataRepositoryGCS.
type MetadataUploader interface {
	UploadMetadata(ctx context.Context, data []byte) (string, error)
}

// ============================================================
// Post-launch check
// ============================================================

// MintInspector reads the launched mint back. Implemented by
// infra/solana.Session.
type MintInspector interface {
	InspectMint(ctx context.Context, mint common.PublicKey) (tokendom.MintState, error)
}

// ============================================================
// Launch notification
// ============================================================

// LaunchNotifier tells someone outside the terminal about a confirmed launch.
// Implemented by adapters/out/mail.LaunchMailer.
type LaunchNotifier interface {
	NotifyLaunch(ctx context.Context, res Result) error
}

// ============================================================
// Operator output
// ============================================================

// Reporter receives the human-readable progress of a run.
type Reporter interface {
	Signer(address string)
	Balance(lamports uint64)
	Mint(address string)
	MetadataURI(uri string)
	Warn(msg string)
	Explorer(link string)
	Unconfirmed(signature, link string)
	Verified(supply uint64, decimals uint8)
}

type nopReporter struct{}

func (nopReporter) Signer(string)              {}
func (nopReporter) Balance(uint64)             {}
func (nopReporter) Mint(string)                {}
func (nopReporter) MetadataURI(string)         {}
func (nopReporter) Warn(string)                {}
func (nopReporter) Explorer(string)            {}
func (nopReporter) Unconfirmed(string, string) {}
func (nopReporter) Verified(uint64, uint8)     {}
