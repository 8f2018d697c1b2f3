// internal/application/mint/usecase.go
package mint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"
	"go.uber.org/zap"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
	"github.com/metadataee/metadata/internal/platform/logging"
)

// ============================================================
// Config / dependencies
// ============================================================

// Config is the launch request. It is built from process configuration by
// the caller; the usecase never reads the environment.
type Config struct {
	Asset        tokendom.AssetDescriptor
	Description  string
	Image        string
	TokenProgram common.PublicKey // zero means the classic token program
}

// Deps are the collaborators of a run. Uploader, Inspect, Notifier and
// Reporter are optional.
type Deps struct {
	Identity IdentityLoader
	Query    tokendom.QueryPort
	Submit   tokendom.SubmitPort
	Tx       TxBuilder
	Uploader MetadataUploader
	Inspect  MintInspector
	Notifier LaunchNotifier
	Reporter Reporter
	Explorer func(signature string) string

	// NewAccount generates the mint keypair; types.NewAccount when nil.
	NewAccount func() types.Account
	Now        func() time.Time
	Logger     *zap.Logger
}

// Result describes a confirmed launch.
type Result struct {
	Name          string
	Symbol        string
	Decimals      uint8
	Signature     string
	Mint          common.PublicKey
	HolderAccount common.PublicKey
	Metadata      common.PublicKey
	MetadataURI   string
	BaseUnits     uint64
	ExplorerURL   string
	Verified      bool // mint read back with expected supply and no authorities
}

// ============================================================
// MintUsecase
// ============================================================

// MintUsecase runs one launch: Session → Loader → Planner → Assembler →
// Submitter. It keeps no state between runs.
type MintUsecase struct {
	cfg Config

	identity IdentityLoader
	query    tokendom.QueryPort
	submit   tokendom.SubmitPort
	tx       TxBuilder
	uploader MetadataUploader
	inspect  MintInspector
	notifier LaunchNotifier
	out      Reporter
	explorer func(string) string

	newAccount func() types.Account
	now        func() time.Time
	log        *zap.Logger
}

func NewMintUsecase(cfg Config, deps Deps) (*MintUsecase, error) {
	if deps.Identity == nil || deps.Query == nil || deps.Submit == nil || deps.Tx == nil {
		return nil, errors.New("mint usecase: identity, query, submit and tx dependencies are required")
	}
	if err := cfg.Asset.Validate(); err != nil {
		return nil, tokendom.WrapInvalid(err, "asset descriptor")
	}
	if cfg.TokenProgram == (common.PublicKey{}) {
		cfg.TokenProgram = common.TokenProgramID
	}

	u := &MintUsecase{
		cfg:        cfg,
		identity:   deps.Identity,
		query:      deps.Query,
		submit:     deps.Submit,
		tx:         deps.Tx,
		uploader:   deps.Uploader,
		inspect:    deps.Inspect,
		notifier:   deps.Notifier,
		out:        deps.Reporter,
		explorer:   deps.Explorer,
		newAccount: deps.NewAccount,
		now:        deps.Now,
		log:        logging.OrNop(deps.Logger).Named("mint_usecase"),
	}
	if u.out == nil {
		u.out = nopReporter{}
	}
	if u.explorer == nil {
		u.explorer = func(sig string) string { return sig }
	}
	if u.newAccount == nil {
		u.newAccount = types.NewAccount
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u, nil
}

// Run performs the launch. Nothing success-like is reported unless the
// network confirmed the transaction. When a submitted transaction is not
// confirmed the signature is still reported as unconfirmed so the operator
// can look it up.
func (u *MintUsecase) Run(ctx context.Context) (*Result, error) {
	// 1) identity (before any chain call)
	identity, err := u.identity.Load(ctx)
	if err != nil {
		if !tokendom.IsCredential(err) {
			err = tokendom.WrapCredential(err, "load signer")
		}
		return nil, err
	}
	owner := identity.PublicKey
	u.out.Signer(owner.ToBase58())

	// 2) balance
	balance, err := u.query.GetBalance(ctx, owner)
	if err != nil {
		return nil, err
	}
	u.out.Balance(balance)

	// 3) off-chain metadata (upload only when no uri is configured)
	asset, err := u.ensureMetadataURI(ctx)
	if err != nil {
		return nil, err
	}

	// 4) block reference
	ref, err := u.query.GetLatestBlockRef(ctx)
	if err != nil {
		return nil, err
	}

	// 5) new mint account
	mintAcc := u.newAccount()
	u.out.Mint(mintAcc.PublicKey.ToBase58())

	// 6) derived addresses
	addrs, err := u.tx.DeriveAddresses(mintAcc.PublicKey, owner, u.cfg.TokenProgram)
	if err != nil {
		return nil, err
	}

	// 7) rent-exempt minimum for the mint account
	rent, err := u.query.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return nil, err
	}
	if balance < rent {
		msg := fmt.Sprintf("balance %d lamports is below the mint rent-exempt minimum %d; the transaction will likely fail", balance, rent)
		u.out.Warn(msg)
		u.log.Warn("insufficient balance", zap.Uint64("balance", balance), zap.Uint64("rent", rent))
	}

	// 8) plan → assemble → sign
	plan, err := BuildPlan(PlanInput{
		Identity:     owner,
		Mint:         mintAcc.PublicKey,
		Asset:        asset,
		Addresses:    addrs,
		RentLamports: rent,
		TokenProgram: u.cfg.TokenProgram,
	})
	if err != nil {
		return nil, err
	}
	msg, err := u.tx.Assemble(owner, ref, plan)
	if err != nil {
		return nil, err
	}
	tx, err := u.tx.Sign(msg, identity, mintAcc)
	if err != nil {
		return nil, err
	}

	amount, _ := asset.BaseUnits()
	u.log.Info("submitting launch transaction",
		zap.String("mint", logging.MaskShort(mintAcc.PublicKey.ToBase58())),
		zap.String("holder", logging.MaskShort(addrs.HolderAccount.ToBase58())),
		zap.Uint64("amount", amount),
		zap.Uint8("decimals", asset.Decimals),
		zap.Strings("steps", stepNames(plan)),
	)

	// 9) submit + confirm
	sig, err := u.submit.SendAndConfirm(ctx, tx, ref)
	if err != nil {
		// Once the network accepted the transaction it may still land; the
		// operator gets the signature whatever went wrong afterwards.
		if strings.TrimSpace(sig) != "" {
			u.out.Unconfirmed(sig, u.explorer(sig))
			u.log.Warn("launch not confirmed", zap.String("signature", logging.MaskShort(sig)), zap.Error(err))
		}
		return nil, err
	}

	// 10) report
	link := u.explorer(sig)
	u.out.Explorer(link)

	res := &Result{
		Name:          asset.Name,
		Symbol:        asset.Symbol,
		Decimals:      asset.Decimals,
		Signature:     sig,
		Mint:          mintAcc.PublicKey,
		HolderAccount: addrs.HolderAccount,
		Metadata:      addrs.Metadata,
		MetadataURI:   asset.URI,
		BaseUnits:     amount,
		ExplorerURL:   link,
	}

	// 11) read back (informational; the launch is already final)
	res.Verified = u.verify(ctx, mintAcc.PublicKey, amount, asset.Decimals)

	// 12) notify (best effort)
	u.notify(ctx, *res)
	return res, nil
}

func (u *MintUsecase) notify(ctx context.Context, res Result) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.NotifyLaunch(ctx, res); err != nil {
		u.log.Warn("launch notification failed", zap.Error(err))
		u.out.Warn(fmt.Sprintf("launch notification failed: %v", err))
		return
	}
	u.log.Info("launch notification sent", zap.String("signature", logging.MaskShort(res.Signature)))
}

func (u *MintUsecase) verify(ctx context.Context, mint common.PublicKey, amount uint64, decimals uint8) bool {
	if u.inspect == nil {
		return false
	}
	st, err := u.inspect.InspectMint(ctx, mint)
	if err != nil {
		u.log.Warn("mint read-back failed", zap.Error(err))
		u.out.Warn(fmt.Sprintf("could not read back mint: %v", err))
		return false
	}

	var problems []string
	if st.Supply != amount {
		problems = append(problems, fmt.Sprintf("supply %d, expected %d", st.Supply, amount))
	}
	if st.Decimals != decimals {
		problems = append(problems, fmt.Sprintf("decimals %d, expected %d", st.Decimals, decimals))
	}
	if !st.Fixed() {
		problems = append(problems, "mint or freeze authority still set")
	}
	if len(problems) > 0 {
		u.log.Error("mint read-back mismatch", zap.Strings("problems", problems))
		u.out.Warn("mint read-back mismatch: " + strings.Join(problems, "; "))
		return false
	}

	u.out.Verified(st.Supply, st.Decimals)
	return true
}

// ensureMetadataURI returns the descriptor with a usable URI. A configured
// URI wins; otherwise the metadata JSON is uploaded.
func (u *MintUsecase) ensureMetadataURI(ctx context.Context) (tokendom.AssetDescriptor, error) {
	asset := u.cfg.Asset
	if strings.TrimSpace(asset.URI) != "" {
		return asset, nil
	}
	if u.uploader == nil {
		return asset, tokendom.WrapInvalid(tokendom.ErrInvalidURI, "token uri is empty and no metadata uploader is configured")
	}

	data, err := BuildMetadataJSON(MetadataInput{
		Asset:       asset,
		Description: u.cfg.Description,
		Image:       u.cfg.Image,
		CreatedAt:   u.now(),
	})
	if err != nil {
		return asset, tokendom.WrapInvalid(err, "build metadata json")
	}

	uri, err := u.uploader.UploadMetadata(ctx, data)
	if err != nil {
		return asset, tokendom.WrapNetwork(err, "upload metadata")
	}
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return asset, tokendom.WrapNetwork(nil, "metadata uri is empty after upload")
	}

	u.log.Info("metadata uploaded", zap.String("uri", uri), zap.Int("bytes", len(data)))
	u.out.MetadataURI(uri)
	asset.URI = uri
	return asset, nil
}

func stepNames(p tokendom.Plan) []string {
	out := make([]string, 0, len(p))
	for _, k := range p.Kinds() {
		out = append(out, k.String())
	}
	return out
}
