// internal/infra/solana/session.go
package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
	"go.uber.org/zap"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
	"github.com/metadataee/metadata/internal/platform/logging"
)

var (
	_ tokendom.QueryPort  = (*Session)(nil)
	_ tokendom.SubmitPort = (*Session)(nil)
)

// SessionOptions tune confirmation. Zero values take the defaults below.
type SessionOptions struct {
	Commitment   rpc.Commitment // confirmed (default) or finalized
	PollInterval time.Duration
	// ConfirmTimeout bounds the wait after submission; zero leaves only the
	// blockhash expiry and the caller's ctx.
	ConfirmTimeout time.Duration
	Logger         *zap.Logger
}

const defaultPollInterval = 2 * time.Second

// Session is one network connection. It performs no retries and no caching;
// every error is reported as tokendom.ErrNetwork.
type Session struct {
	Cluster Cluster
	RPC     *client.Client

	commitment     rpc.Commitment
	pollInterval   time.Duration
	confirmTimeout time.Duration
	log            *zap.Logger
}

func NewSession(c Cluster, opts SessionOptions) *Session {
	commitment := opts.Commitment
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &Session{
		Cluster:      c,
		RPC:          client.NewClient(c.RPC),
		commitment:     commitment,
		pollInterval:   poll,
		confirmTimeout: opts.ConfirmTimeout,
		log:            logging.OrNop(opts.Logger).Named("solana_session"),
	}
}

// ConfirmTimeout is the wait bound applied after submission.
func (s *Session) ConfirmTimeout() time.Duration { return s.confirmTimeout }

func (s *Session) GetBalance(ctx context.Context, address common.PublicKey) (uint64, error) {
	bal, err := s.RPC.GetBalance(ctx, address.ToBase58())
	if err != nil {
		return 0, tokendom.WrapNetwork(err, "getBalance")
	}
	return bal, nil
}

func (s *Session) GetLatestBlockRef(ctx context.Context) (tokendom.BlockRef, error) {
	latest, err := s.RPC.GetLatestBlockhash(ctx)
	if err != nil {
		return tokendom.BlockRef{}, tokendom.WrapNetwork(err, "getLatestBlockhash")
	}
	return tokendom.BlockRef{
		Blockhash:            latest.Blockhash,
		LastValidBlockHeight: latest.LatestValidBlockHeight,
	}, nil
}

func (s *Session) GetMinimumBalanceForRentExemption(ctx context.Context, space uint64) (uint64, error) {
	lamports, err := s.RPC.GetMinimumBalanceForRentExemption(ctx, space)
	if err != nil {
		return 0, tokendom.WrapNetwork(err, "getMinimumBalanceForRentExemption")
	}
	return lamports, nil
}

// SendAndConfirm submits tx and polls its status until it reaches the
// session commitment. A status error is a rejection. Once the chain's block
// height passes ref.LastValidBlockHeight the transaction can no longer land
// and a *tokendom.ConfirmationTimeoutError is returned. When ctx ends while
// waiting, including mid-request, the error is tokendom.ErrConfirmationTimeout
// and the signature is still returned. ConfirmTimeout starts counting after
// the transaction was accepted.
func (s *Session) SendAndConfirm(ctx context.Context, tx types.Transaction, ref tokendom.BlockRef) (string, error) {
	sig, err := s.RPC.SendTransaction(ctx, tx)
	if err != nil {
		return "", tokendom.WrapNetwork(err, "sendTransaction")
	}
	s.log.Info("transaction submitted",
		zap.String("signature", logging.MaskShort(sig)),
		zap.String("commitment", string(s.commitment)),
	)

	if s.confirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.confirmTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		done, err := s.checkStatus(ctx, sig)
		if err != nil || done {
			return sig, err
		}

		height, err := s.blockHeight(ctx, sig)
		if err != nil {
			return sig, err
		}
		if ref.LastValidBlockHeight > 0 && height > ref.LastValidBlockHeight {
			return sig, &tokendom.ConfirmationTimeoutError{
				Signature:            sig,
				LastValidBlockHeight: ref.LastValidBlockHeight,
				BlockHeight:          height,
			}
		}

		select {
		case <-ctx.Done():
			return sig, waitExpired(ctx, sig, nil)
		case <-ticker.C:
		}
	}
}

func (s *Session) checkStatus(ctx context.Context, sig string) (bool, error) {
	st, err := s.RPC.GetSignatureStatus(ctx, sig)
	if err != nil {
		return false, rpcFailure(ctx, sig, "getSignatureStatuses", err)
	}
	if st == nil {
		return false, nil
	}
	if st.Err != nil {
		return false, tokendom.WrapNetwork(nil, fmt.Sprintf("transaction %s rejected: %v", sig, st.Err))
	}
	if st.ConfirmationStatus == nil {
		return false, nil
	}
	reached := commitmentReached(*st.ConfirmationStatus, s.commitment)
	if reached {
		s.log.Info("transaction confirmed",
			zap.String("signature", logging.MaskShort(sig)),
			zap.String("status", string(*st.ConfirmationStatus)),
			zap.Uint64("slot", st.Slot),
		)
	}
	return reached, nil
}

// blockHeight goes through the raw rpc client; the high-level client has
// no getBlockHeight wrapper, so a JSON-RPC error is checked here.
func (s *Session) blockHeight(ctx context.Context, sig string) (uint64, error) {
	res, err := s.RPC.RpcClient.GetBlockHeight(ctx)
	if err != nil {
		return 0, rpcFailure(ctx, sig, "getBlockHeight", err)
	}
	if res.Error != nil {
		return 0, tokendom.WrapNetwork(res.Error, "getBlockHeight")
	}
	return res.Result, nil
}

// rpcFailure classifies a failed call made while waiting for confirmation.
// The SDK flattens transport errors to strings, so ctx is consulted directly.
func rpcFailure(ctx context.Context, sig, method string, err error) error {
	if ctx.Err() != nil {
		return waitExpired(ctx, sig, fmt.Errorf("%s: %v", method, err))
	}
	return tokendom.WrapNetwork(err, method)
}

func waitExpired(ctx context.Context, sig string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: signature=%s: %w", tokendom.ErrConfirmationTimeout, sig, ctx.Err())
	}
	return fmt.Errorf("%w: signature=%s: %w (%v)", tokendom.ErrConfirmationTimeout, sig, ctx.Err(), cause)
}

func commitmentRank(c rpc.Commitment) int {
	switch c {
	case rpc.CommitmentProcessed:
		return 1
	case rpc.CommitmentConfirmed:
		return 2
	case rpc.CommitmentFinalized:
		return 3
	default:
		return 0
	}
}

func commitmentReached(got, want rpc.Commitment) bool {
	return commitmentRank(got) >= commitmentRank(want) && commitmentRank(got) > 0
}
