// internal/infra/solana/mint_authority.go
package solana

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

// EnvKeyLoader yields the launch identity from a secret supplied through
// configuration (SOLANA_PRIVATE_KEY). The value is injected, so tests pass
// synthetic secrets without touching the process environment.
type EnvKeyLoader struct {
	Secret string
}

func (l EnvKeyLoader) Load(ctx context.Context) (types.Account, error) {
	_ = ctx
	return DecodeSecret(l.Secret)
}

// DecodeSecret restores a 64-byte ed25519 keypair from either
//   - base58 text (wallet export format), or
//   - a solana-keygen JSON array ([u8;64] or [int,...]).
//
// Every failure is a tokendom.ErrCredential.
func DecodeSecret(raw string) (types.Account, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return types.Account{}, tokendom.WrapCredential(nil, "signing secret is empty")
	}

	var keyBytes []byte
	if strings.HasPrefix(s, "[") {
		b, err := decodeKeypairJSON([]byte(s))
		if err != nil {
			return types.Account{}, tokendom.WrapCredential(err, "decode keypair json")
		}
		keyBytes = b
	} else {
		b, err := base58.Decode(s)
		if err != nil {
			return types.Account{}, tokendom.WrapCredential(err, "decode base58 secret")
		}
		keyBytes = b
	}

	if len(keyBytes) != ed25519.PrivateKeySize {
		return types.Account{}, tokendom.WrapCredential(nil,
			fmt.Sprintf("unexpected secret key length: got %d, want %d", len(keyBytes), ed25519.PrivateKeySize))
	}

	// The second half is the public key; it must match the seed.
	derived := ed25519.NewKeyFromSeed(keyBytes[:ed25519.SeedSize])
	if !bytes.Equal(derived, keyBytes) {
		return types.Account{}, tokendom.WrapCredential(nil, "secret key public half does not match its seed")
	}

	acc, err := types.AccountFromBytes(keyBytes)
	if err != nil {
		return types.Account{}, tokendom.WrapCredential(err, "AccountFromBytes")
	}
	return acc, nil
}

// decodeKeypairJSON accepts [u8;64] as []byte first, then falls back to
// [int,...] with a per-element range check.
func decodeKeypairJSON(data []byte) ([]byte, error) {
	var keyBytes []byte
	if err := json.Unmarshal(data, &keyBytes); err == nil && len(keyBytes) == ed25519.PrivateKeySize {
		return keyBytes, nil
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("unmarshal keypair json: %w", err)
	}
	if len(ints) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("unexpected secret key length: got %d, want %d", len(ints), ed25519.PrivateKeySize)
	}

	keyBytes = make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("byte out of range at %d: %d", i, v)
		}
		keyBytes[i] = byte(v)
	}
	return keyBytes, nil
}

// EncodeKeypairJSON renders a keypair in solana-keygen file format.
func EncodeKeypairJSON(acc types.Account) ([]byte, error) {
	ints := make([]int, len(acc.PrivateKey))
	for i, b := range acc.PrivateKey {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}
