package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"testing"

	smpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/googleapis/gax-go/v2"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

func TestDecodeSecret_Base58(t *testing.T) {
	acc := types.NewAccount()

	got, err := DecodeSecret("  " + base58.Encode(acc.PrivateKey) + "\n")
	require.NoError(t, err)
	assert.Equal(t, acc.PublicKey, got.PublicKey)
	assert.Equal(t, acc.PrivateKey, got.PrivateKey)
}

func TestDecodeSecret_JSONArray(t *testing.T) {
	acc := types.NewAccount()
	raw, err := EncodeKeypairJSON(acc)
	require.NoError(t, err)

	got, err := DecodeSecret(string(raw))
	require.NoError(t, err)
	assert.Equal(t, acc.PublicKey, got.PublicKey)
}

func TestDecodeSecret_Invalid(t *testing.T) {
	acc := types.NewAccount()

	tampered := make([]byte, len(acc.PrivateKey))
	copy(tampered, acc.PrivateKey)
	tampered[ed25519.PrivateKeySize-1] ^= 0xff

	outOfRange := make([]int, ed25519.PrivateKeySize)
	outOfRange[3] = 300
	outOfRangeJSON, err := json.Marshal(outOfRange)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":       "",
		"blank":       "   ",
		"not base58":  "0OIl+/",
		"short":       base58.Encode(acc.PrivateKey[:32]),
		"tampered":    base58.Encode(tampered),
		"bad json":    "[1,2,",
		"json length": "[1,2,3]",
		"json range":  string(outOfRangeJSON),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSecret(raw)
			require.Error(t, err)
			assert.True(t, tokendom.IsCredential(err), "err=%v", err)
		})
	}
}

func TestEnvKeyLoader(t *testing.T) {
	acc := types.NewAccount()

	got, err := EnvKeyLoader{Secret: base58.Encode(acc.PrivateKey)}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, acc.PublicKey, got.PublicKey)

	_, err = EnvKeyLoader{}.Load(context.Background())
	assert.True(t, tokendom.IsCredential(err))
}

type fakeSecretAccessor struct {
	data  []byte
	err   error
	names []string
}

func (f *fakeSecretAccessor) AccessSecretVersion(ctx context.Context, req *smpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*smpb.AccessSecretVersionResponse, error) {
	f.names = append(f.names, req.GetName())
	if f.err != nil {
		return nil, f.err
	}
	return &smpb.AccessSecretVersionResponse{
		Name:    req.GetName(),
		Payload: &smpb.SecretPayload{Data: f.data},
	}, nil
}

func TestSecretManagerKeyLoader(t *testing.T) {
	const name = "projects/p/secrets/launch-authority/versions/latest"
	acc := types.NewAccount()
	raw, err := EncodeKeypairJSON(acc)
	require.NoError(t, err)

	fake := &fakeSecretAccessor{data: raw}
	got, err := SecretManagerKeyLoader{Client: fake, Name: name}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, acc.PublicKey, got.PublicKey)
	assert.Equal(t, []string{name}, fake.names)
}

func TestSecretManagerKeyLoader_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := SecretManagerKeyLoader{Name: "x"}.Load(ctx)
	assert.True(t, tokendom.IsCredential(err))

	_, err = SecretManagerKeyLoader{Client: &fakeSecretAccessor{}, Name: " "}.Load(ctx)
	assert.True(t, tokendom.IsCredential(err))

	notFound := &fakeSecretAccessor{err: status.Error(codes.NotFound, "secret not found")}
	_, err = SecretManagerKeyLoader{Client: notFound, Name: "x"}.Load(ctx)
	assert.True(t, tokendom.IsCredential(err))
	assert.True(t, IsSecretNotFound(err))

	empty := &fakeSecretAccessor{data: nil}
	_, err = SecretManagerKeyLoader{Client: empty, Name: "x"}.Load(ctx)
	assert.True(t, tokendom.IsCredential(err))
	assert.False(t, IsSecretNotFound(err))
}
