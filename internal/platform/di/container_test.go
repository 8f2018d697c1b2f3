package di

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
	appcfg "github.com/metadataee/metadata/internal/infra/config"
)

func testConfig() *appcfg.Config {
	return &appcfg.Config{
		Network:        "http://127.0.0.1:1",
		Commitment:     "confirmed",
		ConfirmTimeout: time.Second,
		PollInterval:   10 * time.Millisecond,
		TokenName:      appcfg.DefaultTokenName,
		TokenSymbol:    appcfg.DefaultTokenSymbol,
		TokenURI:       appcfg.DefaultTokenURI,
		TokenDecimals:  appcfg.DefaultTokenDecimals,
		TokenSupply:    appcfg.DefaultTokenSupply,
	}
}

func TestNewContainer_MissingKeyFailsBeforeNetwork(t *testing.T) {
	var out bytes.Buffer
	c, err := NewContainer(context.Background(), testConfig(), nil, &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	// The endpoint is unreachable; a credential error proves no RPC was attempted first.
	_, err = c.Run(context.Background())
	require.Error(t, err)
	assert.True(t, tokendom.IsCredential(err))
	assert.Empty(t, out.String())
}

func TestNewContainer_SessionCarriesConfirmTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.ConfirmTimeout = 42 * time.Second

	c, err := NewContainer(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, 42*time.Second, c.Session.ConfirmTimeout())
}

func TestNewContainer_RejectsBadSettings(t *testing.T) {
	cfg := testConfig()
	cfg.Network = "moonnet"
	_, err := NewContainer(context.Background(), cfg, nil, nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.TokenURI = ""
	_, err = NewContainer(context.Background(), cfg, nil, nil)
	assert.Error(t, err)

	_, err = NewContainer(context.Background(), nil, nil, nil)
	assert.Error(t, err)
}
