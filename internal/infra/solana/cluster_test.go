package solana

import (
	"testing"

	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want Cluster
	}{
		{"mainnet", Cluster{Name: ClusterMainnet, RPC: rpc.MainnetRPCEndpoint}},
		{" Mainnet-Beta ", Cluster{Name: ClusterMainnet, RPC: rpc.MainnetRPCEndpoint}},
		{"devnet", Cluster{Name: ClusterDevnet, RPC: rpc.DevnetRPCEndpoint}},
		{"testnet", Cluster{Name: ClusterTestnet, RPC: rpc.TestnetRPCEndpoint}},
		{"localhost", Cluster{Name: ClusterLocalnet, RPC: rpc.LocalnetRPCEndpoint}},
		{"https://rpc.example.com/?api-key=x", Cluster{RPC: "https://rpc.example.com/?api-key=x"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ResolveEndpoint(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEndpoint_Invalid(t *testing.T) {
	for _, in := range []string{"", "moonnet", "ftp://rpc.example.com", "https://"} {
		_, err := ResolveEndpoint(in)
		require.Errorf(t, err, "input %q", in)
		assert.True(t, tokendom.IsInvalid(err))
	}
}

func TestExplorerLink(t *testing.T) {
	const sig = "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW"

	assert.Equal(t, "https://explorer.solana.com/tx/"+sig,
		ExplorerLink(Cluster{Name: ClusterMainnet}, sig))
	assert.Equal(t, "https://explorer.solana.com/tx/"+sig+"?cluster=devnet",
		ExplorerLink(Cluster{Name: ClusterDevnet}, sig))
	assert.Equal(t, "https://explorer.solana.com/tx/"+sig+"?cluster=custom&customUrl=http%3A%2F%2Flocalhost%3A8899",
		ExplorerLink(Cluster{Name: ClusterLocalnet, RPC: "http://localhost:8899"}, sig))
}
