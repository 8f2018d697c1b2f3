// internal/infra/solana/cluster.go
package solana

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/blocto/solana-go-sdk/rpc"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

// Cluster is a resolved network endpoint. Name is empty for custom URLs.
type Cluster struct {
	Name string
	RPC  string
}

const (
	ClusterMainnet  = "mainnet"
	ClusterDevnet   = "devnet"
	ClusterTestnet  = "testnet"
	ClusterLocalnet = "localnet"
)

const explorerBaseURL = "https://explorer.solana.com"

// ResolveEndpoint maps a cluster moniker or an http(s) URL to a Cluster.
func ResolveEndpoint(selector string) (Cluster, error) {
	s := strings.TrimSpace(selector)
	switch strings.ToLower(s) {
	case "mainnet", "mainnet-beta":
		return Cluster{Name: ClusterMainnet, RPC: rpc.MainnetRPCEndpoint}, nil
	case "devnet":
		return Cluster{Name: ClusterDevnet, RPC: rpc.DevnetRPCEndpoint}, nil
	case "testnet":
		return Cluster{Name: ClusterTestnet, RPC: rpc.TestnetRPCEndpoint}, nil
	case "localnet", "localhost":
		return Cluster{Name: ClusterLocalnet, RPC: rpc.LocalnetRPCEndpoint}, nil
	}

	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Cluster{}, tokendom.WrapInvalid(nil, fmt.Sprintf("unknown network %q (want mainnet, devnet, testnet, localnet or an http(s) URL)", selector))
	}
	return Cluster{RPC: s}, nil
}

// ExplorerLink returns the Solana Explorer page for a transaction signature.
func ExplorerLink(c Cluster, signature string) string {
	base := explorerBaseURL + "/tx/" + url.PathEscape(signature)
	switch c.Name {
	case ClusterMainnet:
		return base
	case ClusterDevnet, ClusterTestnet:
		return base + "?cluster=" + c.Name
	default:
		q := url.Values{}
		q.Set("cluster", "custom")
		q.Set("customUrl", c.RPC)
		return base + "?" + q.Encode()
	}
}
