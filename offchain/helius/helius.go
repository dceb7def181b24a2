// Package helius builds Helius RPC endpoint URLs from an API key and
// cluster. It exists so callers can fall back to Helius when no explicit
// Solana RPC URL is configured.
package helius

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMissingAPIKey = errors.New("missing helius api key")

type Cluster string

const (
	ClusterMainnet Cluster = "mainnet"
	ClusterDevnet  Cluster = "devnet"
)

func RPCURL(cluster Cluster, apiKey string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	var host string
	switch cluster {
	case ClusterMainnet, "mainnet-beta":
		host = "https://mainnet.helius-rpc.com"
	case ClusterDevnet:
		host = "https://devnet.helius-rpc.com"
	default:
		return "", fmt.Errorf("unsupported helius cluster: %q", cluster)
	}

	u, err := url.Parse(host)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("api-key", apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
