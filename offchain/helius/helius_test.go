package helius

import (
	"strings"
	"testing"
)

func TestRPCURL(t *testing.T) {
	t.Parallel()

	got, err := RPCURL(ClusterMainnet, "k")
	if err != nil {
		t.Fatalf("RPCURL: %v", err)
	}
	if !strings.HasPrefix(got, "https://mainnet.helius-rpc.com") {
		t.Fatalf("unexpected mainnet url: %q", got)
	}
	if !strings.Contains(got, "api-key=k") {
		t.Fatalf("missing api-key query: %q", got)
	}

	got, err = RPCURL(ClusterDevnet, "k")
	if err != nil {
		t.Fatalf("RPCURL: %v", err)
	}
	if !strings.HasPrefix(got, "https://devnet.helius-rpc.com") {
		t.Fatalf("unexpected devnet url: %q", got)
	}

	if _, err := RPCURL(ClusterMainnet, ""); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := RPCURL("unknown", "k"); err == nil {
		t.Fatalf("expected unsupported cluster error")
	}
}
