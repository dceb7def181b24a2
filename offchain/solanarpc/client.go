// Package solanarpc is a minimal Solana JSON-RPC client covering the two
// calls the resolver needs: signature listing and transaction lookup.
//
// The client never retries on its own. Throttling responses (HTTP 429 and
// rate-limit RPC error codes) are classified into ErrThrottled so the caller
// owns the retry schedule.
package solanarpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Abdullah1738/deploytime/offchain/helius"
)

var (
	ErrMissingRPCURL       = errors.New("missing rpc url")
	ErrRPCError            = errors.New("solana rpc error")
	ErrThrottled           = errors.New("rate limited by rpc")
	ErrTransactionNotFound = errors.New("transaction not found")
)

type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrRPCError.Error(), e.Code, e.Message)
}

func (e *RPCError) Unwrap() error { return ErrRPCError }

func isRateLimitedRPCError(code int, message string) bool {
	if code == 429 || code == -32429 {
		return true
	}
	msg := strings.ToLower(strings.TrimSpace(message))
	return strings.Contains(msg, "rate") && strings.Contains(msg, "limit")
}

type Client struct {
	rpcURL string
	http   *http.Client
}

func New(rpcURL string, httpClient *http.Client) *Client {
	rpcURL = strings.TrimSpace(rpcURL)
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		rpcURL: rpcURL,
		http:   httpClient,
	}
}

func ClientFromEnv() (*Client, error) {
	if raw := strings.TrimSpace(os.Getenv("SOLANA_RPC_URL")); raw != "" {
		return New(raw, nil), nil
	}
	if raw := strings.TrimSpace(os.Getenv("HELIUS_RPC_URL")); raw != "" {
		return New(raw, nil), nil
	}
	apiKey := strings.TrimSpace(os.Getenv("HELIUS_API_KEY"))
	cluster := helius.Cluster(strings.TrimSpace(os.Getenv("HELIUS_CLUSTER")))
	if cluster == "" {
		cluster = helius.ClusterMainnet
	}
	if apiKey == "" {
		return nil, ErrMissingRPCURL
	}
	u, err := helius.RPCURL(cluster, apiKey)
	if err != nil {
		return nil, err
	}
	return New(u, nil), nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

func (c *Client) rpcCall(ctx context.Context, method string, params any, out any) error {
	if c == nil {
		return errors.New("nil rpc client")
	}
	if strings.TrimSpace(c.rpcURL) == "" {
		return ErrMissingRPCURL
	}

	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      "1",
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: http status=%d", ErrThrottled, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: http status=%d", ErrRPCError, resp.StatusCode)
	}

	var rr rpcResponse
	if err := json.Unmarshal(raw, &rr); err != nil {
		return fmt.Errorf("decode rpc response: %w", err)
	}
	if rr.Error != nil {
		rpcErr := &RPCError{Code: rr.Error.Code, Message: rr.Error.Message}
		if isRateLimitedRPCError(rr.Error.Code, rr.Error.Message) {
			return fmt.Errorf("%w: %w", ErrThrottled, rpcErr)
		}
		return rpcErr
	}
	if out == nil {
		return nil
	}
	if len(rr.Result) == 0 {
		return fmt.Errorf("%w: empty result", ErrRPCError)
	}
	if err := json.Unmarshal(rr.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

// SignatureInfo is one entry of a getSignaturesForAddress page. BlockTime is
// nil when the cluster has not recorded a time for the containing block.
type SignatureInfo struct {
	Signature string `json:"signature"`
	Slot      uint64 `json:"slot"`
	BlockTime *int64 `json:"blockTime"`
	Err       any    `json:"err"`
}

// SignaturesForAddress lists transaction signatures involving address,
// newest first, at most limit (1..1000) per page. A non-empty before cursor
// requests the page strictly older than that signature.
func (c *Client) SignaturesForAddress(ctx context.Context, address string, limit int, before string) ([]SignatureInfo, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("address required")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}
	if limit > 1000 {
		return nil, errors.New("limit too large")
	}

	cfg := map[string]any{
		"limit":      limit,
		"commitment": "confirmed",
	}
	if before = strings.TrimSpace(before); before != "" {
		cfg["before"] = before
	}

	var resp []SignatureInfo
	if err := c.rpcCall(ctx, "getSignaturesForAddress", []any{address, cfg}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Instruction is one parsed instruction of a fetched transaction. Only the
// target program matters here.
type Instruction struct {
	ProgramID string `json:"programId"`
}

type Transaction struct {
	BlockTime    *int64
	Instructions []Instruction
}

// TransactionDetails fetches a transaction by signature with jsonParsed
// encoding and flattens it to its block time and instruction targets.
// Returns ErrTransactionNotFound if the cluster does not know the signature.
func (c *Client) TransactionDetails(ctx context.Context, signature string) (*Transaction, error) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return nil, errors.New("signature required")
	}

	var resp *struct {
		BlockTime   *int64 `json:"blockTime"`
		Transaction struct {
			Message struct {
				Instructions []Instruction `json:"instructions"`
			} `json:"message"`
		} `json:"transaction"`
	}
	params := []any{
		signature,
		map[string]any{
			"encoding":                       "jsonParsed",
			"commitment":                     "confirmed",
			"maxSupportedTransactionVersion": 0,
		},
	}
	if err := c.rpcCall(ctx, "getTransaction", params, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, signature)
	}
	return &Transaction{
		BlockTime:    resp.BlockTime,
		Instructions: resp.Transaction.Message.Instructions,
	}, nil
}
