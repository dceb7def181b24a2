package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Abdullah1738/deploytime/genesis"
	"github.com/Abdullah1738/deploytime/offchain/solana"
	"github.com/Abdullah1738/deploytime/offchain/solanarpc"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	if len(argv) == 0 || argv[0] == "-h" || argv[0] == "--help" || argv[0] == "help" {
		usage(os.Stdout)
		return nil
	}

	switch argv[0] {
	case "when":
		return cmdWhen(argv[1:])
	default:
		return fmt.Errorf("unknown command: %s", argv[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "deploytime: finds when a Solana program was first deployed")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deploytime when <program-id> [--rpc-url <url>] [--cache deploytime-cache.json] [--refresh] [--strict] [--human] [--json] [--interval 5s] [--base-delay 1s] [--max-attempts 5] [-v]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "By default the oldest transaction on the program account is taken as its")
	fmt.Fprintln(w, "deployment. Pass --strict to classify every transaction against the loader")
	fmt.Fprintln(w, "programs instead; that is slower (one fetch per transaction) but also correct")
	fmt.Fprintln(w, "for programs that were redeployed to the same address.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SOLANA_RPC_URL / HELIUS_RPC_URL / (HELIUS_API_KEY + HELIUS_CLUSTER)")
}

func cmdWhen(argv []string) error {
	fs := flag.NewFlagSet("when", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		rpcURL    string
		cachePath string

		refresh bool
		strict  bool
		human   bool
		jsonOut bool
		verbose bool

		intervalS   string
		baseDelayS  string
		maxAttempts int
	)

	fs.StringVar(&rpcURL, "rpc-url", "", "Override Solana RPC URL (default: env)")
	fs.StringVar(&cachePath, "cache", "deploytime-cache.json", "Path to the result cache (empty disables caching)")
	fs.BoolVar(&refresh, "refresh", false, "Bypass the cache and re-walk the history")
	fs.BoolVar(&strict, "strict", false, "Classify every transaction against the loader programs")
	fs.BoolVar(&human, "human", false, "Human-readable timestamp")
	fs.BoolVar(&jsonOut, "json", false, "JSON output")
	fs.BoolVar(&verbose, "v", false, "Verbose progress on stderr")
	fs.StringVar(&intervalS, "interval", "5s", "Delay between remote calls")
	fs.StringVar(&baseDelayS, "base-delay", "1s", "Base backoff delay after a rate-limit response")
	fs.IntVar(&maxAttempts, "max-attempts", genesis.DefaultMaxAttempts, "Max attempts per rate-limited call")

	if err := fs.Parse(argv); err != nil {
		return err
	}
	if len(fs.Args()) != 1 {
		return errors.New("exactly one program id is required")
	}
	programID := fs.Args()[0]

	interval, err := time.ParseDuration(intervalS)
	if err != nil || interval < 0 {
		return fmt.Errorf("invalid --interval: %q", intervalS)
	}
	baseDelay, err := time.ParseDuration(baseDelayS)
	if err != nil || baseDelay <= 0 {
		return fmt.Errorf("invalid --base-delay: %q", baseDelayS)
	}
	if maxAttempts <= 0 {
		return fmt.Errorf("invalid --max-attempts: %d", maxAttempts)
	}

	rpc, err := rpcClient(rpcURL)
	if err != nil {
		return err
	}

	var cache genesis.Cache
	if strings.TrimSpace(cachePath) != "" {
		fc, err := genesis.NewFileCache(cachePath)
		if err != nil {
			return err
		}
		cache = fc
	}

	resolver := &genesis.Resolver{
		Ledger:  rpc,
		Cache:   cache,
		Gate:    genesis.NewGate(interval),
		Retrier: genesis.NewRetrier(maxAttempts, baseDelay),
	}
	if verbose {
		resolver.Logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
		if pk, err := solana.ParsePubkey(programID); err == nil && !pk.OnCurve() {
			fmt.Fprintln(os.Stderr, "note: program id is off-curve (a derived address)")
		}
	}

	// The walk is sequential and may legitimately take a long while on busy
	// programs; it runs to completion or error, with no mid-walk timeout.
	res, err := resolver.FirstDeployment(context.Background(), programID, genesis.Options{
		ForceRefresh: refresh,
		Strict:       strict,
	})
	if err != nil {
		if errors.Is(err, genesis.ErrBlockTimeUnavailable) {
			fmt.Fprintf(os.Stderr, "warning: earliest signature %s has no finalized block time yet\n", res.EarliestSignature)
		}
		return err
	}

	return printResult(os.Stdout, res, human, jsonOut)
}

func rpcClient(override string) (*solanarpc.Client, error) {
	if raw := strings.TrimSpace(override); raw != "" {
		return solanarpc.New(raw, nil), nil
	}
	return solanarpc.ClientFromEnv()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, res genesis.Result, human, jsonOut bool) error {
	if jsonOut {
		return printJSON(w, struct {
			ProgramID         string `json:"program_id"`
			EarliestSignature string `json:"earliest_signature"`
			BlockTime         int64  `json:"block_time"`
			Timestamp         string `json:"timestamp"`
		}{
			ProgramID:         res.ProgramID,
			EarliestSignature: res.EarliestSignature,
			BlockTime:         res.BlockTime,
			Timestamp:         res.TimestampISO(),
		})
	}
	ts := res.TimestampISO()
	if human {
		ts = res.TimestampHuman()
	}
	_, err := fmt.Fprintf(w, "%s deployed %s (%s)\n", res.ProgramID, ts, res.EarliestSignature)
	return err
}
