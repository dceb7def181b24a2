// Package genesis resolves the first on-chain deployment of a Solana program:
// the earliest transaction in the program account's signature history, its
// block time, and its signature. The answer is immutable once known, so
// resolved results are cached by program id.
package genesis

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdullah1738/deploytime/offchain/solana"
	"github.com/Abdullah1738/deploytime/offchain/solanarpc"
)

var (
	ErrInvalidProgramID     = errors.New("invalid program id")
	ErrNoDeployment         = errors.New("no deployment transaction found")
	ErrBlockTimeUnavailable = errors.New("block time unavailable")
)

// Ledger is the remote capability set the resolver consumes, satisfied by
// *solanarpc.Client.
type Ledger interface {
	SignaturesForAddress(ctx context.Context, address string, limit int, before string) ([]solanarpc.SignatureInfo, error)
	TransactionDetails(ctx context.Context, signature string) (*solanarpc.Transaction, error)
}

type Options struct {
	// ForceRefresh bypasses the cache and re-walks the history.
	ForceRefresh bool
	// Strict classifies every transaction oldest-first and picks the first
	// one carrying a loader instruction. The default (best effort) takes the
	// oldest transaction in the account's history, which assumes a program
	// account's history begins with its deployment. That holds for programs
	// deployed once; redeployed upgradeable programs need Strict.
	Strict bool
}

type Resolver struct {
	Ledger  Ledger
	Cache   Cache
	Gate    *Gate
	Retrier *Retrier

	// Logf receives verbose progress lines; nil disables them.
	Logf func(format string, args ...any)
}

// Result is the outcome of one resolution. It is constructed once and never
// mutated.
type Result struct {
	ProgramID         string
	BlockTime         int64
	EarliestSignature string
}

func (r *Resolver) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

// remote issues one ledger call through the retrier, which re-acquires the
// gate on every attempt.
func (r *Resolver) remote(ctx context.Context, fn func(context.Context) error) error {
	retrier := r.Retrier
	if retrier == nil {
		retrier = &Retrier{}
	}
	return retrier.Do(ctx, func(ctx context.Context) error {
		return r.Gate.Do(ctx, fn)
	})
}

// FirstDeployment resolves when programID was first deployed.
//
// Cached answers with a block time short-circuit the walk unless
// opts.ForceRefresh is set. Otherwise the full signature history is walked
// backward, the deployment transaction is chosen per opts.Strict, and its
// block time is read from the fetched transaction. A transaction without a
// finalized block time yields ErrBlockTimeUnavailable with the signature
// still filled in, and nothing is cached.
func (r *Resolver) FirstDeployment(ctx context.Context, programID string, opts Options) (Result, error) {
	pk, err := solana.ParsePubkey(programID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidProgramID, programID)
	}
	id := pk.Base58()

	if !opts.ForceRefresh && r.Cache != nil {
		entry, ok, err := r.Cache.Read(id)
		if err != nil {
			r.logf("cache read failed: %v", err)
		}
		if ok && entry.BlockTime != 0 {
			r.logf("cache hit for %s", id)
			return Result{
				ProgramID:         id,
				BlockTime:         entry.BlockTime,
				EarliestSignature: entry.EarliestSignature,
			}, nil
		}
	}

	history, err := r.walk(ctx, id)
	if err != nil {
		return Result{}, err
	}
	r.logf("history complete: %d transactions", len(history))

	var chosen string
	var tx *solanarpc.Transaction
	if opts.Strict {
		chosen, tx, err = r.earliestDeployment(ctx, history)
		if err != nil {
			return Result{}, err
		}
	} else {
		chosen = history[0].Signature
	}

	if tx == nil {
		err = r.remote(ctx, func(ctx context.Context) error {
			var err error
			tx, err = r.Ledger.TransactionDetails(ctx, chosen)
			return err
		})
		if err != nil {
			return Result{}, err
		}
	}
	if tx == nil || tx.BlockTime == nil {
		return Result{ProgramID: id, EarliestSignature: chosen},
			fmt.Errorf("%w: %s", ErrBlockTimeUnavailable, chosen)
	}

	res := Result{
		ProgramID:         id,
		BlockTime:         *tx.BlockTime,
		EarliestSignature: chosen,
	}
	r.store(res)
	return res, nil
}

// earliestDeployment classifies history (oldest first) transaction by
// transaction and returns the first one carrying a loader instruction.
func (r *Resolver) earliestDeployment(ctx context.Context, history []solanarpc.SignatureInfo) (string, *solanarpc.Transaction, error) {
	for _, si := range history {
		var tx *solanarpc.Transaction
		err := r.remote(ctx, func(ctx context.Context) error {
			var err error
			tx, err = r.Ledger.TransactionDetails(ctx, si.Signature)
			return err
		})
		if err != nil {
			return "", nil, err
		}
		if IsDeployment(tx) {
			r.logf("deployment transaction: %s", si.Signature)
			return si.Signature, tx, nil
		}
	}
	return "", nil, ErrNoDeployment
}

// store writes the resolved answer unless the cache already holds it.
// Cache failures are logged and otherwise ignored.
func (r *Resolver) store(res Result) {
	if r.Cache == nil {
		return
	}
	entry, ok, err := r.Cache.Read(res.ProgramID)
	if err != nil {
		r.logf("cache read failed: %v", err)
	}
	if ok && entry.BlockTime == res.BlockTime && entry.EarliestSignature == res.EarliestSignature {
		return
	}
	if err := r.Cache.Write(res.ProgramID, CacheEntry{
		BlockTime:         res.BlockTime,
		EarliestSignature: res.EarliestSignature,
	}); err != nil {
		r.logf("cache write failed: %v", err)
	}
}
