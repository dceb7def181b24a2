package genesis

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdullah1738/deploytime/offchain/solanarpc"
)

var ErrNoTransactions = errors.New("no transactions found for program")

// signaturePageLimit is the RPC maximum for one getSignaturesForAddress page.
const signaturePageLimit = 1000

// walk pages backward through the signature history of address: the first
// call has no cursor, every later call passes the last signature of the
// previous page as the before cursor, so each page is strictly older than
// the one before it. The walk stops on an empty page or a short page. An
// empty first page means the account has no history at all.
//
// The returned slice is reordered oldest-first.
func (r *Resolver) walk(ctx context.Context, address string) ([]solanarpc.SignatureInfo, error) {
	var pages [][]solanarpc.SignatureInfo
	before := ""
	total := 0
	for {
		var batch []solanarpc.SignatureInfo
		err := r.remote(ctx, func(ctx context.Context) error {
			var err error
			batch, err = r.Ledger.SignaturesForAddress(ctx, address, signaturePageLimit, before)
			return err
		})
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			if total == 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoTransactions, address)
			}
			break
		}
		pages = append(pages, batch)
		total += len(batch)
		r.logf("fetched %d signatures (%d total)", len(batch), total)
		if len(batch) < signaturePageLimit {
			break
		}
		before = batch[len(batch)-1].Signature
	}

	out := make([]solanarpc.SignatureInfo, 0, total)
	for i := len(pages) - 1; i >= 0; i-- {
		page := pages[i]
		for j := len(page) - 1; j >= 0; j-- {
			out = append(out, page[j])
		}
	}
	return out, nil
}
