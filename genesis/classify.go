package genesis

import (
	"github.com/Abdullah1738/deploytime/offchain/solana"
	"github.com/Abdullah1738/deploytime/offchain/solanarpc"
)

// IsDeployment reports whether the transaction installs program code, i.e.
// whether any of its instructions targets one of the loader programs. Pure:
// it only inspects an already-fetched transaction.
func IsDeployment(tx *solanarpc.Transaction) bool {
	if tx == nil {
		return false
	}
	for _, ins := range tx.Instructions {
		pk, err := solana.ParsePubkey(ins.ProgramID)
		if err != nil {
			continue
		}
		if solana.IsLoader(pk) {
			return true
		}
	}
	return false
}
