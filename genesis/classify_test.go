package genesis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Abdullah1738/deploytime/offchain/solana"
	"github.com/Abdullah1738/deploytime/offchain/solanarpc"
)

func txWithPrograms(ids ...string) *solanarpc.Transaction {
	tx := &solanarpc.Transaction{}
	for _, id := range ids {
		tx.Instructions = append(tx.Instructions, solanarpc.Instruction{ProgramID: id})
	}
	return tx
}

func TestIsDeployment_LoaderInstruction(t *testing.T) {
	for _, loader := range solana.LoaderIDs() {
		tx := txWithPrograms(solana.SystemProgramID.Base58(), loader.Base58())
		require.True(t, IsDeployment(tx), "loader %s", loader.Base58())
	}
}

func TestIsDeployment_NoMatch(t *testing.T) {
	require.False(t, IsDeployment(txWithPrograms(solana.SystemProgramID.Base58())))
}

func TestIsDeployment_EmptyInstructionList(t *testing.T) {
	require.False(t, IsDeployment(&solanarpc.Transaction{}))
	require.False(t, IsDeployment(nil))
}

func TestIsDeployment_SkipsUnparseableProgramIDs(t *testing.T) {
	tx := txWithPrograms("not-a-pubkey", solana.BPFLoader2ID.Base58())
	require.True(t, IsDeployment(tx))
}
