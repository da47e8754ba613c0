package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_ZeroValue(t *testing.T) {
	var s State
	assert.Equal(t, uint64(0), s.Balance("anyone"))
	assert.Equal(t, "", s.Name)
	assert.Equal(t, uint64(0), s.TotalSupply)
	assert.Empty(t, s.Accounts())
}

func TestState_InitializeSupply(t *testing.T) {
	s := State{}.InitializeSupply("T", "A", "TICK", 1000)

	assert.Equal(t, uint64(1000), s.Balance("A"))
	assert.Equal(t, uint64(0), s.Balance("B"))
	assert.Equal(t, "T", s.Name)
	assert.Equal(t, "TICK", s.Ticker)
	assert.Equal(t, uint64(1000), s.TotalSupply)
}

func TestState_ReinitializeDiscardsBalances(t *testing.T) {
	s := State{}.InitializeSupply("T", "A", "TICK", 1000)
	s = s.Transfer("A", "B", 300)

	s = s.InitializeSupply("U", "C", "UTK", 50)

	assert.Equal(t, uint64(0), s.Balance("A"))
	assert.Equal(t, uint64(0), s.Balance("B"))
	assert.Equal(t, uint64(50), s.Balance("C"))
	assert.Equal(t, []Account{{Address: "C", Balance: 50}}, s.Accounts())
}

func TestState_TransferMovesBalance(t *testing.T) {
	s := State{}.InitializeSupply("T", "A", "TICK", 1000)
	next := s.Transfer("A", "B", 300)

	assert.Equal(t, uint64(700), next.Balance("A"))
	assert.Equal(t, uint64(300), next.Balance("B"))
	assert.Equal(t, uint64(1000), s.Balance("A"), "receiver must be untouched")
	assert.Equal(t, uint64(0), s.Balance("B"))
}

func TestState_TransferInsufficientTraps(t *testing.T) {
	s := State{}.InitializeSupply("T", "A", "TICK", 1000).Transfer("A", "B", 300)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		trapErr, ok := r.(*TrapError)
		require.True(t, ok)
		assert.Equal(t, "Insufficient amount", trapErr.Message)
		assert.Equal(t, uint64(700), s.Balance("A"))
		assert.Equal(t, uint64(300), s.Balance("B"))
	}()
	s.Transfer("A", "B", 800)
}

func TestState_ZeroTransferCreatesAccounts(t *testing.T) {
	s := State{}.Transfer("X", "Y", 0)

	assert.Equal(t, []Account{{Address: "X"}, {Address: "Y"}}, s.Accounts())
	assert.Equal(t, uint64(0), s.Balance("X"))
}

func TestState_SelfTransfer(t *testing.T) {
	s := State{}.InitializeSupply("T", "A", "TICK", 10).Transfer("A", "A", 10)
	assert.Equal(t, uint64(10), s.Balance("A"))
}

func TestState_SumEqualsSupplyAfterTransfers(t *testing.T) {
	s := State{}.InitializeSupply("T", "A", "TICK", 1000)
	s = s.Transfer("A", "B", 250)
	s = s.Transfer("B", "C", 100)
	s = s.Transfer("C", "A", 40)

	var sum uint64
	for _, a := range s.Accounts() {
		sum += a.Balance
	}
	assert.Equal(t, s.TotalSupply, sum)
}
