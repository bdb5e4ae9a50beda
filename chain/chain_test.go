// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain_test

import (
	"context"
	"testing"

	"github.com/meterio/meter-auction/chain"
	"github.com/meterio/meter-auction/genesis"
	"github.com/meterio/meter-auction/kv"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/lvldb"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/preset"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/meterio/meter-auction/script/system"
	"github.com/meterio/meter-auction/script/token"
	"github.com/meterio/meter-auction/tests"
	"github.com/meterio/meter-auction/tx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initChain(t *testing.T) (*chain.Chain, *lvldb.LevelDB, *logdb.LogDB) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	g, err := genesis.New(preset.TestPresetConfig)
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })

	c, err := chain.New(kv, g, script.NewScriptEngine(), logDB)
	require.NoError(t, err)
	return c, kv, logDB
}

func TestGenesis(t *testing.T) {
	c, kv, _ := initChain(t)
	assert.Equal(t, uint64(0), c.BestSlot())

	st := c.NewState()
	assert.Equal(t, uint64(100e9), st.GetLamports(tests.SellerAddr))
	assert.True(t, st.GetAccount(c.Genesis().ProgramID()).Executable)

	g, err := genesis.New(preset.TestPresetConfig)
	require.NoError(t, err)
	_, err = chain.New(kv, g, script.NewScriptEngine(), nil)
	assert.NoError(t, err, "reopen with the same genesis")

	dev, err := genesis.New(preset.DevPresetConfig)
	require.NoError(t, err)
	_, err = chain.New(kv, dev, script.NewScriptEngine(), nil)
	assert.ErrorIs(t, err, chain.ErrGenesisMismatch)
}

func TestExecuteCommits(t *testing.T) {
	c, kv, logDB := initChain(t)
	c.SetClock(func() uint64 { return 1_700_000_000 })

	ix, _, err := tests.BuildDelegateIx(c.Genesis().ProgramID(), tests.SellerAddr, tests.SellerNftAccount)
	require.NoError(t, err)
	trx, err := tests.BuildTx(tests.SellerKey, 1, []*tx.Instruction{ix})
	require.NoError(t, err)

	receipt, err := c.Execute(context.Background(), trx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), receipt.Slot)
	assert.Equal(t, uint64(1), c.BestSlot())

	clock, err := meter.DecodeClock(c.NewState().GetData(meter.SysVarClockPubkey))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), clock.Slot)
	assert.Equal(t, int64(1_700_000_000), clock.UnixTimestamp)

	stored, err := c.GetReceipt(trx.ID())
	require.NoError(t, err)
	assert.Equal(t, receipt.TxID, stored.TxID)
	assert.Equal(t, receipt.Slot, stored.Slot)
	require.Len(t, stored.Outputs, 1)
	require.Len(t, stored.Outputs[0].Events, 1)
	assert.Equal(t, receipt.Outputs[0].Events[0].Name, stored.Outputs[0].Events[0].Name)
	assert.Equal(t, receipt.Outputs[0].Events[0].Data, stored.Outputs[0].Events[0].Data)

	_, err = c.GetReceipt(meter.Bytes32{1})
	assert.True(t, c.IsNotFound(err))

	_, err = c.Execute(context.Background(), trx)
	assert.ErrorIs(t, err, chain.ErrTxExists)

	txID := trx.ID()
	events, err := logDB.FilterEvents(context.Background(), &logdb.EventFilter{TxID: &txID})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, auction.EventAuthorityDelegated, events[0].Name)
	assert.Equal(t, tests.SellerAddr, events[0].TxOrigin)
	assert.Equal(t, uint64(1_700_000_000), events[0].SlotTime)

	// a reopened ledger continues from the committed slot
	g, err := genesis.New(preset.TestPresetConfig)
	require.NoError(t, err)
	reopened, err := chain.New(kv, g, script.NewScriptEngine(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), reopened.BestSlot())
}

func TestExecuteFailureLeavesLedger(t *testing.T) {
	c, _, _ := initChain(t)

	ix := system.NewTransferInstruction(tests.PoorAddr, tests.OtherAddr, 1e9)
	trx, err := tests.BuildTx(tests.PoorKey, 1, []*tx.Instruction{ix})
	require.NoError(t, err)

	_, err = c.Execute(context.Background(), trx)
	assert.ErrorIs(t, err, system.ErrResultWithNegativeLamports)
	assert.Equal(t, uint64(0), c.BestSlot())
	assert.Equal(t, uint64(1000), c.NewState().GetLamports(tests.PoorAddr))

	_, err = c.GetReceipt(trx.ID())
	assert.True(t, c.IsNotFound(err))
}

// flakyStore counts batch writes and fails them while fail is set.
type flakyStore struct {
	kv.GetPutter
	fail   bool
	writes int
}

func (s *flakyStore) NewBatch() kv.Batch {
	return &flakyBatch{Batch: s.GetPutter.NewBatch(), store: s}
}

type flakyBatch struct {
	kv.Batch
	store *flakyStore
}

func (b *flakyBatch) Write() error {
	b.store.writes++
	if b.store.fail {
		return errors.New("disk full")
	}
	return b.Batch.Write()
}

func TestExecuteWritesOnce(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	store := &flakyStore{GetPutter: db}
	g, err := genesis.New(preset.TestPresetConfig)
	require.NoError(t, err)
	c, err := chain.New(store, g, script.NewScriptEngine(), nil)
	require.NoError(t, err)

	ix, _, err := tests.BuildDelegateIx(g.ProgramID(), tests.SellerAddr, tests.SellerNftAccount)
	require.NoError(t, err)
	trx, err := tests.BuildTx(tests.SellerKey, 1, []*tx.Instruction{ix})
	require.NoError(t, err)

	// a lost write loses the accounts together with the receipt
	store.fail = true
	_, err = c.Execute(context.Background(), trx)
	require.Error(t, err)
	assert.Equal(t, uint64(0), c.BestSlot())
	_, err = c.GetReceipt(trx.ID())
	assert.True(t, c.IsNotFound(err))
	mint, err := token.DecodeMint(c.NewState().GetData(tests.NftMint))
	require.NoError(t, err)
	assert.Equal(t, tests.SellerAddr, *mint.MintAuthority)

	store.fail = false
	store.writes = 0
	_, err = c.Execute(context.Background(), trx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.writes)
	assert.Equal(t, uint64(1), c.BestSlot())
	_, err = c.GetReceipt(trx.ID())
	assert.NoError(t, err)
}
