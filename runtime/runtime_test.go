// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/runtime"
	"github.com/meterio/meter-auction/script/system"
	"github.com/meterio/meter-auction/tests"
	"github.com/meterio/meter-auction/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T) *tests.TestEnv {
	env, err := tests.NewTestEnv()
	require.NoError(t, err)
	return env
}

func TestExecuteTransfer(t *testing.T) {
	env := newEnv(t)
	from := env.State.GetLamports(tests.SellerAddr)
	to := env.State.GetLamports(tests.OtherAddr)

	receipt, err := env.Execute(tests.SellerKey, []*tx.Instruction{
		system.NewTransferInstruction(tests.SellerAddr, tests.OtherAddr, 500),
	})
	require.NoError(t, err)
	assert.Len(t, receipt.Outputs, 1)
	assert.Equal(t, uint64(1), receipt.Slot)
	assert.Equal(t, from-500, env.State.GetLamports(tests.SellerAddr))
	assert.Equal(t, to+500, env.State.GetLamports(tests.OtherAddr))
}

func TestReadonlyAccountModified(t *testing.T) {
	env := newEnv(t)
	ix := system.NewTransferInstruction(tests.SellerAddr, tests.OtherAddr, 500)
	ix.Accounts[1].IsWritable = false
	before := env.Snapshot(tests.SellerAddr, tests.OtherAddr)

	_, err := env.Execute(tests.SellerKey, []*tx.Instruction{ix})
	assert.ErrorIs(t, err, runtime.ErrReadonlyDataModified)
	for k, acc := range before {
		assert.True(t, acc.Equal(env.State.GetAccount(k)))
	}
}

func TestTransactionIsAtomic(t *testing.T) {
	env := newEnv(t)
	before := env.Snapshot(tests.SellerAddr, tests.OtherAddr)

	_, err := env.Execute(tests.SellerKey, []*tx.Instruction{
		system.NewTransferInstruction(tests.SellerAddr, tests.OtherAddr, 500),
		system.NewTransferInstruction(tests.SellerAddr, tests.OtherAddr, 1<<62),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, meter.ErrResourceFault)
	assert.Contains(t, err.Error(), "instruction 1")
	for k, acc := range before {
		assert.True(t, acc.Equal(env.State.GetAccount(k)), "account %s changed", k)
	}
}

func TestUnknownProgram(t *testing.T) {
	env := newEnv(t)
	ix := tx.NewInstruction(tests.OtherAddr, solana.AccountMetaSlice{
		solana.NewAccountMeta(tests.SellerAddr, true, true),
	}, []byte{0})

	_, err := env.Execute(tests.SellerKey, []*tx.Instruction{ix})
	assert.ErrorIs(t, err, runtime.ErrProgramNotExecutable)
}

func TestBadSignature(t *testing.T) {
	env := newEnv(t)
	trx, err := tests.BuildTx(tests.SellerKey, 1, []*tx.Instruction{
		system.NewTransferInstruction(tests.SellerAddr, tests.OtherAddr, 500),
	})
	require.NoError(t, err)

	// signed by the wrong key
	forged, err := tests.BuildTx(tests.OtherKey, 1, []*tx.Instruction{
		system.NewTransferInstruction(tests.OtherAddr, tests.SellerAddr, 500),
	})
	require.NoError(t, err)
	trx = trx.WithSignatures(forged.Signatures())

	_, err = env.Runtime.ExecuteTransaction(context.Background(), trx)
	assert.ErrorIs(t, err, meter.ErrAuthorizationFailure)
}

func TestCanceledContext(t *testing.T) {
	env := newEnv(t)
	trx, err := tests.BuildTx(tests.SellerKey, 1, []*tx.Instruction{
		system.NewTransferInstruction(tests.SellerAddr, tests.OtherAddr, 500),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	before := env.State.GetLamports(tests.SellerAddr)
	_, err = env.Runtime.ExecuteTransaction(ctx, trx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, env.State.GetLamports(tests.SellerAddr))
}

func TestSyncClock(t *testing.T) {
	env := newEnv(t)
	env.Runtime.Context().Slot = 42
	env.Runtime.Context().Time = 1700000000
	env.Runtime.SyncClock()

	clock, err := meter.DecodeClock(env.State.GetData(meter.SysVarClockPubkey))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), clock.Slot)
	assert.Equal(t, int64(1700000000), clock.UnixTimestamp)
}
