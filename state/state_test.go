// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/lvldb"
	"github.com/meterio/meter-auction/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateReadWrite(t *testing.T) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	defer kv.Close()

	st := state.New(kv)
	addr := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	assert.False(t, st.Exists(addr))
	assert.Equal(t, solana.SystemProgramID, st.GetOwner(addr))

	st.SetAccount(addr, &state.Account{Lamports: 10, Owner: owner, Data: []byte{1, 2, 3}})
	assert.True(t, st.Exists(addr))
	assert.Equal(t, uint64(10), st.GetLamports(addr))
	assert.Equal(t, owner, st.GetOwner(addr))

	// returned accounts are copies
	a := st.GetAccount(addr)
	a.Data[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, st.GetData(addr))

	st.Delete(addr)
	assert.False(t, st.Exists(addr))
	assert.Nil(t, st.Err())
}

func TestStateRevert(t *testing.T) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	defer kv.Close()

	st := state.New(kv)
	addr := solana.NewWallet().PublicKey()

	st.SetAccount(addr, &state.Account{Lamports: 1, Owner: solana.SystemProgramID})
	chk := st.NewCheckpoint()
	st.SetAccount(addr, &state.Account{Lamports: 2, Owner: solana.SystemProgramID})
	inner := st.NewCheckpoint()
	st.SetAccount(addr, &state.Account{Lamports: 3, Owner: solana.SystemProgramID})

	st.RevertTo(inner)
	assert.Equal(t, uint64(2), st.GetLamports(addr))
	st.RevertTo(chk)
	assert.Equal(t, uint64(1), st.GetLamports(addr))
	st.RevertTo(0)
	assert.False(t, st.Exists(addr))
}

func TestStageCommit(t *testing.T) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	defer kv.Close()

	addr1 := solana.NewWallet().PublicKey()
	addr2 := solana.NewWallet().PublicKey()

	st := state.NewCreator(kv).NewState()
	st.SetAccount(addr1, &state.Account{Lamports: 100, Owner: solana.SystemProgramID})
	st.SetAccount(addr2, &state.Account{Lamports: 5, Owner: solana.TokenProgramID, Data: make([]byte, 165)})

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	h1, err := stage.Hash()
	require.NoError(t, err)
	h2, err := stage.Commit()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// uncommitted changes of a new state are invisible, committed ones are not
	st2 := state.New(kv)
	assert.Equal(t, uint64(100), st2.GetLamports(addr1))
	assert.Equal(t, solana.TokenProgramID, st2.GetOwner(addr2))
	assert.Len(t, st2.GetData(addr2), 165)

	st2.SetAccount(addr1, &state.Account{Lamports: 1, Owner: solana.SystemProgramID})
	assert.Equal(t, uint64(100), state.New(kv).GetLamports(addr1))
}

func TestStageCommitBatch(t *testing.T) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	defer kv.Close()

	addr := solana.NewWallet().PublicKey()
	st := state.New(kv)
	st.SetAccount(addr, &state.Account{Lamports: 42, Owner: solana.SystemProgramID})

	batch := kv.NewBatch()
	require.NoError(t, batch.Put([]byte("extra"), []byte{1}))
	_, err = st.Stage().CommitBatch(batch)
	require.NoError(t, err)

	v, err := kv.Get([]byte("extra"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, v)
	assert.Equal(t, uint64(42), state.New(kv).GetLamports(addr))
}
