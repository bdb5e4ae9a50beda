// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/lvldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCacheSkipsLoadOverlappingCommit(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	addr := solana.NewWallet().PublicKey()

	// a reader loads the account before a commit lands
	gen := acCache.generation()
	stale, err := loadAccount(db, addr)
	require.NoError(t, err)

	st := New(db)
	st.SetAccount(addr, &Account{Lamports: 7, Owner: solana.SystemProgramID})
	_, err = st.Stage().Commit()
	require.NoError(t, err)

	assert.False(t, acCache.addIfCurrent(addr, stale, db, gen))
	assert.Equal(t, uint64(7), New(db).GetLamports(addr))
}

func TestAccountCacheReadThrough(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	addr := solana.NewWallet().PublicKey()

	st := New(db)
	st.SetAccount(addr, &Account{Lamports: 3, Owner: solana.SystemProgramID})
	_, err = st.Stage().Commit()
	require.NoError(t, err)

	acCache.cache.Remove(addr)
	a, err := acCache.Get(addr, db)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), a.Lamports)
	_, ok := acCache.cache.Get(addr)
	assert.True(t, ok)
}
