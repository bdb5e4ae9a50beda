// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddress(t *testing.T) {
	seeds := [][]byte{[]byte("auction"), meter.AuctionProgramID.Bytes()}

	addr, bump, err := meter.DeriveAddress(seeds, meter.AuctionProgramID)
	require.NoError(t, err)

	expected, expectedBump, err := solana.FindProgramAddress(seeds, meter.AuctionProgramID)
	require.NoError(t, err)
	assert.Equal(t, expected, addr)
	assert.Equal(t, expectedBump, bump)

	// memoized result
	again, againBump, err := meter.DeriveAddress(seeds, meter.AuctionProgramID)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)

	created, err := meter.CreateAddress(append(seeds, []byte{bump}), meter.AuctionProgramID)
	require.NoError(t, err)
	assert.Equal(t, addr, created)
}

func TestDeriveAddressSeedBoundaries(t *testing.T) {
	a, _, err := meter.DeriveAddress([][]byte{[]byte("ab"), []byte("c")}, meter.AuctionProgramID)
	require.NoError(t, err)
	b, _, err := meter.DeriveAddress([][]byte{[]byte("a"), []byte("bc")}, meter.AuctionProgramID)
	require.NoError(t, err)

	// cached entries are keyed per seed split
	expectedA, _, _ := solana.FindProgramAddress([][]byte{[]byte("ab"), []byte("c")}, meter.AuctionProgramID)
	expectedB, _, _ := solana.FindProgramAddress([][]byte{[]byte("a"), []byte("bc")}, meter.AuctionProgramID)
	assert.Equal(t, expectedA, a)
	assert.Equal(t, expectedB, b)
}

func TestDeriveAddressDependsOnProgram(t *testing.T) {
	seeds := [][]byte{[]byte("escrow")}
	a, _, err := meter.DeriveAddress(seeds, meter.AuctionProgramID)
	require.NoError(t, err)
	b, _, err := meter.DeriveAddress(seeds, meter.TokenProgramID)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDeriveAddressInvalidSeeds(t *testing.T) {
	_, _, err := meter.DeriveAddress([][]byte{make([]byte, 33)}, meter.AuctionProgramID)
	assert.ErrorIs(t, err, meter.ErrAddressMismatch)
}

func TestVerifyAddress(t *testing.T) {
	assert.NoError(t, meter.VerifyAddress(meter.TokenProgramID, meter.TokenProgramID))
	err := meter.VerifyAddress(meter.TokenProgramID, meter.SystemProgramID)
	assert.ErrorIs(t, err, meter.ErrAddressMismatch)
}

func TestProgramErrorKind(t *testing.T) {
	err := meter.NewProgramError(meter.ErrResourceFault, 42, "boom")
	assert.ErrorIs(t, err, meter.ErrResourceFault)
	assert.NotErrorIs(t, err, meter.ErrInvalidParameter)
	assert.Equal(t, meter.ErrResourceFault, meter.KindOf(err))
	assert.Nil(t, meter.KindOf(assert.AnError))
}
