// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"testing"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxArraySizeFor(t *testing.T) {
	assert.Equal(t, uint64(4), auction.MaxArraySizeFor(1))
	assert.Equal(t, uint64(64), auction.MaxArraySizeFor(16))
	assert.Equal(t, uint64(34), auction.MaxArraySizeFor(17))
	assert.Equal(t, uint64(200), auction.MaxArraySizeFor(100))

	for n := uint64(1); n < 1000; n++ {
		assert.GreaterOrEqual(t, auction.MaxArraySizeFor(n), n, "n=%d", n)
	}
}

func TestSizeFor(t *testing.T) {
	size, err := auction.SizeFor(auction.Unlimited{})
	require.NoError(t, err)
	assert.Equal(t, auction.BASE_AUCTION_DATA_SIZE, size)
	assert.Equal(t, 182, size)

	size, err = auction.SizeFor(auction.Capped{N: 1})
	require.NoError(t, err)
	assert.Equal(t, 182+4*40, size)

	size, err = auction.SizeFor(auction.Capped{N: 20})
	require.NoError(t, err)
	assert.Equal(t, 182+40*40, size)

	prev := 0
	for n := uint64(1); n <= 64; n++ {
		size, err := auction.SizeFor(auction.Capped{N: n})
		require.NoError(t, err)
		assert.Equal(t, auction.BASE_AUCTION_DATA_SIZE+int(auction.MaxArraySizeFor(n))*auction.BID_RECORD_SIZE, size)
		if n != 17 {
			// the slack factor drops from 4 to 2 after 16 winners
			assert.Greater(t, size, prev, "n=%d", n)
		}
		prev = size
	}
}

func TestSizeForInvalid(t *testing.T) {
	_, err := auction.SizeFor(auction.Capped{N: 0})
	assert.ErrorIs(t, err, auction.ErrInvalidWinnerLimit)
	assert.ErrorIs(t, err, meter.ErrInvalidParameter)

	_, err = auction.SizeFor(auction.Capped{N: meter.MaxPermittedDataLength})
	assert.ErrorIs(t, err, meter.ErrInvalidParameter)

	_, err = auction.SizeFor(nil)
	assert.ErrorIs(t, err, meter.ErrInvalidParameter)
}
