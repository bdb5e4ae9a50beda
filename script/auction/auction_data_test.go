// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullAuctionData(limit auction.WinnerLimit, bids int) *auction.AuctionData {
	at, gap, ended, last := int64(1700000000), int64(600), int64(1700000600), int64(1700000300)
	list := make([]auction.Bid, bids)
	for i := range list {
		list[i] = auction.Bid{Bidder: solana.PublicKeyFromBytes([]byte{byte(i + 1)}), Amount: uint64(1000 + i)}
	}
	var bs auction.BidState
	switch l := limit.(type) {
	case auction.Capped:
		bs = &auction.EnglishAuction{BidList: list, Max: l.N}
	case auction.Unlimited:
		bs = &auction.OpenEdition{BidList: list}
	}
	return &auction.AuctionData{
		Authority:     meter.TokenProgramID,
		BidState:      bs,
		EndAuctionAt:  &at,
		EndAuctionGap: &gap,
		EndedAt:       &ended,
		LastBid:       &last,
		PriceFloor:    auction.MinimumPrice(5),
		State:         auction.Ended,
		TokenMint:     meter.SystemProgramID,
	}
}

func TestAuctionDataFitsReservedSize(t *testing.T) {
	for _, n := range []uint64{1, 2, 16, 17, 100} {
		limit := auction.Capped{N: n}
		size, err := auction.SizeFor(limit)
		require.NoError(t, err)

		// every option set and every bid slot used
		data := fullAuctionData(limit, int(auction.MaxArraySizeFor(n)))
		buf := make([]byte, size)
		require.NoError(t, data.Serialize(buf), "n=%d", n)

		decoded, err := auction.DecodeAuctionData(buf)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}

	size, err := auction.SizeFor(auction.Unlimited{})
	require.NoError(t, err)
	require.NoError(t, fullAuctionData(auction.Unlimited{}, 0).Serialize(make([]byte, size)))
}

func TestAuctionDataTooLarge(t *testing.T) {
	size, err := auction.SizeFor(auction.Capped{N: 1})
	require.NoError(t, err)

	data := fullAuctionData(auction.Capped{N: 1}, int(auction.MaxArraySizeFor(1))+4)
	err = data.Serialize(make([]byte, size))
	assert.ErrorIs(t, err, auction.ErrRecordTooLarge)
	assert.ErrorIs(t, err, meter.ErrSerializationFault)
}

func TestSerializeZeroFills(t *testing.T) {
	buf := make([]byte, 400)
	for i := range buf {
		buf[i] = 0xff
	}
	data := &auction.AuctionData{BidState: &auction.OpenEdition{}}
	require.NoError(t, data.Serialize(buf))

	encoded, err := data.Encode()
	require.NoError(t, err)
	assert.Equal(t, auction.KeyAuctionDataV1, buf[0])
	for i := len(encoded); i < len(buf); i++ {
		require.Zero(t, buf[i], "byte %d", i)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	data := fullAuctionData(auction.Capped{N: 2}, 1)
	encoded, err := data.Encode()
	require.NoError(t, err)

	decoded, err := auction.DecodeAuctionData(append(encoded, 7, 7, 7))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestDecodeWrongKey(t *testing.T) {
	ext := &auction.AuctionDataExtended{NftMint: meter.TokenProgramID, NftAmount: 1}
	buf := make([]byte, auction.MAX_AUCTION_DATA_EXTENDED_SIZE)
	require.NoError(t, ext.Serialize(buf))

	_, err := auction.DecodeAuctionData(buf)
	assert.ErrorIs(t, err, auction.ErrDataTypeMismatch)
	assert.ErrorIs(t, err, meter.ErrSerializationFault)

	_, err = auction.DecodeAuctionDataExtended(make([]byte, 10))
	assert.ErrorIs(t, err, auction.ErrDataTypeMismatch)
}

func TestExtendedFitsReservedSize(t *testing.T) {
	tick, gap, instant := uint64(1), uint8(100), uint64(99)
	name := auction.NewAuctionName("a name that is much longer than thirty two bytes")
	ext := &auction.AuctionDataExtended{
		NftMint:               meter.TokenProgramID,
		NftAmount:             1,
		TotalUncancelledBids:  12,
		TickSize:              &tick,
		GapTickSizePercentage: &gap,
		InstantSalePrice:      &instant,
		Name:                  &name,
	}
	buf := make([]byte, auction.MAX_AUCTION_DATA_EXTENDED_SIZE)
	require.NoError(t, ext.Serialize(buf))

	decoded, err := auction.DecodeAuctionDataExtended(buf)
	require.NoError(t, err)
	assert.Equal(t, ext, decoded)
	assert.Equal(t, "a name that is much longer than ", decoded.Name.String())
}

func TestAuctionStateTransitions(t *testing.T) {
	assert.True(t, auction.Created.CanTransition(auction.Started))
	assert.True(t, auction.Started.CanTransition(auction.Ended))
	assert.False(t, auction.Created.CanTransition(auction.Ended))
	assert.False(t, auction.Ended.CanTransition(auction.Started))
	assert.False(t, auction.Started.CanTransition(auction.Created))

	next, err := auction.Created.Transition(auction.Started)
	require.NoError(t, err)
	assert.Equal(t, auction.Started, next)

	_, err = auction.Ended.Transition(auction.Created)
	assert.ErrorIs(t, err, auction.ErrInvalidStateTransition)
}

func TestPriceFloor(t *testing.T) {
	assert.Equal(t, uint64(1234), auction.MinimumPrice(1234).Minimum())
	assert.Zero(t, auction.PriceFloor{Kind: auction.PriceFloorBlinded}.Minimum())
}
