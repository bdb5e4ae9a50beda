// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAuctionInstruction(t *testing.T) {
	at := int64(1700000000)
	instant := uint64(50)
	args := &auction.CreateAuctionArgs{
		Winners:          auction.Capped{N: 3},
		EndAuctionAt:     &at,
		TokenMint:        meter.TokenProgramID,
		Authority:        meter.SystemProgramID,
		Resource:         resource,
		PriceFloor:       auction.PriceFloor{Kind: auction.PriceFloorNone},
		NftMint:          meter.SysVarClockPubkey,
		NftAmount:        1,
		InstantSalePrice: &instant,
	}
	payer := meter.SysVarRentPubkey
	accounts, err := auction.DeriveCreateAuctionAccounts(programID, payer, resource, args.NftMint, meter.SysVarClockPubkey)
	require.NoError(t, err)

	ix, err := auction.NewCreateAuctionInstruction(programID, accounts, args)
	require.NoError(t, err)
	assert.Equal(t, programID, ix.ProgramID)
	require.Len(t, ix.Accounts, 10)
	assert.True(t, ix.Accounts[0].IsSigner)
	assert.Equal(t, accounts.Auction, ix.Accounts[1].PublicKey)
	assert.Equal(t, accounts.AuctionNftAccount, ix.Accounts[6].PublicKey)
	assert.Equal(t, meter.SystemProgramID, ix.Accounts[9].PublicKey)
	assert.Equal(t, auction.OP_CREATE_AUCTION, ix.Data[0])

	dec := bin.NewBorshDecoder(ix.Data[1:])
	var decoded auction.CreateAuctionArgs
	require.NoError(t, decoded.UnmarshalWithDecoder(dec))
	assert.Equal(t, args, &decoded)
	assert.Zero(t, dec.Remaining())
}

func TestDecodeUnknownWinnerLimit(t *testing.T) {
	data := make([]byte, 9)
	data[0] = 7
	var args auction.CreateAuctionArgs
	err := args.UnmarshalWithDecoder(bin.NewBorshDecoder(data))
	assert.ErrorIs(t, err, auction.ErrUnknownVariant)
}

func TestDelegateInstruction(t *testing.T) {
	ix, err := auction.NewDelegateInstruction(programID, &auction.DelegateAccounts{
		Creator:      meter.SysVarRentPubkey,
		Mint:         meter.SysVarClockPubkey,
		Escrow:       meter.SystemProgramID,
		TokenAccount: meter.NativeLoaderID,
		TokenProgram: meter.TokenProgramID,
	}, &auction.DelegateArgs{EscrowNonce: 254})
	require.NoError(t, err)
	assert.Equal(t, []byte{auction.OP_DELEGATE, 254}, ix.Data)
	require.Len(t, ix.Accounts, 5)
	assert.True(t, ix.Accounts[0].IsSigner)
	assert.True(t, ix.Accounts[1].IsWritable)
	assert.True(t, ix.Accounts[3].IsWritable)
}
