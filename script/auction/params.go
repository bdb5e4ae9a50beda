// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

// seed tags of the program derived addresses
const (
	PREFIX   = "auction"
	EXTENDED = "extended"
	NFT      = "nft"
	ESCROW   = "escrow"
)

// record sizes in bytes
const (
	// fixed part of AuctionData, bid state header included
	BASE_AUCTION_DATA_SIZE = 32 + 32 + 32 + 9 + 9 + 9 + 9 + 1 + 32 + 1 + 8 + 8

	// bidder + amount
	BID_RECORD_SIZE = 32 + 8

	// nft_mint, nft_amount, total_uncancelled_bids, tick_size, gap percentage,
	// instant_sale_price, name and reserved space for additive fields
	MAX_AUCTION_DATA_EXTENDED_SIZE = 32 + 8 + 8 + 9 + 2 + 9 + 33 + 158

	// NAME_LENGTH is the fixed length of an auction name.
	NAME_LENGTH = 32
)

// record keys, the first byte of each record
const (
	KeyUninitialized         uint8 = 0
	KeyAuctionDataV1         uint8 = 1
	KeyAuctionDataExtendedV1 uint8 = 2
)

// instruction tags
const (
	OP_CREATE_AUCTION = uint8(0)
	OP_DELEGATE       = uint8(1)
)

// event names
const (
	EventAuctionCreated     = "AuctionCreated"
	EventAuthorityDelegated = "AuthorityDelegated"
)

func GetOpName(op uint8) string {
	switch op {
	case OP_CREATE_AUCTION:
		return "CreateAuction"
	case OP_DELEGATE:
		return "Delegate"
	default:
		return "Unknown"
	}
}
