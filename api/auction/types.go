// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/script/auction"
)

type Addresses struct {
	Resource solana.PublicKey `json:"resource"`
	Auction  solana.PublicKey `json:"auction"`
	Extended solana.PublicKey `json:"extended"`
	Custody  solana.PublicKey `json:"custody"`
}

type Bid struct {
	Bidder solana.PublicKey `json:"bidder"`
	Amount uint64           `json:"amount"`
}

type PriceFloor struct {
	Kind    string        `json:"kind"`
	Minimum uint64        `json:"minimum,omitempty"`
	Hash    hexutil.Bytes `json:"hash,omitempty"`
}

type AuctionData struct {
	Authority     solana.PublicKey `json:"authority"`
	TokenMint     solana.PublicKey `json:"tokenMint"`
	State         string           `json:"state"`
	BidState      string           `json:"bidState"`
	MaxWinners    uint64           `json:"maxWinners"`
	Bids          []Bid            `json:"bids"`
	EndAuctionAt  *int64           `json:"endAuctionAt"`
	EndAuctionGap *int64           `json:"endAuctionGap"`
	EndedAt       *int64           `json:"endedAt"`
	LastBid       *int64           `json:"lastBid"`
	PriceFloor    PriceFloor       `json:"priceFloor"`
}

type Extended struct {
	NftMint               solana.PublicKey `json:"nftMint"`
	NftAmount             uint64           `json:"nftAmount"`
	TotalUncancelledBids  uint64           `json:"totalUncancelledBids"`
	TickSize              *uint64          `json:"tickSize"`
	GapTickSizePercentage *uint8           `json:"gapTickSizePercentage"`
	InstantSalePrice      *uint64          `json:"instantSalePrice"`
	Name                  *string          `json:"name"`
}

type Info struct {
	Addresses
	Data           *AuctionData `json:"data"`
	Extended       *Extended    `json:"extended"`
	CustodyBalance uint64       `json:"custodyBalance"`
}

func convertAddresses(resource solana.PublicKey, a *auction.Addresses) *Addresses {
	return &Addresses{
		Resource: resource,
		Auction:  a.Auction,
		Extended: a.Extended,
		Custody:  a.Custody,
	}
}

func convertPriceFloor(p auction.PriceFloor) PriceFloor {
	pf := PriceFloor{Kind: p.Kind.String()}
	switch p.Kind {
	case auction.PriceFloorMinimum:
		pf.Minimum = p.Minimum()
	case auction.PriceFloorBlinded:
		pf.Hash = p.Hash[:]
	}
	return pf
}

func convertAuctionData(d *auction.AuctionData) *AuctionData {
	a := &AuctionData{
		Authority:     d.Authority,
		TokenMint:     d.TokenMint,
		State:         d.State.String(),
		EndAuctionAt:  d.EndAuctionAt,
		EndAuctionGap: d.EndAuctionGap,
		EndedAt:       d.EndedAt,
		LastBid:       d.LastBid,
		PriceFloor:    convertPriceFloor(d.PriceFloor),
		Bids:          make([]Bid, 0),
	}
	switch d.BidState.(type) {
	case *auction.EnglishAuction:
		a.BidState = "EnglishAuction"
	case *auction.OpenEdition:
		a.BidState = "OpenEdition"
	}
	if d.BidState != nil {
		a.MaxWinners = d.BidState.MaxWinners()
		for _, b := range d.BidState.Bids() {
			a.Bids = append(a.Bids, Bid{Bidder: b.Bidder, Amount: b.Amount})
		}
	}
	return a
}

func convertExtended(e *auction.AuctionDataExtended) *Extended {
	ext := &Extended{
		NftMint:               e.NftMint,
		NftAmount:             e.NftAmount,
		TotalUncancelledBids:  e.TotalUncancelledBids,
		TickSize:              e.TickSize,
		GapTickSizePercentage: e.GapTickSizePercentage,
		InstantSalePrice:      e.InstantSalePrice,
	}
	if e.Name != nil {
		name := e.Name.String()
		ext.Name = &name
	}
	return ext
}

func convertInfo(resource solana.PublicKey, i *auction.Info) *Info {
	info := &Info{
		Addresses:      *convertAddresses(resource, &i.Addresses),
		Data:           convertAuctionData(i.Data),
		CustodyBalance: i.CustodyBalance,
	}
	if i.Extended != nil {
		info.Extended = convertExtended(i.Extended)
	}
	return info
}
