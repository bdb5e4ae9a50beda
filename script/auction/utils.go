// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/token"
	"github.com/meterio/meter-auction/state"
	"github.com/pkg/errors"
)

// Addresses are the derived accounts of one auction.
type Addresses struct {
	Auction  solana.PublicKey
	Extended solana.PublicKey
	Custody  solana.PublicKey
}

// DeriveAddresses derives the accounts of the auction selling resource.
func DeriveAddresses(programID, resource solana.PublicKey) (*Addresses, error) {
	auction, err := FindAuctionAddress(programID, resource)
	if err != nil {
		return nil, err
	}
	extended, err := FindExtendedAddress(programID, resource)
	if err != nil {
		return nil, err
	}
	custody, err := FindCustodyAddress(programID, auction)
	if err != nil {
		return nil, err
	}
	return &Addresses{Auction: auction, Extended: extended, Custody: custody}, nil
}

// Info is an auction as read back from state.
type Info struct {
	Addresses
	Data           *AuctionData
	Extended       *AuctionDataExtended
	CustodyBalance uint64
}

// GetAuctionInfo reads the auction of resource from st.
func GetAuctionInfo(st *state.State, programID, resource solana.PublicKey) (*Info, error) {
	addrs, err := DeriveAddresses(programID, resource)
	if err != nil {
		return nil, err
	}
	info := &Info{Addresses: *addrs}

	acc := st.GetAccount(addrs.Auction)
	if !acc.Owner.Equals(programID) {
		return nil, errors.Wrapf(meter.ErrResourceFault, "no auction at %s", addrs.Auction)
	}
	if info.Data, err = DecodeAuctionData(acc.Data); err != nil {
		return nil, err
	}
	if acc = st.GetAccount(addrs.Extended); acc.Owner.Equals(programID) {
		if info.Extended, err = DecodeAuctionDataExtended(acc.Data); err != nil {
			return nil, err
		}
	}
	if acc = st.GetAccount(addrs.Custody); acc.Owner.Equals(meter.TokenProgramID) {
		holding, err := token.DecodeAccount(acc.Data)
		if err != nil {
			return nil, err
		}
		info.CustodyBalance = holding.Amount
	}
	return info, st.Err()
}
