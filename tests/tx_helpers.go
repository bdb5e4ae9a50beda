// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tests

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/script/auction"
	"github.com/meterio/meter-auction/tx"
)

func BuildTx(payer solana.PrivateKey, nonce uint64, ixs []*tx.Instruction, signers ...solana.PrivateKey) (*tx.Transaction, error) {
	builder := new(tx.Builder).
		FeePayer(payer.PublicKey()).
		Nonce(nonce)
	for _, ix := range ixs {
		builder.Instruction(ix)
	}
	trx := builder.Build()
	return trx.Sign(append([]solana.PrivateKey{payer}, signers...)...)
}

// DefaultCreateAuctionArgs sells the test nft at resource with a capped
// winner limit.
func DefaultCreateAuctionArgs(resource solana.PublicKey, winners auction.WinnerLimit) *auction.CreateAuctionArgs {
	tick := uint64(10)
	gap := uint8(5)
	name := auction.NewAuctionName("test auction")
	return &auction.CreateAuctionArgs{
		Winners:               winners,
		TokenMint:             CoinMint,
		Authority:             SellerAddr,
		Resource:              resource,
		PriceFloor:            auction.MinimumPrice(1_000),
		TickSize:              &tick,
		GapTickSizePercentage: &gap,
		NftMint:               NftMint,
		NftAmount:             1,
		Name:                  &name,
	}
}

func BuildCreateAuctionIx(programID solana.PublicKey, payer solana.PublicKey, args *auction.CreateAuctionArgs) (*tx.Instruction, *auction.CreateAuctionAccounts, error) {
	accounts, err := auction.DeriveCreateAuctionAccounts(programID, payer, args.Resource, args.NftMint, SellerNftAccount)
	if err != nil {
		return nil, nil, err
	}
	ix, err := auction.NewCreateAuctionInstruction(programID, accounts, args)
	return ix, accounts, err
}

// BuildDelegateIx hands the authorities of the test nft from creator to its
// canonical escrow.
func BuildDelegateIx(programID solana.PublicKey, creator solana.PublicKey, tokenAccount solana.PublicKey) (*tx.Instruction, *auction.DelegateAccounts, error) {
	escrow, nonce, err := auction.FindEscrowAddress(programID, creator)
	if err != nil {
		return nil, nil, err
	}
	accounts := &auction.DelegateAccounts{
		Creator:      creator,
		Mint:         NftMint,
		Escrow:       escrow,
		TokenAccount: tokenAccount,
		TokenProgram: solana.TokenProgramID,
	}
	ix, err := auction.NewDelegateInstruction(programID, accounts, &auction.DelegateArgs{EscrowNonce: nonce})
	return ix, accounts, err
}
