// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"encoding/binary"

	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/token"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

// createPlan is everything CreateAuction validated before touching state.
type createPlan struct {
	size     int
	auction  *SigningContext
	extended *SigningContext
	holding  *SigningContext
	escrow   *SigningContext
}

func (a *Auction) handleCreateAuction(env *xenv.Environment, args *CreateAuctionArgs) error {
	accts, err := parseCreateAuctionAccounts(env)
	if err != nil {
		return err
	}
	plan, err := a.validateCreateAuction(env, accts, args)
	if err != nil {
		return err
	}

	if err := CreateOrAllocateAccountRaw(env, env.ProgramID(), accts.auction, accts.rent, accts.payer, plan.size, plan.auction.Seeds()); err != nil {
		return err
	}
	if err := a.takeCustody(env, &custody{
		payer:         accts.payer,
		auction:       accts.auction,
		mint:          accts.nftMint,
		seller:        accts.sellerNft,
		holding:       accts.auctionNft,
		rent:          accts.rent,
		holdingSigner: plan.holding,
		escrow:        plan.escrow,
		amount:        args.NftAmount,
	}); err != nil {
		return err
	}
	if err := CreateOrAllocateAccountRaw(env, env.ProgramID(), accts.auctionExtended, accts.rent, accts.payer, MAX_AUCTION_DATA_EXTENDED_SIZE, plan.extended.Seeds()); err != nil {
		return err
	}

	data := &AuctionData{
		Authority:     args.Authority,
		BidState:      newBidState(args.Winners),
		EndAuctionAt:  args.EndAuctionAt,
		EndAuctionGap: args.EndAuctionGap,
		PriceFloor:    args.PriceFloor,
		State:         Created,
		TokenMint:     args.TokenMint,
	}
	if err := writeRecord(accts.auction, data); err != nil {
		return err
	}
	ext := &AuctionDataExtended{
		NftMint:               args.NftMint,
		NftAmount:             args.NftAmount,
		TickSize:              args.TickSize,
		GapTickSizePercentage: args.GapTickSizePercentage,
		InstantSalePrice:      args.InstantSalePrice,
		Name:                  args.Name,
	}
	if err := writeRecord(accts.auctionExtended, ext); err != nil {
		return err
	}

	event := make([]byte, 0, 32+32+8)
	event = append(event, args.Resource.Bytes()...)
	event = append(event, args.NftMint.Bytes()...)
	event = binary.LittleEndian.AppendUint64(event, args.NftAmount)
	env.AddEvent(EventAuctionCreated, accts.auction.Key, event)

	a.logger.Info("auction created", "auction", accts.auction.Key, "resource", args.Resource, "winners", args.Winners, "size", plan.size)
	return nil
}

// validateCreateAuction runs every check of CreateAuction, so that a failing
// call never reaches another program.
func (a *Auction) validateCreateAuction(env *xenv.Environment, accts *createAuctionInfos, args *CreateAuctionArgs) (*createPlan, error) {
	programID := env.ProgramID()

	if err := requireSigner(accts.payer); err != nil {
		return nil, err
	}
	for _, w := range []*xenv.AccountInfo{accts.payer, accts.auction, accts.auctionExtended, accts.sellerNft, accts.auctionNft} {
		if err := requireWritable(w); err != nil {
			return nil, err
		}
	}

	size, err := SizeFor(args.Winners)
	if err != nil {
		a.logger.Info("invalid winner limit", "winners", args.Winners, "err", err)
		return nil, err
	}
	if args.GapTickSizePercentage != nil && *args.GapTickSizePercentage > 100 {
		a.logger.Info("invalid gap tick size percentage", "value", *args.GapTickSizePercentage)
		return nil, errors.Wrapf(ErrInvalidGapTickSizePercentage, "got %d", *args.GapTickSizePercentage)
	}

	plan := &createPlan{size: size}

	auctionSeeds := AuctionSeeds(programID, args.Resource)
	bump, err := AssertDerivation(programID, accts.auction.Key, auctionSeeds)
	if err != nil {
		a.logger.Info("auction account mismatch", "supplied", accts.auction.Key, "resource", args.Resource)
		return nil, err
	}
	if plan.auction, err = SignerWithBump(programID, auctionSeeds, bump); err != nil {
		return nil, err
	}

	extendedSeeds := ExtendedSeeds(programID, args.Resource)
	if bump, err = AssertDerivation(programID, accts.auctionExtended.Key, extendedSeeds); err != nil {
		a.logger.Info("extended account mismatch", "supplied", accts.auctionExtended.Key, "resource", args.Resource)
		return nil, err
	}
	if plan.extended, err = SignerWithBump(programID, extendedSeeds, bump); err != nil {
		return nil, err
	}

	holdingSeeds := CustodySeeds(accts.auction.Key)
	if bump, err = AssertDerivation(programID, accts.auctionNft.Key, holdingSeeds); err != nil {
		a.logger.Info("custody account mismatch", "supplied", accts.auctionNft.Key, "auction", accts.auction.Key)
		return nil, err
	}
	if plan.holding, err = SignerWithBump(programID, holdingSeeds, bump); err != nil {
		return nil, err
	}

	if plan.escrow, err = FindSigner(programID, EscrowSeeds(accts.payer.Key)); err != nil {
		return nil, err
	}
	if !plan.escrow.Address.Equals(accts.escrow.Key) {
		a.logger.Info("escrow mismatch", "supplied", accts.escrow.Key, "expected", plan.escrow.Address)
		return nil, errors.Wrapf(ErrInvalidEscrow, "expected %s, got %s", plan.escrow.Address, accts.escrow.Key)
	}

	if err := requireTokenProgram(accts.tokenProgram); err != nil {
		return nil, err
	}
	if !accts.system.Key.Equals(meter.SystemProgramID) {
		return nil, errors.Wrapf(meter.ErrIncorrectProgramID, "not the system program: %s", accts.system.Key)
	}
	if !accts.nftMint.Key.Equals(args.NftMint) {
		return nil, errors.Wrapf(meter.ErrInvalidParameter, "nft mint %s does not match account %s", args.NftMint, accts.nftMint.Key)
	}
	if err := requireTokenOwned(accts.nftMint, accts.sellerNft); err != nil {
		return nil, err
	}

	rent, err := loadRent(accts.rent)
	if err != nil {
		return nil, err
	}
	var needed uint64
	for _, t := range []struct {
		info *xenv.AccountInfo
		size int
	}{
		{accts.auction, size},
		{accts.auctionNft, token.AccountSize},
		{accts.auctionExtended, MAX_AUCTION_DATA_EXTENDED_SIZE},
	} {
		if err := checkVacant(t.info); err != nil {
			a.logger.Info("account already initialized", "account", t.info.Key)
			return nil, err
		}
		needed += fundingNeeded(rent, t.info, t.size)
	}
	if have := accts.payer.Lamports(); have < needed {
		a.logger.Info("payer cannot fund the auction", "payer", accts.payer.Key, "have", have, "need", needed)
		return nil, errors.Wrapf(ErrInsufficientFunds, "payer %s has %d, needs %d", accts.payer.Key, have, needed)
	}
	return plan, nil
}

// writeRecord serializes r over the whole data of an account the program owns.
func writeRecord(info *xenv.AccountInfo, r interface{ Serialize([]byte) error }) error {
	buf := make([]byte, info.DataLen())
	if err := r.Serialize(buf); err != nil {
		return err
	}
	info.SetData(buf)
	return nil
}
