// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

type createAuctionInfos struct {
	payer           *xenv.AccountInfo
	auction         *xenv.AccountInfo
	auctionExtended *xenv.AccountInfo
	nftMint         *xenv.AccountInfo
	sellerNft       *xenv.AccountInfo
	escrow          *xenv.AccountInfo
	auctionNft      *xenv.AccountInfo
	tokenProgram    *xenv.AccountInfo
	rent            *xenv.AccountInfo
	system          *xenv.AccountInfo
}

type delegateInfos struct {
	creator      *xenv.AccountInfo
	mint         *xenv.AccountInfo
	escrow       *xenv.AccountInfo
	tokenAccount *xenv.AccountInfo
	tokenProgram *xenv.AccountInfo
}

func accountsAt(env *xenv.Environment, dst ...**xenv.AccountInfo) error {
	if len(env.Accounts()) < len(dst) {
		return errors.Wrapf(meter.ErrNotEnoughAccountKeys, "want %d, got %d", len(dst), len(env.Accounts()))
	}
	for i, d := range dst {
		*d = env.Accounts()[i]
	}
	return nil
}

func parseCreateAuctionAccounts(env *xenv.Environment) (*createAuctionInfos, error) {
	var a createAuctionInfos
	if err := accountsAt(env,
		&a.payer,
		&a.auction,
		&a.auctionExtended,
		&a.nftMint,
		&a.sellerNft,
		&a.escrow,
		&a.auctionNft,
		&a.tokenProgram,
		&a.rent,
		&a.system,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func parseDelegateAccounts(env *xenv.Environment) (*delegateInfos, error) {
	var a delegateInfos
	if err := accountsAt(env,
		&a.creator,
		&a.mint,
		&a.escrow,
		&a.tokenAccount,
		&a.tokenProgram,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func requireSigner(a *xenv.AccountInfo) error {
	if !a.IsSigner {
		return errors.Wrapf(meter.ErrMissingRequiredSignature, "account %s", a.Key)
	}
	return nil
}

func requireWritable(a *xenv.AccountInfo) error {
	if !a.IsWritable {
		return errors.Wrapf(meter.ErrAccountNotWritable, "account %s", a.Key)
	}
	return nil
}

func requireTokenProgram(a *xenv.AccountInfo) error {
	if !a.Key.Equals(meter.TokenProgramID) {
		return errors.Wrapf(ErrInvalidTokenProgram, "account %s", a.Key)
	}
	return nil
}

func requireTokenOwned(accounts ...*xenv.AccountInfo) error {
	for _, a := range accounts {
		if !a.IsOwnedBy(meter.TokenProgramID) {
			return errors.Wrapf(meter.ErrInvalidAccountOwner, "account %s is not a token account", a.Key)
		}
	}
	return nil
}
