// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/token"
	"github.com/meterio/meter-auction/xenv"
)

// custody groups what takeCustody needs, all of it validated by the caller.
type custody struct {
	payer   *xenv.AccountInfo
	auction *xenv.AccountInfo
	mint    *xenv.AccountInfo
	seller  *xenv.AccountInfo
	holding *xenv.AccountInfo
	rent    *xenv.AccountInfo

	holdingSigner *SigningContext
	escrow        *SigningContext
	amount        uint64
}

// takeCustody creates the holding token account of the auction and moves the
// asset into it under the escrow authority.
func (a *Auction) takeCustody(env *xenv.Environment, c *custody) error {
	if err := CreateOrAllocateAccountRaw(env, meter.TokenProgramID, c.holding, c.rent, c.payer, token.AccountSize, c.holdingSigner.Seeds()); err != nil {
		return err
	}
	if err := env.Invoke(token.NewInitializeAccountInstruction(c.holding.Key, c.mint.Key, c.auction.Key)); err != nil {
		return err
	}

	a.logger.Debug("moving asset into custody", "seller", c.seller.Key, "custody", c.holding.Key, "amount", c.amount)
	return env.InvokeSigned(
		token.NewTransferInstruction(c.seller.Key, c.holding.Key, c.escrow.Address, c.amount),
		c.escrow.Seeds(),
	)
}
