// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/script/token"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

// handleDelegate hands the mint authorities of mint and the ownership of
// tokenAccount from the creator to its escrow.
func (a *Auction) handleDelegate(env *xenv.Environment, args *DelegateArgs) error {
	accts, err := parseDelegateAccounts(env)
	if err != nil {
		return err
	}

	if err := requireSigner(accts.creator); err != nil {
		a.logger.Info("creator must sign", "creator", accts.creator.Key)
		return err
	}
	if err := requireWritable(accts.mint); err != nil {
		return err
	}
	if err := requireWritable(accts.tokenAccount); err != nil {
		return err
	}
	if err := requireTokenOwned(accts.mint, accts.tokenAccount); err != nil {
		return err
	}
	if err := requireTokenProgram(accts.tokenProgram); err != nil {
		a.logger.Info("wrong token program", "supplied", accts.tokenProgram.Key)
		return err
	}
	escrow, err := SignerWithBump(env.ProgramID(), EscrowSeeds(accts.creator.Key), args.EscrowNonce)
	if err != nil {
		return errors.Wrapf(ErrInvalidDelegate, "nonce %d: %v", args.EscrowNonce, err)
	}
	if !escrow.Address.Equals(accts.escrow.Key) {
		a.logger.Info("escrow mismatch", "supplied", accts.escrow.Key, "expected", escrow.Address)
		return errors.Wrapf(ErrInvalidDelegate, "expected %s, got %s", escrow.Address, accts.escrow.Key)
	}

	for _, step := range []struct {
		target solana.PublicKey
		kind   token.AuthorityType
	}{
		{accts.mint.Key, token.AuthorityMintTokens},
		{accts.mint.Key, token.AuthorityFreezeAccount},
		{accts.tokenAccount.Key, token.AuthorityAccountOwner},
	} {
		newAuthority := escrow.Address
		ix := token.NewSetAuthorityInstruction(step.target, accts.creator.Key, step.kind, &newAuthority, escrow.Address)
		if err := env.InvokeSigned(ix, escrow.Seeds()); err != nil {
			a.logger.Info("set authority failed", "account", step.target, "type", step.kind, "err", err)
			return err
		}
	}

	event := make([]byte, 0, 64)
	event = append(event, accts.mint.Key.Bytes()...)
	event = append(event, accts.tokenAccount.Key.Bytes()...)
	env.AddEvent(EventAuthorityDelegated, escrow.Address, event)

	a.logger.Info("authorities delegated", "creator", accts.creator.Key, "escrow", escrow.Address)
	return nil
}
