// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/system"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

func loadRent(rentInfo *xenv.AccountInfo) (meter.Rent, error) {
	if !rentInfo.Key.Equals(meter.SysVarRentPubkey) {
		return meter.Rent{}, errors.Wrapf(meter.ErrInvalidParameter, "not the rent sysvar: %s", rentInfo.Key)
	}
	rent, err := meter.DecodeRent(rentInfo.Data())
	if err != nil {
		return meter.Rent{}, errors.Wrap(meter.ErrInvalidParameter, err.Error())
	}
	return rent, nil
}

// checkVacant fails unless target can still be allocated: no data and
// still owned by the system program.
func checkVacant(target *xenv.AccountInfo) error {
	if target.DataLen() != 0 || !target.IsOwnedBy(meter.SystemProgramID) {
		return errors.Wrapf(ErrAccountAlreadyInitialized, "account %s", target.Key)
	}
	return nil
}

// fundingNeeded returns the lamports payer must add so target reaches the
// rent exempt minimum for size bytes.
func fundingNeeded(rent meter.Rent, target *xenv.AccountInfo, size int) uint64 {
	required := rent.MinimumBalance(uint64(size))
	if have := target.Lamports(); have < required {
		return required - have
	}
	return 0
}

// CreateOrAllocateAccountRaw creates the program derived account target with
// size bytes of zeroed data owned by owner, funded by payer up to the rent
// exempt minimum. seeds carry the bump and must derive target under the
// calling program.
func CreateOrAllocateAccountRaw(
	env *xenv.Environment,
	owner solana.PublicKey,
	target *xenv.AccountInfo,
	rentInfo *xenv.AccountInfo,
	payer *xenv.AccountInfo,
	size int,
	seeds [][]byte,
) error {
	addr, err := meter.CreateAddress(seeds, env.ProgramID())
	if err != nil || !addr.Equals(target.Key) {
		return errors.Wrapf(ErrDerivedAccountMismatch, "target %s", target.Key)
	}
	rent, err := loadRent(rentInfo)
	if err != nil {
		return err
	}
	if err := checkVacant(target); err != nil {
		return err
	}
	required := rent.MinimumBalance(uint64(size))
	topUp := fundingNeeded(rent, target, size)
	if payer.Lamports() < topUp {
		return errors.Wrapf(ErrInsufficientFunds, "payer %s has %d, needs %d", payer.Key, payer.Lamports(), topUp)
	}

	if target.Lamports() == 0 {
		return env.InvokeSigned(
			system.NewCreateAccountInstruction(payer.Key, target.Key, required, uint64(size), owner),
			seeds,
		)
	}

	// someone already sent lamports to the address, so CreateAccount would
	// refuse it
	if topUp > 0 {
		if err := env.Invoke(system.NewTransferInstruction(payer.Key, target.Key, topUp)); err != nil {
			return err
		}
	}
	if err := env.InvokeSigned(system.NewAllocateInstruction(target.Key, uint64(size)), seeds); err != nil {
		return err
	}
	return env.InvokeSigned(system.NewAssignInstruction(target.Key, owner), seeds)
}
