// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package system

import (
	"log/slog"

	bin "github.com/gagliardetto/binary"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

// System is the native program owning every fresh account.
type System struct {
	logger *slog.Logger
}

func NewSystem() *System {
	return &System{
		logger: slog.Default().With("pkg", "system"),
	}
}

// Handle executes one system instruction.
func (s *System) Handle(env *xenv.Environment) error {
	decoder := bin.NewBinDecoder(env.Data())
	instrType, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return meter.ErrInvalidInstructionData
	}

	switch instrType {
	case InstrCreateAccount:
		var args InstrCreateAccountArgs
		if err := args.UnmarshalWithDecoder(decoder); err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		return s.handleCreateAccount(env, &args)

	case InstrAssign:
		var args InstrAssignArgs
		if err := args.UnmarshalWithDecoder(decoder); err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		acct, err := env.Account(0)
		if err != nil {
			return err
		}
		return s.assign(acct, &args)

	case InstrTransfer:
		var args InstrTransferArgs
		if err := args.UnmarshalWithDecoder(decoder); err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		from, err := env.Account(0)
		if err != nil {
			return err
		}
		to, err := env.Account(1)
		if err != nil {
			return err
		}
		return s.transfer(from, to, args.Lamports)

	case InstrAllocate:
		var args InstrAllocateArgs
		if err := args.UnmarshalWithDecoder(decoder); err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		acct, err := env.Account(0)
		if err != nil {
			return err
		}
		return s.allocate(acct, args.Space)

	default:
		s.logger.Debug("unknown instruction", "type", instrType)
		return meter.ErrInvalidInstructionData
	}
}

func (s *System) handleCreateAccount(env *xenv.Environment, args *InstrCreateAccountArgs) error {
	from, err := env.Account(0)
	if err != nil {
		return err
	}
	to, err := env.Account(1)
	if err != nil {
		return err
	}
	if to.Lamports() > 0 {
		s.logger.Info("CreateAccount: account already in use (non-zero lamports)", "address", to.Key)
		return errors.Wrapf(ErrAccountAlreadyInUse, "address %s", to.Key)
	}
	if err := s.allocate(to, args.Space); err != nil {
		return err
	}
	if err := s.assign(to, &InstrAssignArgs{Owner: args.Owner}); err != nil {
		return err
	}
	return s.transfer(from, to, args.Lamports)
}

func (s *System) allocate(acct *xenv.AccountInfo, space uint64) error {
	if !acct.IsSigner {
		s.logger.Info("Allocate: account must sign", "address", acct.Key)
		return errors.Wrapf(meter.ErrMissingRequiredSignature, "address %s", acct.Key)
	}
	if acct.DataLen() != 0 || !acct.IsOwnedBy(meter.SystemProgramID) {
		s.logger.Info("Allocate: account already in use", "address", acct.Key)
		return errors.Wrapf(ErrAccountAlreadyInUse, "address %s", acct.Key)
	}
	if space > meter.MaxPermittedDataLength {
		s.logger.Info("Allocate: requested space too large", "space", space, "max", meter.MaxPermittedDataLength)
		return errors.Wrapf(ErrInvalidAccountDataLength, "space %d", space)
	}
	acct.SetData(make([]byte, space))
	return nil
}

func (s *System) assign(acct *xenv.AccountInfo, args *InstrAssignArgs) error {
	if acct.IsOwnedBy(args.Owner) {
		return nil
	}
	if !acct.IsSigner {
		s.logger.Info("Assign: account must sign", "address", acct.Key)
		return errors.Wrapf(meter.ErrMissingRequiredSignature, "address %s", acct.Key)
	}
	acct.SetOwner(args.Owner)
	return nil
}

func (s *System) transfer(from, to *xenv.AccountInfo, lamports uint64) error {
	if !from.IsSigner {
		s.logger.Info("Transfer: from account must sign", "address", from.Key)
		return errors.Wrapf(meter.ErrMissingRequiredSignature, "address %s", from.Key)
	}
	if from.DataLen() != 0 {
		s.logger.Info("Transfer: from must not carry data", "address", from.Key)
		return ErrTransferFromAccountData
	}
	balance := from.Lamports()
	if lamports > balance {
		s.logger.Info("Transfer: insufficient lamports", "balance", balance, "need", lamports)
		return errors.Wrapf(ErrResultWithNegativeLamports, "balance %d, need %d", balance, lamports)
	}
	if from.Key.Equals(to.Key) {
		return nil
	}
	from.SetLamports(balance - lamports)
	to.SetLamports(to.Lamports() + lamports)
	return nil
}
