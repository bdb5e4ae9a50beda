// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"log/slog"

	bin "github.com/gagliardetto/binary"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

// Token is the native program keeping mints and token accounts.
type Token struct {
	logger *slog.Logger
}

func NewToken() *Token {
	return &Token{
		logger: slog.Default().With("pkg", "token"),
	}
}

// Handle executes one token instruction.
func (t *Token) Handle(env *xenv.Environment) error {
	decoder := bin.NewBinDecoder(env.Data())
	tag, err := decoder.ReadUint8()
	if err != nil {
		return meter.ErrInvalidInstructionData
	}

	switch tag {
	case InstrInitializeMint:
		var args InitializeMintArgs
		if err := args.UnmarshalWithDecoder(decoder); err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		return t.handleInitializeMint(env, &args)

	case InstrInitializeAccount:
		return t.handleInitializeAccount(env)

	case InstrTransfer:
		amount, err := decoder.ReadUint64(bin.LE)
		if err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		return t.handleTransfer(env, amount)

	case InstrApprove:
		amount, err := decoder.ReadUint64(bin.LE)
		if err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		return t.handleApprove(env, amount)

	case InstrSetAuthority:
		var args SetAuthorityArgs
		if err := args.UnmarshalWithDecoder(decoder); err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		return t.handleSetAuthority(env, &args)

	case InstrMintTo:
		amount, err := decoder.ReadUint64(bin.LE)
		if err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		return t.handleMintTo(env, amount)

	default:
		t.logger.Debug("unknown instruction", "tag", tag)
		return meter.ErrInvalidInstructionData
	}
}

func loadMint(a *xenv.AccountInfo) (*Mint, error) {
	if !a.IsOwnedBy(meter.TokenProgramID) {
		return nil, errors.Wrapf(meter.ErrInvalidAccountOwner, "mint %s", a.Key)
	}
	m, err := DecodeMint(a.Data())
	if err != nil {
		return nil, errors.Wrap(ErrInvalidMint, err.Error())
	}
	if !m.IsInitialized {
		return nil, errors.Wrapf(ErrUninitializedState, "mint %s", a.Key)
	}
	return m, nil
}

func loadAccount(a *xenv.AccountInfo) (*Account, error) {
	if !a.IsOwnedBy(meter.TokenProgramID) {
		return nil, errors.Wrapf(meter.ErrInvalidAccountOwner, "token account %s", a.Key)
	}
	acc, err := DecodeAccount(a.Data())
	if err != nil {
		return nil, errors.Wrap(meter.ErrInvalidParameter, err.Error())
	}
	if !acc.IsInitialized() {
		return nil, errors.Wrapf(ErrUninitializedState, "token account %s", a.Key)
	}
	return acc, nil
}

func storeMint(a *xenv.AccountInfo, m *Mint) error {
	data, err := m.Encode()
	if err != nil {
		return errors.Wrap(meter.ErrSerializationFault, err.Error())
	}
	a.SetData(data)
	return nil
}

func storeAccount(a *xenv.AccountInfo, acc *Account) error {
	data, err := acc.Encode()
	if err != nil {
		return errors.Wrap(meter.ErrSerializationFault, err.Error())
	}
	a.SetData(data)
	return nil
}

func checkRentExempt(env *xenv.Environment, rentIdx int, a *xenv.AccountInfo) error {
	rentInfo, err := env.Account(rentIdx)
	if err != nil {
		return err
	}
	if !rentInfo.Key.Equals(meter.SysVarRentPubkey) {
		return errors.Wrapf(meter.ErrInvalidParameter, "not the rent sysvar: %s", rentInfo.Key)
	}
	rent, err := meter.DecodeRent(rentInfo.Data())
	if err != nil {
		return errors.Wrap(meter.ErrInvalidParameter, err.Error())
	}
	if !rent.IsExempt(a.Lamports(), uint64(a.DataLen())) {
		return errors.Wrapf(ErrNotRentExempt, "account %s", a.Key)
	}
	return nil
}

func (t *Token) handleInitializeMint(env *xenv.Environment, args *InitializeMintArgs) error {
	mintInfo, err := env.Account(0)
	if err != nil {
		return err
	}
	if !mintInfo.IsOwnedBy(meter.TokenProgramID) {
		return errors.Wrapf(meter.ErrInvalidAccountOwner, "mint %s", mintInfo.Key)
	}
	if mintInfo.DataLen() != MintSize {
		return errors.Wrapf(ErrInvalidMint, "mint size %d", mintInfo.DataLen())
	}
	if m, err := DecodeMint(mintInfo.Data()); err == nil && m.IsInitialized {
		return errors.Wrapf(ErrAlreadyInUse, "mint %s", mintInfo.Key)
	}
	if err := checkRentExempt(env, 1, mintInfo); err != nil {
		return err
	}

	authority := args.MintAuthority
	return storeMint(mintInfo, &Mint{
		MintAuthority:   &authority,
		Decimals:        args.Decimals,
		IsInitialized:   true,
		FreezeAuthority: args.FreezeAuthority,
	})
}

func (t *Token) handleInitializeAccount(env *xenv.Environment) error {
	accInfo, err := env.Account(0)
	if err != nil {
		return err
	}
	mintInfo, err := env.Account(1)
	if err != nil {
		return err
	}
	ownerInfo, err := env.Account(2)
	if err != nil {
		return err
	}
	if !accInfo.IsOwnedBy(meter.TokenProgramID) {
		return errors.Wrapf(meter.ErrInvalidAccountOwner, "token account %s", accInfo.Key)
	}
	if accInfo.DataLen() != AccountSize {
		return errors.Wrapf(meter.ErrInvalidParameter, "token account size %d", accInfo.DataLen())
	}
	if acc, err := DecodeAccount(accInfo.Data()); err == nil && acc.IsInitialized() {
		return errors.Wrapf(ErrAlreadyInUse, "token account %s", accInfo.Key)
	}
	if _, err := loadMint(mintInfo); err != nil {
		return err
	}
	if err := checkRentExempt(env, 3, accInfo); err != nil {
		return err
	}

	return storeAccount(accInfo, &Account{
		Mint:  mintInfo.Key,
		Owner: ownerInfo.Key,
		State: AccountInitialized,
	})
}

func (t *Token) handleTransfer(env *xenv.Environment, amount uint64) error {
	srcInfo, err := env.Account(0)
	if err != nil {
		return err
	}
	dstInfo, err := env.Account(1)
	if err != nil {
		return err
	}
	authInfo, err := env.Account(2)
	if err != nil {
		return err
	}

	src, err := loadAccount(srcInfo)
	if err != nil {
		return err
	}
	dst, err := loadAccount(dstInfo)
	if err != nil {
		return err
	}
	if src.IsFrozen() || dst.IsFrozen() {
		return ErrAccountFrozen
	}
	if !src.Mint.Equals(dst.Mint) {
		return errors.Wrapf(ErrMintMismatch, "%s != %s", src.Mint, dst.Mint)
	}
	if src.Amount < amount {
		t.logger.Info("Transfer: insufficient funds", "source", srcInfo.Key, "amount", src.Amount, "need", amount)
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, need %d", src.Amount, amount)
	}

	switch {
	case src.Delegate != nil && src.Delegate.Equals(authInfo.Key):
		if !authInfo.IsSigner {
			return errors.Wrapf(meter.ErrMissingRequiredSignature, "delegate %s", authInfo.Key)
		}
		if src.DelegatedAmount < amount {
			return errors.Wrapf(ErrInsufficientFunds, "delegated %d, need %d", src.DelegatedAmount, amount)
		}
		src.DelegatedAmount -= amount
		if src.DelegatedAmount == 0 {
			src.Delegate = nil
		}
	case src.Owner.Equals(authInfo.Key):
		if !authInfo.IsSigner {
			return errors.Wrapf(meter.ErrMissingRequiredSignature, "owner %s", authInfo.Key)
		}
	default:
		t.logger.Info("Transfer: authority is neither owner nor delegate", "source", srcInfo.Key, "authority", authInfo.Key)
		return errors.Wrapf(ErrOwnerMismatch, "authority %s", authInfo.Key)
	}

	if srcInfo.Key.Equals(dstInfo.Key) || amount == 0 {
		return storeAccount(srcInfo, src)
	}
	if dst.Amount+amount < dst.Amount {
		return ErrOverflow
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := storeAccount(srcInfo, src); err != nil {
		return err
	}
	if err := storeAccount(dstInfo, dst); err != nil {
		return err
	}
	env.AddTransfer(src.Mint, srcInfo.Key, dstInfo.Key, amount)
	return nil
}

func (t *Token) handleApprove(env *xenv.Environment, amount uint64) error {
	srcInfo, err := env.Account(0)
	if err != nil {
		return err
	}
	delegateInfo, err := env.Account(1)
	if err != nil {
		return err
	}
	ownerInfo, err := env.Account(2)
	if err != nil {
		return err
	}
	src, err := loadAccount(srcInfo)
	if err != nil {
		return err
	}
	if src.IsFrozen() {
		return ErrAccountFrozen
	}
	if !src.Owner.Equals(ownerInfo.Key) {
		return errors.Wrapf(ErrOwnerMismatch, "owner %s", ownerInfo.Key)
	}
	if !ownerInfo.IsSigner {
		return errors.Wrapf(meter.ErrMissingRequiredSignature, "owner %s", ownerInfo.Key)
	}
	delegate := delegateInfo.Key
	src.Delegate = &delegate
	src.DelegatedAmount = amount
	return storeAccount(srcInfo, src)
}

func (t *Token) handleSetAuthority(env *xenv.Environment, args *SetAuthorityArgs) error {
	accInfo, err := env.Account(0)
	if err != nil {
		return err
	}
	authInfo, err := env.Account(1)
	if err != nil {
		return err
	}
	if !authInfo.IsSigner {
		t.logger.Info("SetAuthority: current authority must sign", "authority", authInfo.Key)
		return errors.Wrapf(meter.ErrMissingRequiredSignature, "authority %s", authInfo.Key)
	}

	switch accInfo.DataLen() {
	case AccountSize:
		acc, err := loadAccount(accInfo)
		if err != nil {
			return err
		}
		if acc.IsFrozen() {
			return ErrAccountFrozen
		}
		switch args.AuthorityType {
		case AuthorityAccountOwner:
			if !acc.Owner.Equals(authInfo.Key) {
				t.logger.Info("SetAuthority: owner mismatch", "account", accInfo.Key, "owner", acc.Owner, "authority", authInfo.Key)
				return errors.Wrapf(ErrOwnerMismatch, "account %s", accInfo.Key)
			}
			if args.NewAuthority == nil {
				return errors.Wrap(meter.ErrInvalidParameter, "account owner cannot be cleared")
			}
			acc.Owner = *args.NewAuthority
			acc.Delegate = nil
			acc.DelegatedAmount = 0
		case AuthorityCloseAccount:
			current := acc.Owner
			if acc.CloseAuthority != nil {
				current = *acc.CloseAuthority
			}
			if !current.Equals(authInfo.Key) {
				return errors.Wrapf(ErrOwnerMismatch, "account %s", accInfo.Key)
			}
			acc.CloseAuthority = args.NewAuthority
		default:
			return errors.Wrapf(ErrAuthorityTypeNotSupported, "%v on a token account", args.AuthorityType)
		}
		return storeAccount(accInfo, acc)

	case MintSize:
		m, err := loadMint(accInfo)
		if err != nil {
			return err
		}
		switch args.AuthorityType {
		case AuthorityMintTokens:
			if m.MintAuthority == nil {
				return ErrFixedSupply
			}
			if !m.MintAuthority.Equals(authInfo.Key) {
				t.logger.Info("SetAuthority: mint authority mismatch", "mint", accInfo.Key, "authority", authInfo.Key)
				return errors.Wrapf(ErrOwnerMismatch, "mint %s", accInfo.Key)
			}
			m.MintAuthority = args.NewAuthority
		case AuthorityFreezeAccount:
			if m.FreezeAuthority == nil {
				return errors.Wrapf(ErrAuthorityTypeNotSupported, "mint %s cannot freeze", accInfo.Key)
			}
			if !m.FreezeAuthority.Equals(authInfo.Key) {
				t.logger.Info("SetAuthority: freeze authority mismatch", "mint", accInfo.Key, "authority", authInfo.Key)
				return errors.Wrapf(ErrOwnerMismatch, "mint %s", accInfo.Key)
			}
			m.FreezeAuthority = args.NewAuthority
		default:
			return errors.Wrapf(ErrAuthorityTypeNotSupported, "%v on a mint", args.AuthorityType)
		}
		return storeMint(accInfo, m)

	default:
		return errors.Wrapf(meter.ErrInvalidParameter, "account %s is neither a mint nor a token account", accInfo.Key)
	}
}

func (t *Token) handleMintTo(env *xenv.Environment, amount uint64) error {
	mintInfo, err := env.Account(0)
	if err != nil {
		return err
	}
	dstInfo, err := env.Account(1)
	if err != nil {
		return err
	}
	authInfo, err := env.Account(2)
	if err != nil {
		return err
	}
	m, err := loadMint(mintInfo)
	if err != nil {
		return err
	}
	dst, err := loadAccount(dstInfo)
	if err != nil {
		return err
	}
	if !dst.Mint.Equals(mintInfo.Key) {
		return errors.Wrapf(ErrMintMismatch, "%s != %s", dst.Mint, mintInfo.Key)
	}
	if m.MintAuthority == nil {
		return ErrFixedSupply
	}
	if !m.MintAuthority.Equals(authInfo.Key) {
		return errors.Wrapf(ErrOwnerMismatch, "mint authority %s", authInfo.Key)
	}
	if !authInfo.IsSigner {
		return errors.Wrapf(meter.ErrMissingRequiredSignature, "mint authority %s", authInfo.Key)
	}
	if m.Supply+amount < m.Supply || dst.Amount+amount < dst.Amount {
		return ErrOverflow
	}
	m.Supply += amount
	dst.Amount += amount
	if err := storeMint(mintInfo, m); err != nil {
		return err
	}
	if err := storeAccount(dstInfo, dst); err != nil {
		return err
	}
	env.AddTransfer(mintInfo.Key, mintInfo.Key, dstInfo.Key, amount)
	return nil
}
