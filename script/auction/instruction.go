// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
	"github.com/pkg/errors"
)

// CreateAuctionArgs are the parameters of CreateAuction.
type CreateAuctionArgs struct {
	Winners               WinnerLimit
	EndAuctionAt          *int64
	EndAuctionGap         *int64
	TokenMint             solana.PublicKey
	Authority             solana.PublicKey
	Resource              solana.PublicKey
	PriceFloor            PriceFloor
	TickSize              *uint64
	GapTickSizePercentage *uint8
	NftMint               solana.PublicKey
	NftAmount             uint64
	InstantSalePrice      *uint64
	Name                  *AuctionName
}

// DelegateArgs are the parameters of Delegate.
type DelegateArgs struct {
	EscrowNonce uint8
}

const (
	winnerLimitCapped    uint8 = 0
	winnerLimitUnlimited uint8 = 1
)

func (args *CreateAuctionArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint8(OP_CREATE_AUCTION); err != nil {
		return err
	}
	switch w := args.Winners.(type) {
	case Capped:
		if err := enc.WriteUint8(winnerLimitCapped); err != nil {
			return err
		}
		if err := enc.WriteUint64(w.N, bin.LE); err != nil {
			return err
		}
	case Unlimited:
		if err := enc.WriteUint8(winnerLimitUnlimited); err != nil {
			return err
		}
		if err := enc.WriteUint64(0, bin.LE); err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown winner limit %T", args.Winners)
	}
	if err := writeOptionInt64(enc, args.EndAuctionAt); err != nil {
		return err
	}
	if err := writeOptionInt64(enc, args.EndAuctionGap); err != nil {
		return err
	}
	for _, key := range []solana.PublicKey{args.TokenMint, args.Authority, args.Resource} {
		if err := writeKey(enc, key); err != nil {
			return err
		}
	}
	if err := args.PriceFloor.encode(enc); err != nil {
		return err
	}
	if err := writeOptionUint64(enc, args.TickSize); err != nil {
		return err
	}
	if err := writeOptionUint8(enc, args.GapTickSizePercentage); err != nil {
		return err
	}
	if err := writeKey(enc, args.NftMint); err != nil {
		return err
	}
	if err := enc.WriteUint64(args.NftAmount, bin.LE); err != nil {
		return err
	}
	if err := writeOptionUint64(enc, args.InstantSalePrice); err != nil {
		return err
	}
	return writeOptionName(enc, args.Name)
}

// UnmarshalWithDecoder reads the arguments that follow the instruction tag.
func (args *CreateAuctionArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	tag, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	n, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	switch tag {
	case winnerLimitCapped:
		args.Winners = Capped{N: n}
	case winnerLimitUnlimited:
		args.Winners = Unlimited{}
	default:
		return errors.Wrapf(ErrUnknownVariant, "winner limit %d", tag)
	}
	if args.EndAuctionAt, err = readOptionInt64(dec); err != nil {
		return err
	}
	if args.EndAuctionGap, err = readOptionInt64(dec); err != nil {
		return err
	}
	for _, key := range []*solana.PublicKey{&args.TokenMint, &args.Authority, &args.Resource} {
		if *key, err = readKey(dec); err != nil {
			return err
		}
	}
	if args.PriceFloor, err = decodePriceFloor(dec); err != nil {
		return err
	}
	if args.TickSize, err = readOptionUint64(dec); err != nil {
		return err
	}
	if args.GapTickSizePercentage, err = readOptionUint8(dec); err != nil {
		return err
	}
	if args.NftMint, err = readKey(dec); err != nil {
		return err
	}
	if args.NftAmount, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if args.InstantSalePrice, err = readOptionUint64(dec); err != nil {
		return err
	}
	args.Name, err = readOptionName(dec)
	return err
}

func (args *DelegateArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint8(OP_DELEGATE); err != nil {
		return err
	}
	return enc.WriteUint8(args.EscrowNonce)
}

func (args *DelegateArgs) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	args.EscrowNonce, err = dec.ReadUint8()
	return
}

func encodeInstruction(m bin.BinaryMarshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := m.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CreateAuctionAccounts names the accounts of CreateAuction.
type CreateAuctionAccounts struct {
	Payer                 solana.PublicKey
	Auction               solana.PublicKey
	AuctionExtended       solana.PublicKey
	NftMint               solana.PublicKey
	SellerNftTokenAccount solana.PublicKey
	Escrow                solana.PublicKey
	AuctionNftAccount     solana.PublicKey
	TokenProgram          solana.PublicKey
	Rent                  solana.PublicKey
	System                solana.PublicKey
}

// DeriveCreateAuctionAccounts fills the derived accounts of CreateAuction for
// a payer selling from seller.
func DeriveCreateAuctionAccounts(programID, payer, resource, nftMint, seller solana.PublicKey) (*CreateAuctionAccounts, error) {
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
	escrow, _, err := FindEscrowAddress(programID, payer)
	if err != nil {
		return nil, err
	}
	return &CreateAuctionAccounts{
		Payer:                 payer,
		Auction:               auction,
		AuctionExtended:       extended,
		NftMint:               nftMint,
		SellerNftTokenAccount: seller,
		Escrow:                escrow,
		AuctionNftAccount:     custody,
		TokenProgram:          meter.TokenProgramID,
		Rent:                  meter.SysVarRentPubkey,
		System:                meter.SystemProgramID,
	}, nil
}

// NewCreateAuctionInstruction builds a CreateAuction instruction.
func NewCreateAuctionInstruction(programID solana.PublicKey, accounts *CreateAuctionAccounts, args *CreateAuctionArgs) (*tx.Instruction, error) {
	data, err := encodeInstruction(args)
	if err != nil {
		return nil, err
	}
	return tx.NewInstruction(programID, solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Payer, true, true),
		solana.NewAccountMeta(accounts.Auction, true, false),
		solana.NewAccountMeta(accounts.AuctionExtended, true, false),
		solana.NewAccountMeta(accounts.NftMint, false, false),
		solana.NewAccountMeta(accounts.SellerNftTokenAccount, true, false),
		solana.NewAccountMeta(accounts.Escrow, false, false),
		solana.NewAccountMeta(accounts.AuctionNftAccount, true, false),
		solana.NewAccountMeta(accounts.TokenProgram, false, false),
		solana.NewAccountMeta(accounts.Rent, false, false),
		solana.NewAccountMeta(accounts.System, false, false),
	}, data), nil
}

// DelegateAccounts names the accounts of Delegate.
type DelegateAccounts struct {
	Creator      solana.PublicKey
	Mint         solana.PublicKey
	Escrow       solana.PublicKey
	TokenAccount solana.PublicKey
	TokenProgram solana.PublicKey
}

// NewDelegateInstruction builds a Delegate instruction.
func NewDelegateInstruction(programID solana.PublicKey, accounts *DelegateAccounts, args *DelegateArgs) (*tx.Instruction, error) {
	data, err := encodeInstruction(args)
	if err != nil {
		return nil, err
	}
	return tx.NewInstruction(programID, solana.AccountMetaSlice{
		solana.NewAccountMeta(accounts.Creator, false, true),
		solana.NewAccountMeta(accounts.Mint, true, false),
		solana.NewAccountMeta(accounts.Escrow, false, false),
		solana.NewAccountMeta(accounts.TokenAccount, true, false),
		solana.NewAccountMeta(accounts.TokenProgram, false, false),
	}, data), nil
}
