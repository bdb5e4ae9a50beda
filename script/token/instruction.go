// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
)

// instruction tags, the first byte of instruction data
const (
	InstrInitializeMint    uint8 = 0
	InstrInitializeAccount uint8 = 1
	InstrTransfer          uint8 = 3
	InstrApprove           uint8 = 4
	InstrSetAuthority      uint8 = 6
	InstrMintTo            uint8 = 7
)

// AuthorityType selects which authority SetAuthority replaces.
type AuthorityType uint8

const (
	AuthorityMintTokens AuthorityType = iota
	AuthorityFreezeAccount
	AuthorityAccountOwner
	AuthorityCloseAccount
)

func (t AuthorityType) String() string {
	switch t {
	case AuthorityMintTokens:
		return "MintTokens"
	case AuthorityFreezeAccount:
		return "FreezeAccount"
	case AuthorityAccountOwner:
		return "AccountOwner"
	case AuthorityCloseAccount:
		return "CloseAccount"
	default:
		return "Unknown"
	}
}

type InitializeMintArgs struct {
	Decimals        uint8
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
}

type SetAuthorityArgs struct {
	AuthorityType AuthorityType
	NewAuthority  *solana.PublicKey
}

func writeOptionKey(encoder *bin.Encoder, key *solana.PublicKey) error {
	if key == nil {
		return encoder.WriteUint8(0)
	}
	if err := encoder.WriteUint8(1); err != nil {
		return err
	}
	return encoder.WriteBytes(key[:], false)
}

func readOptionKey(decoder *bin.Decoder) (*solana.PublicKey, error) {
	tag, err := decoder.ReadUint8()
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil
	}
	b, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return nil, err
	}
	key := solana.PublicKeyFromBytes(b)
	return &key, nil
}

func (args *InitializeMintArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(InstrInitializeMint); err != nil {
		return err
	}
	if err := encoder.WriteUint8(args.Decimals); err != nil {
		return err
	}
	if err := encoder.WriteBytes(args.MintAuthority[:], false); err != nil {
		return err
	}
	return writeOptionKey(encoder, args.FreezeAuthority)
}

func (args *InitializeMintArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if args.Decimals, err = decoder.ReadUint8(); err != nil {
		return
	}
	b, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return
	}
	args.MintAuthority = solana.PublicKeyFromBytes(b)
	args.FreezeAuthority, err = readOptionKey(decoder)
	return
}

func (args *SetAuthorityArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(InstrSetAuthority); err != nil {
		return err
	}
	if err := encoder.WriteUint8(uint8(args.AuthorityType)); err != nil {
		return err
	}
	return writeOptionKey(encoder, args.NewAuthority)
}

func (args *SetAuthorityArgs) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	t, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	args.AuthorityType = AuthorityType(t)
	args.NewAuthority, err = readOptionKey(decoder)
	return err
}

// amountInstr encodes the instructions carrying a single amount.
type amountInstr struct {
	tag    uint8
	amount uint64
}

func (a *amountInstr) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(a.tag); err != nil {
		return err
	}
	return encoder.WriteUint64(a.amount, bin.LE)
}

func encode(m bin.BinaryMarshaler) []byte {
	buf := new(bytes.Buffer)
	if err := m.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		panic("encode token instruction: " + err.Error())
	}
	return buf.Bytes()
}

func withSigners(metas solana.AccountMetaSlice, signers []solana.PublicKey) solana.AccountMetaSlice {
	for _, s := range signers {
		metas = append(metas, solana.NewAccountMeta(s, false, true))
	}
	return metas
}

// NewInitializeMintInstruction initializes a mint account created with MintSize bytes.
func NewInitializeMintInstruction(mint solana.PublicKey, decimals uint8, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(meter.TokenProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(mint, true, false),
		solana.NewAccountMeta(meter.SysVarRentPubkey, false, false),
	}, encode(&InitializeMintArgs{Decimals: decimals, MintAuthority: mintAuthority, FreezeAuthority: freezeAuthority}))
}

// NewInitializeAccountInstruction initializes a token account of mint held by owner.
func NewInitializeAccountInstruction(account, mint, owner solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(meter.TokenProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(owner, false, false),
		solana.NewAccountMeta(meter.SysVarRentPubkey, false, false),
	}, []byte{InstrInitializeAccount})
}

// NewTransferInstruction moves amount from source to destination.
// authority is the owner or approved delegate of source. Extra signers are
// appended as readonly signer accounts.
func NewTransferInstruction(source, destination, authority solana.PublicKey, amount uint64, signers ...solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(meter.TokenProgramID, withSigners(solana.AccountMetaSlice{
		solana.NewAccountMeta(source, true, false),
		solana.NewAccountMeta(destination, true, false),
		solana.NewAccountMeta(authority, false, true),
	}, signers), encode(&amountInstr{InstrTransfer, amount}))
}

// NewApproveInstruction lets delegate transfer up to amount out of source.
func NewApproveInstruction(source, delegate, owner solana.PublicKey, amount uint64) *tx.Instruction {
	return tx.NewInstruction(meter.TokenProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(source, true, false),
		solana.NewAccountMeta(delegate, false, false),
		solana.NewAccountMeta(owner, false, true),
	}, encode(&amountInstr{InstrApprove, amount}))
}

// NewSetAuthorityInstruction replaces an authority of a mint or an account.
func NewSetAuthorityInstruction(account, currentAuthority solana.PublicKey, authorityType AuthorityType, newAuthority *solana.PublicKey, signers ...solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(meter.TokenProgramID, withSigners(solana.AccountMetaSlice{
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(currentAuthority, false, true),
	}, signers), encode(&SetAuthorityArgs{AuthorityType: authorityType, NewAuthority: newAuthority}))
}

// NewMintToInstruction mints amount into destination.
func NewMintToInstruction(mint, destination, authority solana.PublicKey, amount uint64) *tx.Instruction {
	return tx.NewInstruction(meter.TokenProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(mint, true, false),
		solana.NewAccountMeta(destination, true, false),
		solana.NewAccountMeta(authority, false, true),
	}, encode(&amountInstr{InstrMintTo, amount}))
}
