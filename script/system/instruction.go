// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package system

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
)

// instruction discriminants, laid out as a little endian uint32
const (
	InstrCreateAccount uint32 = 0
	InstrAssign        uint32 = 1
	InstrTransfer      uint32 = 2
	InstrAllocate      uint32 = 8
)

type InstrCreateAccountArgs struct {
	Lamports uint64
	Space    uint64
	Owner    solana.PublicKey
}

type InstrAssignArgs struct {
	Owner solana.PublicKey
}

type InstrTransferArgs struct {
	Lamports uint64
}

type InstrAllocateArgs struct {
	Space uint64
}

func (instr *InstrCreateAccountArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if instr.Lamports, err = decoder.ReadUint64(bin.LE); err != nil {
		return
	}
	if instr.Space, err = decoder.ReadUint64(bin.LE); err != nil {
		return
	}
	pk, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return
	}
	copy(instr.Owner[:], pk)
	return nil
}

func (instr *InstrCreateAccountArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint32(InstrCreateAccount, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteUint64(instr.Lamports, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteUint64(instr.Space, bin.LE); err != nil {
		return err
	}
	return encoder.WriteBytes(instr.Owner[:], false)
}

func (instr *InstrAssignArgs) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	pk, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	copy(instr.Owner[:], pk)
	return nil
}

func (instr *InstrAssignArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint32(InstrAssign, bin.LE); err != nil {
		return err
	}
	return encoder.WriteBytes(instr.Owner[:], false)
}

func (instr *InstrTransferArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	instr.Lamports, err = decoder.ReadUint64(bin.LE)
	return
}

func (instr *InstrTransferArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint32(InstrTransfer, bin.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(instr.Lamports, bin.LE)
}

func (instr *InstrAllocateArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	instr.Space, err = decoder.ReadUint64(bin.LE)
	return
}

func (instr *InstrAllocateArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint32(InstrAllocate, bin.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(instr.Space, bin.LE)
}

func encode(m bin.BinaryMarshaler) []byte {
	buf := new(bytes.Buffer)
	if err := m.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		panic("encode system instruction: " + err.Error())
	}
	return buf.Bytes()
}

// NewCreateAccountInstruction funds a new account from `from`, allocates space
// and assigns it to owner. Both accounts must sign.
func NewCreateAccountInstruction(from, to solana.PublicKey, lamports, space uint64, owner solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(meter.SystemProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(from, true, true),
		solana.NewAccountMeta(to, true, true),
	}, encode(&InstrCreateAccountArgs{Lamports: lamports, Space: space, Owner: owner}))
}

// NewAssignInstruction hands the account to owner.
func NewAssignInstruction(account, owner solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(meter.SystemProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(account, true, true),
	}, encode(&InstrAssignArgs{Owner: owner}))
}

// NewTransferInstruction moves lamports between system accounts.
func NewTransferInstruction(from, to solana.PublicKey, lamports uint64) *tx.Instruction {
	return tx.NewInstruction(meter.SystemProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(from, true, true),
		solana.NewAccountMeta(to, true, false),
	}, encode(&InstrTransferArgs{Lamports: lamports}))
}

// NewAllocateInstruction sizes the data of an unused account.
func NewAllocateInstruction(account solana.PublicKey, space uint64) *tx.Instruction {
	return tx.NewInstruction(meter.SystemProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(account, true, true),
	}, encode(&InstrAllocateArgs{Space: space}))
}
