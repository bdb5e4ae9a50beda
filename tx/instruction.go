// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/gagliardetto/solana-go"
)

// Instruction is one call to a program inside a transaction.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  solana.AccountMetaSlice
	Data      []byte
}

// NewInstruction create an instruction.
func NewInstruction(programID solana.PublicKey, accounts solana.AccountMetaSlice, data []byte) *Instruction {
	return &Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}
}

// FromSolana converts any solana-go instruction builder output.
func FromSolana(ix solana.Instruction) (*Instruction, error) {
	data, err := ix.Data()
	if err != nil {
		return nil, err
	}
	return NewInstruction(ix.ProgramID(), ix.Accounts(), data), nil
}

// Copy returns a deep copy of the instruction.
func (ix *Instruction) Copy() *Instruction {
	accounts := make(solana.AccountMetaSlice, 0, len(ix.Accounts))
	for _, m := range ix.Accounts {
		cpy := *m
		accounts = append(accounts, &cpy)
	}
	return &Instruction{
		ProgramID: ix.ProgramID,
		Accounts:  accounts,
		Data:      append([]byte(nil), ix.Data...),
	}
}

// Signers returns keys of accounts flagged as signer, in order of appearance.
func (ix *Instruction) Signers() []solana.PublicKey {
	var keys []solana.PublicKey
	for _, m := range ix.Accounts {
		if m.IsSigner {
			keys = append(keys, m.PublicKey)
		}
	}
	return keys
}
