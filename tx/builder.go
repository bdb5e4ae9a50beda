// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/gagliardetto/solana-go"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// FeePayer set fee payer.
func (b *Builder) FeePayer(payer solana.PublicKey) *Builder {
	b.body.FeePayer = payer
	return b
}

// Instruction add an instruction.
func (b *Builder) Instruction(ix *Instruction) *Builder {
	b.body.Instructions = append(b.body.Instructions, ix)
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	tx.body.Instructions = make([]*Instruction, 0, len(b.body.Instructions))
	for _, ix := range b.body.Instructions {
		tx.body.Instructions = append(tx.body.Instructions, ix.Copy())
	}
	return &tx
}
