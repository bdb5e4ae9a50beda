// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/state"
)

// AccountInfo is a program's handle on one account of an instruction.
// Reads and writes go straight to the state, the runtime checks afterwards
// that the program was allowed to make them.
type AccountInfo struct {
	Key        solana.PublicKey
	IsSigner   bool
	IsWritable bool

	state *state.State
}

// NewAccountInfo create an account handle over st.
func NewAccountInfo(key solana.PublicKey, isSigner, isWritable bool, st *state.State) *AccountInfo {
	return &AccountInfo{
		Key:        key,
		IsSigner:   isSigner,
		IsWritable: isWritable,
		state:      st,
	}
}

func (a *AccountInfo) Lamports() uint64        { return a.state.GetLamports(a.Key) }
func (a *AccountInfo) Owner() solana.PublicKey { return a.state.GetOwner(a.Key) }
func (a *AccountInfo) Data() []byte            { return a.state.GetData(a.Key) }
func (a *AccountInfo) DataLen() int            { return len(a.state.GetData(a.Key)) }
func (a *AccountInfo) Executable() bool        { return a.state.GetAccount(a.Key).Executable }

// IsOwnedBy returns whether the account belongs to program.
func (a *AccountInfo) IsOwnedBy(program solana.PublicKey) bool {
	return a.Owner().Equals(program)
}

// SetLamports sets the balance.
func (a *AccountInfo) SetLamports(v uint64) {
	acc := a.state.GetAccount(a.Key)
	acc.Lamports = v
	a.state.SetAccount(a.Key, acc)
}

// SetOwner assigns the account to program.
func (a *AccountInfo) SetOwner(program solana.PublicKey) {
	acc := a.state.GetAccount(a.Key)
	acc.Owner = program
	a.state.SetAccount(a.Key, acc)
}

// SetData replaces the whole data, possibly changing its length.
func (a *AccountInfo) SetData(data []byte) {
	acc := a.state.GetAccount(a.Key)
	acc.Data = append([]byte(nil), data...)
	a.state.SetAccount(a.Key, acc)
}
