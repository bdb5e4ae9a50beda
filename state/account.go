// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/kv"
)

var accountKeyPrefix = []byte("a/")

// Account is the ledger representation of an account.
// RLP encoded objects are stored in the kv under accountKeyPrefix.
type Account struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
}

// IsEmpty returns if an account is empty.
// An empty account has no lamports, no data and is not executable.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && !a.Executable
}

// Copy returns a deep copy.
func (a *Account) Copy() *Account {
	cpy := *a
	if a.Data != nil {
		cpy.Data = append([]byte(nil), a.Data...)
	}
	return &cpy
}

// Equal reports whether two accounts hold the same content.
func (a *Account) Equal(b *Account) bool {
	return a.Lamports == b.Lamports &&
		a.Owner == b.Owner &&
		a.Executable == b.Executable &&
		bytes.Equal(a.Data, b.Data)
}

func emptyAccount() *Account {
	return &Account{Owner: solana.SystemProgramID}
}

func accountKey(addr solana.PublicKey) []byte {
	return append(append([]byte(nil), accountKeyPrefix...), addr[:]...)
}

// loadAccount load an account object by address in kv.
// It returns empty account is no account found at the address.
func loadAccount(r kv.Getter, addr solana.PublicKey) (*Account, error) {
	data, err := r.Get(accountKey(addr))
	if err != nil {
		if r.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// saveAccount save account into kv at given address.
// If the given account is empty, the value for given address is deleted.
func saveAccount(w kv.Putter, addr solana.PublicKey, a *Account) error {
	if a.IsEmpty() {
		return w.Delete(accountKey(addr))
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return w.Put(accountKey(addr), data)
}
