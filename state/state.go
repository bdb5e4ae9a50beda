// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/kv"
)

// State manages accounts on top of a kv store.
// Changes are journalled so that they can be reverted to a checkpoint,
// and nothing reaches the kv until a Stage is committed.
type State struct {
	kv      kv.GetPutter
	dirty   map[solana.PublicKey]*Account // ongoing changes
	journal []journalEntry
	err     error
}

type journalEntry struct {
	addr    solana.PublicKey
	prev    *Account
	touched bool // whether addr was dirty before this entry
}

// New create an state object.
func New(kv kv.GetPutter) *State {
	return &State{
		kv:    kv,
		dirty: make(map[solana.PublicKey]*Account),
	}
}

func (s *State) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns first occurred error.
func (s *State) Err() error {
	return s.err
}

// the returned account should not be modified
func (s *State) getAccount(addr solana.PublicKey) *Account {
	if a, ok := s.dirty[addr]; ok {
		return a
	}
	a, err := acCache.Get(addr, s.kv)
	if err != nil {
		s.setError(err)
		return emptyAccount()
	}
	return a
}

// GetAccount returns a copy of the account at addr.
// A missing account is returned as an empty system owned account.
func (s *State) GetAccount(addr solana.PublicKey) *Account {
	return s.getAccount(addr).Copy()
}

// SetAccount replaces the account at addr.
func (s *State) SetAccount(addr solana.PublicKey, a *Account) {
	prev, touched := s.dirty[addr]
	s.journal = append(s.journal, journalEntry{addr: addr, prev: prev, touched: touched})
	s.dirty[addr] = a.Copy()
}

// Exists returns whether an account exists at the given address.
// See Account.IsEmpty()
func (s *State) Exists(addr solana.PublicKey) bool {
	return !s.getAccount(addr).IsEmpty()
}

// GetLamports returns lamports of the account at addr.
func (s *State) GetLamports(addr solana.PublicKey) uint64 {
	return s.getAccount(addr).Lamports
}

// GetOwner returns the owner program of the account at addr.
func (s *State) GetOwner(addr solana.PublicKey) solana.PublicKey {
	return s.getAccount(addr).Owner
}

// GetData returns a copy of the data of the account at addr.
func (s *State) GetData(addr solana.PublicKey) []byte {
	return append([]byte(nil), s.getAccount(addr).Data...)
}

// Delete resets the account at addr to empty.
func (s *State) Delete(addr solana.PublicKey) {
	s.SetAccount(addr, emptyAccount())
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return len(s.journal)
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > len(s.journal) {
		return
	}
	for i := len(s.journal) - 1; i >= revision; i-- {
		e := s.journal[i]
		if e.touched {
			s.dirty[e.addr] = e.prev
		} else {
			delete(s.dirty, e.addr)
		}
	}
	s.journal = s.journal[:revision]
}

// Stage makes a stage object to compute hash of changes or commit all changes.
func (s *State) Stage() *Stage {
	if s.err != nil {
		return &Stage{err: s.err}
	}
	changes := make(map[solana.PublicKey]*Account, len(s.dirty))
	for addr, a := range s.dirty {
		changes[addr] = a.Copy()
	}
	return newStage(s.kv, changes)
}
