// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"log/slog"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/kv"
	"github.com/meterio/meter-auction/meter"
)

// Stage abstracts changes on the accounts.
type Stage struct {
	err error

	kv      kv.GetPutter
	addrs   []solana.PublicKey // sorted
	changes map[solana.PublicKey]*Account
}

func newStage(kv kv.GetPutter, changes map[solana.PublicKey]*Account) *Stage {
	addrs := make([]solana.PublicKey, 0, len(changes))
	for addr := range changes {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return &Stage{
		kv:      kv,
		addrs:   addrs,
		changes: changes,
	}
}

// Len returns the number of changed accounts.
func (s *Stage) Len() int {
	return len(s.addrs)
}

// Hash computes a digest over the changed accounts in address order.
func (s *Stage) Hash() (meter.Bytes32, error) {
	if s.err != nil {
		return meter.Bytes32{}, s.err
	}
	hw := meter.NewBlake2b()
	for _, addr := range s.addrs {
		hw.Write(addr[:])
		if err := rlp.Encode(hw, s.changes[addr]); err != nil {
			return meter.Bytes32{}, err
		}
	}
	var h meter.Bytes32
	hw.Sum(h[:0])
	return h, nil
}

// Commit writes all changes into the kv in one batch.
func (s *Stage) Commit() (meter.Bytes32, error) {
	return s.CommitBatch(s.kv.NewBatch())
}

// CommitBatch adds all changes to batch and writes it. Entries the caller
// already put into batch land in the same write.
func (s *Stage) CommitBatch(batch kv.Batch) (meter.Bytes32, error) {
	if s.err != nil {
		return meter.Bytes32{}, s.err
	}
	start := time.Now()
	hash, err := s.Hash()
	if err != nil {
		return meter.Bytes32{}, err
	}
	for _, addr := range s.addrs {
		if err := saveAccount(batch, addr, s.changes[addr]); err != nil {
			return meter.Bytes32{}, err
		}
	}
	acCache.beginCommit()
	if err := batch.Write(); err != nil {
		acCache.endCommit(nil, nil, s.kv)
		return meter.Bytes32{}, err
	}
	acCache.endCommit(s.addrs, s.changes, s.kv)

	slog.Debug("commited stage", "pkg", "state", "hash", hash.AbbrevString(), "accounts", len(s.addrs), "elapsed", meter.PrettyDuration(time.Since(start)))
	return hash, nil
}
