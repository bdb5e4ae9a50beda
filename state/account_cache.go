// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sync"

	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru"
	"github.com/meterio/meter-auction/kv"
)

var acCache = newAccountCache()

// accountCache caches committed accounts. gen advances around every
// commit, and a read-through load is only cached when no commit started
// or finished while it was loading.
type accountCache struct {
	cache *lru.Cache

	mu  sync.Mutex
	gen uint64
}

type accountCacheEntry struct {
	account *Account
	kv      kv.Getter
}

func newAccountCache() *accountCache {
	cache, err := lru.New(1024)
	if err != nil {
		return nil
	}
	return &accountCache{cache: cache}
}

// Get returns a committed account, reading through to r on a miss.
// The returned account is a copy and may be modified.
func (ac *accountCache) Get(addr solana.PublicKey, r kv.Getter) (*Account, error) {
	if v, ok := ac.cache.Get(addr); ok {
		entry := v.(*accountCacheEntry)
		if entry.kv == r {
			return entry.account.Copy(), nil
		}
	}
	gen := ac.generation()
	a, err := loadAccount(r, addr)
	if err != nil {
		return nil, err
	}
	ac.addIfCurrent(addr, a, r, gen)
	return a, nil
}

func (ac *accountCache) generation() uint64 {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return ac.gen
}

// addIfCurrent caches a loaded at generation gen. It reports false when a
// commit has moved the generation since.
func (ac *accountCache) addIfCurrent(addr solana.PublicKey, a *Account, r kv.Getter, gen uint64) bool {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	if ac.gen != gen {
		return false
	}
	ac.cache.Add(addr, &accountCacheEntry{a.Copy(), r})
	return true
}

// beginCommit must be called before a commit writes to the store.
func (ac *accountCache) beginCommit() {
	ac.mu.Lock()
	ac.gen++
	ac.mu.Unlock()
}

// endCommit caches the written accounts once the store holds them.
func (ac *accountCache) endCommit(addrs []solana.PublicKey, changes map[solana.PublicKey]*Account, r kv.Getter) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.gen++
	for _, addr := range addrs {
		ac.cache.Add(addr, &accountCacheEntry{changes[addr].Copy(), r})
	}
}
