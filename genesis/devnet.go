// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ed25519"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/preset"
)

// KeyFromSeed derives a deterministic key pair from a name. Only meant for
// dev and test networks.
func KeyFromSeed(seed string) solana.PrivateKey {
	h := meter.Blake2b([]byte("meter-auction/dev-key"), []byte(seed))
	return solana.PrivateKey(ed25519.NewKeyFromSeed(h[:]))
}

// DevAccount account for development.
type DevAccount struct {
	Seed       string
	Address    solana.PublicKey
	PrivateKey solana.PrivateKey
}

var (
	devAccountsOnce sync.Once
	devAccounts     []DevAccount
)

// DevAccounts returns the funded accounts of the dev preset.
func DevAccounts() []DevAccount {
	devAccountsOnce.Do(func() {
		for _, a := range preset.DevPresetConfig.Accounts {
			key := KeyFromSeed(a.Seed)
			devAccounts = append(devAccounts, DevAccount{a.Seed, key.PublicKey(), key})
		}
	})
	return devAccounts
}

// NewDevnet create genesis for solo mode.
func NewDevnet() *Genesis {
	g, err := New(preset.DevPresetConfig)
	if err != nil {
		panic(err)
	}
	return g
}
