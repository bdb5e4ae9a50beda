// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tests

import (
	"github.com/meterio/meter-auction/genesis"
)

var (
	SellerKey  = genesis.KeyFromSeed("test-0")
	SellerAddr = SellerKey.PublicKey()
	OtherKey   = genesis.KeyFromSeed("test-1")
	OtherAddr  = OtherKey.PublicKey()
	PoorKey    = genesis.KeyFromSeed("test-poor")
	PoorAddr   = PoorKey.PublicKey()

	NftMint          = genesis.KeyFromSeed("test-nft").PublicKey()
	SellerNftAccount = genesis.HolderAccount("test-nft", "test-0")
	OtherNftAccount  = genesis.HolderAccount("test-nft", "test-1")
	CoinMint         = genesis.KeyFromSeed("test-coin").PublicKey()

	Resource = genesis.KeyFromSeed("test-resource").PublicKey()
)
