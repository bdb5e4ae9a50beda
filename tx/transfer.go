// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/gagliardetto/solana-go"
)

// Transfer token transfer log.
// Sender and Recipient are token accounts.
type Transfer struct {
	Mint      solana.PublicKey
	Sender    solana.PublicKey
	Recipient solana.PublicKey
	Amount    uint64
}

// Transfers slisce of transfer logs.
type Transfers []*Transfer
