// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/gagliardetto/solana-go"
)

// Event represents a program event log.
type Event struct {
	// program emitting the event
	Program solana.PublicKey
	Name    string
	// account the event is about
	Address solana.PublicKey
	Data    []byte
}

// Events slice of event logs.
type Events []*Event
