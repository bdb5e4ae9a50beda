// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/meterio/meter-auction/meter"
)

// Receipt represents the results of a tx.
type Receipt struct {
	TxID meter.Bytes32
	Slot uint64
	// outputs of instructions, one per top level instruction
	Outputs []*Output
}

// Output output of an instruction, including calls it made to other programs.
type Output struct {
	Events    Events
	Transfers Transfers
}

// Receipts slice of receipts.
type Receipts []*Receipt
