// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
)

// Event represents tx.Event that can be stored in db.
type Event struct {
	TxID     meter.Bytes32
	Index    uint32
	Slot     uint64
	SlotTime uint64
	TxOrigin solana.PublicKey // fee payer
	Program  solana.PublicKey
	Name     string
	Address  solana.PublicKey
	Data     []byte
}

func newEvent(b *SlotBatch, index uint32, txID meter.Bytes32, txOrigin solana.PublicKey, ev *tx.Event) *Event {
	return &Event{
		TxID:     txID,
		Index:    index,
		Slot:     b.slot,
		SlotTime: b.time,
		TxOrigin: txOrigin,
		Program:  ev.Program,
		Name:     ev.Name,
		Address:  ev.Address,
		Data:     ev.Data,
	}
}

// Transfer represents tx.Transfer that can be stored in db.
type Transfer struct {
	TxID      meter.Bytes32
	Index     uint32
	Slot      uint64
	SlotTime  uint64
	TxOrigin  solana.PublicKey
	Mint      solana.PublicKey
	Sender    solana.PublicKey
	Recipient solana.PublicKey
	Amount    uint64
}

func newTransfer(b *SlotBatch, index uint32, txID meter.Bytes32, txOrigin solana.PublicKey, transfer *tx.Transfer) *Transfer {
	return &Transfer{
		TxID:      txID,
		Index:     index,
		Slot:      b.slot,
		SlotTime:  b.time,
		TxOrigin:  txOrigin,
		Mint:      transfer.Mint,
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
	}
}

type RangeType string

const (
	Slot RangeType = "slot"
	Time RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType `json:"unit"`
	From uint64    `json:"from"`
	To   uint64    `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// EventCriteria fields are ANDed, criteria in a set are ORed.
type EventCriteria struct {
	Program *solana.PublicKey
	Name    *string
	Address *solana.PublicKey
}

// EventFilter filter
type EventFilter struct {
	TxID        *meter.Bytes32
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}

type TransferCriteria struct {
	TxOrigin  *solana.PublicKey //who paid for the transaction
	Mint      *solana.PublicKey
	Sender    *solana.PublicKey
	Recipient *solana.PublicKey
}

type TransferFilter struct {
	TxID        *meter.Bytes32
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order //default asc
}
