// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/api/events"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/meter"
)

type FilteredTransfer struct {
	Mint      solana.PublicKey `json:"mint"`
	Sender    solana.PublicKey `json:"sender"`
	Recipient solana.PublicKey `json:"recipient"`
	Amount    uint64           `json:"amount"`
	Meta      events.LogMeta   `json:"meta"`
}

func convertTransfer(transfer *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Mint:      transfer.Mint,
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    transfer.Amount,
		Meta: events.LogMeta{
			TxID:     transfer.TxID,
			TxOrigin: transfer.TxOrigin,
			Slot:     transfer.Slot,
			SlotTime: transfer.SlotTime,
		},
	}
}

type TransferCriteria struct {
	TxOrigin  *solana.PublicKey `json:"txOrigin"`
	Mint      *solana.PublicKey `json:"mint"`
	Sender    *solana.PublicKey `json:"sender"`
	Recipient *solana.PublicKey `json:"recipient"`
}

type TransferFilter struct {
	TxID        *meter.Bytes32      `json:"txID"`
	CriteriaSet []*TransferCriteria `json:"criteriaSet"`
	Range       *logdb.Range        `json:"range"`
	Options     *logdb.Options      `json:"options"`
	Order       logdb.Order         `json:"order"`
}

func convertTransferFilter(filter *TransferFilter) *logdb.TransferFilter {
	f := &logdb.TransferFilter{
		TxID:    filter.TxID,
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	for _, c := range filter.CriteriaSet {
		f.CriteriaSet = append(f.CriteriaSet, &logdb.TransferCriteria{
			TxOrigin:  c.TxOrigin,
			Mint:      c.Mint,
			Sender:    c.Sender,
			Recipient: c.Recipient,
		})
	}
	return f
}
