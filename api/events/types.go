// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/meter"
)

type LogMeta struct {
	TxID     meter.Bytes32    `json:"txID"`
	TxOrigin solana.PublicKey `json:"txOrigin"`
	Slot     uint64           `json:"slot"`
	SlotTime uint64           `json:"slotTime"`
}

type FilteredEvent struct {
	Program solana.PublicKey `json:"program"`
	Name    string           `json:"name"`
	Address solana.PublicKey `json:"address"`
	Data    hexutil.Bytes    `json:"data"`
	Meta    LogMeta          `json:"meta"`
}

// convert a logdb.Event into a json format Event
func convertEvent(event *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Program: event.Program,
		Name:    event.Name,
		Address: event.Address,
		Data:    event.Data,
		Meta: LogMeta{
			TxID:     event.TxID,
			TxOrigin: event.TxOrigin,
			Slot:     event.Slot,
			SlotTime: event.SlotTime,
		},
	}
}

type EventCriteria struct {
	Program *solana.PublicKey `json:"program"`
	Name    *string           `json:"name"`
	Address *solana.PublicKey `json:"address"`
}

type EventFilter struct {
	TxID        *meter.Bytes32   `json:"txID"`
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *logdb.Range     `json:"range"`
	Options     *logdb.Options   `json:"options"`
	Order       logdb.Order      `json:"order"`
}

func convertEventFilter(filter *EventFilter) *logdb.EventFilter {
	f := &logdb.EventFilter{
		TxID:    filter.TxID,
		Range:   filter.Range,
		Options: filter.Options,
		Order:   filter.Order,
	}
	for _, c := range filter.CriteriaSet {
		f.CriteriaSet = append(f.CriteriaSet, &logdb.EventCriteria{
			Program: c.Program,
			Name:    c.Name,
			Address: c.Address,
		})
	}
	return f
}
