// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/meter-auction/kv"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
)

var (
	receiptPrefix = []byte("r") // (prefix, tx id) -> receipt

	bestSlotKey = []byte("best-slot") // last committed slot
	genesisKey  = []byte("genesis")   // name of the genesis the store was built from
)

func saveRLP(w kv.Putter, key []byte, val interface{}) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return err
	}
	return w.Put(key, data)
}

func loadRLP(r kv.Getter, key []byte, val interface{}) error {
	data, err := r.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

func loadBestSlot(r kv.Getter) (uint64, error) {
	data, err := r.Get(bestSlotKey)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(data), nil
}

func saveBestSlot(w kv.Putter, slot uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], slot)
	return w.Put(bestSlotKey, b[:])
}

func receiptKey(txID meter.Bytes32) []byte {
	return append(append([]byte(nil), receiptPrefix...), txID[:]...)
}

func loadReceipt(r kv.Getter, txID meter.Bytes32) (*tx.Receipt, error) {
	var receipt tx.Receipt
	if err := loadRLP(r, receiptKey(txID), &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func saveReceipt(w kv.Putter, receipt *tx.Receipt) error {
	return saveRLP(w, receiptKey(receipt.TxID), receipt)
}
