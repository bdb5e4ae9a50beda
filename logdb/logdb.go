// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/binary"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
	"github.com/pkg/errors"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			if err := db.Close(); err != nil {
				slog.Warn("could not close logdb", "err", err)
			}
		}
	}()
	// every connection to ":memory:" opens its own database
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Prepare starts a batch of logs produced in the given slot.
func (db *LogDB) Prepare(slot, time uint64) *SlotBatch {
	return &SlotBatch{
		db:   db.db,
		slot: slot,
		time: time,
	}
}

// Write stores every event and transfer of a committed receipt.
func (db *LogDB) Write(receipt *tx.Receipt, txOrigin solana.PublicKey, slotTime uint64) error {
	batch := db.Prepare(receipt.Slot, slotTime)
	txBatch := batch.ForTransaction(receipt.TxID, txOrigin)
	for _, o := range receipt.Outputs {
		txBatch.Insert(o.Events, o.Transfers)
	}
	return batch.Commit()
}

func rangeClause(r *Range, args []interface{}) (string, []interface{}) {
	if r == nil {
		return "", args
	}
	column := "slot"
	if r.Unit == Time {
		column = "slotTime"
	}
	stmt := " AND " + column + " >= ? "
	args = append(args, r.From)
	if r.To >= r.From {
		stmt += " AND " + column + " <= ? "
		args = append(args, r.To)
	}
	return stmt, args
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event ORDER BY slot ASC, txID ASC, eventIndex ASC")
	}
	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	var clause string
	clause, args = rangeClause(filter.Range, args)
	stmt += clause
	if filter.TxID != nil {
		args = append(args, filter.TxID.Bytes())
		stmt += " AND txID = ? "
	}
	length := len(filter.CriteriaSet)
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1 "
		} else {
			stmt += " OR ( 1 "
		}
		if criteria.Program != nil {
			args = append(args, criteria.Program.Bytes())
			stmt += " AND program = ? "
		}
		if criteria.Name != nil {
			args = append(args, *criteria.Name)
			stmt += " AND name = ? "
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ? "
		}
		if i == length-1 {
			stmt += " )) "
		} else {
			stmt += " ) "
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY slot DESC, txID DESC, eventIndex DESC "
	} else {
		stmt += " ORDER BY slot ASC, txID ASC, eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT * FROM transfer ORDER BY slot ASC, txID ASC, transferIndex ASC")
	}
	var args []interface{}
	stmt := "SELECT * FROM transfer WHERE 1"
	var clause string
	clause, args = rangeClause(filter.Range, args)
	stmt += clause
	if filter.TxID != nil {
		args = append(args, filter.TxID.Bytes())
		stmt += " AND txID = ? "
	}
	length := len(filter.CriteriaSet)
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1 "
		} else {
			stmt += " OR ( 1 "
		}
		if criteria.TxOrigin != nil {
			args = append(args, criteria.TxOrigin.Bytes())
			stmt += " AND txOrigin = ? "
		}
		if criteria.Mint != nil {
			args = append(args, criteria.Mint.Bytes())
			stmt += " AND mint = ? "
		}
		if criteria.Sender != nil {
			args = append(args, criteria.Sender.Bytes())
			stmt += " AND sender = ? "
		}
		if criteria.Recipient != nil {
			args = append(args, criteria.Recipient.Bytes())
			stmt += " AND recipient = ? "
		}
		if i == length-1 {
			stmt += " )) "
		} else {
			stmt += " ) "
		}
	}
	if filter.Order == DESC {
		stmt += " ORDER BY slot DESC, txID DESC, transferIndex DESC "
	} else {
		stmt += " ORDER BY slot ASC, txID ASC, transferIndex ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			txID     []byte
			index    uint32
			slot     uint64
			slotTime uint64
			txOrigin []byte
			program  []byte
			name     string
			address  []byte
			data     []byte
		)
		if err := rows.Scan(
			&txID,
			&index,
			&slot,
			&slotTime,
			&txOrigin,
			&program,
			&name,
			&address,
			&data,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			TxID:     meter.BytesToBytes32(txID),
			Index:    index,
			Slot:     slot,
			SlotTime: slotTime,
			TxOrigin: solana.PublicKeyFromBytes(txOrigin),
			Program:  solana.PublicKeyFromBytes(program),
			Name:     name,
			Address:  solana.PublicKeyFromBytes(address),
			Data:     data,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			txID      []byte
			index     uint32
			slot      uint64
			slotTime  uint64
			txOrigin  []byte
			mint      []byte
			sender    []byte
			recipient []byte
			amount    []byte
		)
		if err := rows.Scan(
			&txID,
			&index,
			&slot,
			&slotTime,
			&txOrigin,
			&mint,
			&sender,
			&recipient,
			&amount,
		); err != nil {
			return nil, err
		}
		if len(amount) != 8 {
			return nil, errors.Errorf("corrupted transfer amount of %d bytes", len(amount))
		}
		transfers = append(transfers, &Transfer{
			TxID:      meter.BytesToBytes32(txID),
			Index:     index,
			Slot:      slot,
			SlotTime:  slotTime,
			TxOrigin:  solana.PublicKeyFromBytes(txOrigin),
			Mint:      solana.PublicKeyFromBytes(mint),
			Sender:    solana.PublicKeyFromBytes(sender),
			Recipient: solana.PublicKeyFromBytes(recipient),
			Amount:    binary.BigEndian.Uint64(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

// SlotBatch collects logs of one slot and writes them in a single db tx.
type SlotBatch struct {
	db        *sql.DB
	slot      uint64
	time      uint64
	events    []*Event
	transfers []*Transfer
}

func (bb *SlotBatch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := bb.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		if e := tx.Rollback(); e != nil {
			slog.Warn("could not rollback logdb", "err", e)
		}
		return err
	}
	return tx.Commit()
}

func (bb *SlotBatch) Commit() error {
	return bb.execInTx(func(tx *sql.Tx) error {
		for _, event := range bb.events {
			if _, err := tx.Exec("INSERT OR REPLACE INTO event(txID, eventIndex, slot, slotTime, txOrigin, program, name, address, data) VALUES ( ?, ?, ?, ?, ?, ?, ?, ?, ?);",
				event.TxID.Bytes(),
				event.Index,
				event.Slot,
				event.SlotTime,
				event.TxOrigin.Bytes(),
				event.Program.Bytes(),
				event.Name,
				event.Address.Bytes(),
				event.Data,
			); err != nil {
				return err
			}
		}

		for _, transfer := range bb.transfers {
			if _, err := tx.Exec("INSERT OR REPLACE INTO transfer(txID, transferIndex, slot, slotTime, txOrigin, mint, sender, recipient, amount) VALUES ( ?, ?, ?, ?, ?, ?, ?, ?, ?);",
				transfer.TxID.Bytes(),
				transfer.Index,
				transfer.Slot,
				transfer.SlotTime,
				transfer.TxOrigin.Bytes(),
				transfer.Mint.Bytes(),
				transfer.Sender.Bytes(),
				transfer.Recipient.Bytes(),
				binary.BigEndian.AppendUint64(nil, transfer.Amount),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// TxBatch appends the logs of one transaction to its slot batch.
type TxBatch struct {
	batch    *SlotBatch
	txID     meter.Bytes32
	txOrigin solana.PublicKey
	events   uint32
	transfer uint32
}

func (bb *SlotBatch) ForTransaction(txID meter.Bytes32, txOrigin solana.PublicKey) *TxBatch {
	return &TxBatch{batch: bb, txID: txID, txOrigin: txOrigin}
}

// Insert indexes logs within the transaction, so several outputs of one tx keep distinct keys.
func (tb *TxBatch) Insert(events tx.Events, transfers tx.Transfers) *SlotBatch {
	bb := tb.batch
	for _, event := range events {
		bb.events = append(bb.events, newEvent(bb, tb.events, tb.txID, tb.txOrigin, event))
		tb.events++
	}
	for _, transfer := range transfers {
		bb.transfers = append(bb.transfers, newTransfer(bb, tb.transfer, tb.txID, tb.txOrigin, transfer))
		tb.transfer++
	}
	return bb
}
