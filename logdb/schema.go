// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

const (
	eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	txID CHAR(32) NOT NULL,
	eventIndex INTEGER NOT NULL,
	slot INTEGER NOT NULL,
	slotTime INTEGER NOT NULL,
	txOrigin CHAR(32) NOT NULL,
	program CHAR(32) NOT NULL,
	name TEXT NOT NULL,
	address CHAR(32) NOT NULL,
	data BLOB,
	PRIMARY KEY (txID, eventIndex)
);
CREATE INDEX IF NOT EXISTS event_i0 ON event(slot);
CREATE INDEX IF NOT EXISTS event_i1 ON event(slotTime);
CREATE INDEX IF NOT EXISTS event_i2 ON event(address);
CREATE INDEX IF NOT EXISTS event_i3 ON event(program, name);
`

	transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	txID CHAR(32) NOT NULL,
	transferIndex INTEGER NOT NULL,
	slot INTEGER NOT NULL,
	slotTime INTEGER NOT NULL,
	txOrigin CHAR(32) NOT NULL,
	mint CHAR(32) NOT NULL,
	sender CHAR(32) NOT NULL,
	recipient CHAR(32) NOT NULL,
	amount BLOB NOT NULL,
	PRIMARY KEY (txID, transferIndex)
);
CREATE INDEX IF NOT EXISTS transfer_i0 ON transfer(slot);
CREATE INDEX IF NOT EXISTS transfer_i1 ON transfer(slotTime);
CREATE INDEX IF NOT EXISTS transfer_i2 ON transfer(txOrigin);
CREATE INDEX IF NOT EXISTS transfer_i3 ON transfer(sender);
CREATE INDEX IF NOT EXISTS transfer_i4 ON transfer(recipient);
CREATE INDEX IF NOT EXISTS transfer_i5 ON transfer(mint);
`
)
