// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"bytes"
	"math"

	bin "github.com/gagliardetto/binary"
)

const (
	// AccountStorageOverhead is charged on top of the data length of every account.
	AccountStorageOverhead = 128

	RentSysvarLen  = 17
	ClockSysvarLen = 40
)

// Rent holds the parameters of the rent sysvar.
type Rent struct {
	LamportsPerByteYear uint64  `yaml:"lamportsPerByteYear"`
	ExemptionThreshold  float64 `yaml:"exemptionThreshold"`
	BurnPercent         uint8   `yaml:"burnPercent"`
}

var DefaultRent = Rent{
	LamportsPerByteYear: 3480,
	ExemptionThreshold:  2.0,
	BurnPercent:         50,
}

// MinimumBalance returns the lamports an account of dataLen bytes must hold
// to stay exempt from rent collection.
func (r Rent) MinimumBalance(dataLen uint64) uint64 {
	bytes := float64(dataLen + AccountStorageOverhead)
	return uint64(bytes * float64(r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// IsExempt reports whether lamports cover the minimum balance for dataLen.
func (r Rent) IsExempt(lamports uint64, dataLen uint64) bool {
	return lamports >= r.MinimumBalance(dataLen)
}

func (r Rent) Encode() []byte {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	enc.WriteUint64(r.LamportsPerByteYear, bin.LE)
	enc.WriteUint64(math.Float64bits(r.ExemptionThreshold), bin.LE)
	enc.WriteUint8(r.BurnPercent)
	return buf.Bytes()
}

func DecodeRent(data []byte) (Rent, error) {
	var r Rent
	if len(data) < RentSysvarLen {
		return r, NewProgramError(ErrSerializationFault, 0, "rent sysvar too short")
	}
	dec := bin.NewBinDecoder(data)
	perByte, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return r, err
	}
	threshold, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return r, err
	}
	burn, err := dec.ReadUint8()
	if err != nil {
		return r, err
	}
	r.LamportsPerByteYear = perByte
	r.ExemptionThreshold = math.Float64frombits(threshold)
	r.BurnPercent = burn
	return r, nil
}

// Clock holds the clock sysvar.
type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

func (c Clock) Encode() []byte {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	enc.WriteUint64(c.Slot, bin.LE)
	enc.WriteInt64(c.EpochStartTimestamp, bin.LE)
	enc.WriteUint64(c.Epoch, bin.LE)
	enc.WriteUint64(c.LeaderScheduleEpoch, bin.LE)
	enc.WriteInt64(c.UnixTimestamp, bin.LE)
	return buf.Bytes()
}

func DecodeClock(data []byte) (Clock, error) {
	var c Clock
	if len(data) < ClockSysvarLen {
		return c, NewProgramError(ErrSerializationFault, 0, "clock sysvar too short")
	}
	dec := bin.NewBinDecoder(data)
	var err error
	if c.Slot, err = dec.ReadUint64(bin.LE); err != nil {
		return c, err
	}
	if c.EpochStartTimestamp, err = dec.ReadInt64(bin.LE); err != nil {
		return c, err
	}
	if c.Epoch, err = dec.ReadUint64(bin.LE); err != nil {
		return c, err
	}
	if c.LeaderScheduleEpoch, err = dec.ReadUint64(bin.LE); err != nil {
		return c, err
	}
	if c.UnixTimestamp, err = dec.ReadInt64(bin.LE); err != nil {
		return c, err
	}
	return c, nil
}
