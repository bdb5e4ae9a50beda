// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// AuctionName is a fixed length, zero padded label.
type AuctionName [NAME_LENGTH]byte

// NewAuctionName truncates s to NAME_LENGTH bytes.
func NewAuctionName(s string) AuctionName {
	var n AuctionName
	copy(n[:], s)
	return n
}

func (n AuctionName) String() string {
	return string(bytes.TrimRight(n[:], "\x00"))
}

// AuctionDataExtended is the record stored in the extended account.
// The account is always MAX_AUCTION_DATA_EXTENDED_SIZE bytes so fields can be appended later.
type AuctionDataExtended struct {
	NftMint               solana.PublicKey
	NftAmount             uint64
	TotalUncancelledBids  uint64
	TickSize              *uint64
	GapTickSizePercentage *uint8
	InstantSalePrice      *uint64
	Name                  *AuctionName
}

// Encode returns the record bytes without padding.
func (e *AuctionDataExtended) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteUint8(KeyAuctionDataExtendedV1); err != nil {
		return nil, err
	}
	if err := writeKey(enc, e.NftMint); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(e.NftAmount, bin.LE); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(e.TotalUncancelledBids, bin.LE); err != nil {
		return nil, err
	}
	if err := writeOptionUint64(enc, e.TickSize); err != nil {
		return nil, err
	}
	if err := writeOptionUint8(enc, e.GapTickSizePercentage); err != nil {
		return nil, err
	}
	if err := writeOptionUint64(enc, e.InstantSalePrice); err != nil {
		return nil, err
	}
	if err := writeOptionName(enc, e.Name); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serialize writes the record at the start of dst and zero fills the rest.
func (e *AuctionDataExtended) Serialize(dst []byte) error {
	return serializeInto(e, dst)
}

// DecodeAuctionDataExtended parses an extended account. Trailing bytes are ignored.
func DecodeAuctionDataExtended(data []byte) (*AuctionDataExtended, error) {
	dec := bin.NewBorshDecoder(data)
	key, err := dec.ReadUint8()
	if err != nil {
		return nil, errors.Wrap(ErrDataTypeMismatch, err.Error())
	}
	if key != KeyAuctionDataExtendedV1 {
		return nil, errors.Wrapf(ErrDataTypeMismatch, "record key %d", key)
	}

	var e AuctionDataExtended
	if e.NftMint, err = readKey(dec); err != nil {
		return nil, err
	}
	if e.NftAmount, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, err
	}
	if e.TotalUncancelledBids, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, err
	}
	if e.TickSize, err = readOptionUint64(dec); err != nil {
		return nil, err
	}
	if e.GapTickSizePercentage, err = readOptionUint8(dec); err != nil {
		return nil, err
	}
	if e.InstantSalePrice, err = readOptionUint64(dec); err != nil {
		return nil, err
	}
	if e.Name, err = readOptionName(dec); err != nil {
		return nil, err
	}
	return &e, nil
}
