// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Options are a one byte presence flag followed by the value when present.

func writeKey(enc *bin.Encoder, key solana.PublicKey) error {
	return enc.WriteBytes(key[:], false)
}

func readKey(dec *bin.Decoder) (solana.PublicKey, error) {
	b, err := dec.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

func writeOptionInt64(enc *bin.Encoder, v *int64) error {
	if err := enc.WriteBool(v != nil); err != nil || v == nil {
		return err
	}
	return enc.WriteInt64(*v, bin.LE)
}

func readOptionInt64(dec *bin.Decoder) (*int64, error) {
	ok, err := dec.ReadBool()
	if err != nil || !ok {
		return nil, err
	}
	v, err := dec.ReadInt64(bin.LE)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeOptionUint64(enc *bin.Encoder, v *uint64) error {
	if err := enc.WriteBool(v != nil); err != nil || v == nil {
		return err
	}
	return enc.WriteUint64(*v, bin.LE)
}

func readOptionUint64(dec *bin.Decoder) (*uint64, error) {
	ok, err := dec.ReadBool()
	if err != nil || !ok {
		return nil, err
	}
	v, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeOptionUint8(enc *bin.Encoder, v *uint8) error {
	if err := enc.WriteBool(v != nil); err != nil || v == nil {
		return err
	}
	return enc.WriteUint8(*v)
}

func readOptionUint8(dec *bin.Decoder) (*uint8, error) {
	ok, err := dec.ReadBool()
	if err != nil || !ok {
		return nil, err
	}
	v, err := dec.ReadUint8()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func writeOptionName(enc *bin.Encoder, v *AuctionName) error {
	if err := enc.WriteBool(v != nil); err != nil || v == nil {
		return err
	}
	return enc.WriteBytes(v[:], false)
}

func readOptionName(dec *bin.Decoder) (*AuctionName, error) {
	ok, err := dec.ReadBool()
	if err != nil || !ok {
		return nil, err
	}
	b, err := dec.ReadBytes(NAME_LENGTH)
	if err != nil {
		return nil, err
	}
	var name AuctionName
	copy(name[:], b)
	return &name, nil
}
