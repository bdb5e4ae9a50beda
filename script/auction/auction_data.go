// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/pkg/errors"
)

// AuctionState is the lifecycle of an auction.
type AuctionState uint8

const (
	Created AuctionState = iota
	Started
	Ended
)

func (s AuctionState) String() string {
	switch s {
	case Created:
		return "Created"
	case Started:
		return "Started"
	case Ended:
		return "Ended"
	default:
		return fmt.Sprintf("AuctionState(%d)", uint8(s))
	}
}

// CanTransition reports whether an auction in s may move to next.
// Ended is terminal.
func (s AuctionState) CanTransition(next AuctionState) bool {
	switch s {
	case Created:
		return next == Started
	case Started:
		return next == Ended
	default:
		return false
	}
}

// Transition returns next or ErrInvalidStateTransition.
func (s AuctionState) Transition(next AuctionState) (AuctionState, error) {
	if !s.CanTransition(next) {
		return s, errors.Wrapf(ErrInvalidStateTransition, "%v -> %v", s, next)
	}
	return next, nil
}

// PriceFloorKind tags a PriceFloor.
type PriceFloorKind uint8

const (
	PriceFloorNone PriceFloorKind = iota
	PriceFloorMinimum
	PriceFloorBlinded
)

func (k PriceFloorKind) String() string {
	switch k {
	case PriceFloorNone:
		return "None"
	case PriceFloorMinimum:
		return "Minimum"
	case PriceFloorBlinded:
		return "Blinded"
	default:
		return fmt.Sprintf("PriceFloorKind(%d)", uint8(k))
	}
}

// PriceFloor is the reserve of an auction. Every variant carries 32 bytes:
// a hash for None and Blinded, the amount in the first 8 bytes for Minimum.
type PriceFloor struct {
	Kind PriceFloorKind
	Hash [32]byte
}

// MinimumPrice returns a floor of amount.
func MinimumPrice(amount uint64) PriceFloor {
	p := PriceFloor{Kind: PriceFloorMinimum}
	bin.LE.PutUint64(p.Hash[:8], amount)
	return p
}

// Minimum returns the floor amount of a MinimumPrice floor.
func (p PriceFloor) Minimum() uint64 {
	if p.Kind != PriceFloorMinimum {
		return 0
	}
	return bin.LE.Uint64(p.Hash[:8])
}

func (p PriceFloor) encode(enc *bin.Encoder) error {
	if err := enc.WriteUint8(uint8(p.Kind)); err != nil {
		return err
	}
	return enc.WriteBytes(p.Hash[:], false)
}

func decodePriceFloor(dec *bin.Decoder) (PriceFloor, error) {
	var p PriceFloor
	kind, err := dec.ReadUint8()
	if err != nil {
		return p, err
	}
	if PriceFloorKind(kind) > PriceFloorBlinded {
		return p, errors.Wrapf(ErrUnknownVariant, "price floor %d", kind)
	}
	p.Kind = PriceFloorKind(kind)
	b, err := dec.ReadBytes(32)
	if err != nil {
		return p, err
	}
	copy(p.Hash[:], b)
	return p, nil
}

// Bid is one entry of the ranking table.
type Bid struct {
	Bidder solana.PublicKey
	Amount uint64
}

// BidState holds ranked bids, EnglishAuction for a capped winner limit and
// OpenEdition otherwise.
type BidState interface {
	isBidState()
	Bids() []Bid
	MaxWinners() uint64
}

type EnglishAuction struct {
	BidList []Bid
	Max     uint64
}

type OpenEdition struct {
	BidList []Bid
}

func (*EnglishAuction) isBidState() {}
func (*OpenEdition) isBidState()    {}

func (e *EnglishAuction) Bids() []Bid        { return e.BidList }
func (e *EnglishAuction) MaxWinners() uint64 { return e.Max }
func (o *OpenEdition) Bids() []Bid           { return o.BidList }
func (o *OpenEdition) MaxWinners() uint64    { return 0 }

const (
	bidStateEnglish     uint8 = 0
	bidStateOpenEdition uint8 = 1
)

func encodeBidState(enc *bin.Encoder, bs BidState) error {
	var tag uint8
	switch bs.(type) {
	case *EnglishAuction:
		tag = bidStateEnglish
	case *OpenEdition:
		tag = bidStateOpenEdition
	default:
		return errors.Wrapf(ErrUnknownVariant, "bid state %T", bs)
	}
	if err := enc.WriteUint8(tag); err != nil {
		return err
	}
	bids := bs.Bids()
	if err := enc.WriteUint32(uint32(len(bids)), bin.LE); err != nil {
		return err
	}
	for _, b := range bids {
		if err := writeKey(enc, b.Bidder); err != nil {
			return err
		}
		if err := enc.WriteUint64(b.Amount, bin.LE); err != nil {
			return err
		}
	}
	return enc.WriteUint64(bs.MaxWinners(), bin.LE)
}

func decodeBidState(dec *bin.Decoder) (BidState, error) {
	tag, err := dec.ReadUint8()
	if err != nil {
		return nil, err
	}
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	if int(n) > dec.Remaining()/BID_RECORD_SIZE {
		return nil, errors.Wrapf(ErrRecordTooLarge, "%d bids", n)
	}
	bids := make([]Bid, 0, n)
	for i := uint32(0); i < n; i++ {
		bidder, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		amount, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return nil, err
		}
		bids = append(bids, Bid{Bidder: bidder, Amount: amount})
	}
	max, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return nil, err
	}
	switch tag {
	case bidStateEnglish:
		return &EnglishAuction{BidList: bids, Max: max}, nil
	case bidStateOpenEdition:
		return &OpenEdition{BidList: bids}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownVariant, "bid state %d", tag)
	}
}

// AuctionData is the record stored in the auction account.
type AuctionData struct {
	Authority     solana.PublicKey
	BidState      BidState
	EndAuctionAt  *int64
	EndAuctionGap *int64
	EndedAt       *int64
	LastBid       *int64
	PriceFloor    PriceFloor
	State         AuctionState
	TokenMint     solana.PublicKey
}

// Encode returns the record bytes without padding.
func (a *AuctionData) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteUint8(KeyAuctionDataV1); err != nil {
		return nil, err
	}
	if err := writeKey(enc, a.Authority); err != nil {
		return nil, err
	}
	if err := encodeBidState(enc, a.BidState); err != nil {
		return nil, err
	}
	for _, ts := range []*int64{a.EndAuctionAt, a.EndAuctionGap, a.EndedAt, a.LastBid} {
		if err := writeOptionInt64(enc, ts); err != nil {
			return nil, err
		}
	}
	if err := a.PriceFloor.encode(enc); err != nil {
		return nil, err
	}
	if err := enc.WriteUint8(uint8(a.State)); err != nil {
		return nil, err
	}
	if err := writeKey(enc, a.TokenMint); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serialize writes the record at the start of dst and zero fills the rest.
func (a *AuctionData) Serialize(dst []byte) error {
	return serializeInto(a, dst)
}

// DecodeAuctionData parses an auction account. Trailing bytes are ignored.
func DecodeAuctionData(data []byte) (*AuctionData, error) {
	dec := bin.NewBorshDecoder(data)
	key, err := dec.ReadUint8()
	if err != nil {
		return nil, errors.Wrap(ErrDataTypeMismatch, err.Error())
	}
	if key != KeyAuctionDataV1 {
		return nil, errors.Wrapf(ErrDataTypeMismatch, "record key %d", key)
	}

	var a AuctionData
	if a.Authority, err = readKey(dec); err != nil {
		return nil, err
	}
	if a.BidState, err = decodeBidState(dec); err != nil {
		return nil, err
	}
	for _, ts := range []**int64{&a.EndAuctionAt, &a.EndAuctionGap, &a.EndedAt, &a.LastBid} {
		if *ts, err = readOptionInt64(dec); err != nil {
			return nil, err
		}
	}
	if a.PriceFloor, err = decodePriceFloor(dec); err != nil {
		return nil, err
	}
	state, err := dec.ReadUint8()
	if err != nil {
		return nil, err
	}
	if AuctionState(state) > Ended {
		return nil, errors.Wrapf(ErrUnknownVariant, "auction state %d", state)
	}
	a.State = AuctionState(state)
	if a.TokenMint, err = readKey(dec); err != nil {
		return nil, err
	}
	return &a, nil
}

type encoder interface {
	Encode() ([]byte, error)
}

func serializeInto(r encoder, dst []byte) error {
	data, err := r.Encode()
	if err != nil {
		return errors.Wrap(meter.ErrSerializationFault, err.Error())
	}
	if len(data) > len(dst) {
		return errors.Wrapf(ErrRecordTooLarge, "record %d bytes, account %d bytes", len(data), len(dst))
	}
	n := copy(dst, data)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}
