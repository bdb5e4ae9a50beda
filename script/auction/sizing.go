// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"

	"github.com/meterio/meter-auction/meter"
	"github.com/pkg/errors"
)

// WinnerLimit caps how many top bids are tracked as winners.
// It is either Capped or Unlimited.
type WinnerLimit interface {
	isWinnerLimit()
	String() string
}

// Capped keeps at most N winners.
type Capped struct {
	N uint64
}

// Unlimited keeps every bid as a winner.
type Unlimited struct{}

func (Capped) isWinnerLimit()    {}
func (Unlimited) isWinnerLimit() {}

func (c Capped) String() string  { return fmt.Sprintf("Capped(%d)", c.N) }
func (Unlimited) String() string { return "Unlimited" }

// bid slot multipliers reserved above the winner count
const (
	smallSlack     = 4
	largeSlack     = 2
	smallSlackUpTo = 16
)

// MaxArraySizeFor returns how many bids the ranking table holds for n winners.
func MaxArraySizeFor(n uint64) uint64 {
	if n <= smallSlackUpTo {
		return n * smallSlack
	}
	return n * largeSlack
}

// SizeFor returns the byte size of the auction account for limit.
func SizeFor(limit WinnerLimit) (int, error) {
	switch l := limit.(type) {
	case Capped:
		if l.N == 0 {
			return 0, ErrInvalidWinnerLimit
		}
		const maxSlots = (meter.MaxPermittedDataLength - BASE_AUCTION_DATA_SIZE) / BID_RECORD_SIZE
		if l.N > maxSlots || MaxArraySizeFor(l.N) > maxSlots {
			return 0, errors.Wrapf(meter.ErrInvalidParameter, "winner limit %d too large", l.N)
		}
		return BASE_AUCTION_DATA_SIZE + int(MaxArraySizeFor(l.N))*BID_RECORD_SIZE, nil
	case Unlimited:
		return BASE_AUCTION_DATA_SIZE, nil
	default:
		return 0, errors.Wrapf(meter.ErrInvalidParameter, "unknown winner limit %T", limit)
	}
}

// newBidState returns the empty bid state matching limit.
func newBidState(limit WinnerLimit) BidState {
	switch l := limit.(type) {
	case Capped:
		return &EnglishAuction{Max: l.N}
	default:
		return &OpenEdition{}
	}
}
