// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"log/slog"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

var (
	AuctionGlobInst *Auction
)

// Auction is the native auction program.
type Auction struct {
	logger *slog.Logger
}

func GetAuctionGlobInst() *Auction {
	return AuctionGlobInst
}

func SetAuctionGlobInst(inst *Auction) {
	AuctionGlobInst = inst
}

func NewAuction() *Auction {
	auction := &Auction{
		logger: slog.Default().With("pkg", "auction"),
	}
	SetAuctionGlobInst(auction)
	return auction
}

func (a *Auction) Start() error {
	a.logger.Info("auction module started")
	return nil
}

// Handle executes one auction instruction.
func (a *Auction) Handle(env *xenv.Environment) (err error) {
	dec := bin.NewBorshDecoder(env.Data())
	op, err := dec.ReadUint8()
	if err != nil {
		return meter.ErrInvalidInstructionData
	}

	start := time.Now()
	a.logger.Info("+ Processing " + GetOpName(op))
	defer func() {
		if err != nil {
			a.logger.Info("- Failed "+GetOpName(op), "err", err, "elapsed", meter.PrettyDuration(time.Since(start)))
			return
		}
		a.logger.Debug("- Done "+GetOpName(op), "elapsed", meter.PrettyDuration(time.Since(start)))
	}()

	switch op {
	case OP_CREATE_AUCTION:
		var args CreateAuctionArgs
		if err := args.UnmarshalWithDecoder(dec); err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		return a.handleCreateAuction(env, &args)

	case OP_DELEGATE:
		var args DelegateArgs
		if err := args.UnmarshalWithDecoder(dec); err != nil {
			return errors.Wrap(meter.ErrInvalidInstructionData, err.Error())
		}
		return a.handleDelegate(env, &args)

	default:
		return errors.Wrapf(meter.ErrInvalidInstructionData, "unknown auction op %d", op)
	}
}
