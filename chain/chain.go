// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/meterio/meter-auction/genesis"
	"github.com/meterio/meter-auction/kv"
	"github.com/meterio/meter-auction/logdb"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/runtime"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/tx"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrTxExists        = errors.New("tx already exists")
	ErrGenesisMismatch = errors.New("genesis mismatch")
)

var bestSlotGauge = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "best_slot",
	Help: "Last committed slot, one transaction per slot",
})

func init() {
	prometheus.MustRegister(bestSlotGauge)
}

// Chain is the persistent ledger. Every committed transaction gets its own slot.
// It's thread-safe.
type Chain struct {
	kv           kv.GetPutter
	stateCreator *state.Creator
	se           *script.ScriptEngine
	logDB        *logdb.LogDB
	genesis      *genesis.Genesis
	now          func() uint64
	logger       *slog.Logger

	bestSlot uint64
	rw       sync.RWMutex
}

// New opens the ledger in kv, building genesis state on first use.
// logDB may be nil.
func New(kv kv.GetPutter, g *genesis.Genesis, se *script.ScriptEngine, logDB *logdb.LogDB) (*Chain, error) {
	c := &Chain{
		kv:           kv,
		stateCreator: state.NewCreator(kv),
		se:           se,
		logDB:        logDB,
		genesis:      g,
		now:          func() uint64 { return uint64(time.Now().Unix()) },
		logger:       slog.Default().With("pkg", "chain"),
	}

	best, err := loadBestSlot(kv)
	if err != nil {
		if !kv.IsNotFound(err) {
			return nil, err
		}
		st := c.stateCreator.NewState()
		if err := g.Build(st); err != nil {
			return nil, errors.Wrap(err, "build genesis")
		}
		batch := kv.NewBatch()
		if err := batch.Put(genesisKey, []byte(g.Name())); err != nil {
			return nil, err
		}
		if err := saveBestSlot(batch, 0); err != nil {
			return nil, err
		}
		if _, err := st.Stage().CommitBatch(batch); err != nil {
			return nil, errors.Wrap(err, "commit genesis")
		}
		c.logger.Info("genesis built", "name", g.Name(), "program", g.ProgramID())
	} else {
		name, err := kv.Get(genesisKey)
		if err != nil {
			return nil, err
		}
		if string(name) != g.Name() {
			return nil, errors.WithMessagef(ErrGenesisMismatch, "store has %q, want %q", name, g.Name())
		}
		c.bestSlot = best
	}
	bestSlotGauge.Set(float64(c.bestSlot))
	return c, nil
}

// SetClock replaces the source of slot timestamps, in unix seconds.
func (c *Chain) SetClock(now func() uint64) {
	c.rw.Lock()
	defer c.rw.Unlock()
	c.now = now
}

func (c *Chain) Genesis() *genesis.Genesis { return c.genesis }

func (c *Chain) BestSlot() uint64 {
	c.rw.RLock()
	defer c.rw.RUnlock()
	return c.bestSlot
}

// NewState returns a state over the committed accounts.
func (c *Chain) NewState() *state.State {
	return c.stateCreator.NewState()
}

// IsNotFound returns if err is a not found error from the store.
func (c *Chain) IsNotFound(err error) bool {
	return c.kv.IsNotFound(err)
}

// GetReceipt returns the receipt of a committed tx.
func (c *Chain) GetReceipt(txID meter.Bytes32) (*tx.Receipt, error) {
	return loadReceipt(c.kv, txID)
}

// Execute runs trx in the next slot and commits it on success.
// A failed tx leaves the ledger untouched.
func (c *Chain) Execute(ctx context.Context, trx *tx.Transaction) (*tx.Receipt, error) {
	c.rw.Lock()
	defer c.rw.Unlock()

	txID := trx.ID()
	if has, err := c.kv.Has(receiptKey(txID)); err != nil {
		return nil, err
	} else if has {
		return nil, errors.WithMessage(ErrTxExists, txID.String())
	}

	slot := c.bestSlot + 1
	bctx := &xenv.BlockContext{Slot: slot, Time: c.now()}
	st := c.stateCreator.NewState()
	rt := runtime.New(c.se, st, bctx)
	rt.SyncClock()

	receipt, err := rt.ExecuteTransaction(ctx, trx)
	if err != nil {
		return nil, err
	}

	// accounts, receipt and best slot are written together
	batch := c.kv.NewBatch()
	if err := saveReceipt(batch, receipt); err != nil {
		return nil, err
	}
	if err := saveBestSlot(batch, slot); err != nil {
		return nil, err
	}
	if _, err := st.Stage().CommitBatch(batch); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	c.bestSlot = slot
	bestSlotGauge.Set(float64(slot))

	if c.logDB != nil {
		if err := c.logDB.Write(receipt, trx.FeePayer(), bctx.Time); err != nil {
			c.logger.Error("write logs failed", "tx", txID.AbbrevString(), "err", err)
		}
	}
	c.logger.Info("tx committed", "id", txID.AbbrevString(), "slot", slot)
	return receipt, nil
}
