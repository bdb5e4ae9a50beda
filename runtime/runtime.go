// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/tx"
	"github.com/meterio/meter-auction/xenv"
	"github.com/pkg/errors"
)

// Runtime executes transactions against a state, one at a time.
type Runtime struct {
	se     *script.ScriptEngine
	state  *state.State
	ctx    *xenv.BlockContext
	logger *slog.Logger

	mu sync.Mutex
}

// New create a Runtime object.
func New(
	se *script.ScriptEngine,
	state *state.State,
	ctx *xenv.BlockContext,
) *Runtime {
	return &Runtime{
		se:     se,
		state:  state,
		ctx:    ctx,
		logger: slog.Default().With("pkg", "rt"),
	}
}

func (rt *Runtime) State() *state.State         { return rt.state }
func (rt *Runtime) Context() *xenv.BlockContext { return rt.ctx }

// SyncClock writes the block context into the clock sysvar.
func (rt *Runtime) SyncClock() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	acc := rt.state.GetAccount(meter.SysVarClockPubkey)
	clock := meter.Clock{Slot: rt.ctx.Slot, UnixTimestamp: int64(rt.ctx.Time)}
	if old, err := meter.DecodeClock(acc.Data); err == nil {
		clock.Epoch = old.Epoch
		clock.EpochStartTimestamp = old.EpochStartTimestamp
		clock.LeaderScheduleEpoch = old.LeaderScheduleEpoch
	}
	acc.Data = clock.Encode()
	rt.state.SetAccount(meter.SysVarClockPubkey, acc)
}

// ExecuteTransaction executes every instruction of trx in order.
// Either all instructions succeed and their changes stay in the state,
// or the state is reverted to where it was before trx.
func (rt *Runtime) ExecuteTransaction(ctx context.Context, trx *tx.Transaction) (receipt *tx.Receipt, err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	defer func() {
		transactionsCounter.WithLabelValues(resultLabel(err)).Inc()
		rt.logger.Debug("tx executed", "id", trx.ID().AbbrevString(), "err", err, "elapsed", meter.PrettyDuration(time.Since(start)))
	}()

	if err := trx.VerifySignatures(); err != nil {
		return nil, errors.Wrap(meter.ErrAuthorizationFailure, err.Error())
	}

	// checkpoint to be reverted when any instruction fails.
	checkpoint := rt.state.NewCheckpoint()
	defer func() {
		if err != nil {
			rt.state.RevertTo(checkpoint)
		}
	}()

	exec := &executor{
		rt: rt,
		txCtx: &xenv.TransactionContext{
			ID:       trx.ID(),
			FeePayer: trx.FeePayer(),
			Nonce:    trx.Nonce(),
		},
		signers: make(map[solana.PublicKey]bool),
	}
	for _, s := range trx.Signers() {
		exec.signers[s] = true
	}

	instructions := trx.Instructions()
	receipt = &tx.Receipt{
		TxID:    trx.ID(),
		Slot:    rt.ctx.Slot,
		Outputs: make([]*tx.Output, 0, len(instructions)),
	}
	for i, ix := range instructions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		output := &tx.Output{}
		accounts := make([]*xenv.AccountInfo, 0, len(ix.Accounts))
		for _, m := range ix.Accounts {
			if m.IsSigner && !exec.signers[m.PublicKey] {
				return nil, errors.WithMessagef(meter.ErrMissingRequiredSignature, "instruction %d: account %s", i, m.PublicKey)
			}
			accounts = append(accounts, xenv.NewAccountInfo(m.PublicKey, m.IsSigner, m.IsWritable, rt.state))
		}
		if err := exec.execute(ix.ProgramID, accounts, ix.Data, 0, output); err != nil {
			return nil, errors.WithMessagef(err, "instruction %d", i)
		}
		receipt.Outputs = append(receipt.Outputs, output)
	}
	if err := rt.state.Err(); err != nil {
		return nil, err
	}
	return receipt, nil
}

type frame struct {
	env      *xenv.Environment
	pre      map[solana.PublicKey]*state.Account
	writable map[solana.PublicKey]bool
}

// executor runs the instructions of one transaction, including nested calls.
type executor struct {
	rt      *Runtime
	txCtx   *xenv.TransactionContext
	signers map[solana.PublicKey]bool
	frames  []*frame
}

func (e *executor) snapshot(f *frame) {
	f.pre = make(map[solana.PublicKey]*state.Account, len(f.env.Accounts()))
	for _, a := range f.env.Accounts() {
		f.pre[a.Key] = e.rt.state.GetAccount(a.Key)
	}
}

func (e *executor) execute(programID solana.PublicKey, accounts []*xenv.AccountInfo, data []byte, depth int, output *tx.Output) (err error) {
	defer func() {
		instructionsCounter.WithLabelValues(e.rt.se.ModuleName(programID), resultLabel(err)).Inc()
	}()

	if !e.rt.state.GetAccount(programID).Executable || !e.rt.se.IsRegistered(programID) {
		return errors.Wrapf(ErrProgramNotExecutable, "program %s", programID)
	}

	f := &frame{writable: make(map[solana.PublicKey]bool)}
	for _, a := range accounts {
		if a.IsWritable {
			f.writable[a.Key] = true
		}
	}
	f.env = xenv.New(programID, accounts, data, depth, e.rt.state, e.rt.ctx, e.txCtx, e, output)
	e.snapshot(f)

	e.frames = append(e.frames, f)
	err = e.rt.se.HandleInstruction(f.env)
	e.frames = e.frames[:len(e.frames)-1]
	if err != nil {
		return err
	}
	return e.verify(f)
}

// Invoke implements xenv.Invoker.
func (e *executor) Invoke(caller *xenv.Environment, ix *tx.Instruction, signers []solana.PublicKey) error {
	if len(e.frames) == 0 || e.frames[len(e.frames)-1].env != caller {
		return errors.New("invoke from an inactive environment")
	}
	callerFrame := e.frames[len(e.frames)-1]

	depth := caller.Depth() + 1
	if depth > meter.MaxInvokeDepth {
		return errors.Wrapf(ErrCallDepth, "depth %d", depth)
	}

	pdaSigners := make(map[solana.PublicKey]bool, len(signers))
	for _, s := range signers {
		pdaSigners[s] = true
	}

	accounts := make([]*xenv.AccountInfo, 0, len(ix.Accounts))
	for _, m := range ix.Accounts {
		var callerSigner, callerWritable, found bool
		for _, a := range caller.Accounts() {
			if a.Key.Equals(m.PublicKey) {
				found = true
				callerSigner = callerSigner || a.IsSigner
				callerWritable = callerWritable || a.IsWritable
			}
		}
		if !found {
			return errors.Wrapf(ErrUnknownInstructionAccount, "account %s", m.PublicKey)
		}
		if m.IsWritable && !callerWritable {
			e.rt.logger.Info("writable privilege escalated", "account", m.PublicKey)
			return errors.Wrapf(ErrPrivilegeEscalation, "writable %s", m.PublicKey)
		}
		if m.IsSigner && !callerSigner && !pdaSigners[m.PublicKey] {
			e.rt.logger.Info("signer privilege escalated", "account", m.PublicKey)
			return errors.Wrapf(ErrPrivilegeEscalation, "signer %s", m.PublicKey)
		}
		accounts = append(accounts, xenv.NewAccountInfo(m.PublicKey, m.IsSigner, m.IsWritable, e.rt.state))
	}

	// changes made by the caller so far are checked against its own privileges
	if err := e.verify(callerFrame); err != nil {
		return err
	}
	if err := e.execute(ix.ProgramID, accounts, ix.Data, depth, caller.Output()); err != nil {
		return err
	}
	// what the callee changed is not attributed to the caller
	e.snapshot(callerFrame)
	return nil
}
