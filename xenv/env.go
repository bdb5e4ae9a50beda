// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/tx"
	"github.com/pkg/errors"
)

// BlockContext block context.
type BlockContext struct {
	Slot uint64
	Time uint64
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID       meter.Bytes32
	FeePayer solana.PublicKey
	Nonce    uint64
}

func (ctx *TransactionContext) String() string {
	return fmt.Sprintf("txCtx{ID:%s FeePayer:%s Nonce:%d}", ctx.ID.String(), ctx.FeePayer.String(), ctx.Nonce)
}

// Invoker executes an instruction on behalf of a calling program.
// signers are the program derived addresses the caller signs for.
type Invoker interface {
	Invoke(caller *Environment, ix *tx.Instruction, signers []solana.PublicKey) error
}

// Environment an env to execute one instruction of a native program.
type Environment struct {
	programID solana.PublicKey
	accounts  []*AccountInfo
	data      []byte
	depth     int

	state    *state.State
	blockCtx *BlockContext
	txCtx    *TransactionContext
	invoker  Invoker
	output   *tx.Output
}

// New create a new env.
func New(
	programID solana.PublicKey,
	accounts []*AccountInfo,
	data []byte,
	depth int,
	state *state.State,
	blockCtx *BlockContext,
	txCtx *TransactionContext,
	invoker Invoker,
	output *tx.Output,
) *Environment {
	return &Environment{
		programID: programID,
		accounts:  accounts,
		data:      data,
		depth:     depth,
		state:     state,
		blockCtx:  blockCtx,
		txCtx:     txCtx,
		invoker:   invoker,
		output:    output,
	}
}

func (env *Environment) ProgramID() solana.PublicKey             { return env.programID }
func (env *Environment) Accounts() []*AccountInfo                { return env.accounts }
func (env *Environment) Data() []byte                            { return env.data }
func (env *Environment) Depth() int                              { return env.depth }
func (env *Environment) State() *state.State                     { return env.state }
func (env *Environment) BlockContext() *BlockContext             { return env.blockCtx }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }
func (env *Environment) Output() *tx.Output                      { return env.output }

// Account returns the i-th account of the instruction.
func (env *Environment) Account(i int) (*AccountInfo, error) {
	if i < 0 || i >= len(env.accounts) {
		return nil, errors.Wrapf(meter.ErrNotEnoughAccountKeys, "want index %d of %d", i, len(env.accounts))
	}
	return env.accounts[i], nil
}

// Invoke calls another program with the privileges of the current instruction.
func (env *Environment) Invoke(ix *tx.Instruction) error {
	return env.InvokeSigned(ix)
}

// InvokeSigned calls another program, additionally signing for every program
// address derived from signerSeeds under the calling program id.
func (env *Environment) InvokeSigned(ix *tx.Instruction, signerSeeds ...[][]byte) error {
	signers := make([]solana.PublicKey, 0, len(signerSeeds))
	for _, seeds := range signerSeeds {
		addr, err := meter.CreateAddress(seeds, env.programID)
		if err != nil {
			return err
		}
		signers = append(signers, addr)
	}
	return env.invoker.Invoke(env, ix, signers)
}

// AddEvent records an event emitted by the current program.
func (env *Environment) AddEvent(name string, address solana.PublicKey, data []byte) {
	env.output.Events = append(env.output.Events, &tx.Event{
		Program: env.programID,
		Name:    name,
		Address: address,
		Data:    append([]byte(nil), data...),
	})
}

// AddTransfer records a token transfer.
func (env *Environment) AddTransfer(mint, sender, recipient solana.PublicKey, amount uint64) {
	env.output.Transfers = append(env.output.Transfers, &tx.Transfer{
		Mint:      mint,
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	})
}
