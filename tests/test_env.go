// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tests

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/genesis"
	"github.com/meterio/meter-auction/lvldb"
	"github.com/meterio/meter-auction/preset"
	"github.com/meterio/meter-auction/runtime"
	"github.com/meterio/meter-auction/script"
	"github.com/meterio/meter-auction/script/token"
	"github.com/meterio/meter-auction/state"
	"github.com/meterio/meter-auction/tx"
	"github.com/meterio/meter-auction/xenv"
)

type TestEnv struct {
	Runtime   *runtime.Runtime
	State     *state.State
	Genesis   *genesis.Genesis
	ProgramID solana.PublicKey

	nonce uint64
}

// NewTestEnv builds the test preset over an in-memory store.
func NewTestEnv() (*TestEnv, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	g, err := genesis.New(preset.TestPresetConfig)
	if err != nil {
		return nil, err
	}
	st := state.New(db)
	if err := g.Build(st); err != nil {
		return nil, err
	}
	se := script.NewScriptEngine()
	rt := runtime.New(se, st, &xenv.BlockContext{Slot: 1, Time: g.LaunchTime()})
	return &TestEnv{
		Runtime:   rt,
		State:     st,
		Genesis:   g,
		ProgramID: g.ProgramID(),
	}, nil
}

// Execute signs and runs the instructions with payer as fee payer.
func (e *TestEnv) Execute(payer solana.PrivateKey, ixs []*tx.Instruction, signers ...solana.PrivateKey) (*tx.Receipt, error) {
	e.nonce++
	trx, err := BuildTx(payer, e.nonce, ixs, signers...)
	if err != nil {
		return nil, err
	}
	return e.Runtime.ExecuteTransaction(context.Background(), trx)
}

// Snapshot copies the accounts at keys.
func (e *TestEnv) Snapshot(keys ...solana.PublicKey) map[solana.PublicKey]*state.Account {
	snap := make(map[solana.PublicKey]*state.Account, len(keys))
	for _, k := range keys {
		snap[k] = e.State.GetAccount(k)
	}
	return snap
}

// TokenAccount decodes the token account at key.
func (e *TestEnv) TokenAccount(key solana.PublicKey) (*token.Account, error) {
	return token.DecodeAccount(e.State.GetData(key))
}

// Mint decodes the mint at key.
func (e *TestEnv) Mint(key solana.PublicKey) (*token.Mint, error) {
	return token.DecodeMint(e.State.GetData(key))
}

// Fund credits lamports to key outside of any transaction.
func (e *TestEnv) Fund(key solana.PublicKey, lamports uint64) {
	acc := e.State.GetAccount(key)
	acc.Lamports += lamports
	e.State.SetAccount(key, acc)
}
