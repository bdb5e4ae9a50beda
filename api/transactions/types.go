// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"encoding/base64"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/tx"
	"github.com/pkg/errors"
)

type AccountMeta struct {
	PublicKey  solana.PublicKey `json:"pubkey"`
	IsSigner   bool             `json:"isSigner"`
	IsWritable bool             `json:"isWritable"`
}

type Instruction struct {
	ProgramID solana.PublicKey `json:"programId"`
	Accounts  []AccountMeta    `json:"accounts"`
	Data      string           `json:"data"` // base64
}

// SendTx is the body of a tx submission: either Raw, the hex of the rlp encoded tx,
// or the tx fields with base58 signatures.
type SendTx struct {
	Raw          string            `json:"raw,omitempty"`
	FeePayer     *solana.PublicKey `json:"feePayer,omitempty"`
	Nonce        uint64            `json:"nonce"`
	Instructions []Instruction     `json:"instructions"`
	Signatures   []string          `json:"signatures"`
}

func (s *SendTx) transaction() (*tx.Transaction, error) {
	if s.Raw != "" {
		data, err := hexutil.Decode(s.Raw)
		if err != nil {
			return nil, errors.WithMessage(err, "raw")
		}
		var trx tx.Transaction
		if err := rlp.DecodeBytes(data, &trx); err != nil {
			return nil, errors.WithMessage(err, "raw")
		}
		return &trx, nil
	}
	if s.FeePayer == nil {
		return nil, errors.New("feePayer: missing")
	}
	b := new(tx.Builder).FeePayer(*s.FeePayer).Nonce(s.Nonce)
	for i, ix := range s.Instructions {
		data, err := base64.StdEncoding.DecodeString(ix.Data)
		if err != nil {
			return nil, errors.WithMessagef(err, "instructions[%d].data", i)
		}
		metas := make(solana.AccountMetaSlice, 0, len(ix.Accounts))
		for _, m := range ix.Accounts {
			metas = append(metas, solana.NewAccountMeta(m.PublicKey, m.IsWritable, m.IsSigner))
		}
		b.Instruction(tx.NewInstruction(ix.ProgramID, metas, data))
	}
	sigs := make([]solana.Signature, 0, len(s.Signatures))
	for i, str := range s.Signatures {
		sig, err := solana.SignatureFromBase58(str)
		if err != nil {
			return nil, errors.WithMessagef(err, "signatures[%d]", i)
		}
		sigs = append(sigs, sig)
	}
	return b.Build().WithSignatures(sigs), nil
}

// ConvertTx renders a signed tx as a submission body.
func ConvertTx(trx *tx.Transaction) *SendTx {
	fp := trx.FeePayer()
	s := &SendTx{
		FeePayer: &fp,
		Nonce:    trx.Nonce(),
	}
	for _, ix := range trx.Instructions() {
		out := Instruction{
			ProgramID: ix.ProgramID,
			Data:      base64.StdEncoding.EncodeToString(ix.Data),
		}
		for _, m := range ix.Accounts {
			out.Accounts = append(out.Accounts, AccountMeta{m.PublicKey, m.IsSigner, m.IsWritable})
		}
		s.Instructions = append(s.Instructions, out)
	}
	for _, sig := range trx.Signatures() {
		s.Signatures = append(s.Signatures, sig.String())
	}
	return s
}

type Event struct {
	Program solana.PublicKey `json:"program"`
	Name    string           `json:"name"`
	Address solana.PublicKey `json:"address"`
	Data    hexutil.Bytes    `json:"data"`
}

type Transfer struct {
	Mint      solana.PublicKey `json:"mint"`
	Sender    solana.PublicKey `json:"sender"`
	Recipient solana.PublicKey `json:"recipient"`
	Amount    uint64           `json:"amount"`
}

type Output struct {
	Events    []*Event    `json:"events"`
	Transfers []*Transfer `json:"transfers"`
}

type Receipt struct {
	TxID    meter.Bytes32 `json:"txID"`
	Slot    uint64        `json:"slot"`
	Outputs []*Output     `json:"outputs"`
}

func convertReceipt(r *tx.Receipt) *Receipt {
	receipt := &Receipt{
		TxID:    r.TxID,
		Slot:    r.Slot,
		Outputs: make([]*Output, len(r.Outputs)),
	}
	for i, o := range r.Outputs {
		out := &Output{
			Events:    make([]*Event, len(o.Events)),
			Transfers: make([]*Transfer, len(o.Transfers)),
		}
		for j, ev := range o.Events {
			out.Events[j] = &Event{ev.Program, ev.Name, ev.Address, ev.Data}
		}
		for j, tr := range o.Transfers {
			out.Transfers[j] = &Transfer{tr.Mint, tr.Sender, tr.Recipient, tr.Amount}
		}
		receipt.Outputs[i] = out
	}
	return receipt
}
