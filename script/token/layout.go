// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

const (
	MintSize    = 82
	AccountSize = 165
)

// AccountState is the state of a token account.
type AccountState uint8

const (
	AccountUninitialized AccountState = iota
	AccountInitialized
	AccountFrozen
)

// mintLayout is the on-chain layout of a mint, options carry a 4 byte tag.
type mintLayout struct {
	MintAuthorityOption   [4]byte
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              uint8
	IsInitialized         uint8
	FreezeAuthorityOption [4]byte
	FreezeAuthority       solana.PublicKey
}

type accountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       [4]byte
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       [4]byte
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption [4]byte
	CloseAuthority       solana.PublicKey
}

// Mint describes a token.
type Mint struct {
	MintAuthority   *solana.PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *solana.PublicKey
}

// Account is a holding of some mint.
type Account struct {
	Mint            solana.PublicKey
	Owner           solana.PublicKey
	Amount          uint64
	Delegate        *solana.PublicKey
	State           AccountState
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  *solana.PublicKey
}

func (a *Account) IsInitialized() bool { return a.State != AccountUninitialized }
func (a *Account) IsFrozen() bool      { return a.State == AccountFrozen }

func optionTag(set bool) (tag [4]byte) {
	if set {
		binary.LittleEndian.PutUint32(tag[:], 1)
	}
	return
}

func optionKey(tag [4]byte, key solana.PublicKey) *solana.PublicKey {
	if binary.LittleEndian.Uint32(tag[:]) == 0 {
		return nil
	}
	return &key
}

func deref(key *solana.PublicKey) solana.PublicKey {
	if key == nil {
		return solana.PublicKey{}
	}
	return *key
}

// DecodeMint parses mint account data.
func DecodeMint(data []byte) (*Mint, error) {
	if len(data) != MintSize {
		return nil, errors.Errorf("invalid mint size %d", len(data))
	}
	var l mintLayout
	if err := bin.NewBinDecoder(data).Decode(&l); err != nil {
		return nil, err
	}
	return &Mint{
		MintAuthority:   optionKey(l.MintAuthorityOption, l.MintAuthority),
		Supply:          l.Supply,
		Decimals:        l.Decimals,
		IsInitialized:   l.IsInitialized != 0,
		FreezeAuthority: optionKey(l.FreezeAuthorityOption, l.FreezeAuthority),
	}, nil
}

// Encode returns the MintSize bytes of m.
func (m *Mint) Encode() ([]byte, error) {
	l := mintLayout{
		MintAuthorityOption:   optionTag(m.MintAuthority != nil),
		MintAuthority:         deref(m.MintAuthority),
		Supply:                m.Supply,
		Decimals:              m.Decimals,
		FreezeAuthorityOption: optionTag(m.FreezeAuthority != nil),
		FreezeAuthority:       deref(m.FreezeAuthority),
	}
	if m.IsInitialized {
		l.IsInitialized = 1
	}
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).Encode(&l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeAccount parses token account data.
func DecodeAccount(data []byte) (*Account, error) {
	if len(data) != AccountSize {
		return nil, errors.Errorf("invalid token account size %d", len(data))
	}
	var l accountLayout
	if err := bin.NewBinDecoder(data).Decode(&l); err != nil {
		return nil, err
	}
	a := &Account{
		Mint:            l.Mint,
		Owner:           l.Owner,
		Amount:          l.Amount,
		Delegate:        optionKey(l.DelegateOption, l.Delegate),
		State:           AccountState(l.State),
		DelegatedAmount: l.DelegatedAmount,
		CloseAuthority:  optionKey(l.CloseAuthorityOption, l.CloseAuthority),
	}
	if binary.LittleEndian.Uint32(l.IsNativeOption[:]) != 0 {
		v := l.IsNative
		a.IsNative = &v
	}
	return a, nil
}

// Encode returns the AccountSize bytes of a.
func (a *Account) Encode() ([]byte, error) {
	l := accountLayout{
		Mint:                 a.Mint,
		Owner:                a.Owner,
		Amount:               a.Amount,
		DelegateOption:       optionTag(a.Delegate != nil),
		Delegate:             deref(a.Delegate),
		State:                uint8(a.State),
		IsNativeOption:       optionTag(a.IsNative != nil),
		DelegatedAmount:      a.DelegatedAmount,
		CloseAuthorityOption: optionTag(a.CloseAuthority != nil),
		CloseAuthority:       deref(a.CloseAuthority),
	}
	if a.IsNative != nil {
		l.IsNative = *a.IsNative
	}
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).Encode(&l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
