// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/preset"
	"github.com/meterio/meter-auction/script/token"
	"github.com/meterio/meter-auction/state"
	"github.com/pkg/errors"
)

var log = slog.Default().With("pkg", "genesis")

// Genesis builds the initial state of a network from a preset.
type Genesis struct {
	preset    *preset.PresetConfig
	programID solana.PublicKey
}

// New validates p and returns its genesis.
func New(p *preset.PresetConfig) (*Genesis, error) {
	programID := meter.AuctionProgramID
	if p.AuctionProgramID != "" {
		id, err := solana.PublicKeyFromBase58(p.AuctionProgramID)
		if err != nil {
			return nil, errors.Wrap(err, "auction program id")
		}
		programID = id
	}
	g := &Genesis{preset: p, programID: programID}
	for _, m := range p.Mints {
		if _, err := g.Resolve(m.MintAuthority); err != nil {
			return nil, errors.Wrapf(err, "mint %s", m.Seed)
		}
		for _, h := range m.Holders {
			if _, err := g.Resolve(h.Owner); err != nil {
				return nil, errors.Wrapf(err, "mint %s holder", m.Seed)
			}
		}
	}
	return g, nil
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.preset.Name
}

// ProgramID returns the id the auction program runs at.
func (g *Genesis) ProgramID() solana.PublicKey {
	return g.programID
}

// LaunchTime returns the unix time of the first slot.
func (g *Genesis) LaunchTime() uint64 {
	return g.preset.LaunchTime
}

// Resolve turns a seed or base58 reference of the preset into an address.
func (g *Genesis) Resolve(ref string) (solana.PublicKey, error) {
	if ref == "" {
		return solana.PublicKey{}, errors.New("empty account reference")
	}
	if addr, err := solana.PublicKeyFromBase58(ref); err == nil {
		return addr, nil
	}
	return KeyFromSeed(ref).PublicKey(), nil
}

// HolderAccount returns the token account created for owner of the mint
// with the given seed.
func HolderAccount(mintSeed, owner string) solana.PublicKey {
	return KeyFromSeed(mintSeed + "/" + owner).PublicKey()
}

// Build writes the genesis accounts into st.
func (g *Genesis) Build(st *state.State) error {
	rent := g.preset.Rent

	for _, program := range []solana.PublicKey{meter.SystemProgramID, meter.TokenProgramID, g.programID} {
		st.SetAccount(program, &state.Account{
			Lamports:   1,
			Owner:      meter.NativeLoaderID,
			Data:       []byte{},
			Executable: true,
		})
	}
	st.SetAccount(meter.SysVarRentPubkey, &state.Account{
		Lamports: 1,
		Owner:    meter.SysvarOwnerID,
		Data:     rent.Encode(),
	})
	st.SetAccount(meter.SysVarClockPubkey, &state.Account{
		Lamports: 1,
		Owner:    meter.SysvarOwnerID,
		Data:     meter.Clock{UnixTimestamp: int64(g.preset.LaunchTime), EpochStartTimestamp: int64(g.preset.LaunchTime)}.Encode(),
	})

	for _, a := range g.preset.Accounts {
		ref := a.Address
		if ref == "" {
			ref = a.Seed
		}
		addr, err := g.Resolve(ref)
		if err != nil {
			return err
		}
		st.SetAccount(addr, &state.Account{Lamports: a.Lamports, Owner: meter.SystemProgramID})
	}

	for _, m := range g.preset.Mints {
		mintAddr := KeyFromSeed(m.Seed).PublicKey()
		authority, err := g.Resolve(m.MintAuthority)
		if err != nil {
			return err
		}
		mint := &token.Mint{MintAuthority: &authority, Decimals: m.Decimals, IsInitialized: true}
		if m.FreezeAuthority != "" {
			freeze, err := g.Resolve(m.FreezeAuthority)
			if err != nil {
				return err
			}
			mint.FreezeAuthority = &freeze
		}

		for _, h := range m.Holders {
			owner, err := g.Resolve(h.Owner)
			if err != nil {
				return err
			}
			data, err := (&token.Account{Mint: mintAddr, Owner: owner, Amount: h.Amount, State: token.AccountInitialized}).Encode()
			if err != nil {
				return err
			}
			st.SetAccount(HolderAccount(m.Seed, h.Owner), &state.Account{
				Lamports: rent.MinimumBalance(token.AccountSize),
				Owner:    meter.TokenProgramID,
				Data:     data,
			})
			mint.Supply += h.Amount
		}

		data, err := mint.Encode()
		if err != nil {
			return err
		}
		st.SetAccount(mintAddr, &state.Account{
			Lamports: rent.MinimumBalance(token.MintSize),
			Owner:    meter.TokenProgramID,
			Data:     data,
		})
	}

	log.Info("genesis built", "name", g.preset.Name, "accounts", len(g.preset.Accounts), "mints", len(g.preset.Mints))
	return st.Err()
}
