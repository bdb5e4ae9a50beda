// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package preset

import (
	"fmt"
	"os"

	"github.com/meterio/meter-auction/meter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// GenesisAccount is a funded system account. Address is base58, or empty
// when Seed names a dev key.
type GenesisAccount struct {
	Seed     string `yaml:"seed,omitempty"`
	Address  string `yaml:"address,omitempty"`
	Lamports uint64 `yaml:"lamports"`
}

// GenesisHolder is a token account created at genesis.
type GenesisHolder struct {
	Owner  string `yaml:"owner"`
	Amount uint64 `yaml:"amount"`
}

// GenesisMint is a mint created at genesis. Authorities refer to account
// seeds or base58 addresses.
type GenesisMint struct {
	Seed            string          `yaml:"seed"`
	Decimals        uint8           `yaml:"decimals"`
	MintAuthority   string          `yaml:"mintAuthority"`
	FreezeAuthority string          `yaml:"freezeAuthority,omitempty"`
	Holders         []GenesisHolder `yaml:"holders,omitempty"`
}

type PresetConfig struct {
	Name             string           `yaml:"name"`
	AuctionProgramID string           `yaml:"auctionProgramID,omitempty"`
	LaunchTime       uint64           `yaml:"launchTime"`
	Rent             meter.Rent       `yaml:"rent"`
	Accounts         []GenesisAccount `yaml:"accounts"`
	Mints            []GenesisMint    `yaml:"mints,omitempty"`
}

var (
	DevPresetConfig = &PresetConfig{
		Name:       "devnet",
		LaunchTime: 1526400000,
		Rent:       meter.DefaultRent,
		Accounts: []GenesisAccount{
			{Seed: "dev-0", Lamports: 1_000_000_000_000},
			{Seed: "dev-1", Lamports: 1_000_000_000_000},
			{Seed: "dev-2", Lamports: 1_000_000_000_000},
			{Seed: "dev-3", Lamports: 1_000_000_000_000},
		},
		Mints: []GenesisMint{
			{
				Seed:            "dev-nft",
				Decimals:        0,
				MintAuthority:   "dev-0",
				FreezeAuthority: "dev-0",
				Holders:         []GenesisHolder{{Owner: "dev-0", Amount: 1}},
			},
			{
				Seed:          "dev-usd",
				Decimals:      6,
				MintAuthority: "dev-1",
			},
		},
	}

	TestPresetConfig = &PresetConfig{
		Name:       "test",
		LaunchTime: 1526400000,
		Rent:       meter.DefaultRent,
		Accounts: []GenesisAccount{
			{Seed: "test-0", Lamports: 100_000_000_000},
			{Seed: "test-1", Lamports: 100_000_000_000},
			{Seed: "test-poor", Lamports: 1_000},
		},
		Mints: []GenesisMint{
			{
				Seed:            "test-nft",
				Decimals:        0,
				MintAuthority:   "test-0",
				FreezeAuthority: "test-0",
				Holders:         []GenesisHolder{{Owner: "test-0", Amount: 1}, {Owner: "test-1", Amount: 0}},
			},
			{
				Seed:          "test-coin",
				Decimals:      6,
				MintAuthority: "test-1",
			},
		},
	}
)

// LoadConfig reads a preset from a yaml file.
func LoadConfig(path string) (*PresetConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read preset")
	}
	var p PresetConfig
	if err := yaml.UnmarshalStrict(content, &p); err != nil {
		return nil, errors.Wrapf(err, "parse preset %s", path)
	}
	if p.Name == "" {
		return nil, errors.Errorf("preset %s has no name", path)
	}
	if p.Rent.LamportsPerByteYear == 0 {
		p.Rent = meter.DefaultRent
	}
	return &p, nil
}

func (p *PresetConfig) ToString() string {
	return fmt.Sprintf("Name: %v AuctionProgramID: %v Rent: %+v Accounts: %v Mints: %v",
		p.Name, p.AuctionProgramID, p.Rent, len(p.Accounts), len(p.Mints))
}
