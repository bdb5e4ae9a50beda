// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/script/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintLayout(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	m := &token.Mint{MintAuthority: &authority, Supply: 7, Decimals: 0, IsInitialized: true}

	data, err := m.Encode()
	require.NoError(t, err)
	assert.Len(t, data, token.MintSize)
	// option tag of the mint authority
	assert.Equal(t, []byte{1, 0, 0, 0}, data[:4])

	decoded, err := token.DecodeMint(data)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
	assert.Nil(t, decoded.FreezeAuthority)
}

func TestAccountLayout(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	acc := &token.Account{
		Mint:   solana.NewWallet().PublicKey(),
		Owner:  owner,
		Amount: 10,
		State:  token.AccountInitialized,
	}
	data, err := acc.Encode()
	require.NoError(t, err)
	assert.Len(t, data, token.AccountSize)
	assert.Equal(t, owner[:], data[32:64])

	decoded, err := token.DecodeAccount(data)
	require.NoError(t, err)
	assert.Equal(t, acc, decoded)

	_, err = token.DecodeAccount(data[:100])
	assert.Error(t, err)
}
