// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/meterio/meter-auction/script/system"
	"github.com/meterio/meter-auction/script/token"
	"github.com/meterio/meter-auction/tests"
	"github.com/meterio/meter-auction/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenAccount(t *testing.T, env *tests.TestEnv, mint, owner solana.PublicKey) solana.PublicKey {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	lamports := meter.DefaultRent.MinimumBalance(token.AccountSize)
	_, err = env.Execute(tests.SellerKey, []*tx.Instruction{
		system.NewCreateAccountInstruction(tests.SellerAddr, key.PublicKey(), lamports, token.AccountSize, meter.TokenProgramID),
		token.NewInitializeAccountInstruction(key.PublicKey(), mint, owner),
	}, key)
	require.NoError(t, err)
	return key.PublicKey()
}

func TestMintAndTransfer(t *testing.T) {
	env, err := tests.NewTestEnv()
	require.NoError(t, err)
	src := newTokenAccount(t, env, tests.CoinMint, tests.OtherAddr)
	dst := newTokenAccount(t, env, tests.CoinMint, tests.SellerAddr)

	_, err = env.Execute(tests.OtherKey, []*tx.Instruction{
		token.NewMintToInstruction(tests.CoinMint, src, tests.OtherAddr, 1000),
	})
	require.NoError(t, err)
	mint, err := env.Mint(tests.CoinMint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), mint.Supply)

	receipt, err := env.Execute(tests.OtherKey, []*tx.Instruction{
		token.NewTransferInstruction(src, dst, tests.OtherAddr, 400),
	})
	require.NoError(t, err)
	require.Len(t, receipt.Outputs[0].Transfers, 1)
	assert.Equal(t, uint64(400), receipt.Outputs[0].Transfers[0].Amount)

	acc, err := env.TokenAccount(dst)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), acc.Amount)

	_, err = env.Execute(tests.OtherKey, []*tx.Instruction{
		token.NewTransferInstruction(src, dst, tests.OtherAddr, 601),
	})
	assert.ErrorIs(t, err, token.ErrInsufficientFunds)
}

func TestApprovedDelegateTransfer(t *testing.T) {
	env, err := tests.NewTestEnv()
	require.NoError(t, err)
	src := newTokenAccount(t, env, tests.CoinMint, tests.OtherAddr)
	dst := newTokenAccount(t, env, tests.CoinMint, tests.OtherAddr)

	_, err = env.Execute(tests.OtherKey, []*tx.Instruction{
		token.NewMintToInstruction(tests.CoinMint, src, tests.OtherAddr, 100),
		token.NewApproveInstruction(src, tests.SellerAddr, tests.OtherAddr, 30),
	})
	require.NoError(t, err)

	_, err = env.Execute(tests.SellerKey, []*tx.Instruction{
		token.NewTransferInstruction(src, dst, tests.SellerAddr, 30),
	})
	require.NoError(t, err)

	acc, err := env.TokenAccount(src)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), acc.Amount)
	assert.Nil(t, acc.Delegate)

	_, err = env.Execute(tests.SellerKey, []*tx.Instruction{
		token.NewTransferInstruction(src, dst, tests.SellerAddr, 1),
	})
	assert.ErrorIs(t, err, token.ErrOwnerMismatch)
}

func TestSetAuthority(t *testing.T) {
	env, err := tests.NewTestEnv()
	require.NoError(t, err)
	newAuthority := tests.OtherAddr

	_, err = env.Execute(tests.SellerKey, []*tx.Instruction{
		token.NewSetAuthorityInstruction(tests.NftMint, tests.SellerAddr, token.AuthorityMintTokens, &newAuthority),
	})
	require.NoError(t, err)
	mint, err := env.Mint(tests.NftMint)
	require.NoError(t, err)
	assert.Equal(t, tests.OtherAddr, *mint.MintAuthority)

	// the coin mint has no freeze authority
	_, err = env.Execute(tests.OtherKey, []*tx.Instruction{
		token.NewSetAuthorityInstruction(tests.CoinMint, tests.OtherAddr, token.AuthorityFreezeAccount, &newAuthority),
	})
	assert.ErrorIs(t, err, token.ErrAuthorityTypeNotSupported)
}
