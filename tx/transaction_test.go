// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTx(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	other := solana.NewWallet().PrivateKey
	program := solana.NewWallet().PublicKey()

	ix := tx.NewInstruction(program, solana.AccountMetaSlice{
		solana.NewAccountMeta(payer.PublicKey(), true, true),
		solana.NewAccountMeta(other.PublicKey(), false, true),
		solana.NewAccountMeta(payer.PublicKey(), true, true),
	}, []byte{1, 2, 3})

	trx := new(tx.Builder).FeePayer(payer.PublicKey()).Instruction(ix).Nonce(42).Build()
	assert.Equal(t, []solana.PublicKey{payer.PublicKey(), other.PublicKey()}, trx.Signers())
	assert.Error(t, trx.VerifySignatures())

	_, err := trx.Sign(payer)
	assert.Error(t, err, "missing key for second signer")

	signed, err := trx.Sign(other, payer)
	require.NoError(t, err)
	require.NoError(t, signed.VerifySignatures())
	assert.Equal(t, trx.SigningHash(), signed.SigningHash())
	assert.NotEqual(t, trx.ID(), signed.ID())

	data, err := rlp.EncodeToBytes(signed)
	require.NoError(t, err)
	var decoded tx.Transaction
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, signed.ID(), decoded.ID())
	assert.Equal(t, uint64(42), decoded.Nonce())
	require.NoError(t, decoded.VerifySignatures())

	// swapping signatures breaks verification
	sigs := signed.Signatures()
	sigs[0], sigs[1] = sigs[1], sigs[0]
	assert.Error(t, signed.WithSignatures(sigs).VerifySignatures())
}

func TestNoInstructions(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	trx, err := new(tx.Builder).FeePayer(payer.PublicKey()).Build().Sign(payer)
	require.NoError(t, err)
	assert.Error(t, trx.VerifySignatures())
}
