// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
)

var (
	errNoInstructions   = errors.New("tx has no instructions")
	errSignatureCount   = errors.New("signature count mismatch")
	errInvalidSignature = errors.New("invalid signature")
)

// Transaction is an immutable tx type.
type Transaction struct {
	body body

	cache struct {
		signingHash atomic.Value
		signers     atomic.Value
		id          atomic.Value
	}
}

// body describes details of a tx.
type body struct {
	FeePayer     solana.PublicKey
	Instructions []*Instruction
	Nonce        uint64
	Signatures   []solana.Signature
}

// FeePayer returns the account paying for the tx, which is always the first signer.
func (t *Transaction) FeePayer() solana.PublicKey {
	return t.body.FeePayer
}

// Nonce returns nonce value.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Instructions returns copies of the instructions in tx.
func (t *Transaction) Instructions() []*Instruction {
	ixs := make([]*Instruction, 0, len(t.body.Instructions))
	for _, ix := range t.body.Instructions {
		ixs = append(ixs, ix.Copy())
	}
	return ixs
}

// Signatures returns signatures.
func (t *Transaction) Signatures() []solana.Signature {
	return append([]solana.Signature(nil), t.body.Signatures...)
}

// Signers returns the keys whose signatures are required, fee payer first
// followed by every signer account of the instructions, deduplicated.
func (t *Transaction) Signers() []solana.PublicKey {
	if cached := t.cache.signers.Load(); cached != nil {
		return cached.([]solana.PublicKey)
	}
	seen := map[solana.PublicKey]bool{t.body.FeePayer: true}
	signers := []solana.PublicKey{t.body.FeePayer}
	for _, ix := range t.body.Instructions {
		for _, key := range ix.Signers() {
			if !seen[key] {
				seen[key] = true
				signers = append(signers, key)
			}
		}
	}
	t.cache.signers.Store(signers)
	return signers
}

// SigningHash returns hash of tx excludes signatures.
func (t *Transaction) SigningHash() (hash meter.Bytes32) {
	if cached := t.cache.signingHash.Load(); cached != nil {
		return cached.(meter.Bytes32)
	}
	defer func() { t.cache.signingHash.Store(hash) }()

	hw := meter.NewBlake2b()
	err := rlp.Encode(hw, []interface{}{
		t.body.FeePayer,
		t.body.Instructions,
		t.body.Nonce,
	})
	if err != nil {
		return
	}

	hw.Sum(hash[:0])
	return
}

// ID returns id of tx.
// ID = hash(signingHash, signatures).
func (t *Transaction) ID() (id meter.Bytes32) {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(meter.Bytes32)
	}
	defer func() { t.cache.id.Store(id) }()

	hw := meter.NewBlake2b()
	hw.Write(t.SigningHash().Bytes())
	for _, sig := range t.body.Signatures {
		hw.Write(sig[:])
	}
	hw.Sum(id[:0])
	return
}

// Sign returns a new tx signed by the given keys.
// Every required signer must be covered by one of keys.
func (t *Transaction) Sign(keys ...solana.PrivateKey) (*Transaction, error) {
	byPub := make(map[solana.PublicKey]solana.PrivateKey, len(keys))
	for _, k := range keys {
		byPub[k.PublicKey()] = k
	}
	hash := t.SigningHash()
	signers := t.Signers()
	sigs := make([]solana.Signature, 0, len(signers))
	for _, pub := range signers {
		key, ok := byPub[pub]
		if !ok {
			return nil, fmt.Errorf("missing key for signer %s", pub)
		}
		sig, err := key.Sign(hash[:])
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return t.WithSignatures(sigs), nil
}

// WithSignatures create a new tx with signatures set.
func (t *Transaction) WithSignatures(sigs []solana.Signature) *Transaction {
	newTx := Transaction{
		body: t.body,
	}
	newTx.body.Signatures = append([]solana.Signature(nil), sigs...)
	return &newTx
}

// VerifySignatures checks that every required signer signed the signing hash.
func (t *Transaction) VerifySignatures() error {
	if len(t.body.Instructions) == 0 {
		return errNoInstructions
	}
	signers := t.Signers()
	if len(signers) != len(t.body.Signatures) {
		return errSignatureCount
	}
	hash := t.SigningHash()
	for i, pub := range signers {
		if !t.body.Signatures[i].Verify(pub, hash[:]) {
			return fmt.Errorf("%w: signer %s", errInvalidSignature, pub)
		}
	}
	return nil
}

// IsSigner returns whether key is among the required signers.
func (t *Transaction) IsSigner(key solana.PublicKey) bool {
	for _, s := range t.Signers() {
		if s.Equals(key) {
			return true
		}
	}
	return false
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{body: body}
	return nil
}

func (t *Transaction) String() string {
	return fmt.Sprintf(`
	Tx(%v)
	FeePayer:       %v
	Instructions:   %d
	Nonce:          %v
	Signatures:     %d
`, t.ID(), t.body.FeePayer, len(t.body.Instructions), t.body.Nonce, len(t.body.Signatures))
}

// Transactions a slice of transactions.
type Transactions []*Transaction
