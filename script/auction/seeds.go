// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meterio/meter-auction/meter"
	"github.com/pkg/errors"
)

func AuctionSeeds(programID, resource solana.PublicKey) [][]byte {
	return [][]byte{[]byte(PREFIX), programID.Bytes(), resource.Bytes()}
}

func ExtendedSeeds(programID, resource solana.PublicKey) [][]byte {
	return append(AuctionSeeds(programID, resource), []byte(EXTENDED))
}

func CustodySeeds(auction solana.PublicKey) [][]byte {
	return [][]byte{[]byte(NFT), auction.Bytes()}
}

func EscrowSeeds(creator solana.PublicKey) [][]byte {
	return [][]byte{[]byte(ESCROW), creator.Bytes()}
}

// SigningContext lets a program sign as one of its derived addresses.
// It only comes out of a successful derivation.
type SigningContext struct {
	Address solana.PublicKey
	seeds   [][]byte // bump included
}

// Seeds returns the seeds to pass to Environment.InvokeSigned.
func (s *SigningContext) Seeds() [][]byte {
	return s.seeds
}

func withBump(seeds [][]byte, bump uint8) [][]byte {
	out := make([][]byte, 0, len(seeds)+1)
	out = append(out, seeds...)
	return append(out, []byte{bump})
}

// FindSigner derives the canonical address for seeds.
func FindSigner(programID solana.PublicKey, seeds [][]byte) (*SigningContext, error) {
	addr, bump, err := meter.DeriveAddress(seeds, programID)
	if err != nil {
		return nil, err
	}
	return &SigningContext{Address: addr, seeds: withBump(seeds, bump)}, nil
}

// SignerWithBump builds the address for seeds and an explicit bump.
func SignerWithBump(programID solana.PublicKey, seeds [][]byte, bump uint8) (*SigningContext, error) {
	full := withBump(seeds, bump)
	addr, err := meter.CreateAddress(full, programID)
	if err != nil {
		return nil, err
	}
	return &SigningContext{Address: addr, seeds: full}, nil
}

// AssertDerivation checks that account is the canonical derived address of
// seeds and returns its bump.
func AssertDerivation(programID, account solana.PublicKey, seeds [][]byte) (uint8, error) {
	addr, bump, err := meter.DeriveAddress(seeds, programID)
	if err != nil {
		return 0, err
	}
	if err := meter.VerifyAddress(addr, account); err != nil {
		return 0, errors.Wrap(ErrInvalidAuctionAccount, err.Error())
	}
	return bump, nil
}

// FindAuctionAddress returns the auction account of resource.
func FindAuctionAddress(programID, resource solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := meter.DeriveAddress(AuctionSeeds(programID, resource), programID)
	return addr, err
}

// FindExtendedAddress returns the extended account of resource.
func FindExtendedAddress(programID, resource solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := meter.DeriveAddress(ExtendedSeeds(programID, resource), programID)
	return addr, err
}

// FindCustodyAddress returns the token account holding the asset of auction.
func FindCustodyAddress(programID, auction solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := meter.DeriveAddress(CustodySeeds(auction), programID)
	return addr, err
}

// FindEscrowAddress returns the escrow of creator and its canonical nonce.
func FindEscrowAddress(programID, creator solana.PublicKey) (solana.PublicKey, uint8, error) {
	return meter.DeriveAddress(EscrowSeeds(creator), programID)
}
