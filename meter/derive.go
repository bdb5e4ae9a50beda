// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

const derivationCacheSize = 4096

var drCache = newDerivationCache()

type derivation struct {
	addr solana.PublicKey
	bump uint8
}

type derivationCache struct {
	cache *lru.Cache
}

func newDerivationCache() *derivationCache {
	cache, err := lru.New(derivationCacheSize)
	if err != nil {
		return nil
	}
	return &derivationCache{cache: cache}
}

// derivationKey hashes the program id and the length prefixed seeds, so that
// ("ab","c") and ("a","bc") never share an entry.
func derivationKey(seeds [][]byte, programID solana.PublicKey) Bytes32 {
	hw := NewBlake2b()
	hw.Write(programID[:])
	var l [4]byte
	for _, s := range seeds {
		binary.LittleEndian.PutUint32(l[:], uint32(len(s)))
		hw.Write(l[:])
		hw.Write(s)
	}
	var key Bytes32
	hw.Sum(key[:0])
	return key
}

// DeriveAddress finds the program derived address for seeds under programID,
// together with the canonical bump seed that pushes it off the curve.
// The result only depends on its inputs, so it is memoized.
func DeriveAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	key := derivationKey(seeds, programID)
	if drCache != nil {
		if v, ok := drCache.cache.Get(key); ok {
			d := v.(derivation)
			return d.addr, d.bump, nil
		}
	}
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.Wrap(ErrAddressMismatch, err.Error())
	}
	if drCache != nil {
		drCache.cache.Add(key, derivation{addr, bump})
	}
	return addr, bump, nil
}

// CreateAddress computes the program address for seeds that already carry
// their bump. It fails if the seeds land on the ed25519 curve.
func CreateAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error) {
	addr, err := solana.CreateProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(ErrAddressMismatch, err.Error())
	}
	return addr, nil
}

// VerifyAddress fails with ErrAddressMismatch unless supplied equals expected.
func VerifyAddress(expected, supplied solana.PublicKey) error {
	if !expected.Equals(supplied) {
		return errors.Wrapf(ErrAddressMismatch, "expected %s, got %s", expected, supplied)
	}
	return nil
}
