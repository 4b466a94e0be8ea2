// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/storage"
)

// SeedLength - number of bytes in the stored generator seed
const SeedLength = 32

// key of the generator seed in the config pool
var prngSeedKey = []byte("prng-seed")

// Entropy - per call randomness supplied by the host
//
// typically derived from the block hash or other execution context
type Entropy interface {
	Nonce() []byte
}

// Nonce - fixed entropy
type Nonce []byte

// Nonce - the entropy interface method
func (n Nonce) Nonce() []byte {
	return []byte(n)
}

// InitialiseSeed - store the generator seed if none is present
func InitialiseSeed(config *storage.PoolHandle, seed [SeedLength]byte) error {
	if config.Has(prngSeedKey) {
		return fault.AlreadyInitialised
	}
	config.Put(prngSeedKey, seed[:])
	return nil
}

// HasSeed - check if the generator seed was initialised
func HasSeed(config *storage.PoolHandle) bool {
	return config.Has(prngSeedKey)
}

func readSeed(config *storage.PoolHandle) ([]byte, error) {
	seed := config.Get(prngSeedKey)
	if nil == seed {
		return nil, fault.MissingPrngSeed
	}
	if SeedLength != len(seed) {
		return nil, fault.CorruptedPrngSeed
	}
	return seed, nil
}

// generate the next code for an account and advance the stored seed
//
// key  = SHA3-256(seed || nonce || account || varint(sequence))
// code = ChaCha20 keystream under key with a zero nonce
// seed = SHA3-256(seed || code)
func nextCode(config *storage.PoolHandle, nonce []byte, acct account.Account, sequence uint64) (Code, error) {
	seed, err := readSeed(config)
	if nil != err {
		return Code{}, err
	}

	seq := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(seq, sequence)

	h := sha3.New256()
	h.Write(seed)
	h.Write(nonce)
	h.Write(acct.Bytes())
	h.Write(seq[:n])
	key := h.Sum(nil)

	cipher, err := chacha20.NewUnauthenticatedCipher(key, make([]byte, chacha20.NonceSize))
	if nil != err {
		return Code{}, err
	}

	code := Code{}
	cipher.XORKeyStream(code[:], code[:])

	h.Reset()
	h.Write(seed)
	h.Write(code[:])
	config.Put(prngSeedKey, h.Sum(nil))

	return code, nil
}
