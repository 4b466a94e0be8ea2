// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/amberledger/fault"
)

// PoolHandle - a single prefixed table bound to a store
type PoolHandle struct {
	prefix byte
	store  Store
}

// Prefix - the table prefix byte
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// prepend the prefix onto the concatenation of the key parts
func (p *PoolHandle) prefixKey(key ...[]byte) []byte {
	n := 1
	for _, k := range key {
		n += len(k)
	}
	prefixedKey := make([]byte, 1, n)
	prefixedKey[0] = p.prefix
	for _, k := range key {
		prefixedKey = append(prefixedKey, k...)
	}
	return prefixedKey
}

// Put - store a key/value bytes pair
func (p *PoolHandle) Put(key []byte, value []byte) {
	p.store.Put(p.prefixKey(key), value)
}

// PutN - store a big endian uint64 value
func (p *PoolHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.store.Put(p.prefixKey(key), buffer)
}

// Remove - remove a key
func (p *PoolHandle) Remove(key []byte) {
	p.store.Remove(p.prefixKey(key))
}

// Get - read a value for a given key
//
// returns nil if the key is not present
func (p *PoolHandle) Get(key []byte) []byte {
	return p.store.Get(p.prefixKey(key))
}

// GetN - read a record and decode it as big endian uint64
//
// second parameter is false if record was not found
// a record that is not exactly 8 bytes is corrupted
func (p *PoolHandle) GetN(key []byte) (uint64, bool, error) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false, nil
	}
	if 8 != len(buffer) {
		return 0, false, fault.CorruptedCount
	}
	return binary.BigEndian.Uint64(buffer), true, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	return nil != p.Get(key)
}
