// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

//go:generate mockgen -destination=mocks/store.go -package=mocks github.com/bitmark-inc/amberledger/storage Store

// Store - the only storage primitive the ledger requires
//
// Get returns nil if the key is not present. I/O failures are not
// recoverable at this level and cause a panic.
type Store interface {
	Get(key []byte) []byte
	Put(key []byte, value []byte)
	Remove(key []byte)
}

// Transaction - a set of writes that become visible all together or
// not at all
type Transaction interface {
	Store
	Commit() error
	Abort()
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}
