// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/amberledger/fault"
)

// batched writes over a database
//
// nothing is written to the database until Commit, and Abort
// discards everything
type transaction struct {
	sync.Mutex
	inUse    bool
	database *Database
	batch    *leveldb.Batch
	cache    *dbCache
}

func newTransaction(database *Database) *transaction {
	return &transaction{
		inUse:    false,
		database: database,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
	}
}

func (t *transaction) begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.TransactionAlreadyInUse
	}
	if t.database.readOnly {
		return fault.DatabaseIsReadOnly
	}

	t.batch.Reset()
	t.cache.Clear()
	t.inUse = true
	return nil
}

func (t *transaction) Get(key []byte) []byte {
	value, op, found := t.cache.Get(string(key))
	if found {
		if dbDelete == op {
			return nil
		}
		return value
	}
	return t.database.Get(key)
}

func (t *transaction) Put(key []byte, value []byte) {
	if !t.inUse {
		fault.Panic("transaction.Put outside of transaction")
		return
	}

	// the caller may reuse its buffer
	v := make([]byte, len(value))
	copy(v, value)

	t.cache.Set(dbPut, string(key), v)
	t.batch.Put(key, v)
}

func (t *transaction) Remove(key []byte) {
	if !t.inUse {
		fault.Panic("transaction.Remove outside of transaction")
		return
	}
	t.cache.Set(dbDelete, string(key), nil)
	t.batch.Delete(key)
}

// Commit - write all pending data
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.TransactionNotInUse
	}

	if nil == t.database.db {
		return fault.DatabaseIsNotSet
	}

	n := t.batch.Len()
	err := t.database.db.Write(t.batch, nil)

	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false

	if nil == err {
		t.database.log.Debugf("committed: %d writes", n)
	}
	return err
}

// Abort - discard all pending data
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		t.database.log.Debugf("aborted: %d writes", t.batch.Len())
	}

	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
}
