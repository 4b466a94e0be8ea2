// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - transaction id sequence and in-process statistics
package counter

import (
	"sync/atomic"

	"github.com/bitmark-inc/amberledger/storage"
)

// key of the stored transaction id sequence in the config pool
var txCountKey = []byte("tx-count")

// NextTxID - allocate the next transaction id
//
// loads the stored count, increments it and stores it back, so the
// first id issued is 1 and no id is ever reused.  Called once per event
// and shared by every history entry written for that event.
func NextTxID(config *storage.PoolHandle) (uint64, error) {
	n, _, err := config.GetN(txCountKey)
	if nil != err {
		return 0, err
	}
	n += 1
	config.PutN(txCountKey, n)
	return n, nil
}

// TxCount - the number of transaction ids issued so far
func TxCount(config *storage.PoolHandle) (uint64, error) {
	n, _, err := config.GetN(txCountKey)
	return n, err
}

// Counter - an in-process counter that is safe for concurrent use
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Uint64 - returns current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}
