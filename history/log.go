// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history

import (
	"encoding/binary"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/storage"
)

// appendLog - the ordered records of one account
//
// count pool:  account            -> number of records (uint64 BE)
// item pool:   account ++ index   -> packed record
type appendLog struct {
	count *storage.PoolHandle
	items *storage.PoolHandle
	owner []byte
}

func newAppendLog(count *storage.PoolHandle, items *storage.PoolHandle, acct account.Account) *appendLog {
	return &appendLog{
		count: count,
		items: items,
		owner: acct.Bytes(),
	}
}

func (l *appendLog) itemKey(index uint64) []byte {
	key := make([]byte, account.Length+8)
	copy(key, l.owner)
	binary.BigEndian.PutUint64(key[account.Length:], index)
	return key
}

// Len - number of records, zero if the log was never written
func (l *appendLog) Len() (uint64, error) {
	n, _, err := l.count.GetN(l.owner)
	return n, err
}

// Push - add a record to the end
func (l *appendLog) Push(record Packed) error {
	n, err := l.Len()
	if nil != err {
		return err
	}
	l.items.Put(l.itemKey(n), record)
	l.count.PutN(l.owner, n+1)
	return nil
}

// Get - a record by index, 0 is the oldest
func (l *appendLog) Get(index uint64) (Packed, error) {
	record := l.items.Get(l.itemKey(index))
	if nil == record {
		return nil, fault.CorruptedTransaction
	}
	return record, nil
}

// Reverse - up to pageSize records newest first after skipping page full pages
//
// also returns the total number of records
func (l *appendLog) Reverse(page uint32, pageSize uint32) ([]Packed, uint64, error) {
	n, err := l.Len()
	if nil != err {
		return nil, 0, err
	}

	skip := uint64(page) * uint64(pageSize)
	if skip >= n {
		return []Packed{}, n, nil
	}

	remaining := n - skip
	take := uint64(pageSize)
	if take > remaining {
		take = remaining
	}

	records := make([]Packed, 0, take)
	for i := uint64(0); i < take; i += 1 {
		record, err := l.Get(n - 1 - skip - i)
		if nil != err {
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, n, nil
}
