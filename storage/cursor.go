// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/amberledger/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	database *Database
	prefix   byte
	maxRange ldb_util.Range
}

// NewFetchCursor - initialise a cursor to the start of a table
func (d *Database) NewFetchCursor(prefix byte) *FetchCursor {
	limit := []byte(nil)
	if prefix < 255 {
		limit = []byte{prefix + 1}
	}
	return &FetchCursor{
		database: d,
		prefix:   prefix,
		maxRange: ldb_util.Range{
			Start: []byte{prefix}, // Start of key range, included in the range
			Limit: limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	start := make([]byte, 1, len(key)+1)
	start[0] = cursor.prefix
	cursor.maxRange.Start = append(start, key...)
	return cursor
}

// Fetch - return some elements starting from the current position
//
// the returned keys have the table prefix removed
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}
	if nil == cursor.database.db {
		return nil, fault.DatabaseIsNotSet
	}

	iter := cursor.database.db.NewIterator(&cursor.maxRange, nil)

	results := make([]Element, 0, count)
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		results = append(results, Element{
			Key:   dataKey,
			Value: dataValue,
		})
		if len(results) >= count {
			break iterating
		}
	}
	iter.Release()
	err := iter.Error()

	// next fetch starts immediately after the last key returned
	if n := len(results); n > 0 {
		lastKey := results[n-1].Key
		start := make([]byte, 1, len(lastKey)+2)
		start[0] = cursor.prefix
		start = append(start, lastKey...)
		cursor.maxRange.Start = append(start, 0x00)
	}
	return results, err
}
