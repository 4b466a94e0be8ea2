// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"reflect"

	"github.com/bitmark-inc/amberledger/fault"
)

// Pools - the set of tables
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Config           *PoolHandle `prefix:"C"`
	Balances         *PoolHandle `prefix:"B"`
	Members          *PoolHandle `prefix:"M"`
	InviteCodes      *PoolHandle `prefix:"I"`
	MemberCodes      *PoolHandle `prefix:"K"`
	TransactionCount *PoolHandle `prefix:"N"`
	TransactionList  *PoolHandle `prefix:"X"`
	TransferCount    *PoolHandle `prefix:"n"`
	TransferList     *PoolHandle `prefix:"T"`
}

// Tag - prefix and name of one of the tables
type Tag struct {
	Prefix byte
	Name   string
}

// NewPools - bind every table to a store
//
// use the database itself for reads and a transaction for updates
func NewPools(store Store) (*Pools, error) {
	pools := &Pools{}

	// this will be a struct type
	poolType := reflect.TypeOf(*pools)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(pools).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) || 0 == prefixTag[0] {
			return nil, fault.WrongPoolPrefix
		}

		p := &PoolHandle{
			prefix: prefixTag[0],
			store:  store,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	return pools, nil
}

// Tags - list of all the table prefixes
func Tags() []Tag {
	poolType := reflect.TypeOf(Pools{})

	tags := make([]Tag, 0, poolType.NumField())
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			continue
		}
		tags = append(tags, Tag{
			Prefix: prefixTag[0],
			Name:   fieldInfo.Name,
		})
	}
	return tags
}
