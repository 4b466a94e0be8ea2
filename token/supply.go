// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/storage"
)

// key of the total supply in the config pool
var totalSupplyKey = []byte("total-supply")

func getTotalSupply(config *storage.PoolHandle) (uint128.Uint128, error) {
	buffer := config.Get(totalSupplyKey)
	if nil == buffer {
		return uint128.Zero, nil
	}
	if 16 != len(buffer) {
		return uint128.Zero, fault.CorruptedAmount
	}
	return uint128.FromBytesBE(buffer), nil
}

func putTotalSupply(config *storage.PoolHandle, supply uint128.Uint128) {
	buffer := make([]byte, 16)
	supply.PutBytesBE(buffer)
	config.Put(totalSupplyKey, buffer)
}

// the supply is checked, not saturated, so it always equals the sum of
// the tokens issued less the tokens destroyed
func increaseTotalSupply(config *storage.PoolHandle, amount uint128.Uint128) error {
	supply, err := getTotalSupply(config)
	if nil != err {
		return err
	}
	sum := supply.AddWrap(amount)
	if sum.Cmp(supply) < 0 {
		return fault.TotalSupplyOverflow
	}
	putTotalSupply(config, sum)
	return nil
}

func decreaseTotalSupply(config *storage.PoolHandle, amount uint128.Uint128) error {
	supply, err := getTotalSupply(config)
	if nil != err {
		return err
	}
	if supply.Cmp(amount) < 0 {
		return fault.TotalSupplyUnderflow
	}
	putTotalSupply(config, supply.Sub(amount))
	return nil
}
