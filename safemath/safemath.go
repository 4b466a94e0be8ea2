// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package safemath - balance arithmetic that never wraps
package safemath

import (
	"lukechampine.com/uint128"
)

// SafeAdd - add to a balance, saturating at the maximum
//
// returns the amount actually added, so the caller never observes an
// overflow boundary
func SafeAdd(balance *uint128.Uint128, amount uint128.Uint128) uint128.Uint128 {
	previous := *balance
	sum := previous.AddWrap(amount)
	if sum.Cmp(previous) < 0 {
		sum = uint128.Max
	}
	*balance = sum

	// cannot underflow as sum >= previous
	return sum.Sub(previous)
}

// CheckedSub - subtract from a balance
//
// ok is false if balance < amount, in which case the result is zero
// and must not be applied
func CheckedSub(balance uint128.Uint128, amount uint128.Uint128) (result uint128.Uint128, ok bool) {
	if balance.Cmp(amount) < 0 {
		return uint128.Zero, false
	}
	return balance.Sub(amount), true
}
