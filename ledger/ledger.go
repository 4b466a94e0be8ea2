// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - account balances with decoy obfuscated updates
//
// each balance is stored as a 16 byte big endian integer in the
// balances pool; a missing entry reads as zero.
//
// An update with decoys loads and stores every account of the
// interleaved sequence exactly once in order, so the storage operations
// are the same whichever position holds the real account.
package ledger

import (
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/decoy"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/safemath"
	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/logger"
)

const amountLength = 16

// Tracker - notified of every real balance change
type Tracker interface {
	UpdateMember(acct account.Account, previous uint128.Uint128, current uint128.Uint128) error
}

// Ledger - balances bound to one set of pools
type Ledger struct {
	log      *logger.L
	balances *storage.PoolHandle
	tracker  Tracker
}

// New - create a ledger over the balances pool
//
// tracker may be nil if no membership tracking is required
func New(log *logger.L, pools *storage.Pools, tracker Tracker) *Ledger {
	return &Ledger{
		log:      log,
		balances: pools.Balances,
		tracker:  tracker,
	}
}

// Balance - current balance of an account
func (l *Ledger) Balance(acct account.Account) (uint128.Uint128, error) {
	return l.load(acct)
}

// UpdateBalance - credit or debit an account
//
// with decoys every decoy balance is rewritten unchanged; only the
// first occurrence of acct in the sequence is treated as real.  On
// insufficient funds the writes already issued are left for the
// enclosing transaction to discard.
func (l *Ledger) UpdateBalance(acct account.Account, amount uint128.Uint128, credit bool, operation string, decoys decoy.Set) error {
	if decoys.IsNone() {
		return l.updateReal(acct, amount, credit, operation)
	}

	done := false
	for _, entry := range decoys.Sequence(acct) {
		if !done && entry == acct {
			done = true
			err := l.updateReal(acct, amount, credit, operation)
			if nil != err {
				return err
			}
			continue
		}

		balance, err := l.load(entry)
		if nil != err {
			return err
		}
		l.store(entry, balance)
		l.log.Debugf("decoy: %s  balance unchanged", entry)
	}
	return nil
}

// apply the arithmetic to the real account, store it and notify the tracker
func (l *Ledger) updateReal(acct account.Account, amount uint128.Uint128, credit bool, operation string) error {
	previous, err := l.load(acct)
	if nil != err {
		return err
	}

	current := previous
	if credit {
		safemath.SafeAdd(&current, amount)
	} else {
		result, ok := safemath.CheckedSub(previous, amount)
		if !ok {
			l.log.Debugf("%s: %s  balance: %s  required: %s", operation, acct, previous, amount)
			return &fault.InsufficientFundsError{
				Operation: operation,
				Balance:   previous.String(),
				Required:  amount.String(),
			}
		}
		current = result
	}

	l.store(acct, current)
	l.log.Debugf("%s: %s  balance: %s -> %s", operation, acct, previous, current)

	if nil == l.tracker {
		return nil
	}
	return l.tracker.UpdateMember(acct, previous, current)
}

func (l *Ledger) load(acct account.Account) (uint128.Uint128, error) {
	buffer := l.balances.Get(acct.Bytes())
	if nil == buffer {
		return uint128.Zero, nil
	}
	if amountLength != len(buffer) {
		l.log.Criticalf("account: %s  balance length: %d", acct, len(buffer))
		return uint128.Zero, fault.CorruptedAmount
	}
	return uint128.FromBytesBE(buffer), nil
}

func (l *Ledger) store(acct account.Account, balance uint128.Uint128) {
	buffer := make([]byte, amountLength)
	balance.PutBytesBE(buffer)
	l.balances.Put(acct.Bytes(), buffer)
}
