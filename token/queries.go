// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/counter"
	"github.com/bitmark-inc/amberledger/history"
	"github.com/bitmark-inc/amberledger/membership"
)

// read only access to committed data
func (e *Engine) query(f func(s *session) error) error {
	e.RLock()
	defer e.RUnlock()

	s, err := e.newSession(e.db, nil)
	if nil != err {
		return err
	}
	return f(s)
}

// Balance - current balance of an account
func (e *Engine) Balance(acct account.Account) (balance uint128.Uint128, err error) {
	err = e.query(func(s *session) error {
		balance, err = s.ledger.Balance(acct)
		return err
	})
	return
}

// Transactions - a page of the extended history of an account
func (e *Engine) Transactions(acct account.Account, page uint32, pageSize uint32, filterDecoys bool) (txs []*history.Tx, total uint64, err error) {
	err = e.query(func(s *session) error {
		txs, total, err = s.history.GetTransactions(acct, page, pageSize, filterDecoys)
		return err
	})
	return
}

// Transfers - a page of the transfer history of an account
func (e *Engine) Transfers(acct account.Account, page uint32, pageSize uint32, filterDecoys bool) (transfers []*history.Transfer, total uint64, err error) {
	err = e.query(func(s *session) error {
		transfers, total, err = s.history.GetTransfers(acct, page, pageSize, filterDecoys)
		return err
	})
	return
}

// MemberCount - number of members
func (e *Engine) MemberCount() (n uint64, err error) {
	err = e.query(func(s *session) error {
		n, err = s.tracker.MemberCount()
		return err
	})
	return
}

// IsMember - check if an account is a member
func (e *Engine) IsMember(acct account.Account) (member bool, err error) {
	err = e.query(func(s *session) error {
		member = s.tracker.IsMember(acct)
		return nil
	})
	return
}

// Code - invite code of a member
func (e *Engine) Code(acct account.Account) (code membership.Code, found bool, err error) {
	err = e.query(func(s *session) error {
		code, found, err = s.tracker.Code(acct)
		return err
	})
	return
}

// ValidateCodes - the candidates that are current invite codes
func (e *Engine) ValidateCodes(candidates []string) (valid []string, err error) {
	err = e.query(func(s *session) error {
		valid = s.tracker.ValidateCodes(candidates)
		return nil
	})
	return
}

// TotalSupply - tokens in existence
func (e *Engine) TotalSupply() (supply uint128.Uint128, err error) {
	err = e.query(func(s *session) error {
		supply, err = getTotalSupply(s.config)
		return err
	})
	return
}

// TxCount - number of transaction ids issued
func (e *Engine) TxCount() (n uint64, err error) {
	err = e.query(func(s *session) error {
		n, err = counter.TxCount(s.config)
		return err
	})
	return
}
