// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/decoy"
	"github.com/bitmark-inc/amberledger/history"
)

// TransferRequest - move tokens from owner to recipient
//
// sender differs from owner when spending an allowance; the decoys
// hide the recipient
type TransferRequest struct {
	Owner     account.Account
	Sender    account.Account
	Recipient account.Account
	Amount    uint128.Uint128
	Memo      *string
	Decoys    decoy.Set
}

// MintRequest - create tokens for recipient
type MintRequest struct {
	Minter    account.Account
	Recipient account.Account
	Amount    uint128.Uint128
	Memo      *string
	Decoys    decoy.Set
}

// BurnRequest - destroy tokens held by owner
type BurnRequest struct {
	Burner account.Account
	Owner  account.Account
	Amount uint128.Uint128
	Memo   *string
	Decoys decoy.Set
}

// DepositRequest - tokens received for native coins
type DepositRequest struct {
	Recipient account.Account
	Amount    uint128.Uint128
	Decoys    decoy.Set
}

// RedeemRequest - tokens returned for native coins
type RedeemRequest struct {
	Redeemer account.Account
	Amount   uint128.Uint128
	Decoys   decoy.Set
}

// Transfer - debit the owner and credit the recipient
func (e *Engine) Transfer(env Env, req TransferRequest) error {
	return e.run("transfer", env, &e.transfers, func(s *session) error {
		err := history.CheckText(e.params.Denom, req.Memo)
		if nil != err {
			return err
		}
		err = s.ledger.UpdateBalance(req.Owner, req.Amount, false, "transfer", decoy.None)
		if nil != err {
			return err
		}
		err = s.ledger.UpdateBalance(req.Recipient, req.Amount, true, "transfer", req.Decoys)
		if nil != err {
			return err
		}
		return s.history.StoreTransfer(req.Owner, req.Sender, req.Recipient, req.Amount, e.params.Denom, req.Memo, env.Block, req.Decoys)
	})
}

// Mint - credit the recipient and increase the supply
func (e *Engine) Mint(env Env, req MintRequest) error {
	return e.run("mint", env, &e.mints, func(s *session) error {
		err := history.CheckText(e.params.Denom, req.Memo)
		if nil != err {
			return err
		}
		err = s.ledger.UpdateBalance(req.Recipient, req.Amount, true, "mint", req.Decoys)
		if nil != err {
			return err
		}
		err = increaseTotalSupply(s.config, req.Amount)
		if nil != err {
			return err
		}
		return s.history.StoreMint(req.Minter, req.Recipient, req.Amount, e.params.Denom, req.Memo, env.Block, req.Decoys)
	})
}

// Burn - debit the owner and decrease the supply
func (e *Engine) Burn(env Env, req BurnRequest) error {
	return e.run("burn", env, &e.burns, func(s *session) error {
		err := history.CheckText(e.params.Denom, req.Memo)
		if nil != err {
			return err
		}
		err = s.ledger.UpdateBalance(req.Owner, req.Amount, false, "burn", req.Decoys)
		if nil != err {
			return err
		}
		err = decreaseTotalSupply(s.config, req.Amount)
		if nil != err {
			return err
		}
		return s.history.StoreBurn(req.Owner, req.Burner, req.Amount, e.params.Denom, req.Memo, env.Block, req.Decoys)
	})
}

// Deposit - credit the recipient and increase the supply
func (e *Engine) Deposit(env Env, req DepositRequest) error {
	return e.run("deposit", env, &e.deposits, func(s *session) error {
		err := s.ledger.UpdateBalance(req.Recipient, req.Amount, true, "deposit", req.Decoys)
		if nil != err {
			return err
		}
		err = increaseTotalSupply(s.config, req.Amount)
		if nil != err {
			return err
		}
		return s.history.StoreDeposit(req.Recipient, req.Amount, e.params.Denom, env.Block, req.Decoys)
	})
}

// Redeem - debit the redeemer and decrease the supply
func (e *Engine) Redeem(env Env, req RedeemRequest) error {
	return e.run("redeem", env, &e.redeems, func(s *session) error {
		err := s.ledger.UpdateBalance(req.Redeemer, req.Amount, false, "redeem", req.Decoys)
		if nil != err {
			return err
		}
		err = decreaseTotalSupply(s.config, req.Amount)
		if nil != err {
			return err
		}
		return s.history.StoreRedeem(req.Redeemer, req.Amount, e.params.Denom, env.Block, req.Decoys)
	})
}
