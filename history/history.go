// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - per account transaction logs
//
// two logs are kept side by side for each account: the extended log
// of all actions and the legacy log of transfers only.
//
// Every event takes one id from the transaction counter and all of the
// entries written for that event share it.  When decoys are given each
// account of the interleaved sequence receives exactly one entry; the
// decoy accounts receive a copy marked as a decoy, by the decoy action
// in the extended log and by a zero block height in the legacy log.
package history

import (
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/counter"
	"github.com/bitmark-inc/amberledger/decoy"
	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/logger"
)

// History - transaction logs bound to one set of pools
type History struct {
	log           *logger.L
	config        *storage.PoolHandle
	txCount       *storage.PoolHandle
	txList        *storage.PoolHandle
	transferCount *storage.PoolHandle
	transferList  *storage.PoolHandle
}

// New - create the history over a set of pools
func New(log *logger.L, pools *storage.Pools) *History {
	return &History{
		log:           log,
		config:        pools.Config,
		txCount:       pools.TransactionCount,
		txList:        pools.TransactionList,
		transferCount: pools.TransferCount,
		transferList:  pools.TransferList,
	}
}

func (h *History) txLog(acct account.Account) *appendLog {
	return newAppendLog(h.txCount, h.txList, acct)
}

func (h *History) transferLog(acct account.Account) *appendLog {
	return newAppendLog(h.transferCount, h.transferList, acct)
}

func (h *History) appendTx(acct account.Account, tx *Tx) error {
	h.log.Debugf("tx: %d  %s  account: %s", tx.ID, tx.Action.Type, acct)
	return h.txLog(acct).Push(tx.Pack())
}

func (h *History) appendTransfer(acct account.Account, t *Transfer) error {
	h.log.Debugf("transfer: %d  account: %s  height: %d", t.ID, acct, t.BlockHeight)
	return h.transferLog(acct).Push(t.Pack())
}

// append the genuine record for real and a decoy copy for each decoy
func (h *History) storeTxWithDecoys(real account.Account, tx *Tx, decoys decoy.Set) error {
	for i, acct := range decoys.Sequence(real) {
		if i == decoys.Position() {
			if err := h.appendTx(real, tx); nil != err {
				return err
			}
			continue
		}

		d := *tx
		d.Action = decoyAction(acct)
		if err := h.appendTx(acct, &d); nil != err {
			return err
		}
	}
	return nil
}

func (h *History) storeTransferWithDecoys(real account.Account, t *Transfer, decoys decoy.Set) error {
	for i, acct := range decoys.Sequence(real) {
		if i == decoys.Position() {
			if err := h.appendTransfer(real, t); nil != err {
				return err
			}
			continue
		}

		d := *t
		d.Receiver = acct
		d.BlockHeight = 0
		if err := h.appendTransfer(acct, &d); nil != err {
			return err
		}
	}
	return nil
}

// StoreTransfer - record a transfer from owner to receiver
//
// owner and sender histories are written directly and only when they
// differ from the accounts after them; the receiver is written through
// the decoys
func (h *History) StoreTransfer(owner account.Account, sender account.Account, receiver account.Account, amount uint128.Uint128, denom string, memo *string, block BlockInfo, decoys decoy.Set) error {
	if err := CheckText(denom, memo); nil != err {
		return err
	}

	id, err := counter.NextTxID(h.config)
	if nil != err {
		return err
	}

	transfer := &Transfer{
		ID:          id,
		From:        owner,
		Sender:      sender,
		Receiver:    receiver,
		Coins:       Coins{Denom: denom, Amount: amount},
		Memo:        memo,
		BlockTime:   block.Time,
		BlockHeight: block.Height,
	}
	tx := transfer.tx()

	if owner != sender && owner != receiver {
		if err := h.appendTx(owner, tx); nil != err {
			return err
		}
		if err := h.appendTransfer(owner, transfer); nil != err {
			return err
		}
	}

	if sender != receiver {
		if err := h.appendTx(sender, tx); nil != err {
			return err
		}
		if err := h.appendTransfer(sender, transfer); nil != err {
			return err
		}
	}

	if err := h.storeTxWithDecoys(receiver, tx, decoys); nil != err {
		return err
	}
	return h.storeTransferWithDecoys(receiver, transfer, decoys)
}

// StoreMint - record new tokens for recipient
//
// the minter's own entry is never obfuscated
func (h *History) StoreMint(minter account.Account, recipient account.Account, amount uint128.Uint128, denom string, memo *string, block BlockInfo, decoys decoy.Set) error {
	tx, err := h.newTx(mintAction(minter, recipient), amount, denom, memo, block)
	if nil != err {
		return err
	}

	if minter != recipient {
		if err := h.storeTxWithDecoys(recipient, tx, decoys); nil != err {
			return err
		}
	}
	return h.appendTx(minter, tx)
}

// StoreBurn - record tokens of owner destroyed by burner
func (h *History) StoreBurn(owner account.Account, burner account.Account, amount uint128.Uint128, denom string, memo *string, block BlockInfo, decoys decoy.Set) error {
	tx, err := h.newTx(burnAction(burner, owner), amount, denom, memo, block)
	if nil != err {
		return err
	}

	if burner != owner {
		if err := h.storeTxWithDecoys(owner, tx, decoys); nil != err {
			return err
		}
	}
	return h.appendTx(burner, tx)
}

// StoreDeposit - record native coins converted into tokens
func (h *History) StoreDeposit(recipient account.Account, amount uint128.Uint128, denom string, block BlockInfo, decoys decoy.Set) error {
	tx, err := h.newTx(Action{Type: DepositAction}, amount, denom, nil, block)
	if nil != err {
		return err
	}
	return h.storeTxWithDecoys(recipient, tx, decoys)
}

// StoreRedeem - record tokens converted back into native coins
func (h *History) StoreRedeem(redeemer account.Account, amount uint128.Uint128, denom string, block BlockInfo, decoys decoy.Set) error {
	tx, err := h.newTx(Action{Type: RedeemAction}, amount, denom, nil, block)
	if nil != err {
		return err
	}
	return h.storeTxWithDecoys(redeemer, tx, decoys)
}

// text is checked before the id is taken so a rejected record writes nothing
func (h *History) newTx(action Action, amount uint128.Uint128, denom string, memo *string, block BlockInfo) (*Tx, error) {
	if err := CheckText(denom, memo); nil != err {
		return nil, err
	}

	id, err := counter.NextTxID(h.config)
	if nil != err {
		return nil, err
	}
	return &Tx{
		ID:          id,
		Action:      action,
		Coins:       Coins{Denom: denom, Amount: amount},
		Memo:        memo,
		BlockTime:   block.Time,
		BlockHeight: block.Height,
	}, nil
}

// GetTransactions - a page of the extended log, newest first
//
// the page is selected before decoys are filtered out, so it may hold
// fewer than pageSize entries; total counts every stored entry
func (h *History) GetTransactions(acct account.Account, page uint32, pageSize uint32, filterDecoys bool) ([]*Tx, uint64, error) {
	records, total, err := h.txLog(acct).Reverse(page, pageSize)
	if nil != err {
		return nil, 0, err
	}

	txs := make([]*Tx, 0, len(records))
	for _, record := range records {
		tx, err := record.UnpackTx()
		if nil != err {
			h.log.Criticalf("account: %s  unpack tx error: %s", acct, err)
			return nil, 0, err
		}
		if filterDecoys && tx.IsDecoy() {
			continue
		}
		txs = append(txs, tx)
	}
	return txs, total, nil
}

// GetTransfers - a page of the legacy transfer log, newest first
func (h *History) GetTransfers(acct account.Account, page uint32, pageSize uint32, filterDecoys bool) ([]*Transfer, uint64, error) {
	records, total, err := h.transferLog(acct).Reverse(page, pageSize)
	if nil != err {
		return nil, 0, err
	}

	transfers := make([]*Transfer, 0, len(records))
	for _, record := range records {
		t, err := record.UnpackTransfer()
		if nil != err {
			h.log.Criticalf("account: %s  unpack transfer error: %s", acct, err)
			return nil, 0, err
		}
		if filterDecoys && t.IsDecoy() {
			continue
		}
		transfers = append(transfers, t)
	}
	return transfers, total, nil
}
