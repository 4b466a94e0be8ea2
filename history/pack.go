// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history

import (
	"encoding/binary"

	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/fault"
)

// Packed - a stored history record
type Packed []byte

// limits on the text fields of a record
const (
	MaxDenomLength = 64
	MaxMemoLength  = 65536
)

const (
	amountLength = 16

	absent  = 0x00
	present = 0x01
)

// CheckText - reject a denomination or memo that a record cannot hold
func CheckText(denom string, memo *string) error {
	if "" == denom || len(denom) > MaxDenomLength {
		return fault.InvalidDenomination
	}
	if nil != memo && len(*memo) > MaxMemoLength {
		return fault.MemoTooLong
	}
	return nil
}

// Pack - the extended record
//
// Varint64(id) type address1 address2 address3 coins memo
// Varint64(time) Varint64(height), each address is optional
func (tx *Tx) Pack() Packed {
	a1, a2, a3 := tx.Action.addresses()

	buffer := appendUint64(nil, tx.ID)
	buffer = append(buffer, byte(tx.Action.Type))
	buffer = appendOptionalAccount(buffer, a1)
	buffer = appendOptionalAccount(buffer, a2)
	buffer = appendOptionalAccount(buffer, a3)
	buffer = appendCoins(buffer, tx.Coins)
	buffer = appendMemo(buffer, tx.Memo)
	buffer = appendUint64(buffer, tx.BlockTime)
	return appendUint64(buffer, tx.BlockHeight)
}

// Pack - the legacy transfer record
//
// Varint64(id) from sender receiver coins memo Varint64(time) Varint64(height)
func (t *Transfer) Pack() Packed {
	buffer := appendUint64(nil, t.ID)
	buffer = append(buffer, t.From.Bytes()...)
	buffer = append(buffer, t.Sender.Bytes()...)
	buffer = append(buffer, t.Receiver.Bytes()...)
	buffer = appendCoins(buffer, t.Coins)
	buffer = appendMemo(buffer, t.Memo)
	buffer = appendUint64(buffer, t.BlockTime)
	return appendUint64(buffer, t.BlockHeight)
}

// UnpackTx - decode an extended record
//
// an unknown action code or missing address is a corrupted record
func (record Packed) UnpackTx() (*Tx, error) {
	r := &reader{buffer: record}

	tx := &Tx{}
	tx.ID = r.readUint64()
	code := r.readByte()
	a1 := r.readOptionalAccount()
	a2 := r.readOptionalAccount()
	a3 := r.readOptionalAccount()
	tx.Coins = r.readCoins()
	tx.Memo = r.readMemo()
	tx.BlockTime = r.readUint64()
	tx.BlockHeight = r.readUint64()

	if err := r.finish(); nil != err {
		return nil, err
	}

	action, err := newAction(ActionType(code), a1, a2, a3)
	if nil != err {
		return nil, err
	}
	tx.Action = action

	return tx, nil
}

// UnpackTransfer - decode a legacy transfer record
func (record Packed) UnpackTransfer() (*Transfer, error) {
	r := &reader{buffer: record}

	t := &Transfer{}
	t.ID = r.readUint64()
	t.From = r.readAccount()
	t.Sender = r.readAccount()
	t.Receiver = r.readAccount()
	t.Coins = r.readCoins()
	t.Memo = r.readMemo()
	t.BlockTime = r.readUint64()
	t.BlockHeight = r.readUint64()

	if err := r.finish(); nil != err {
		return nil, err
	}
	return t, nil
}

// the stored address slots of an action
func (a *Action) addresses() (*account.Account, *account.Account, *account.Account) {
	switch a.Type {
	case TransferAction:
		return a.From, a.Sender, a.Recipient
	case MintAction:
		return a.Minter, a.Recipient, nil
	case BurnAction:
		return a.Burner, a.Owner, nil
	case DecoyAction:
		return a.Address, nil, nil
	default:
		return nil, nil, nil
	}
}

// rebuild an action from its stored address slots
//
// slots not used by the type are ignored
func newAction(code ActionType, a1 *account.Account, a2 *account.Account, a3 *account.Account) (Action, error) {
	switch code {
	case TransferAction:
		if nil == a1 || nil == a2 || nil == a3 {
			return Action{}, fault.MissingAddress
		}
		return transferAction(*a1, *a2, *a3), nil
	case MintAction:
		if nil == a1 || nil == a2 {
			return Action{}, fault.MissingAddress
		}
		return mintAction(*a1, *a2), nil
	case BurnAction:
		if nil == a1 || nil == a2 {
			return Action{}, fault.MissingAddress
		}
		return burnAction(*a1, *a2), nil
	case DepositAction, RedeemAction:
		return Action{Type: code}, nil
	case DecoyAction:
		if nil == a1 {
			return Action{}, fault.MissingAddress
		}
		return decoyAction(*a1), nil
	default:
		return Action{}, fault.UnknownTransactionCode
	}
}

func appendUint64(buffer Packed, value uint64) Packed {
	b := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(b, value)
	return append(buffer, b[:n]...)
}

func appendString(buffer Packed, s string) Packed {
	buffer = appendUint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

func appendOptionalAccount(buffer Packed, acct *account.Account) Packed {
	if nil == acct {
		return append(buffer, absent)
	}
	buffer = append(buffer, present)
	return append(buffer, acct.Bytes()...)
}

func appendCoins(buffer Packed, coins Coins) Packed {
	buffer = appendString(buffer, coins.Denom)
	amount := make([]byte, amountLength)
	coins.Amount.PutBytesBE(amount)
	return append(buffer, amount...)
}

func appendMemo(buffer Packed, memo *string) Packed {
	if nil == memo {
		return append(buffer, absent)
	}
	buffer = append(buffer, present)
	return appendString(buffer, *memo)
}

// reader - sequential decoder that remembers the first failure
type reader struct {
	buffer []byte
	n      int
	err    error
}

func (r *reader) fail() {
	if nil == r.err {
		r.err = fault.CorruptedTransaction
	}
}

func (r *reader) take(count int) []byte {
	if nil != r.err || count < 0 || r.n+count > len(r.buffer) {
		r.fail()
		return nil
	}
	b := r.buffer[r.n : r.n+count]
	r.n += count
	return b
}

func (r *reader) readUint64() uint64 {
	if nil != r.err {
		return 0
	}
	value, count := binary.Uvarint(r.buffer[r.n:])
	if count <= 0 {
		r.fail()
		return 0
	}
	r.n += count
	return value
}

func (r *reader) readByte() byte {
	b := r.take(1)
	if nil == b {
		return 0
	}
	return b[0]
}

func (r *reader) readString(limit uint64) string {
	length := r.readUint64()
	if length > limit {
		r.fail()
		return ""
	}
	return string(r.take(int(length)))
}

func (r *reader) readAccount() account.Account {
	acct := account.Account{}
	copy(acct[:], r.take(account.Length))
	return acct
}

func (r *reader) readOptionalAccount() *account.Account {
	switch r.readByte() {
	case absent:
		return nil
	case present:
		acct := r.readAccount()
		return &acct
	default:
		r.fail()
		return nil
	}
}

func (r *reader) readCoins() Coins {
	denom := r.readString(MaxDenomLength)
	amount := r.take(amountLength)
	if nil == amount {
		return Coins{}
	}
	return Coins{
		Denom:  denom,
		Amount: uint128.FromBytesBE(amount),
	}
}

func (r *reader) readMemo() *string {
	switch r.readByte() {
	case absent:
		return nil
	case present:
		s := r.readString(MaxMemoLength)
		return &s
	default:
		r.fail()
		return nil
	}
}

// every byte must be consumed
func (r *reader) finish() error {
	if nil == r.err && r.n != len(r.buffer) {
		r.fail()
	}
	return r.err
}
