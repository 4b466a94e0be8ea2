// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history

import (
	"encoding/json"
	"strings"

	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/fault"
)

// ActionType - the kind of event a transaction records
type ActionType uint8

// the stored action codes, these must never change
const (
	TransferAction ActionType = 0
	MintAction     ActionType = 1
	BurnAction     ActionType = 2
	DepositAction  ActionType = 3
	RedeemAction   ActionType = 4
	DecoyAction    ActionType = 255
)

var actionNames = map[ActionType]string{
	TransferAction: "transfer",
	MintAction:     "mint",
	BurnAction:     "burn",
	DepositAction:  "deposit",
	RedeemAction:   "redeem",
	DecoyAction:    "decoy",
}

// String - name of the action
func (a ActionType) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// MarshalText - action name for JSON output
func (a ActionType) MarshalText() ([]byte, error) {
	if _, ok := actionNames[a]; !ok {
		return nil, fault.UnknownTransactionCode
	}
	return []byte(a.String()), nil
}

// UnmarshalText - action from its name
func (a *ActionType) UnmarshalText(s []byte) error {
	name := strings.ToLower(string(s))
	for code, n := range actionNames {
		if n == name {
			*a = code
			return nil
		}
	}
	return fault.UnknownTransactionCode
}

// BlockInfo - position of the event in the host chain
type BlockInfo struct {
	Time   uint64 `json:"time"`
	Height uint64 `json:"height"`
}

// Coins - an amount of a denomination
type Coins struct {
	Denom  string
	Amount uint128.Uint128
}

type coinsJSON struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// MarshalJSON - amount is written as a decimal string
func (c Coins) MarshalJSON() ([]byte, error) {
	return json.Marshal(coinsJSON{
		Denom:  c.Denom,
		Amount: c.Amount.String(),
	})
}

// UnmarshalJSON - read the decimal string form
func (c *Coins) UnmarshalJSON(s []byte) error {
	var j coinsJSON
	err := json.Unmarshal(s, &j)
	if nil != err {
		return err
	}
	amount, err := uint128.FromString(j.Amount)
	if nil != err {
		return fault.InvalidAmount
	}
	c.Denom = j.Denom
	c.Amount = amount
	return nil
}

// Action - the event and the accounts involved
//
// only the fields relevant to the type are set:
//
//	transfer: From, Sender, Recipient
//	mint:     Minter, Recipient
//	burn:     Burner, Owner
//	decoy:    Address
type Action struct {
	Type      ActionType       `json:"type"`
	From      *account.Account `json:"from,omitempty"`
	Sender    *account.Account `json:"sender,omitempty"`
	Recipient *account.Account `json:"recipient,omitempty"`
	Minter    *account.Account `json:"minter,omitempty"`
	Burner    *account.Account `json:"burner,omitempty"`
	Owner     *account.Account `json:"owner,omitempty"`
	Address   *account.Account `json:"address,omitempty"`
}

// Tx - an entry in the transaction history of an account
type Tx struct {
	ID          uint64  `json:"id"`
	Action      Action  `json:"action"`
	Coins       Coins   `json:"coins"`
	Memo        *string `json:"memo,omitempty"`
	BlockTime   uint64  `json:"block_time"`
	BlockHeight uint64  `json:"block_height"`
}

// IsDecoy - true for the entry written to a decoy account
func (tx *Tx) IsDecoy() bool {
	return DecoyAction == tx.Action.Type
}

// Transfer - an entry in the transfer only history of an account
//
// a zero block height marks a decoy entry
type Transfer struct {
	ID          uint64          `json:"id"`
	From        account.Account `json:"from"`
	Sender      account.Account `json:"sender"`
	Receiver    account.Account `json:"receiver"`
	Coins       Coins           `json:"coins"`
	Memo        *string         `json:"memo,omitempty"`
	BlockTime   uint64          `json:"block_time"`
	BlockHeight uint64          `json:"block_height"`
}

// IsDecoy - true for the entry written to a decoy account
func (t *Transfer) IsDecoy() bool {
	return 0 == t.BlockHeight
}

func transferAction(from account.Account, sender account.Account, recipient account.Account) Action {
	return Action{
		Type:      TransferAction,
		From:      &from,
		Sender:    &sender,
		Recipient: &recipient,
	}
}

func mintAction(minter account.Account, recipient account.Account) Action {
	return Action{
		Type:      MintAction,
		Minter:    &minter,
		Recipient: &recipient,
	}
}

func burnAction(burner account.Account, owner account.Account) Action {
	return Action{
		Type:   BurnAction,
		Burner: &burner,
		Owner:  &owner,
	}
}

func decoyAction(address account.Account) Action {
	return Action{
		Type:    DecoyAction,
		Address: &address,
	}
}

// the extended form of a transfer
func (t *Transfer) tx() *Tx {
	return &Tx{
		ID:          t.ID,
		Action:      transferAction(t.From, t.Sender, t.Receiver),
		Coins:       t.Coins,
		Memo:        t.Memo,
		BlockTime:   t.BlockTime,
		BlockHeight: t.BlockHeight,
	}
}
