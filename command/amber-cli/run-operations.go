// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/decoy"
	"github.com/bitmark-inc/amberledger/token"
)

type operationResult struct {
	Operation string          `json:"operation"`
	Denom     string          `json:"denom"`
	Amount    string          `json:"amount"`
	Accounts  []string        `json:"accounts"`
	Decoys    int             `json:"decoys"`
	Height    uint64          `json:"height"`
	Time      uint64          `json:"time"`
	Supply    string          `json:"totalSupply"`
	Balances  []accountResult `json:"balances,omitempty"`
}

type accountResult struct {
	Account account.Account `json:"account"`
	Balance string          `json:"balance"`
	Member  bool            `json:"member"`
}

func runInit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	seed, err := checkSeed(c.String("seed"), m.config.Token.PrngSeed)
	if nil != err {
		return err
	}
	if err := m.engine.Initialise(seed); nil != err {
		return err
	}
	m.log.Info("ledger initialised")

	if m.verbose {
		fmt.Fprintf(m.e, "initialised: %s\n", m.config.DatabaseFile())
	}
	return printJson(m.w, struct {
		Denom       string `json:"denom"`
		Initialised bool   `json:"initialised"`
	}{
		Denom:       m.engine.Denom(),
		Initialised: m.engine.IsInitialised(),
	})
}

// common argument handling for all ledger updates
type operationArgs struct {
	amount uint128.Uint128
	decoys decoy.Set
	env    token.Env
}

func checkOperationArgs(c *cli.Context) (*operationArgs, error) {
	amount, err := checkAmount(c)
	if nil != err {
		return nil, err
	}
	decoys, err := checkDecoys(c)
	if nil != err {
		return nil, err
	}
	env, err := checkEnv(c)
	if nil != err {
		return nil, err
	}
	return &operationArgs{
		amount: amount,
		decoys: decoys,
		env:    env,
	}, nil
}

func runMint(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	minter, err := checkAccount(c, "minter")
	if nil != err {
		return err
	}
	recipient, err := checkAccount(c, "recipient")
	if nil != err {
		return err
	}
	memo, err := checkMemo(c)
	if nil != err {
		return err
	}
	args, err := checkOperationArgs(c)
	if nil != err {
		return err
	}

	err = m.engine.Mint(args.env, token.MintRequest{
		Minter:    minter,
		Recipient: recipient,
		Amount:    args.amount,
		Memo:      memo,
		Decoys:    args.decoys,
	})
	if nil != err {
		return err
	}
	return printResult(m, "mint", args, recipient)
}

func runBurn(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	burner, err := checkAccount(c, "burner")
	if nil != err {
		return err
	}
	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}
	memo, err := checkMemo(c)
	if nil != err {
		return err
	}
	args, err := checkOperationArgs(c)
	if nil != err {
		return err
	}

	err = m.engine.Burn(args.env, token.BurnRequest{
		Burner: burner,
		Owner:  owner,
		Amount: args.amount,
		Memo:   memo,
		Decoys: args.decoys,
	})
	if nil != err {
		return err
	}
	return printResult(m, "burn", args, owner)
}

func runTransfer(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}
	sender, err := checkOptionalAccount(c, "sender", owner)
	if nil != err {
		return err
	}
	recipient, err := checkAccount(c, "recipient")
	if nil != err {
		return err
	}
	memo, err := checkMemo(c)
	if nil != err {
		return err
	}
	args, err := checkOperationArgs(c)
	if nil != err {
		return err
	}

	err = m.engine.Transfer(args.env, token.TransferRequest{
		Owner:     owner,
		Sender:    sender,
		Recipient: recipient,
		Amount:    args.amount,
		Memo:      memo,
		Decoys:    args.decoys,
	})
	if nil != err {
		return err
	}
	return printResult(m, "transfer", args, owner, recipient)
}

func runDeposit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	recipient, err := checkAccount(c, "recipient")
	if nil != err {
		return err
	}
	args, err := checkOperationArgs(c)
	if nil != err {
		return err
	}

	err = m.engine.Deposit(args.env, token.DepositRequest{
		Recipient: recipient,
		Amount:    args.amount,
		Decoys:    args.decoys,
	})
	if nil != err {
		return err
	}
	return printResult(m, "deposit", args, recipient)
}

func runRedeem(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	redeemer, err := checkAccount(c, "redeemer")
	if nil != err {
		return err
	}
	args, err := checkOperationArgs(c)
	if nil != err {
		return err
	}

	err = m.engine.Redeem(args.env, token.RedeemRequest{
		Redeemer: redeemer,
		Amount:   args.amount,
		Decoys:   args.decoys,
	})
	if nil != err {
		return err
	}
	return printResult(m, "redeem", args, redeemer)
}

// balances are only shown in verbose mode
func printResult(m *metadata, operation string, args *operationArgs, accounts ...account.Account) error {
	supply, err := m.engine.TotalSupply()
	if nil != err {
		return err
	}

	result := operationResult{
		Operation: operation,
		Denom:     m.engine.Denom(),
		Amount:    args.amount.String(),
		Accounts:  make([]string, 0, len(accounts)),
		Decoys:    args.decoys.Len(),
		Height:    args.env.Block.Height,
		Time:      args.env.Block.Time,
		Supply:    supply.String(),
	}
	for _, acct := range accounts {
		result.Accounts = append(result.Accounts, acct.String())
		if !m.verbose {
			continue
		}
		balance, err := m.engine.Balance(acct)
		if nil != err {
			return err
		}
		member, err := m.engine.IsMember(acct)
		if nil != err {
			return err
		}
		result.Balances = append(result.Balances, accountResult{
			Account: acct,
			Balance: balance.String(),
			Member:  member,
		})
	}
	m.log.Infof("%s: %s %s", operation, result.Amount, result.Denom)
	return printJson(m.w, result)
}
