// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/history"
	"github.com/bitmark-inc/amberledger/membership"
)

func runBalance(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	acct, err := checkAccount(c, "account")
	if nil != err {
		return err
	}
	balance, err := m.engine.Balance(acct)
	if nil != err {
		return err
	}
	member, err := m.engine.IsMember(acct)
	if nil != err {
		return err
	}
	return printJson(m.w, accountResult{
		Account: acct,
		Balance: balance.String(),
		Member:  member,
	})
}

type pageArgs struct {
	acct         account.Account
	page         uint32
	pageSize     uint32
	filterDecoys bool
}

func checkPage(c *cli.Context) (*pageArgs, error) {
	acct, err := checkAccount(c, "account")
	if nil != err {
		return nil, err
	}
	return &pageArgs{
		acct:         acct,
		page:         uint32(c.Uint("page")),
		pageSize:     uint32(c.Uint("size")),
		filterDecoys: c.Bool("filter"),
	}, nil
}

func runHistory(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	args, err := checkPage(c)
	if nil != err {
		return err
	}
	txs, total, err := m.engine.Transactions(args.acct, args.page, args.pageSize, args.filterDecoys)
	if nil != err {
		return err
	}
	if nil == txs {
		txs = []*history.Tx{}
	}
	return printJson(m.w, struct {
		Transactions []*history.Tx `json:"transactions"`
		Total        uint64        `json:"total"`
	}{
		Transactions: txs,
		Total:        total,
	})
}

func runTransfers(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	args, err := checkPage(c)
	if nil != err {
		return err
	}
	transfers, total, err := m.engine.Transfers(args.acct, args.page, args.pageSize, args.filterDecoys)
	if nil != err {
		return err
	}
	if nil == transfers {
		transfers = []*history.Transfer{}
	}
	return printJson(m.w, struct {
		Transfers []*history.Transfer `json:"transfers"`
		Total     uint64              `json:"total"`
	}{
		Transfers: transfers,
		Total:     total,
	})
}

func runMembers(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	n, err := m.engine.MemberCount()
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Members   uint64 `json:"members"`
		Threshold string `json:"threshold"`
	}{
		Members:   n,
		Threshold: m.config.Token.Threshold,
	})
}

func runCode(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	acct, err := checkAccount(c, "account")
	if nil != err {
		return err
	}
	code, found, err := m.engine.Code(acct)
	if nil != err {
		return err
	}
	var reply *membership.Code
	if found {
		reply = &code
	}
	return printJson(m.w, struct {
		Account account.Account  `json:"account"`
		Code    *membership.Code `json:"code"`
	}{
		Account: acct,
		Code:    reply,
	})
}

func runValidate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	valid, err := m.engine.ValidateCodes(c.Args())
	if nil != err {
		return err
	}
	if nil == valid {
		valid = []string{}
	}
	return printJson(m.w, struct {
		Valid []string `json:"valid"`
	}{
		Valid: valid,
	})
}

func runSupply(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	supply, err := m.engine.TotalSupply()
	if nil != err {
		return err
	}
	n, err := m.engine.TxCount()
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		Denom       string      `json:"denom"`
		TotalSupply string      `json:"totalSupply"`
		TxCount     uint64      `json:"txCount"`
		Statistics  interface{} `json:"statistics"`
	}{
		Denom:       m.engine.Denom(),
		TotalSupply: supply.String(),
		TxCount:     n,
		Statistics:  m.engine.Statistics(),
	})
}
