// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// flags shared by every ledger operation
func blockFlags() []cli.Flag {
	return []cli.Flag{
		cli.Uint64Flag{
			Name:  "height",
			Value: 1,
			Usage: " block `HEIGHT` of the operation",
		},
		cli.Uint64Flag{
			Name:  "time",
			Value: 0,
			Usage: " block `SECONDS` since the epoch [now]",
		},
		cli.StringFlag{
			Name:  "nonce",
			Value: "",
			Usage: " entropy for invite codes `HEX` [random]",
		},
		cli.StringSliceFlag{
			Name:  "decoy, d",
			Usage: " decoy `ACCOUNT`, may be repeated",
		},
		cli.IntFlag{
			Name:  "position, p",
			Usage: "+position of the real account among the decoys `N`",
		},
	}
}

func amountFlags(required ...cli.Flag) []cli.Flag {
	flags := append(required, cli.StringFlag{
		Name:  "amount, a",
		Value: "",
		Usage: "*amount in the smallest unit `N`",
	})
	return append(flags, blockFlags()...)
}

func accountFlag(name string, usage string) cli.Flag {
	return cli.StringFlag{
		Name:  name,
		Value: "",
		Usage: usage,
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		accountFlag("account, A", "*account `ACCOUNT`"),
		cli.UintFlag{
			Name:  "page",
			Value: 0,
			Usage: " page number, 0 is the newest `N`",
		},
		cli.UintFlag{
			Name:  "size, s",
			Value: 10,
			Usage: " entries per page `N`",
		},
		cli.BoolFlag{
			Name:  "filter, f",
			Usage: " leave out decoy entries",
		},
	}
}

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:      "init",
			Usage:     "initialise the invite code seed of a new ledger",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "seed",
					Value: "",
					Usage: " seed `HEX` [configuration prng_seed or random]",
				},
			},
			Action: runInit,
		},
		{
			Name:      "balance",
			Usage:     "show the balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				accountFlag("account, A", "*account `ACCOUNT`"),
			},
			Action: runBalance,
		},
		{
			Name:      "mint",
			Usage:     "create new tokens",
			ArgsUsage: "\n   (* = required, + = required with decoys)",
			Flags: amountFlags(
				accountFlag("minter, m", "*minting `ACCOUNT`"),
				accountFlag("recipient, r", "*receiving `ACCOUNT`"),
				cli.StringFlag{Name: "memo", Usage: " memo `TEXT`"},
			),
			Action: runMint,
		},
		{
			Name:      "burn",
			Usage:     "destroy tokens",
			ArgsUsage: "\n   (* = required, + = required with decoys)",
			Flags: amountFlags(
				accountFlag("burner, b", "*burning `ACCOUNT`"),
				accountFlag("owner, o", "*owning `ACCOUNT`"),
				cli.StringFlag{Name: "memo", Usage: " memo `TEXT`"},
			),
			Action: runBurn,
		},
		{
			Name:      "transfer",
			Usage:     "move tokens between accounts",
			ArgsUsage: "\n   (* = required, + = required with decoys)",
			Flags: amountFlags(
				accountFlag("owner, o", "*owning `ACCOUNT`"),
				accountFlag("sender, s", " sending `ACCOUNT` [owner]"),
				accountFlag("recipient, r", "*receiving `ACCOUNT`"),
				cli.StringFlag{Name: "memo", Usage: " memo `TEXT`"},
			),
			Action: runTransfer,
		},
		{
			Name:      "deposit",
			Usage:     "credit tokens for deposited coins",
			ArgsUsage: "\n   (* = required, + = required with decoys)",
			Flags: amountFlags(
				accountFlag("recipient, r", "*receiving `ACCOUNT`"),
			),
			Action: runDeposit,
		},
		{
			Name:      "redeem",
			Usage:     "debit tokens for redeemed coins",
			ArgsUsage: "\n   (* = required, + = required with decoys)",
			Flags: amountFlags(
				accountFlag("redeemer, r", "*redeeming `ACCOUNT`"),
			),
			Action: runRedeem,
		},
		{
			Name:      "history",
			Usage:     "list the transactions of an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     pageFlags(),
			Action:    runHistory,
		},
		{
			Name:      "transfers",
			Usage:     "list the transfers of an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     pageFlags(),
			Action:    runTransfers,
		},
		{
			Name:   "members",
			Usage:  "show the number of members",
			Action: runMembers,
		},
		{
			Name:      "code",
			Usage:     "show the invite code of a member",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				accountFlag("account, A", "*account `ACCOUNT`"),
			},
			Action: runCode,
		},
		{
			Name:      "validate",
			Usage:     "select the current invite codes from a list",
			ArgsUsage: "CODE...",
			Action:    runValidate,
		},
		{
			Name:   "supply",
			Usage:  "show the total supply and counters",
			Action: runSupply,
		},
		{
			Name:   "version",
			Usage:  "display amber-cli version",
			Action: runVersion,
		},
	}
}
