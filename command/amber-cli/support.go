// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/decoy"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/history"
	"github.com/bitmark-inc/amberledger/membership"
	"github.com/bitmark-inc/amberledger/token"
)

const nonceLength = 16

func checkAccount(c *cli.Context, name string) (account.Account, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return account.Account{}, fmt.Errorf("%s account is required", name)
	}
	return account.FromBase58(s)
}

func checkOptionalAccount(c *cli.Context, name string, defaultAccount account.Account) (account.Account, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return defaultAccount, nil
	}
	return account.FromBase58(s)
}

func checkAmount(c *cli.Context) (uint128.Uint128, error) {
	s := strings.TrimSpace(c.String("amount"))
	if "" == s {
		return uint128.Zero, fault.InvalidAmount
	}
	amount, err := uint128.FromString(s)
	if nil != err {
		return uint128.Zero, fault.InvalidAmount
	}
	return amount, nil
}

func checkMemo(c *cli.Context) (*string, error) {
	if !c.IsSet("memo") {
		return nil, nil
	}
	memo := c.String("memo")
	if len(memo) > history.MaxMemoLength {
		return nil, fault.MemoTooLong
	}
	return &memo, nil
}

// decoys and position are either both given or both absent
func checkDecoys(c *cli.Context) (decoy.Set, error) {
	list := c.StringSlice("decoy")

	decoys := make([]account.Account, 0, len(list))
	for _, s := range list {
		acct, err := account.FromBase58(strings.TrimSpace(s))
		if nil != err {
			return decoy.None, err
		}
		decoys = append(decoys, acct)
	}
	if 0 == len(decoys) {
		decoys = nil
	}

	var position *int
	if c.IsSet("position") {
		p := c.Int("position")
		position = &p
	}
	return decoy.FromOptional(decoys, position)
}

// block details default to the current time
func checkEnv(c *cli.Context) (token.Env, error) {
	seconds := c.Uint64("time")
	if 0 == seconds {
		seconds = uint64(time.Now().Unix())
	}

	nonce, err := checkNonce(c.String("nonce"))
	if nil != err {
		return token.Env{}, err
	}

	return token.Env{
		Block: history.BlockInfo{
			Time:   seconds,
			Height: c.Uint64("height"),
		},
		Entropy: membership.Nonce(nonce),
	}, nil
}

func checkNonce(s string) ([]byte, error) {
	if "" == s {
		nonce := make([]byte, nonceLength)
		if _, err := rand.Read(nonce); nil != err {
			return nil, err
		}
		return nonce, nil
	}
	return hex.DecodeString(s)
}

// seed from the command line, then the configuration, then random
func checkSeed(s string, configured string) ([membership.SeedLength]byte, error) {
	seed := [membership.SeedLength]byte{}
	if "" == s {
		s = configured
	}
	if "" == s {
		_, err := rand.Read(seed[:])
		return seed, err
	}
	buffer, err := hex.DecodeString(s)
	if nil != err || membership.SeedLength != len(buffer) {
		return seed, fault.InvalidPrngSeed
	}
	copy(seed[:], buffer)
	return seed, nil
}
