// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/fixtures"
	"github.com/bitmark-inc/amberledger/history"
	"github.com/bitmark-inc/amberledger/membership"
)

// build a context as the cli package would for a sub-command
func newContext(t *testing.T, flags []cli.Flag, arguments ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		f.Apply(set)
	}
	err := set.Parse(arguments)
	assert.Nil(t, err, "parse")
	return cli.NewContext(nil, set, nil)
}

func TestCheckAccount(t *testing.T) {
	flags := []cli.Flag{accountFlag("owner, o", "owner")}

	c := newContext(t, flags, "--owner", fixtures.Alice.String())
	acct, err := checkAccount(c, "owner")
	assert.Nil(t, err, "owner")
	assert.Equal(t, fixtures.Alice, acct, "wrong account")

	c = newContext(t, flags)
	_, err = checkAccount(c, "owner")
	assert.NotNil(t, err, "missing owner")

	c = newContext(t, flags, "--owner", "0OIl")
	_, err = checkAccount(c, "owner")
	assert.NotNil(t, err, "bad base58")
}

func TestCheckOptionalAccount(t *testing.T) {
	flags := []cli.Flag{accountFlag("sender, s", "sender")}

	c := newContext(t, flags)
	acct, err := checkOptionalAccount(c, "sender", fixtures.Bob)
	assert.Nil(t, err, "default")
	assert.Equal(t, fixtures.Bob, acct, "default account")

	c = newContext(t, flags, "--sender", fixtures.Charlie.String())
	acct, err = checkOptionalAccount(c, "sender", fixtures.Bob)
	assert.Nil(t, err, "given")
	assert.Equal(t, fixtures.Charlie, acct, "given account")
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		arguments []string
		expected  uint128.Uint128
		err       error
	}{
		{[]string{"--amount", "0"}, uint128.Zero, nil},
		{[]string{"--amount", "1000000"}, uint128.From64(1000000), nil},
		{[]string{"--amount", "340282366920938463463374607431768211455"}, uint128.Max, nil},
		{[]string{"--amount", "340282366920938463463374607431768211456"}, uint128.Zero, fault.InvalidAmount},
		{[]string{"--amount", "-1"}, uint128.Zero, fault.InvalidAmount},
		{[]string{"--amount", "ten"}, uint128.Zero, fault.InvalidAmount},
		{[]string{}, uint128.Zero, fault.InvalidAmount},
	}

	for i, item := range tests {
		c := newContext(t, amountFlags(), item.arguments...)
		amount, err := checkAmount(c)
		assert.Equal(t, item.err, err, "%d: error", i)
		assert.Equal(t, item.expected, amount, "%d: amount", i)
	}
}

func TestCheckMemo(t *testing.T) {
	flags := []cli.Flag{cli.StringFlag{Name: "memo"}}

	c := newContext(t, flags)
	memo, err := checkMemo(c)
	assert.Nil(t, err, "absent memo")
	assert.Nil(t, memo, "absent memo")

	c = newContext(t, flags, "--memo", "")
	memo, err = checkMemo(c)
	assert.Nil(t, err, "empty memo")
	if assert.NotNil(t, memo, "empty memo") {
		assert.Equal(t, "", *memo, "empty memo")
	}

	c = newContext(t, flags, "--memo", "lunch")
	memo, err = checkMemo(c)
	assert.Nil(t, err, "memo")
	if assert.NotNil(t, memo, "memo") {
		assert.Equal(t, "lunch", *memo, "memo")
	}

	c = newContext(t, flags, "--memo", strings.Repeat("m", history.MaxMemoLength))
	memo, err = checkMemo(c)
	assert.Nil(t, err, "longest memo")
	assert.NotNil(t, memo, "longest memo")

	c = newContext(t, flags, "--memo", strings.Repeat("m", history.MaxMemoLength+1))
	_, err = checkMemo(c)
	assert.Equal(t, fault.MemoTooLong, err, "memo too long")
}

func TestCheckDecoys(t *testing.T) {
	c := newContext(t, blockFlags())
	decoys, err := checkDecoys(c)
	assert.Nil(t, err, "no decoys")
	assert.True(t, decoys.IsNone(), "expected none")

	c = newContext(t, blockFlags(),
		"--decoy", fixtures.Bob.String(),
		"--decoy", fixtures.Charlie.String(),
		"--position", "1",
	)
	decoys, err = checkDecoys(c)
	assert.Nil(t, err, "decoys")
	assert.Equal(t, 1, decoys.Position(), "position")
	assert.Equal(t, []account.Account{fixtures.Bob, fixtures.Charlie}, decoys.Decoys(), "decoys")
	assert.Equal(t,
		[]account.Account{fixtures.Bob, fixtures.Alice, fixtures.Charlie},
		decoys.Sequence(fixtures.Alice),
		"sequence",
	)

	c = newContext(t, blockFlags(), "--position", "0")
	_, err = checkDecoys(c)
	assert.Equal(t, fault.DecoyPositionMismatch, err, "position without decoys")

	c = newContext(t, blockFlags(), "--decoy", fixtures.Bob.String())
	_, err = checkDecoys(c)
	assert.Equal(t, fault.DecoyPositionMismatch, err, "decoys without position")

	c = newContext(t, blockFlags(), "--decoy", fixtures.Bob.String(), "--position", "2")
	_, err = checkDecoys(c)
	assert.Equal(t, fault.DecoyPositionOutOfRange, err, "position out of range")
}

func TestCheckEnv(t *testing.T) {
	c := newContext(t, blockFlags(), "--height", "42", "--time", "1600000000", "--nonce", "0102")
	env, err := checkEnv(c)
	assert.Nil(t, err, "env")
	assert.Equal(t, uint64(42), env.Block.Height, "height")
	assert.Equal(t, uint64(1600000000), env.Block.Time, "time")
	assert.Equal(t, []byte{0x01, 0x02}, env.Entropy.Nonce(), "nonce")

	c = newContext(t, blockFlags())
	env, err = checkEnv(c)
	assert.Nil(t, err, "default env")
	assert.Equal(t, uint64(1), env.Block.Height, "default height")
	assert.NotEqual(t, uint64(0), env.Block.Time, "current time")
	assert.Equal(t, nonceLength, len(env.Entropy.Nonce()), "random nonce")

	c = newContext(t, blockFlags(), "--nonce", "xyz")
	_, err = checkEnv(c)
	assert.NotNil(t, err, "bad nonce")
}

func TestCheckSeed(t *testing.T) {
	given := hex.EncodeToString(fixtures.PrngSeed[:])

	seed, err := checkSeed(given, "")
	assert.Nil(t, err, "given")
	assert.Equal(t, fixtures.PrngSeed, seed, "given seed")

	seed, err = checkSeed("", given)
	assert.Nil(t, err, "configured")
	assert.Equal(t, fixtures.PrngSeed, seed, "configured seed")

	seed, err = checkSeed("", "")
	assert.Nil(t, err, "random")
	assert.NotEqual(t, [membership.SeedLength]byte{}, seed, "random seed")

	_, err = checkSeed("0102", "")
	assert.Equal(t, fault.InvalidPrngSeed, err, "short seed")

	_, err = checkSeed("zz", given)
	assert.Equal(t, fault.InvalidPrngSeed, err, "bad hex")
}

func TestPrintJson(t *testing.T) {
	buffer := &bytes.Buffer{}
	err := printJson(buffer, struct {
		Total uint64 `json:"total"`
	}{
		Total: 3,
	})
	assert.Nil(t, err, "print")
	assert.Equal(t, "{\n  \"total\": 3\n}\n", buffer.String(), "output")
}
