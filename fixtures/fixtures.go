// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"fmt"
	"os"
	"testing"

	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// sample accounts
var (
	Alice   = makeAccount(0xa1)
	Bob     = makeAccount(0xb2)
	Charlie = makeAccount(0xc3)
	Dave    = makeAccount(0xd4)
	Eve     = makeAccount(0xe5)
)

// a fixed seed so that generated codes are repeatable in tests
var PrngSeed = [32]byte{
	0x53, 0x65, 0x65, 0x64, 0x20, 0x66, 0x6f, 0x72,
	0x20, 0x74, 0x65, 0x73, 0x74, 0x69, 0x6e, 0x67,
	0x20, 0x69, 0x6e, 0x76, 0x69, 0x74, 0x65, 0x20,
	0x63, 0x6f, 0x64, 0x65, 0x73, 0x2e, 0x2e, 0x2e,
}

// Accounts - all of the sample accounts
func Accounts() []account.Account {
	return []account.Account{Alice, Bob, Charlie, Dave, Eve}
}

func makeAccount(b byte) account.Account {
	a := account.Account{}
	for i := range a {
		a[i] = b
	}
	a[account.Length-1] = byte(account.Length)
	return a
}

// SetupTestLogger - critical only logging to a file in the test directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// NewTestDatabase - an empty in-memory database
func NewTestDatabase(t *testing.T) *storage.Database {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory database error: %s", err)
	}
	return db
}

// NewTestPools - pools bound to a store
func NewTestPools(t *testing.T, store storage.Store) *storage.Pools {
	pools, err := storage.NewPools(store)
	if nil != err {
		t.Fatalf("create pools error: %s", err)
	}
	return pools
}

// Amount - shorthand for a small amount
func Amount(n uint64) uint128.Uint128 {
	return uint128.From64(n)
}
