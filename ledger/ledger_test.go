// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/decoy"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/fixtures"
	"github.com/bitmark-inc/amberledger/ledger"
	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/amberledger/storage/mocks"
	"github.com/bitmark-inc/logger"
)

type change struct {
	acct     account.Account
	previous uint128.Uint128
	current  uint128.Uint128
}

type recordingTracker struct {
	changes []change
}

func (r *recordingTracker) UpdateMember(acct account.Account, previous uint128.Uint128, current uint128.Uint128) error {
	r.changes = append(r.changes, change{acct, previous, current})
	return nil
}

func setupTestLedger(t *testing.T, store storage.Store) (*ledger.Ledger, *recordingTracker) {
	tracker := &recordingTracker{}
	l := ledger.New(logger.New("ledger"), fixtures.NewTestPools(t, store), tracker)
	return l, tracker
}

func balanceKey(acct account.Account) []byte {
	return append([]byte{'B'}, acct.Bytes()...)
}

func amountBytes(n uint64) []byte {
	buffer := make([]byte, 16)
	uint128.From64(n).PutBytesBE(buffer)
	return buffer
}

func TestPlainCreditAndDebit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	db := fixtures.NewTestDatabase(t)
	defer db.Close()

	l, tracker := setupTestLedger(t, db)

	balance, err := l.Balance(fixtures.Alice)
	assert.Nil(t, err, "empty balance")
	assert.True(t, balance.IsZero(), "absent balance is zero")

	err = l.UpdateBalance(fixtures.Alice, fixtures.Amount(250), true, "mint", decoy.None)
	assert.Nil(t, err, "credit")

	err = l.UpdateBalance(fixtures.Alice, fixtures.Amount(50), false, "transfer", decoy.None)
	assert.Nil(t, err, "debit")

	balance, err = l.Balance(fixtures.Alice)
	assert.Nil(t, err, "balance")
	assert.Equal(t, fixtures.Amount(200), balance, "balance after credit and debit")

	assert.Equal(t, []change{
		{fixtures.Alice, uint128.Zero, fixtures.Amount(250)},
		{fixtures.Alice, fixtures.Amount(250), fixtures.Amount(200)},
	}, tracker.changes, "tracker notifications")
}

func TestCreditSaturates(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	db := fixtures.NewTestDatabase(t)
	defer db.Close()

	l, _ := setupTestLedger(t, db)

	err := l.UpdateBalance(fixtures.Bob, uint128.Max.Sub64(5), true, "mint", decoy.None)
	assert.Nil(t, err, "first credit")
	err = l.UpdateBalance(fixtures.Bob, fixtures.Amount(100), true, "mint", decoy.None)
	assert.Nil(t, err, "saturating credit")

	balance, err := l.Balance(fixtures.Bob)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint128.Max, balance, "saturated")
}

func TestInsufficientFunds(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	db := fixtures.NewTestDatabase(t)
	defer db.Close()

	trx, err := db.Begin()
	assert.Nil(t, err, "begin")

	l, tracker := setupTestLedger(t, trx)
	err = l.UpdateBalance(fixtures.Alice, fixtures.Amount(40), true, "deposit", decoy.None)
	assert.Nil(t, err, "credit")
	assert.Nil(t, trx.Commit(), "commit")

	trx, err = db.Begin()
	assert.Nil(t, err, "begin")

	l, tracker = setupTestLedger(t, trx)
	d, err := decoy.New([]account.Account{fixtures.Charlie, fixtures.Dave}, 2)
	assert.Nil(t, err, "decoys")

	err = l.UpdateBalance(fixtures.Alice, fixtures.Amount(41), false, "transfer", d)
	assert.True(t, fault.IsErrInsufficientFunds(err), "insufficient funds")
	assert.Equal(t, "insufficient funds to transfer: balance=40, required=41", err.Error(), "error text")

	e, ok := err.(*fault.InsufficientFundsError)
	assert.True(t, ok, "typed error")
	assert.Equal(t, "40", e.Balance, "balance")
	assert.Equal(t, "41", e.Required, "required")
	assert.Equal(t, 0, len(tracker.changes), "no tracker notification")

	trx.Abort()

	l, _ = setupTestLedger(t, db)
	balance, err := l.Balance(fixtures.Alice)
	assert.Nil(t, err, "balance")
	assert.Equal(t, fixtures.Amount(40), balance, "balance unchanged")

	pools := fixtures.NewTestPools(t, db)
	assert.False(t, pools.Balances.Has(fixtures.Charlie.Bytes()), "decoy write discarded")
}

func TestDecoyRoundTrip(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	db := fixtures.NewTestDatabase(t)
	defer db.Close()

	l, tracker := setupTestLedger(t, db)
	pools := fixtures.NewTestPools(t, db)

	err := l.UpdateBalance(fixtures.Dave, fixtures.Amount(7), true, "mint", decoy.None)
	assert.Nil(t, err, "setup decoy balance")
	tracker.changes = nil

	assert.False(t, pools.Balances.Has(fixtures.Charlie.Bytes()), "decoy absent before")

	d, err := decoy.New([]account.Account{fixtures.Charlie, fixtures.Dave}, 1)
	assert.Nil(t, err, "decoys")

	err = l.UpdateBalance(fixtures.Alice, fixtures.Amount(100), true, "mint", d)
	assert.Nil(t, err, "decoy credit")

	balance, _ := l.Balance(fixtures.Alice)
	assert.Equal(t, fixtures.Amount(100), balance, "real account credited")

	balance, _ = l.Balance(fixtures.Charlie)
	assert.True(t, balance.IsZero(), "absent decoy still zero")
	assert.True(t, pools.Balances.Has(fixtures.Charlie.Bytes()), "absent decoy now stored")

	balance, _ = l.Balance(fixtures.Dave)
	assert.Equal(t, fixtures.Amount(7), balance, "decoy unchanged")

	assert.Equal(t, []change{
		{fixtures.Alice, uint128.Zero, fixtures.Amount(100)},
	}, tracker.changes, "only the real account notified")
}

func TestDuplicateSelfDecoy(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	db := fixtures.NewTestDatabase(t)
	defer db.Close()

	l, tracker := setupTestLedger(t, db)

	d, err := decoy.New([]account.Account{fixtures.Alice, fixtures.Alice}, 0)
	assert.Nil(t, err, "decoys")

	err = l.UpdateBalance(fixtures.Alice, fixtures.Amount(10), true, "deposit", d)
	assert.Nil(t, err, "credit")

	balance, _ := l.Balance(fixtures.Alice)
	assert.Equal(t, fixtures.Amount(10), balance, "credited once")
	assert.Equal(t, 1, len(tracker.changes), "notified once")
}

func TestCorruptedBalance(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	db := fixtures.NewTestDatabase(t)
	defer db.Close()

	l, _ := setupTestLedger(t, db)
	fixtures.NewTestPools(t, db).Balances.Put(fixtures.Eve.Bytes(), []byte{1, 2, 3})

	_, err := l.Balance(fixtures.Eve)
	assert.Equal(t, fault.CorruptedAmount, err, "corrupted")
	assert.True(t, fault.IsErrCorrupted(err), "corrupted class")

	err = l.UpdateBalance(fixtures.Eve, fixtures.Amount(1), true, "mint", decoy.None)
	assert.Equal(t, fault.CorruptedAmount, err, "update of corrupted")
}

// the load/store pattern must be the same whichever position is real
func TestDecoyWriteOrder(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	decoys := []account.Account{fixtures.Charlie, fixtures.Dave}

	for position := 0; position <= len(decoys); position += 1 {
		ctl := gomock.NewController(t)

		store := mocks.NewMockStore(ctl)
		l, _ := setupTestLedger(t, store)

		d, err := decoy.New(decoys, position)
		assert.Nil(t, err, "decoys")

		calls := []*gomock.Call{}
		for _, acct := range d.Sequence(fixtures.Bob) {
			value := amountBytes(5)
			if acct == fixtures.Bob {
				calls = append(calls,
					store.EXPECT().Get(balanceKey(acct)).Return(amountBytes(5)).Times(1),
					store.EXPECT().Put(balanceKey(acct), amountBytes(8)).Times(1),
				)
				continue
			}
			calls = append(calls,
				store.EXPECT().Get(balanceKey(acct)).Return(value).Times(1),
				store.EXPECT().Put(balanceKey(acct), value).Times(1),
			)
		}
		gomock.InOrder(calls...)

		err = l.UpdateBalance(fixtures.Bob, fixtures.Amount(3), true, "transfer", d)
		assert.Nil(t, err, "position: %d", position)

		ctl.Finish()
	}
}
