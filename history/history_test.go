// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/counter"
	"github.com/bitmark-inc/amberledger/decoy"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/fixtures"
	"github.com/bitmark-inc/amberledger/history"
	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/logger"
)

const denom = "uamber"

var block = history.BlockInfo{Time: 1600000000, Height: 100}

func setupTestHistory(t *testing.T) (*storage.Database, *history.History) {
	fixtures.SetupTestLogger()
	db := fixtures.NewTestDatabase(t)
	return db, history.New(logger.New("history"), fixtures.NewTestPools(t, db))
}

func teardownTestHistory(db *storage.Database) {
	db.Close()
	fixtures.TeardownTestLogger()
}

func ids(txs []*history.Tx) []uint64 {
	result := make([]uint64, 0, len(txs))
	for _, tx := range txs {
		result = append(result, tx.ID)
	}
	return result
}

func TestEmptyHistory(t *testing.T) {
	db, h := setupTestHistory(t)
	defer teardownTestHistory(db)

	txs, total, err := h.GetTransactions(fixtures.Alice, 0, 10, false)
	assert.Nil(t, err, "transactions")
	assert.Equal(t, 0, len(txs), "no transactions")
	assert.Equal(t, uint64(0), total, "zero length")

	transfers, total, err := h.GetTransfers(fixtures.Alice, 0, 10, true)
	assert.Nil(t, err, "transfers")
	assert.Equal(t, 0, len(transfers), "no transfers")
	assert.Equal(t, uint64(0), total, "zero length")
}

func TestPagination(t *testing.T) {
	db, h := setupTestHistory(t)
	defer teardownTestHistory(db)

	for i := uint64(1); i <= 5; i += 1 {
		err := h.StoreDeposit(fixtures.Alice, fixtures.Amount(i), denom, block, decoy.None)
		assert.Nil(t, err, "deposit: %d", i)
	}

	txs, total, err := h.GetTransactions(fixtures.Alice, 0, 2, false)
	assert.Nil(t, err, "page 0")
	assert.Equal(t, []uint64{5, 4}, ids(txs), "newest first")
	assert.Equal(t, uint64(5), total, "total")

	txs, total, err = h.GetTransactions(fixtures.Alice, 1, 2, false)
	assert.Nil(t, err, "page 1")
	assert.Equal(t, []uint64{3, 2}, ids(txs), "middle page")
	assert.Equal(t, uint64(5), total, "total")

	txs, total, err = h.GetTransactions(fixtures.Alice, 2, 2, false)
	assert.Nil(t, err, "page 2")
	assert.Equal(t, []uint64{1}, ids(txs), "oldest remaining")
	assert.Equal(t, fixtures.Amount(1), txs[0].Coins.Amount, "oldest amount")
	assert.Equal(t, uint64(5), total, "total")

	txs, total, err = h.GetTransactions(fixtures.Alice, 3, 2, false)
	assert.Nil(t, err, "page 3")
	assert.Equal(t, 0, len(txs), "beyond the end")
	assert.Equal(t, uint64(5), total, "total")

	txs, _, err = h.GetTransactions(fixtures.Alice, 0, 0, false)
	assert.Nil(t, err, "zero page size")
	assert.Equal(t, 0, len(txs), "nothing taken")
}

func TestDecoyFiltering(t *testing.T) {
	db, h := setupTestHistory(t)
	defer teardownTestHistory(db)

	memo := "rent"
	d, err := decoy.New([]account.Account{fixtures.Charlie, fixtures.Dave}, 1)
	assert.Nil(t, err, "decoys")

	err = h.StoreTransfer(fixtures.Alice, fixtures.Alice, fixtures.Bob, fixtures.Amount(70), denom, &memo, block, d)
	assert.Nil(t, err, "store transfer")

	for _, acct := range []account.Account{fixtures.Charlie, fixtures.Dave} {
		txs, total, err := h.GetTransactions(acct, 0, 10, true)
		assert.Nil(t, err, "decoy transactions")
		assert.Equal(t, 0, len(txs), "no genuine transactions")
		assert.Equal(t, uint64(1), total, "decoy entry counted")

		txs, _, err = h.GetTransactions(acct, 0, 10, false)
		assert.Nil(t, err, "unfiltered")
		assert.Equal(t, 1, len(txs), "decoy entry present")
		assert.True(t, txs[0].IsDecoy(), "decoy action")
		assert.Equal(t, acct, *txs[0].Action.Address, "decoy holds slot account")
		assert.Equal(t, uint64(1), txs[0].ID, "same id")
		assert.Equal(t, &memo, txs[0].Memo, "same memo")
		assert.Equal(t, fixtures.Amount(70), txs[0].Coins.Amount, "same amount")

		transfers, total, err := h.GetTransfers(acct, 0, 10, true)
		assert.Nil(t, err, "decoy transfers")
		assert.Equal(t, 0, len(transfers), "no genuine transfers")
		assert.Equal(t, uint64(1), total, "decoy transfer counted")

		transfers, _, err = h.GetTransfers(acct, 0, 10, false)
		assert.Nil(t, err, "unfiltered transfers")
		assert.Equal(t, acct, transfers[0].Receiver, "decoy receiver")
		assert.Equal(t, uint64(0), transfers[0].BlockHeight, "zero height")
	}

	txs, total, err := h.GetTransactions(fixtures.Bob, 0, 10, true)
	assert.Nil(t, err, "receiver transactions")
	assert.Equal(t, uint64(1), total, "one entry")
	assert.Equal(t, 1, len(txs), "one genuine")

	alice := fixtures.Alice
	bob := fixtures.Bob
	expected := &history.Tx{
		ID: 1,
		Action: history.Action{
			Type:      history.TransferAction,
			From:      &alice,
			Sender:    &alice,
			Recipient: &bob,
		},
		Coins:       history.Coins{Denom: denom, Amount: fixtures.Amount(70)},
		Memo:        &memo,
		BlockTime:   block.Time,
		BlockHeight: block.Height,
	}
	assert.Equal(t, expected, txs[0], "full event data")

	transfers, _, err := h.GetTransfers(fixtures.Bob, 0, 10, true)
	assert.Nil(t, err, "receiver transfers")
	assert.Equal(t, 1, len(transfers), "one genuine transfer")
	assert.Equal(t, block.Height, transfers[0].BlockHeight, "real height")

	// sender differs from receiver so it has a plain entry
	txs, total, err = h.GetTransactions(fixtures.Alice, 0, 10, false)
	assert.Nil(t, err, "sender transactions")
	assert.Equal(t, uint64(1), total, "sender entry")
	assert.False(t, txs[0].IsDecoy(), "sender entry is genuine")
}

func TestFilterAfterPaging(t *testing.T) {
	db, h := setupTestHistory(t)
	defer teardownTestHistory(db)

	// Charlie: genuine, decoy, decoy, genuine (oldest first)
	err := h.StoreDeposit(fixtures.Charlie, fixtures.Amount(1), denom, block, decoy.None)
	assert.Nil(t, err, "deposit")

	d, _ := decoy.New([]account.Account{fixtures.Charlie}, 0)
	assert.Nil(t, h.StoreDeposit(fixtures.Alice, fixtures.Amount(2), denom, block, d), "decoy 1")
	assert.Nil(t, h.StoreRedeem(fixtures.Bob, fixtures.Amount(3), denom, block, d), "decoy 2")
	assert.Nil(t, h.StoreDeposit(fixtures.Charlie, fixtures.Amount(4), denom, block, decoy.None), "deposit")

	txs, total, err := h.GetTransactions(fixtures.Charlie, 0, 2, true)
	assert.Nil(t, err, "page 0")
	assert.Equal(t, []uint64{4}, ids(txs), "page shrinks after filtering")
	assert.Equal(t, uint64(4), total, "total includes decoys")

	txs, _, err = h.GetTransactions(fixtures.Charlie, 1, 2, true)
	assert.Nil(t, err, "page 1")
	assert.Equal(t, []uint64{1}, ids(txs), "second page")
}

func TestTransferParticipants(t *testing.T) {
	db, h := setupTestHistory(t)
	defer teardownTestHistory(db)

	// owner, sender and receiver all distinct
	err := h.StoreTransfer(fixtures.Alice, fixtures.Bob, fixtures.Charlie, fixtures.Amount(1), denom, nil, block, decoy.None)
	assert.Nil(t, err, "transfer from")

	// owner sends to self
	err = h.StoreTransfer(fixtures.Dave, fixtures.Dave, fixtures.Dave, fixtures.Amount(2), denom, nil, block, decoy.None)
	assert.Nil(t, err, "self transfer")

	// owner is receiver
	err = h.StoreTransfer(fixtures.Eve, fixtures.Bob, fixtures.Eve, fixtures.Amount(3), denom, nil, block, decoy.None)
	assert.Nil(t, err, "owner is receiver")

	lengths := map[account.Account]uint64{
		fixtures.Alice:   1,
		fixtures.Bob:     2,
		fixtures.Charlie: 1,
		fixtures.Dave:    1,
		fixtures.Eve:     1,
	}
	for acct, expected := range lengths {
		_, total, err := h.GetTransactions(acct, 0, 10, false)
		assert.Nil(t, err, "transactions")
		assert.Equal(t, expected, total, "tx log length: %s", acct)

		_, total, err = h.GetTransfers(acct, 0, 10, false)
		assert.Nil(t, err, "transfers")
		assert.Equal(t, expected, total, "transfer log length: %s", acct)
	}
}

func TestMintAndBurn(t *testing.T) {
	db, h := setupTestHistory(t)
	defer teardownTestHistory(db)

	d, _ := decoy.New([]account.Account{fixtures.Eve}, 1)

	err := h.StoreMint(fixtures.Alice, fixtures.Bob, fixtures.Amount(10), denom, nil, block, d)
	assert.Nil(t, err, "mint")

	err = h.StoreMint(fixtures.Alice, fixtures.Alice, fixtures.Amount(10), denom, nil, block, d)
	assert.Nil(t, err, "mint to self")

	err = h.StoreBurn(fixtures.Bob, fixtures.Charlie, fixtures.Amount(5), denom, nil, block, d)
	assert.Nil(t, err, "burn")

	lengths := map[account.Account]uint64{
		fixtures.Alice:   2, // minter twice, self mint not obfuscated
		fixtures.Bob:     2, // recipient and owner
		fixtures.Charlie: 1, // burner
		fixtures.Eve:     2, // decoy of mint and burn
	}
	for acct, expected := range lengths {
		_, total, err := h.GetTransactions(acct, 0, 10, false)
		assert.Nil(t, err, "transactions")
		assert.Equal(t, expected, total, "length: %s", acct)
	}

	txs, _, _ := h.GetTransactions(fixtures.Bob, 0, 10, false)
	assert.Equal(t, history.BurnAction, txs[0].Action.Type, "newest is burn")
	assert.Equal(t, fixtures.Charlie, *txs[0].Action.Burner, "burner")
	assert.Equal(t, fixtures.Bob, *txs[0].Action.Owner, "owner")
	assert.Equal(t, history.MintAction, txs[1].Action.Type, "oldest is mint")
	assert.Equal(t, fixtures.Alice, *txs[1].Action.Minter, "minter")

	_, total, _ := h.GetTransfers(fixtures.Bob, 0, 10, false)
	assert.Equal(t, uint64(0), total, "mint and burn not in transfer log")

	n, err := counter.TxCount(fixtures.NewTestPools(t, db).Config)
	assert.Nil(t, err, "tx count")
	assert.Equal(t, uint64(3), n, "one id per event")
}

func TestCorruptedHistory(t *testing.T) {
	db, h := setupTestHistory(t)
	defer teardownTestHistory(db)

	assert.Nil(t, h.StoreDeposit(fixtures.Alice, fixtures.Amount(1), denom, block, decoy.None), "deposit")

	pools := fixtures.NewTestPools(t, db)
	key := append(fixtures.Alice.Bytes(), 0, 0, 0, 0, 0, 0, 0, 0)
	record := pools.TransactionList.Get(key)
	assert.NotNil(t, record, "stored record")

	corrupted := append([]byte{}, record...)
	corrupted[1] = 99
	pools.TransactionList.Put(key, corrupted)

	_, _, err := h.GetTransactions(fixtures.Alice, 0, 10, true)
	assert.Equal(t, fault.UnknownTransactionCode, err, "corruption not filtered away")

	// count claims more records than exist
	pools.TransactionCount.PutN(fixtures.Alice.Bytes(), 2)
	_, _, err = h.GetTransactions(fixtures.Alice, 0, 1, false)
	assert.Equal(t, fault.CorruptedTransaction, err, "missing record")
}

func TestTextLimits(t *testing.T) {
	db, h := setupTestHistory(t)
	defer teardownTestHistory(db)

	longestMemo := strings.Repeat("m", history.MaxMemoLength)
	longestDenom := strings.Repeat("d", history.MaxDenomLength)

	err := h.StoreMint(fixtures.Alice, fixtures.Bob, fixtures.Amount(5), longestDenom, &longestMemo, block, decoy.None)
	assert.Nil(t, err, "longest text")

	txs, total, err := h.GetTransactions(fixtures.Bob, 0, 10, false)
	assert.Nil(t, err, "read back longest text")
	assert.Equal(t, uint64(1), total, "stored")
	if assert.Equal(t, 1, len(txs), "one record") {
		assert.Equal(t, longestDenom, txs[0].Coins.Denom, "denom")
		assert.Equal(t, longestMemo, *txs[0].Memo, "memo")
	}

	tooLongMemo := longestMemo + "m"
	tooLongDenom := longestDenom + "d"

	err = h.StoreMint(fixtures.Alice, fixtures.Charlie, fixtures.Amount(5), denom, &tooLongMemo, block, decoy.None)
	assert.Equal(t, fault.MemoTooLong, err, "mint memo too long")

	err = h.StoreTransfer(fixtures.Alice, fixtures.Alice, fixtures.Charlie, fixtures.Amount(5), denom, &tooLongMemo, block, decoy.None)
	assert.Equal(t, fault.MemoTooLong, err, "transfer memo too long")

	err = h.StoreDeposit(fixtures.Charlie, fixtures.Amount(5), tooLongDenom, block, decoy.None)
	assert.Equal(t, fault.InvalidDenomination, err, "denom too long")

	err = h.StoreRedeem(fixtures.Charlie, fixtures.Amount(5), "", block, decoy.None)
	assert.Equal(t, fault.InvalidDenomination, err, "empty denom")

	_, total, err = h.GetTransactions(fixtures.Charlie, 0, 10, false)
	assert.Nil(t, err, "rejected records")
	assert.Equal(t, uint64(0), total, "nothing written")

	n, err := counter.TxCount(fixtures.NewTestPools(t, db).Config)
	assert.Nil(t, err, "tx count")
	assert.Equal(t, uint64(1), n, "no id taken by a rejected record")
}
