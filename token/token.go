// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - runs each ledger operation as one storage transaction
//
// an operation updates balances, the total supply and the history;
// if any step fails the whole transaction is discarded so none of its
// writes become visible.
package token

import (
	"sync"

	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/counter"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/history"
	"github.com/bitmark-inc/amberledger/ledger"
	"github.com/bitmark-inc/amberledger/membership"
	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/logger"
)

// Parameters - fixed settings of a token
type Parameters struct {
	Denom     string
	Threshold uint128.Uint128
}

// Env - the execution context of one operation
type Env struct {
	Block   history.BlockInfo
	Entropy membership.Entropy
}

// Statistics - operation counts since the engine was created
type Statistics struct {
	Transfers uint64 `json:"transfers"`
	Mints     uint64 `json:"mints"`
	Burns     uint64 `json:"burns"`
	Deposits  uint64 `json:"deposits"`
	Redeems   uint64 `json:"redeems"`
	Aborted   uint64 `json:"aborted"`
}

// Engine - single writer over a database
type Engine struct {
	sync.RWMutex

	log    *logger.L
	db     *storage.Database
	params Parameters

	ledgerLog     *logger.L
	membershipLog *logger.L
	historyLog    *logger.L

	transfers counter.Counter
	mints     counter.Counter
	burns     counter.Counter
	deposits  counter.Counter
	redeems   counter.Counter
	aborted   counter.Counter
}

// the components bound to one transaction
type session struct {
	config  *storage.PoolHandle
	tracker *membership.Tracker
	ledger  *ledger.Ledger
	history *history.History
}

// New - create an engine
func New(log *logger.L, db *storage.Database, params Parameters) (*Engine, error) {
	if nil == db {
		return nil, fault.DatabaseIsNotSet
	}
	if err := history.CheckText(params.Denom, nil); nil != err {
		return nil, err
	}
	return &Engine{
		log:           log,
		db:            db,
		params:        params,
		ledgerLog:     logger.New("ledger"),
		membershipLog: logger.New("membership"),
		historyLog:    logger.New("history"),
	}, nil
}

// Denom - the token denomination
func (e *Engine) Denom() string {
	return e.params.Denom
}

// Initialise - store the code generator seed and an empty supply
func (e *Engine) Initialise(seed [membership.SeedLength]byte) error {
	e.Lock()
	defer e.Unlock()

	trx, err := e.db.Begin()
	if nil != err {
		return err
	}

	pools, err := storage.NewPools(trx)
	if nil != err {
		trx.Abort()
		return err
	}

	err = membership.InitialiseSeed(pools.Config, seed)
	if nil != err {
		trx.Abort()
		return err
	}
	if !pools.Config.Has(totalSupplyKey) {
		putTotalSupply(pools.Config, uint128.Zero)
	}

	err = trx.Commit()
	if nil != err {
		return err
	}
	e.log.Infof("initialised denom: %s  threshold: %s", e.params.Denom, e.params.Threshold)
	return nil
}

// IsInitialised - check for a stored seed
func (e *Engine) IsInitialised() bool {
	e.RLock()
	defer e.RUnlock()

	pools, err := storage.NewPools(e.db)
	if nil != err {
		return false
	}
	return membership.HasSeed(pools.Config)
}

func (e *Engine) newSession(store storage.Store, entropy membership.Entropy) (*session, error) {
	pools, err := storage.NewPools(store)
	if nil != err {
		return nil, err
	}

	tracker := membership.New(e.membershipLog, pools, e.params.Threshold, entropy)
	return &session{
		config:  pools.Config,
		tracker: tracker,
		ledger:  ledger.New(e.ledgerLog, pools, tracker),
		history: history.New(e.historyLog, pools),
	}, nil
}

// run one operation inside a transaction
func (e *Engine) run(operation string, env Env, stat *counter.Counter, f func(s *session) error) error {
	e.Lock()
	defer e.Unlock()

	trx, err := e.db.Begin()
	if nil != err {
		return err
	}

	s, err := e.newSession(trx, env.Entropy)
	if nil != err {
		trx.Abort()
		return err
	}

	if !membership.HasSeed(s.config) {
		trx.Abort()
		return fault.NotInitialised
	}

	err = f(s)
	if nil != err {
		trx.Abort()
		e.aborted.Increment()
		e.log.Warnf("%s: aborted at height: %d  error: %s", operation, env.Block.Height, err)
		return err
	}

	err = trx.Commit()
	if nil != err {
		return err
	}
	stat.Increment()
	e.log.Infof("%s: committed at height: %d", operation, env.Block.Height)
	return nil
}

// Statistics - counts of committed and aborted operations
func (e *Engine) Statistics() Statistics {
	return Statistics{
		Transfers: e.transfers.Uint64(),
		Mints:     e.mints.Uint64(),
		Burns:     e.burns.Uint64(),
		Deposits:  e.deposits.Uint64(),
		Redeems:   e.redeems.Uint64(),
		Aborted:   e.aborted.Uint64(),
	}
}
