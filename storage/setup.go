// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/logger"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - holds the database handle
type Database struct {
	sync.Mutex
	db       *leveldb.DB
	readOnly bool
	version  int
	trx      *transaction
	log      *logger.L
}

// Open - open up the database connection
func Open(fileName string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(fileName, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - open an empty database held entirely in memory
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	log := logger.New("storage")

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.DatabaseVersionTooNew
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
		version = currentDBVersion
	}

	d := &Database{
		db:       db,
		readOnly: readOnly,
		version:  version,
		log:      log,
	}
	d.trx = newTransaction(d)

	ok = true // prevent db close
	log.Debugf("database opened: version: %d  read only: %t", version, readOnly)
	return d, nil
}

// Close - close the database connection
func (d *Database) Close() error {
	d.Lock()
	defer d.Unlock()
	if nil == d.db {
		return fault.DatabaseIsNotSet
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Version - the database layout version
func (d *Database) Version() int {
	return d.version
}

// Get - read a value for a given key
//
// this returns nil if the key is not present
func (d *Database) Get(key []byte) []byte {
	if nil == d.db {
		return nil
	}
	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	fault.PanicIfError("database.Get", err)
	return value
}

// Put - store a key/value bytes pair directly to the database
//
// normal updates should use a transaction from Begin
func (d *Database) Put(key []byte, value []byte) {
	if nil == d.db {
		fault.Panic("database.Put nil database")
		return
	}
	err := d.db.Put(key, value, nil)
	fault.PanicIfError("database.Put", err)
}

// Remove - remove a key directly from the database
func (d *Database) Remove(key []byte) {
	if nil == d.db {
		fault.Panic("database.Remove nil database")
		return
	}
	err := d.db.Delete(key, nil)
	fault.PanicIfError("database.Remove", err)
}

// Begin - start a transaction
//
// only one transaction can be in use at a time
func (d *Database) Begin() (Transaction, error) {
	if nil == d.db {
		return nil, fault.DatabaseIsNotSet
	}
	err := d.trx.begin()
	if nil != err {
		return nil, err
	}
	return d.trx, nil
}

// return:
//
//	version number (zero if the database is empty)
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fault.WrongDatabaseVersionBytes
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
