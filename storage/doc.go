// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.  The pools
// are bound to a Store when they are created, so the same layout is
// used for direct reads from the database and for writes that go
// through a transaction.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. account      = canonical account (20 bytes)
// 4. amount       = big endian uint128 (16 bytes)
// 5. count        = successive index value as big endian uint64 (8 bytes)
// 6. code         = invite code (32 bytes)
// 7. *others*     = byte values of various length
//
// Configuration:
//
//	C ++ "tx-count"            - last transaction id issued
//	                             data: count
//	C ++ "total-supply"        - current total supply
//	                             data: amount
//	C ++ "prng-seed"           - seed for invite code generation
//	                             data: 32 bytes
//	C ++ "member-count"        - number of accounts in the membership set
//	                             data: count
//
// Balances:
//
//	B ++ account               - current balance
//	                             data: amount
//
// Membership:
//
//	M ++ account               - account is a member
//	                             data: 0x01
//	I ++ code                  - invite code is valid
//	                             data: 0x01
//	K ++ account               - invite code issued to a member
//	                             data: code
//
// Transaction history:
//
//	N ++ account               - next count value to use for appending to the transaction list
//	                             data: count
//	X ++ account ++ count      - packed extended transaction
//	n ++ account               - next count value to use for appending to the transfer list
//	                             data: count
//	T ++ account ++ count      - packed legacy transfer
//
// Testing:
//
//	Z ++ key                   - testing data
package storage
