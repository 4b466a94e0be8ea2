// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/amberledger/fault"
)

// Length - number of bytes in a canonical account
const Length = 20

// Account - canonical account identifier
//
// accounts arrive already canonicalised; they are only compared and
// used as a storage key component
type Account [Length]byte

// FromBytes - convert a canonical byte slice into an account
func FromBytes(buffer []byte) (Account, error) {
	a := Account{}
	if Length != len(buffer) {
		return a, fault.AccountLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - convert the text form into an account
func FromBase58(s string) (Account, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Account{}, fault.CannotDecodeAccount
	}
	return FromBytes(buffer)
}

// Bytes - the storage key form of an account
func (a Account) Bytes() []byte {
	return a[:]
}

// String - base58 text form
func (a Account) String() string {
	return base58.Encode(a[:])
}

// MarshalText - convert an account to base58 for JSON
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert a base58 string to an account
func (a *Account) UnmarshalText(s []byte) error {
	n, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = n
	return nil
}
