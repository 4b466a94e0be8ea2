// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"encoding/base64"

	"github.com/bitmark-inc/amberledger/fault"
)

// CodeLength - number of bytes in an invite code
const CodeLength = 32

// Code - an invite code
type Code [CodeLength]byte

// CodeFromBytes - convert a stored code
func CodeFromBytes(buffer []byte) (Code, error) {
	code := Code{}
	if CodeLength != len(buffer) {
		return code, fault.WrongInviteCodeLength
	}
	copy(code[:], buffer)
	return code, nil
}

// CodeFromString - decode the text form of a code
func CodeFromString(s string) (Code, error) {
	buffer, err := base64.StdEncoding.DecodeString(s)
	if nil != err {
		return Code{}, fault.WrongInviteCodeEncoding
	}
	return CodeFromBytes(buffer)
}

// Bytes - code as a byte slice
func (c Code) Bytes() []byte {
	return c[:]
}

// String - text form of a code
func (c Code) String() string {
	return base64.StdEncoding.EncodeToString(c[:])
}

// MarshalText - convert code to text
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText - convert text into a code
func (c *Code) UnmarshalText(s []byte) error {
	code, err := CodeFromString(string(s))
	if nil != err {
		return err
	}
	*c = code
	return nil
}
