// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package decoy - the set of accounts used to hide the real one
//
// a set is either None or a list of decoy accounts together with the
// position at which the real account is inserted.  The position is in
// the range [0, len(list)].
package decoy

import (
	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/fault"
)

// Set - validated decoy list and real position
type Set struct {
	decoys   []account.Account
	position int
	present  bool
}

// None - no decoys, the real account is written directly
var None = Set{}

// New - create a decoy set with the real account at position
func New(decoys []account.Account, position int) (Set, error) {
	if position < 0 || position > len(decoys) {
		return None, fault.DecoyPositionOutOfRange
	}

	list := make([]account.Account, len(decoys))
	copy(list, decoys)

	return Set{
		decoys:   list,
		position: position,
		present:  true,
	}, nil
}

// FromOptional - build a set from separately supplied list and position
//
// both must be given or both must be absent
func FromOptional(decoys []account.Account, position *int) (Set, error) {
	if nil == decoys && nil == position {
		return None, nil
	}
	if nil == decoys || nil == position {
		return None, fault.DecoyPositionMismatch
	}
	return New(decoys, *position)
}

// IsNone - true if there are no decoys
func (s Set) IsNone() bool {
	return !s.present
}

// Position - index of the real account in the sequence
func (s Set) Position() int {
	return s.position
}

// Decoys - a copy of the decoy list
func (s Set) Decoys() []account.Account {
	list := make([]account.Account, len(s.decoys))
	copy(list, s.decoys)
	return list
}

// Len - number of entries in the interleaved sequence
func (s Set) Len() int {
	if !s.present {
		return 1
	}
	return len(s.decoys) + 1
}

// Sequence - the decoys with the real account inserted at its position
//
// for None the sequence is just the real account
func (s Set) Sequence(real account.Account) []account.Account {
	if !s.present {
		return []account.Account{real}
	}

	sequence := make([]account.Account, 0, len(s.decoys)+1)
	sequence = append(sequence, s.decoys[:s.position]...)
	sequence = append(sequence, real)
	sequence = append(sequence, s.decoys[s.position:]...)
	return sequence
}
