// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package membership - accounts holding at least the threshold balance
//
// every member holds a unique invite code that is issued on entry and
// withdrawn on exit.  The code is kept in two places: the global code
// set for existence checks and the account to code map for removal.
package membership

import (
	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/account"
	"github.com/bitmark-inc/amberledger/counter"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/logger"
)

// DefaultThreshold - one whole token at six decimals
const DefaultThreshold = 1000000

// attempts to find a code that is not already in use
const maxCodeAttempts = 8

// key of the member count in the config pool
var memberCountKey = []byte("member-count")

var present = []byte{0x01}

// Tracker - membership bound to one set of pools
type Tracker struct {
	log         *logger.L
	threshold   uint128.Uint128
	entropy     Entropy
	config      *storage.PoolHandle
	members     *storage.PoolHandle
	inviteCodes *storage.PoolHandle
	memberCodes *storage.PoolHandle
	sequence    counter.Counter
}

// New - create a tracker
//
// entropy may be nil when no codes will be generated, e.g. for queries
func New(log *logger.L, pools *storage.Pools, threshold uint128.Uint128, entropy Entropy) *Tracker {
	return &Tracker{
		log:         log,
		threshold:   threshold,
		entropy:     entropy,
		config:      pools.Config,
		members:     pools.Members,
		inviteCodes: pools.InviteCodes,
		memberCodes: pools.MemberCodes,
	}
}

// UpdateMember - adjust membership after a balance change
func (t *Tracker) UpdateMember(acct account.Account, previous uint128.Uint128, current uint128.Uint128) error {
	wasMember := previous.Cmp(t.threshold) >= 0
	isMember := current.Cmp(t.threshold) >= 0

	switch {
	case wasMember && !isMember:
		return t.RemoveMember(acct)
	case !wasMember && isMember:
		return t.AddMember(acct)
	default:
		return nil
	}
}

// IsMember - check if an account is a member
func (t *Tracker) IsMember(acct account.Account) bool {
	return t.members.Has(acct.Bytes())
}

// AddMember - make an account a member and issue its invite code
//
// does nothing if the account is already a member
func (t *Tracker) AddMember(acct account.Account) error {
	if t.IsMember(acct) {
		t.log.Debugf("add: %s  already a member", acct)
		return nil
	}

	code, err := t.generateCode(acct)
	if nil != err {
		return err
	}

	n, _, err := t.config.GetN(memberCountKey)
	if nil != err {
		return err
	}

	t.members.Put(acct.Bytes(), present)
	t.inviteCodes.Put(code.Bytes(), present)
	t.memberCodes.Put(acct.Bytes(), code.Bytes())
	t.config.PutN(memberCountKey, n+1)

	t.log.Infof("add: %s  members: %d", acct, n+1)
	return nil
}

// RemoveMember - withdraw membership and the invite code
//
// does nothing if the account is not a member
func (t *Tracker) RemoveMember(acct account.Account) error {
	if !t.IsMember(acct) {
		t.log.Debugf("remove: %s  not a member", acct)
		return nil
	}

	code, found, err := t.Code(acct)
	if nil != err {
		return err
	}
	if found {
		t.inviteCodes.Remove(code.Bytes())
		t.memberCodes.Remove(acct.Bytes())
	} else {
		t.log.Warnf("remove: %s  member has no code", acct)
	}

	n, _, err := t.config.GetN(memberCountKey)
	if nil != err {
		return err
	}
	if n > 0 {
		n -= 1
	}

	t.members.Remove(acct.Bytes())
	t.config.PutN(memberCountKey, n)

	t.log.Infof("remove: %s  members: %d", acct, n)
	return nil
}

// Code - the invite code of an account
//
// second parameter is false if the account has no code
func (t *Tracker) Code(acct account.Account) (Code, bool, error) {
	buffer := t.memberCodes.Get(acct.Bytes())
	if nil == buffer {
		return Code{}, false, nil
	}
	code, err := CodeFromBytes(buffer)
	if nil != err {
		t.log.Criticalf("account: %s  code length: %d", acct, len(buffer))
		return Code{}, false, fault.CorruptedInviteCode
	}
	return code, true, nil
}

// ValidateCodes - select the candidates that are current invite codes
//
// candidates that do not decode to a code are ignored; the result
// preserves the input order
func (t *Tracker) ValidateCodes(candidates []string) []string {
	valid := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		code, err := CodeFromString(candidate)
		if nil != err {
			continue
		}
		if t.inviteCodes.Has(code.Bytes()) {
			valid = append(valid, code.String())
		}
	}
	return valid
}

// MemberCount - number of members
func (t *Tracker) MemberCount() (uint64, error) {
	n, _, err := t.config.GetN(memberCountKey)
	return n, err
}

// create a code that is not in the code set
func (t *Tracker) generateCode(acct account.Account) (Code, error) {
	var nonce []byte
	if nil != t.entropy {
		nonce = t.entropy.Nonce()
	}

	for i := 0; i < maxCodeAttempts; i += 1 {
		code, err := nextCode(t.config, nonce, acct, t.sequence.Increment())
		if nil != err {
			return Code{}, err
		}
		if !t.inviteCodes.Has(code.Bytes()) {
			return code, nil
		}
		t.log.Warnf("generate: %s  code collision, attempt: %d", acct, i+1)
	}
	return Code{}, fault.CodeGenerationFailed
}
