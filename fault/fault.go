// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type CorruptedError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AccountLength             = InvalidError("account length is invalid")
	AlreadyInitialised        = ExistsError("already initialised")
	CannotDecodeAccount       = InvalidError("cannot decode account")
	CodeGenerationFailed      = ProcessError("unable to generate a unique invite code")
	CorruptedAmount           = CorruptedError("corrupted data found: 16 byte amount expected")
	CorruptedCount            = CorruptedError("corrupted data found: 8 byte count expected")
	CorruptedInviteCode       = CorruptedError("corrupted data found: 32 byte invite code expected")
	CorruptedPrngSeed         = CorruptedError("corrupted data found: 32 byte prng seed expected")
	ConfigurationIsNotATable  = InvalidError("configuration file did not return a table")
	CorruptedTransaction      = CorruptedError("corrupted transaction record in history")
	DatabaseIsNotSet          = ProcessError("database is not set")
	DatabaseIsReadOnly        = InvalidError("database is read only")
	DatabaseVersionTooNew     = InvalidError("database version is newer than this program")
	DecoyPositionMismatch     = InvalidError("decoys and decoy position must be given together")
	DecoyPositionOutOfRange   = InvalidError("decoy position is out of range")
	InvalidAmount             = InvalidError("invalid amount")
	InvalidCount              = InvalidError("invalid count")
	InvalidCursor             = InvalidError("invalid cursor")
	InvalidDenomination       = InvalidError("invalid denomination")
	InvalidPrngSeed           = InvalidError("prng seed must be 64 hex digits")
	InvalidStructPointer      = InvalidError("invalid struct pointer")
	InvalidThreshold          = InvalidError("invalid membership threshold")
	MissingAddress            = CorruptedError("missing address in stored transaction")
	MissingConfiguration      = InvalidError("configuration file is required")
	MemoTooLong               = InvalidError("memo is too long")
	MissingPrngSeed           = NotFoundError("prng seed has not been initialised")
	NotInitialised            = NotFoundError("not initialised")
	TotalSupplyOverflow       = InvalidError("operation would increase the total supply above the supported maximum")
	TotalSupplyUnderflow      = InvalidError("operation would decrease the total supply below zero")
	TransactionAlreadyInUse   = ProcessError("transaction already in use")
	TransactionNotInUse       = ProcessError("transaction is not in use")
	UnknownTransactionCode    = CorruptedError("unexpected transaction code in history")
	WrongPoolPrefix           = InvalidError("pool has invalid prefix")
	WrongInviteCodeLength     = InvalidError("invite code length is invalid")
	WrongInviteCodeEncoding   = InvalidError("invite code encoding is invalid")
	WrongDatabaseVersionBytes = CorruptedError("incompatible database version length")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e CorruptedError) Error() string { return string(e) }
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }

// InsufficientFundsError - a debit would take a balance below zero
//
// the amounts are kept in their decimal text form so that this
// package does not depend on the integer representation
type InsufficientFundsError struct {
	Operation string
	Balance   string
	Required  string
}

// Error - the error interface method
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds to %s: balance=%s, required=%s", e.Operation, e.Balance, e.Required)
}

// IsErrCorrupted - determine the class of an error
func IsErrCorrupted(e error) bool { var x CorruptedError; return errors.As(e, &x) }
func IsErrExists(e error) bool    { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool   { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool  { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool   { var x ProcessError; return errors.As(e, &x) }

// IsErrInsufficientFunds - check for a failed debit
func IsErrInsufficientFunds(e error) bool {
	var x *InsufficientFundsError
	return errors.As(e, &x)
}
