// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// time allowed for the logger to write out before the panic unwinds
const panicDelay = 100 * time.Millisecond

// channel for the last message before an unrecoverable failure
var log *logger.L

// Initialise - open the panic log channel
//
// requires logger.Initialise to have been called
func Initialise() error {
	if nil != log {
		return AlreadyInitialised
	}
	log = logger.New("PANIC")
	return nil
}

// Finalise - flush and close the panic log channel
func Finalise() {
	if nil == log {
		return
	}
	log.Flush()
	log = nil
}

// Panic - record the caller and message then panic
func Panic(message string) {
	critical(message)
	panic(message)
}

// PanicIfError - panic on a storage failure that the ledger cannot
// recover from
func PanicIfError(operation string, err error) {
	if nil == err {
		return
	}
	message := fmt.Sprintf("%s failed with error: %v", operation, err)
	critical(message)
	panic(message)
}

func critical(message string) {
	location := "unknown"
	if _, file, line, ok := runtime.Caller(2); ok {
		location = fmt.Sprintf("%s:%d", file, line)
	}

	if nil == log {
		fmt.Fprintf(os.Stderr, "*** (%s) %s\n", location, message)
		return
	}
	log.Criticalf("(%s) %s", location, message)
	log.Flush()
	time.Sleep(panicDelay)
}
