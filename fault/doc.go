// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - shared error values for the ledger
//
// errors are typed by class (corrupted, exists, invalid, not found,
// process) so callers compare against a single instance or test the
// class with the IsErrX functions
package fault
