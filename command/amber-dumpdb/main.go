// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "early", HasArg: getoptions.NO_ARGUMENT, Short: 'e'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {
		listTags(os.Stdout)
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--early] [--ascii] [--count=N] --file=FILE [--list] tag [key-prefix]", program)
	}

	// stop if prefix no longer matches
	earlyStop := len(options["early"]) > 0

	ascii := len(options["ascii"]) > 0
	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["file"][0]
	tag, ok := findTag(arguments[0])
	if !ok {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, arguments[0])
	}
	if verbose {
		fmt.Printf("read tag: %c (%s) from file: %q\n", tag.Prefix, tag.Name, filename)
	}

	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "amber-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// start of main processing
	db, err := storage.Open(filename, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer db.Close()

	cursor := db.NewFetchCursor(tag.Prefix)
	if len(prefix) > 0 {
		cursor.Seek(prefix)
	}

	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}

	dump(os.Stdout, tag, data, prefix, earlyStop, ascii)
}

// print all available tags
func listTags(w io.Writer) {
	fmt.Fprintf(w, " tags:\n")
	for _, tag := range storage.Tags() {
		fmt.Fprintf(w, "       %c → %s\n", tag.Prefix, tag.Name)
	}
}

// a tag is either the prefix character or the pool name
func findTag(s string) (storage.Tag, bool) {
	for _, tag := range storage.Tags() {
		if (1 == len(s) && s[0] == tag.Prefix) || s == tag.Name {
			return tag, true
		}
	}
	return storage.Tag{}, false
}

// print the elements as hex, with the decoded value for fixed width
// balances and counts
func dump(w io.Writer, tag storage.Tag, data []storage.Element, prefix []byte, earlyStop bool, ascii bool) {
	for i, e := range data {
		if earlyStop && !bytes.HasPrefix(e.Key, prefix) {
			fmt.Fprintf(w, "*** early stop\n")
			return
		}

		fmt.Fprintf(w, "%d: Key: %x\n", i, e.Key)
		if !ascii {
			fmt.Fprintf(w, "%d: Val: %x%s\n", i, e.Value, decoded(tag, e.Value))
			continue
		}
		for _, line := range strings.SplitAfter(hex.Dump(e.Value), "\n") {
			if "" != line {
				fmt.Fprintf(w, "%d: Val: %s", i, line)
			}
		}
	}
}

func decoded(tag storage.Tag, value []byte) string {
	switch {
	case 'B' == tag.Prefix && 16 == len(value):
		return "  = " + uint128.FromBytesBE(value).String()
	case ('N' == tag.Prefix || 'n' == tag.Prefix) && 8 == len(value):
		return fmt.Sprintf("  = %d", binary.BigEndian.Uint64(value))
	}
	return ""
}
