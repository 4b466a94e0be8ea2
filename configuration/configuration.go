// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"lukechampine.com/uint128"

	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/history"
	"github.com/bitmark-inc/amberledger/membership"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "amber.leveldb"

	defaultDenom = "uamber"

	defaultLogDirectory = "log"
	defaultLogFile      = "amber.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// DatabaseType - location of the database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// TokenType - token parameters
//
// threshold is a decimal string as it may exceed the range of a Lua
// number; prng_seed is 64 hex digits
type TokenType struct {
	Denom     string `gluamapper:"denom" json:"denom"`
	Threshold string `gluamapper:"threshold" json:"threshold"`
	PrngSeed  string `gluamapper:"prng_seed" json:"prng_seed,omitempty"`
}

// Configuration - the complete file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Token         TokenType            `gluamapper:"token" json:"token"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read, decode and verify the configuration
//
// the database and log directories are created if missing
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},
		Token: TokenType{
			Denom:     defaultDenom,
			Threshold: fmt.Sprintf("%d", membership.DefaultThreshold),
		},
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if err := history.CheckText(options.Token.Denom, nil); nil != err {
		return nil, err
	}
	if _, err := options.Token.ThresholdAmount(); nil != err {
		return nil, err
	}
	if "" != options.Token.PrngSeed {
		if _, err := options.Token.Seed(); nil != err {
			return nil, err
		}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = ensureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// DatabaseFile - full path to the database
func (c *Configuration) DatabaseFile() string {
	return filepath.Join(c.Database.Directory, c.Database.Name)
}

// ThresholdAmount - minimum balance of a member
func (t *TokenType) ThresholdAmount() (uint128.Uint128, error) {
	threshold, err := uint128.FromString(t.Threshold)
	if nil != err {
		return uint128.Zero, fault.InvalidThreshold
	}
	return threshold, nil
}

// Seed - decoded invite code generator seed
func (t *TokenType) Seed() ([membership.SeedLength]byte, error) {
	seed := [membership.SeedLength]byte{}
	buffer, err := hex.DecodeString(t.PrngSeed)
	if nil != err || membership.SeedLength != len(buffer) {
		return seed, fault.InvalidPrngSeed
	}
	copy(seed[:], buffer)
	return seed, nil
}

// ensure the path is absolute
// if not, prepend the directory to make absolute path
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
