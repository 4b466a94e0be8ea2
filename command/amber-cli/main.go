// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/amberledger/configuration"
	"github.com/bitmark-inc/amberledger/fault"
	"github.com/bitmark-inc/amberledger/storage"
	"github.com/bitmark-inc/amberledger/token"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
)

type metadata struct {
	config  *configuration.Configuration
	db      *storage.Database
	engine  *token.Engine
	log     *logger.L
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "amber-cli"
	app.Usage = "operate on a confidential token ledger database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "config, c",
			Value:  "",
			Usage:  "*configuration `FILE`",
			EnvVar: "AMBER_CONFIG",
		},
	}
	app.Commands = commands()

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "" == command || "version" == command || "help" == command || "h" == command {
			return nil
		}

		file := c.GlobalString("config")
		if "" == file {
			return fault.MissingConfiguration
		}
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.GetConfiguration(file, nil)
		if nil != err {
			return err
		}

		if err := logger.Initialise(config.Logging); nil != err {
			return err
		}
		if err := fault.Initialise(); nil != err {
			return err
		}
		log := logger.New("main")

		threshold, err := config.Token.ThresholdAmount()
		if nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "database: %s\n", config.DatabaseFile())
		}
		db, err := storage.Open(config.DatabaseFile(), storage.ReadWrite)
		if nil != err {
			return errors.Wrapf(err, "failed to open database %s", config.DatabaseFile())
		}

		engine, err := token.New(logger.New("token"), db, token.Parameters{
			Denom:     config.Token.Denom,
			Threshold: threshold,
		})
		if nil != err {
			db.Close()
			return err
		}

		log.Infof("command: %s  database: %s", command, config.DatabaseFile())

		c.App.Metadata["config"] = &metadata{
			config:  config,
			db:      db,
			engine:  engine,
			log:     log,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		err := m.db.Close()
		fault.Finalise()
		logger.Finalise()
		return err
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

// version is a command so it does not need a configuration
func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
