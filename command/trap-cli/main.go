// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/assettrap/asset"
	"github.com/bitmark-inc/assettrap/configuration"
	"github.com/bitmark-inc/assettrap/weight"
)

type metadata struct {
	config   *configuration.Configuration
	versions *asset.Versions
	weights  weight.Schedule
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "trap-cli"
	app.Usage = "inspect trapped asset bundles"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	bundleFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "origin, o",
			Value: "Here",
			Usage: " origin location `PATH` e.g. ../Parachain(1000)",
		},
		cli.StringSliceFlag{
			Name:  "asset, a",
			Usage: "*asset `ID:AMOUNT` or `ID#INSTANCE`, may be repeated",
		},
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " read versions, weights and database from `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "fingerprint",
			Usage:     "compute the trap fingerprint of a bundle",
			ArgsUsage: "\n   (* = required)",
			Flags: append(bundleFlags,
				cli.IntFlag{
					Name:  "encoding, e",
					Value: 0,
					Usage: " asset encoding `VERSION` [default: current]",
				},
			),
			Action: runFingerprint,
		},
		{
			Name:      "ticket",
			Usage:     "resolve a claim ticket",
			ArgsUsage: "PATH",
			Action:    runTicket,
		},
		{
			Name:      "cost",
			Usage:     "weight of dropping and claiming a bundle",
			ArgsUsage: "\n   (* = required)",
			Flags:     bundleFlags,
			Action:    runCost,
		},
		{
			Name:      "peek",
			Usage:     "trapped count of a bundle at the current version",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: append(bundleFlags,
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+trap database `DIRECTORY`",
				},
			),
			Action: runPeek,
		},
		{
			Name:   "version",
			Usage:  "display trap-cli version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		m := &metadata{
			versions: asset.DefaultVersions(),
			weights:  weight.DefaultSchedule(),
			verbose:  c.GlobalBool("verbose"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		c.App.Metadata["config"] = m

		file := c.GlobalString("config")
		if "" == file {
			return nil
		}

		if m.verbose {
			fmt.Fprintf(m.e, "reading config file: %s\n", file)
		}

		conf, err := configuration.Get(file, nil)
		if nil != err {
			return err
		}
		versions, err := conf.AssetVersions()
		if nil != err {
			return err
		}
		m.config = conf
		m.versions = versions
		m.weights = conf.WeightSchedule()
		return nil
	}

	return app
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
