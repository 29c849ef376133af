// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assettrap/configuration"
	"github.com/bitmark-inc/assettrap/storage"
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
		{Long: "json", HasArg: getoptions.NO_ARGUMENT, Short: 'j'},
		{Long: "multihash", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'n'},
		{Long: "start", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(options["file"])+len(options["config-file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--json] [--multihash] [--count=N] [--start=FP] (--file=DB | --config-file=FILE) [fingerprint...]", program)
	}

	verbose := len(options["verbose"]) > 0
	asJSON := len(options["json"]) > 0
	asMultihash := len(options["multihash"]) > 0

	count := 20
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "trapdump.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	filename := ""
	if len(options["config-file"]) > 0 {
		conf, err := configuration.Get(options["config-file"][0], nil)
		if nil != err {
			exitwithstatus.Message("%s: configuration error: %s", program, err)
		}
		filename = conf.DatabasePath()
		logging = conf.Logging
	} else {
		filename = options["file"][0]
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if verbose {
		fmt.Printf("read traps from: %q\n", filename)
	}

	store, err := storage.Open(filename, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer store.Close()

	dumpOpts := dumpOptions{
		fingerprints: arguments,
		count:        count,
		asJSON:       asJSON,
		asMultihash:  asMultihash,
	}
	if len(options["start"]) > 0 {
		dumpOpts.start = options["start"][0]
	}

	shown, err := dump(os.Stdout, store, dumpOpts)
	if nil != err {
		exitwithstatus.Message("%s: dump error: %s", program, err)
	}

	if verbose {
		total, err := store.Count()
		if nil != err {
			exitwithstatus.Message("%s: count error: %s", program, err)
		}
		fmt.Printf("shown: %d  total: %d\n", shown, total)
	}
}
