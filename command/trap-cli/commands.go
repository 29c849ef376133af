// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/assettrap/asset"
	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/fingerprint"
	"github.com/bitmark-inc/assettrap/location"
	"github.com/bitmark-inc/assettrap/messagebus"
	"github.com/bitmark-inc/assettrap/storage"
	"github.com/bitmark-inc/assettrap/ticket"
	"github.com/bitmark-inc/assettrap/trap"
	"github.com/bitmark-inc/assettrap/weight"
)

// common errors - keep in alphabetic order
const (
	ErrMissingAssets   = fault.InvalidError("at least one asset is required")
	ErrMissingDatabase = fault.InvalidError("database file or configuration is required")
)

// the origin and bundle from the command flags
func bundleArguments(c *cli.Context) (location.Location, asset.Bundle, error) {
	origin, err := location.Parse(c.String("origin"))
	if nil != err {
		return location.Location{}, nil, fmt.Errorf("origin: %q  error: %s", c.String("origin"), err)
	}

	items := c.StringSlice("asset")
	if 0 == len(items) {
		return location.Location{}, nil, ErrMissingAssets
	}
	bundle, err := asset.ParseBundle(items)
	if nil != err {
		return location.Location{}, nil, err
	}
	return origin, bundle, nil
}

func runFingerprint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	origin, bundle, err := bundleArguments(c)
	if nil != err {
		return err
	}

	var versioned asset.Versioned
	if n := c.Int("encoding"); 0 == n {
		versioned, err = m.versions.ConvertCurrent(bundle)
	} else if n < 0 {
		err = fault.ErrUnsupportedVersion
	} else {
		versioned, err = m.versions.Convert(bundle, uint32(n))
	}
	if nil != err {
		return err
	}

	input, err := fingerprint.Input(origin, versioned)
	if nil != err {
		return err
	}
	fp := fingerprint.Blake2b256{}.Sum256(input)

	mh, err := fp.Multihash()
	if nil != err {
		return err
	}

	// split the hashed input back into its origin and bundle parts
	hashedOrigin, n, err := location.Unpack(input)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "origin: %s\n", origin)
		fmt.Fprintf(m.e, "assets: %v\n", versioned.Assets)
		fmt.Fprintf(m.e, "input origin: %x  decodes to: %s\n", input[:n], hashedOrigin)
		fmt.Fprintf(m.e, "input bundle: %x\n", input[n:])
	}

	out := struct {
		Origin      string           `json:"origin"`
		Version     uint32           `json:"version"`
		Assets      []string         `json:"assets"`
		Fingerprint fingerprint.Type `json:"fingerprint"`
		Multihash   string           `json:"multihash"`
		Input       string           `json:"input"`
		InputOrigin string           `json:"input_origin"`
		InputBundle string           `json:"input_bundle"`
	}{
		Origin:      origin.String(),
		Version:     versioned.Version,
		Assets:      assetStrings(versioned.Assets),
		Fingerprint: fp,
		Multihash:   mh.B58String(),
		Input:       hex.EncodeToString(input),
		InputOrigin: hashedOrigin.String(),
		InputBundle: hex.EncodeToString(input[n:]),
	}
	return printJson(m.w, out)
}

func runTicket(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 1 != c.NArg() {
		return fmt.Errorf("ticket: exactly one PATH is required")
	}

	t, err := location.Parse(c.Args().Get(0))
	if nil != err {
		return err
	}

	out := struct {
		Ticket    string `json:"ticket"`
		Valid     bool   `json:"valid"`
		Request   string `json:"request,omitempty"`
		Supported bool   `json:"supported"`
	}{
		Ticket: t.String(),
	}

	request, err := ticket.Resolve(t)
	if nil == err {
		out.Valid = true
		out.Request = request.String()
		out.Supported = request.Current || m.versions.IsSupported(request.Version)
	}
	return printJson(m.w, out)
}

func runCost(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	origin, bundle, err := bundleArguments(c)
	if nil != err {
		return err
	}

	versioned, err := m.versions.ConvertCurrent(bundle)
	if nil != err {
		return err
	}
	input, err := fingerprint.Input(origin, versioned)
	if nil != err {
		return err
	}

	out := struct {
		InputSize int           `json:"input_size"`
		Drop      weight.Weight `json:"drop"`
		Claim     weight.Weight `json:"claim"`
	}{
		InputSize: len(input),
		Drop:      m.weights.Drop(len(input)),
		Claim:     m.weights.Claim(len(input)),
	}
	return printJson(m.w, out)
}

func runPeek(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	origin, bundle, err := bundleArguments(c)
	if nil != err {
		return err
	}

	file := c.String("file")
	if "" == file && nil != m.config {
		file = m.config.DatabasePath()
	}
	if "" == file {
		return ErrMissingDatabase
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "trap-cli.log",
		Size:      1048576,
		Count:     10,
		Console:   m.verbose,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if nil != m.config {
		logging = m.config.Logging
	}
	if err := logger.Initialise(logging); nil != err {
		return err
	}
	defer logger.Finalise()

	store, err := storage.Open(file, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer store.Close()

	// read only lookups emit nothing, the queue only satisfies the handler
	h, err := trap.New(trap.Config{
		Store:    store,
		Hasher:   fingerprint.Blake2b256{},
		Sink:     messagebus.New(1),
		Versions: m.versions,
		Weights:  m.weights,
		Log:      logger.New("trap-cli"),
	})
	if nil != err {
		return err
	}

	fp, count, err := h.Peek(origin, bundle)
	if nil != err {
		return err
	}

	out := struct {
		Fingerprint fingerprint.Type `json:"fingerprint"`
		Count       uint32           `json:"count"`
		ClaimCost   weight.Weight    `json:"claim_cost"`
	}{
		Fingerprint: fp,
		Count:       count,
		ClaimCost:   h.ClaimCost(origin, bundle),
	}
	return printJson(m.w, out)
}

func assetStrings(b asset.Bundle) []string {
	s := make([]string, 0, len(b))
	for _, a := range b {
		s = append(s, a.String())
	}
	return s
}
