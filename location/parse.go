// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package location

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	"github.com/bitmark-inc/assettrap/fault"
)

// Parse - read the path form produced by String
//
// e.g. "Here", "..", "../Parachain(1000)/GeneralIndex(5)"
func Parse(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if "" == s || "Here" == s {
		return Here(), nil
	}

	l := Location{}
	parents := 0
	for i, part := range strings.Split(s, "/") {
		if ".." == part {
			if len(l.Interior) > 0 {
				return Location{}, fault.ErrInvalidJunction
			}
			parents += 1
			if parents > math.MaxUint8 {
				return Location{}, fault.ErrInvalidJunction
			}
			continue
		}
		if i-parents >= MaximumJunctions {
			return Location{}, fault.ErrTooManyJunctions
		}
		j, err := parseJunction(part)
		if nil != err {
			return Location{}, err
		}
		l.Interior = append(l.Interior, j)
	}
	l.Parents = uint8(parents)

	// reuse the packer's validation
	if _, err := l.Pack(); nil != err {
		return Location{}, err
	}
	return l, nil
}

func parseJunction(s string) (Junction, error) {
	if "OnlyChild" == s {
		return OnlyChild(), nil
	}

	name, rest, ok := strings.Cut(s, "(")
	if !ok || !strings.HasSuffix(rest, ")") {
		return Junction{}, fault.ErrInvalidJunction
	}
	args := strings.Split(strings.TrimSuffix(rest, ")"), ",")

	switch name {
	case "Parachain":
		n, err := parseIndex(args, math.MaxUint32)
		return Junction{Kind: KindParachain, Index: n}, err

	case "PalletInstance":
		n, err := parseIndex(args, math.MaxUint8)
		return Junction{Kind: KindPalletInstance, Index: n}, err

	case "GeneralIndex":
		n, err := parseIndex(args, math.MaxUint64)
		return Junction{Kind: KindGeneralIndex, Index: n}, err

	case "GeneralKey":
		if 1 != len(args) {
			return Junction{}, fault.ErrInvalidJunction
		}
		key, err := hex.DecodeString(args[0])
		if nil != err {
			return Junction{}, fault.ErrInvalidJunction
		}
		return Junction{Kind: KindGeneralKey, Key: key}, nil

	case "AccountId32", "AccountKey20", "AccountIndex64":
		if 2 != len(args) {
			return Junction{}, fault.ErrInvalidJunction
		}
		network, err := parseNetwork(args[0])
		if nil != err {
			return Junction{}, err
		}
		if "AccountIndex64" == name {
			n, err := parseIndex(args[1:], math.MaxUint64)
			return Junction{Kind: KindAccountIndex64, Network: network, Index: n}, err
		}
		key, err := hex.DecodeString(args[1])
		if nil != err {
			return Junction{}, fault.ErrInvalidJunction
		}
		kind := KindAccountId32
		if "AccountKey20" == name {
			kind = KindAccountKey20
		}
		return Junction{Kind: kind, Network: network, Key: key}, nil

	default:
		return Junction{}, fault.ErrInvalidJunction
	}
}

func parseIndex(args []string, maximum uint64) (uint64, error) {
	if 1 != len(args) {
		return 0, fault.ErrInvalidJunction
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if nil != err || n > maximum {
		return 0, fault.ErrInvalidJunction
	}
	return n, nil
}

func parseNetwork(s string) (Network, error) {
	switch s {
	case "any":
		return NetworkAny, nil
	case "polkadot":
		return NetworkPolkadot, nil
	case "kusama":
		return NetworkKusama, nil
	default:
		return 0, fault.ErrInvalidNetwork
	}
}
