// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/location"
)

const abstractPrefix = "abstract:"

// Parse - read the form produced by Asset.String
//
// fungible:     <identifier>:<amount>
// non-fungible: <identifier>#<hex instance>
//
// where the identifier is a location path or abstract:<hex name>
func Parse(s string) (Asset, error) {
	s = strings.TrimSpace(s)
	n := strings.LastIndexAny(s, ":#")
	if n <= 0 {
		return Asset{}, fault.ErrInvalidFungibility
	}

	id, err := parseIdentifier(s[:n])
	if nil != err {
		return Asset{}, err
	}

	value := s[n+1:]
	if '#' == s[n] {
		instance, err := hex.DecodeString(value)
		if nil != err {
			return Asset{}, fault.ErrInvalidFungibility
		}
		return NewNonFungible(id, instance), nil
	}

	amount, err := strconv.ParseUint(value, 10, 64)
	if nil != err {
		return Asset{}, fault.ErrInvalidFungibility
	}
	return NewFungible(id, amount), nil
}

// ParseBundle - parse each item as an asset
func ParseBundle(items []string) (Bundle, error) {
	b := make(Bundle, 0, len(items))
	for _, s := range items {
		a, err := Parse(s)
		if nil != err {
			return nil, err
		}
		b = append(b, a)
	}
	return b, nil
}

func parseIdentifier(s string) (Identifier, error) {
	if strings.HasPrefix(s, abstractPrefix) {
		name, err := hex.DecodeString(strings.TrimPrefix(s, abstractPrefix))
		if nil != err || 0 == len(name) {
			return Identifier{}, fault.ErrInvalidAssetClass
		}
		if len(name) > MaxAbstractLength {
			return Identifier{}, fault.ErrAbstractIdentifierTooLong
		}
		return AbstractID(name), nil
	}
	l, err := location.Parse(s)
	if nil != err {
		return Identifier{}, err
	}
	return ConcreteID(l), nil
}
