// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package location_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/location"
)

func TestParseRoundTrip(t *testing.T) {
	var account [location.AccountId32Length]byte
	var key [location.AccountKey20Length]byte
	account[31] = 0x01
	key[0] = 0xaa

	items := []location.Location{
		location.Here(),
		location.New(1),
		location.New(1, location.Parachain(1000)),
		location.New(0, location.PalletInstance(50), location.GeneralIndex(1984)),
		location.New(2, location.AccountId32(location.NetworkPolkadot, account)),
		location.New(0, location.AccountKey20(location.NetworkKusama, key)),
		location.New(0, location.AccountIndex64(location.NetworkAny, 77)),
		location.New(0, location.GeneralKey([]byte{0xde, 0xad})),
		location.New(0, location.OnlyChild()),
	}

	for i, l := range items {
		parsed, err := location.Parse(l.String())
		assert.Nil(t, err, "%d: parse %q error", i, l)
		assert.True(t, l.Equal(parsed), "%d: round trip of %q gave %q", i, l, parsed)
	}
}

func TestParseEmpty(t *testing.T) {
	l, err := location.Parse("")
	assert.Nil(t, err, "empty string error")
	assert.True(t, l.IsHere(), "empty string is not here")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		s   string
		err error
	}{
		{"Parachain(1000)/..", fault.ErrInvalidJunction},
		{"Parachain(x)", fault.ErrInvalidJunction},
		{"Parachain(4294967296)", fault.ErrInvalidJunction},
		{"PalletInstance(256)", fault.ErrInvalidJunction},
		{"GeneralIndex(1,2)", fault.ErrInvalidJunction},
		{"GeneralKey(zz)", fault.ErrInvalidJunction},
		{"Unknown(1)", fault.ErrInvalidJunction},
		{"Parachain(1", fault.ErrInvalidJunction},
		{"AccountIndex64(mars,1)", fault.ErrInvalidNetwork},
		{"AccountId32(any,00)", fault.ErrInvalidAccountLength},
		{"GeneralKey(" + strings.Repeat("00", 33) + ")", fault.ErrGeneralKeyTooLong},
		{strings.Repeat("GeneralIndex(1)/", 8) + "GeneralIndex(1)", fault.ErrTooManyJunctions},
	}

	for i, item := range tests {
		_, err := location.Parse(item.s)
		assert.Equal(t, item.err, err, "%d: %q wrong error", i, item.s)
	}
}
