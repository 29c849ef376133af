// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/assettrap/asset"
	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/location"
)

var (
	relay = asset.ConcreteID(location.New(1))
	usdt  = asset.ConcreteID(location.New(0, location.PalletInstance(50), location.GeneralIndex(1984)))
	kitty = asset.AbstractID([]byte("kitty"))
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, asset.Bundle(nil).IsEmpty(), "nil bundle")
	assert.True(t, asset.Bundle{}.IsEmpty(), "empty bundle")
	assert.True(t, asset.Bundle{asset.NewFungible(relay, 0)}.IsEmpty(), "zero amount")
	assert.False(t, asset.Bundle{asset.NewFungible(relay, 1)}.IsEmpty(), "non-zero amount")
	assert.False(t, asset.Bundle{asset.NewNonFungible(kitty, nil)}.IsEmpty(), "non-fungible")

	unknown := asset.Asset{ID: relay, Fun: asset.Fungibility{Kind: asset.Kind(7)}}
	assert.False(t, asset.Bundle{unknown}.IsEmpty(), "unknown kind with zero amount")
	_, err := asset.Bundle{unknown}.Canonical()
	assert.Equal(t, fault.ErrInvalidFungibility, err, "unknown kind accepted")
}

func TestCanonicalOrderIndependent(t *testing.T) {
	b1 := asset.Bundle{
		asset.NewFungible(usdt, 5),
		asset.NewNonFungible(kitty, []byte{2}),
		asset.NewFungible(relay, 10),
		asset.NewNonFungible(kitty, []byte{1}),
	}
	b2 := asset.Bundle{
		asset.NewNonFungible(kitty, []byte{1}),
		asset.NewFungible(relay, 10),
		asset.NewNonFungible(kitty, []byte{2}),
		asset.NewFungible(usdt, 5),
	}

	c1, err := b1.Canonical()
	assert.Nil(t, err, "wrong error")
	c2, err := b2.Canonical()
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, c1, c2, "canonical forms differ")
	assert.Equal(t, 4, len(c1), "wrong length")

	// instances sorted within the same identifier
	var instances [][]byte
	for _, a := range c1 {
		if asset.NonFungible == a.Fun.Kind {
			instances = append(instances, a.Fun.Instance)
		}
	}
	assert.Equal(t, [][]byte{{1}, {2}}, instances, "instances out of order")
}

func TestCanonicalMerges(t *testing.T) {
	b := asset.Bundle{
		asset.NewFungible(relay, 10),
		asset.NewFungible(relay, 0),
		asset.NewFungible(relay, 5),
		asset.NewFungible(usdt, math.MaxUint64),
		asset.NewFungible(usdt, 2),
		asset.NewNonFungible(kitty, []byte{7}),
		asset.NewNonFungible(kitty, []byte{7}),
	}

	c, err := b.Canonical()
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, 3, len(c), "wrong length: %v", c)

	for _, a := range c {
		switch {
		case asset.NonFungible == a.Fun.Kind:
			assert.Equal(t, []byte{7}, a.Fun.Instance, "wrong instance")
		case a.ID.Location.Equal(relay.Location):
			assert.Equal(t, uint64(15), a.Fun.Amount, "wrong merged amount")
		default:
			assert.Equal(t, uint64(math.MaxUint64), a.Fun.Amount, "amount did not saturate")
		}
	}
}

func TestCanonicalErrors(t *testing.T) {
	items := []struct {
		b   asset.Bundle
		err error
	}{
		{asset.Bundle{{ID: relay, Fun: asset.Fungibility{Kind: 7}}}, fault.ErrInvalidFungibility},
		{asset.Bundle{{ID: asset.Identifier{Class: 4}, Fun: asset.Fungibility{Amount: 1}}}, fault.ErrInvalidAssetClass},
		{asset.Bundle{asset.NewFungible(asset.AbstractID(make([]byte, 129)), 1)}, fault.ErrAbstractIdentifierTooLong},
		{asset.Bundle{asset.NewNonFungible(kitty, make([]byte, 129))}, fault.ErrAssetInstanceTooLong},
	}
	for i, item := range items {
		_, err := item.b.Canonical()
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}

	tooMany := make(asset.Bundle, 0, asset.MaximumAssets+1)
	for i := 0; i <= asset.MaximumAssets; i += 1 {
		tooMany = append(tooMany, asset.NewNonFungible(kitty, []byte{byte(i)}))
	}
	_, err := tooMany.Canonical()
	assert.Equal(t, fault.ErrTooManyAssets, err, "wrong error")
}

func TestCloneIsIndependent(t *testing.T) {
	b := asset.Bundle{asset.NewNonFungible(kitty, []byte{1, 2, 3})}
	c := b.Clone()
	b[0].Fun.Instance[0] = 9
	b[0].ID.Name[0] = 'K'
	assert.Equal(t, []byte{1, 2, 3}, c[0].Fun.Instance, "clone shares instance")
	assert.Equal(t, []byte("kitty"), c[0].ID.Name, "clone shares name")
}
