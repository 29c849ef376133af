// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trap_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/assettrap/asset"
	"github.com/bitmark-inc/assettrap/event"
	"github.com/bitmark-inc/assettrap/event/mocks"
	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/fingerprint"
	"github.com/bitmark-inc/assettrap/location"
	"github.com/bitmark-inc/assettrap/ticket"
	"github.com/bitmark-inc/assettrap/trap"
	"github.com/bitmark-inc/assettrap/weight"
)

func TestNewMissingDependencies(t *testing.T) {
	store := trap.NewMemory()
	sink := &recorder{}
	versions := asset.DefaultVersions()
	hasher := fingerprint.Blake2b256{}

	tests := []struct {
		config trap.Config
		err    error
	}{
		{trap.Config{Hasher: hasher, Sink: sink, Versions: versions}, fault.ErrMissingTrapStore},
		{trap.Config{Store: store, Sink: sink, Versions: versions}, fault.ErrMissingHasher},
		{trap.Config{Store: store, Hasher: hasher, Versions: versions}, fault.ErrMissingEventSink},
		{trap.Config{Store: store, Hasher: hasher, Sink: sink}, fault.ErrMissingVersions},
	}

	for i, item := range tests {
		h, err := trap.New(item.config)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
		assert.Nil(t, h, "%d: handler returned with error", i)
	}

	h, err := trap.New(trap.Config{Store: store, Hasher: hasher, Sink: sink, Versions: versions})
	assert.Nil(t, err, "minimal config rejected")
	assert.NotNil(t, h, "no handler")
}

func TestDropEmptyIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Deposit(gomock.Any()).Times(0)

	store := trap.NewMemory()
	h := newHandler(t, store, sink)

	for _, origin := range []location.Location{location.Here(), originA, originB} {
		assert.Equal(t, weight.Zero, h.DropAssets(origin, nil), "empty drop cost from %s", origin)
		assert.Equal(t, weight.Zero, h.DropAssets(origin, asset.Bundle{}), "empty drop cost from %s", origin)
		assert.Equal(t, weight.Zero, h.DropAssets(origin, asset.Bundle{asset.NewFungible(assetX, 0)}), "zero amount drop cost from %s", origin)
	}
	assert.Equal(t, 0, store.Len(), "empty drop mutated the store")
}

func TestDropRecordsAndEmits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fp := fingerprintOf(t, originA, bundle, asset.LatestVersion)
	versioned, _ := asset.DefaultVersions().ConvertCurrent(bundle)

	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Deposit(event.Event{
		Kind:        event.AssetsTrapped,
		Fingerprint: fp,
		Origin:      originA,
		Assets:      versioned,
	}).Times(1)

	store := trap.NewMemory()
	h := newHandler(t, store, sink)

	cost := h.DropAssets(originA, bundle)

	input, err := fingerprint.Input(originA, versioned)
	assert.Nil(t, err, "input error")
	assert.Equal(t, weight.DefaultSchedule().Drop(len(input)), cost, "wrong drop cost")
	assert.False(t, cost.IsZero(), "drop cost is zero")
	assert.Equal(t, uint32(1), store.Peek(fp), "wrong count")
}

func TestDropUnencodableIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Deposit(gomock.Any()).Times(0)

	versions, err := asset.NewVersions(1, 1)
	assert.Nil(t, err, "versions error")

	store := trap.NewMemory()
	h, err := trap.New(trap.Config{
		Store:    store,
		Hasher:   fingerprint.Blake2b256{},
		Sink:     sink,
		Versions: versions,
	})
	assert.Nil(t, err, "handler error")

	nft := asset.Bundle{asset.NewNonFungible(assetX, []byte{1})}
	assert.Equal(t, weight.Zero, h.DropAssets(originA, nft), "unencodable drop cost")
	assert.Equal(t, 0, store.Len(), "unencodable drop mutated the store")
}

func TestDropThenClaimCurrent(t *testing.T) {
	sink := &recorder{}
	store := trap.NewMemory()
	h := newHandler(t, store, sink)

	fp := fingerprintOf(t, originA, bundle, asset.LatestVersion)

	h.DropAssets(originA, bundle)
	assert.Equal(t, uint32(1), store.Peek(fp), "count after drop")

	assert.True(t, h.ClaimAssets(originA, ticket.Current(), bundle), "claim failed")
	assert.Equal(t, 0, store.Len(), "entry not removed")

	assert.False(t, h.ClaimAssets(originA, ticket.Current(), bundle), "second claim succeeded")

	if !assert.Equal(t, 2, len(sink.events), "wrong event count") {
		return
	}
	assert.Equal(t, event.AssetsTrapped, sink.events[0].Kind, "first event")
	assert.Equal(t, event.AssetsClaimed, sink.events[1].Kind, "second event")
	assert.Equal(t, fp, sink.events[1].Fingerprint, "claimed fingerprint")
	assert.True(t, originA.Equal(sink.events[1].Origin), "claimed origin")
}

func TestDropTwiceClaimThrice(t *testing.T) {
	sink := &recorder{}
	store := trap.NewMemory()
	h := newHandler(t, store, sink)

	fp := fingerprintOf(t, originA, bundle, asset.LatestVersion)

	h.DropAssets(originA, bundle)
	h.DropAssets(originA, bundle)
	assert.Equal(t, uint32(2), store.Peek(fp), "count after two drops")

	assert.True(t, h.ClaimAssets(originA, location.Here(), bundle), "first claim")
	assert.Equal(t, uint32(1), store.Peek(fp), "count after first claim")

	assert.True(t, h.ClaimAssets(originA, location.Here(), bundle), "second claim")
	assert.Equal(t, 0, store.Len(), "entry not removed")

	assert.False(t, h.ClaimAssets(originA, location.Here(), bundle), "third claim")
	assert.Equal(t, 4, len(sink.events), "wrong event count")
}

func TestClaimExactlyKTimes(t *testing.T) {
	for k := 1; k <= 6; k += 1 {
		sink := &recorder{}
		store := trap.NewMemory()
		h := newHandler(t, store, sink)

		for i := 0; i < k; i += 1 {
			h.DropAssets(originB, bundle)
		}

		successes := 0
		for i := 0; i <= k; i += 1 {
			if h.ClaimAssets(originB, ticket.Current(), bundle) {
				successes += 1
			}
		}
		assert.Equal(t, k, successes, "k=%d: wrong number of successful claims", k)
		assert.Equal(t, 0, store.Len(), "k=%d: store not empty", k)
		assert.Equal(t, 2*k, len(sink.events), "k=%d: wrong event count", k)
	}
}

func TestClaimEquivalentBundle(t *testing.T) {
	store := trap.NewMemory()
	h := newHandler(t, store, &recorder{})

	h.DropAssets(originA, bundle)

	// same value presented in a different shape
	split := asset.Bundle{
		asset.NewFungible(assetX, 2),
		asset.NewFungible(assetX, 3),
	}
	assert.True(t, h.ClaimAssets(originA, ticket.Current(), split), "equivalent bundle rejected")
}

func TestClaimWrongOriginOrBundle(t *testing.T) {
	store := trap.NewMemory()
	h := newHandler(t, store, &recorder{})

	h.DropAssets(originA, bundle)

	other := asset.Bundle{asset.NewFungible(assetX, 6)}
	assert.False(t, h.ClaimAssets(originB, ticket.Current(), bundle), "claimed from wrong origin")
	assert.False(t, h.ClaimAssets(originA, ticket.Current(), other), "claimed wrong amount")
	assert.Equal(t, 1, store.Len(), "failed claims mutated the store")
}

func TestClaimNeverDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Deposit(gomock.Any()).Times(0)

	store := trap.NewMemory()
	h := newHandler(t, store, sink)

	fp := fingerprintOf(t, originA, bundle, asset.LatestVersion)

	assert.False(t, h.ClaimAssets(originA, ticket.Current(), bundle), "claimed never dropped bundle")
	assert.Equal(t, uint32(0), store.Peek(fp), "peek changed")
	assert.Equal(t, 0, store.Len(), "store changed")
}

func TestClaimInvalidTickets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := trap.NewMemory()

	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Deposit(gomock.Any()).Times(3)

	h := newHandler(t, store, sink)

	h.DropAssets(originA, bundle)
	h.DropAssets(originA, bundle)
	h.DropAssets(originA, bundle)

	fp := fingerprintOf(t, originA, bundle, asset.LatestVersion)

	tickets := []location.Location{
		location.New(0, location.GeneralIndex(3), location.GeneralIndex(3)),
		location.New(0, location.GeneralIndex(1), location.GeneralIndex(2), location.GeneralIndex(3)),
		location.New(1),
		location.New(1, location.GeneralIndex(3)),
		location.New(0, location.Parachain(3)),
		location.New(0, location.OnlyChild()),
		location.New(0, location.GeneralIndex(1<<32)),
	}

	for i, tk := range tickets {
		assert.False(t, h.ClaimAssets(originA, tk, bundle), "%d: ticket %s accepted", i, tk)
	}
	assert.Equal(t, uint32(3), store.Peek(fp), "invalid tickets changed the store")
}

func TestDropLongIdentifiersClaimable(t *testing.T) {
	store := trap.NewMemory()
	sink := &recorder{}
	h := newHandler(t, store, sink)

	bundles := []asset.Bundle{
		{asset.NewFungible(asset.AbstractID(bytes.Repeat([]byte{0x07}, 33)), 5)},
		{asset.NewFungible(asset.AbstractID(make([]byte, asset.MaxAbstractLength)), 1)},
		{asset.NewNonFungible(assetX, make([]byte, asset.MaxInstanceLength))},
	}

	for i, b := range bundles {
		assert.False(t, b.IsEmpty(), "%d: bundle is empty", i)
		cost := h.DropAssets(originA, b)
		assert.False(t, cost.IsZero(), "%d: drop cost is zero", i)
		assert.Equal(t, 1, store.Len(), "%d: nothing recorded", i)

		assert.True(t, h.ClaimAssets(originA, ticket.Current(), b), "%d: claim failed", i)
		assert.Equal(t, 0, store.Len(), "%d: entry not removed", i)
	}
	assert.Equal(t, 2*len(bundles), len(sink.events), "wrong event count")
}

func TestDropSaturatedEmitsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Deposit(gomock.Any()).Times(0)

	store := trap.NewMemory()
	h := newHandler(t, store, sink)

	fp := fingerprintOf(t, originA, bundle, asset.LatestVersion)
	store.SetCount(fp, math.MaxUint32)

	versioned, _ := asset.DefaultVersions().ConvertCurrent(bundle)
	input, _ := fingerprint.Input(originA, versioned)
	schedule := weight.DefaultSchedule()

	cost := h.DropAssets(originA, bundle)
	assert.Equal(t, schedule.Read.Add(schedule.Hash(len(input))), cost, "wrong saturated drop cost")
	assert.NotEqual(t, schedule.Drop(len(input)), cost, "saturated drop charged a write")
	assert.Equal(t, uint32(math.MaxUint32), store.Peek(fp), "saturated count changed")
}

func TestClaimExplicitVersion(t *testing.T) {
	store := trap.NewMemory()
	sink := &recorder{}
	h := newHandler(t, store, sink)

	h.DropAssets(originA, bundle)

	// trapped at v3, so only a v3 ticket reconstructs the fingerprint
	assert.False(t, h.ClaimAssets(originA, ticket.ForVersion(1), bundle), "v1 claim succeeded")
	assert.False(t, h.ClaimAssets(originA, ticket.ForVersion(2), bundle), "v2 claim succeeded")
	assert.False(t, h.ClaimAssets(originA, ticket.ForVersion(9), bundle), "unknown version claim succeeded")
	assert.Equal(t, 1, store.Len(), "failed claims mutated the store")
	assert.Equal(t, 1, len(sink.events), "failed claims emitted events")

	assert.True(t, h.ClaimAssets(originA, ticket.ForVersion(3), bundle), "v3 claim failed")
	assert.Equal(t, 0, store.Len(), "entry not removed")
	assert.Equal(t, uint32(3), sink.events[1].Assets.Version, "claimed at wrong version")
}

func TestClaimOlderVersionTrap(t *testing.T) {
	store := trap.NewMemory()

	// a trap recorded while v2 was current
	v2, err := asset.NewVersions(2, 1, 2, 3)
	assert.Nil(t, err, "versions error")
	old, err := trap.New(trap.Config{
		Store:    store,
		Hasher:   fingerprint.Blake2b256{},
		Sink:     &recorder{},
		Versions: v2,
	})
	assert.Nil(t, err, "handler error")
	old.DropAssets(originA, bundle)

	h := newHandler(t, store, &recorder{})
	assert.False(t, h.ClaimAssets(originA, ticket.Current(), bundle), "current claim matched a v2 trap")
	assert.True(t, h.ClaimAssets(originA, ticket.ForVersion(2), bundle), "v2 claim failed")
	assert.Equal(t, 0, store.Len(), "entry not removed")
}

func TestClaimUnencodable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Deposit(gomock.Any()).Times(0)

	h := newHandler(t, trap.NewMemory(), sink)

	nft := asset.Bundle{asset.NewNonFungible(assetX, []byte{0xca, 0xfe})}
	assert.False(t, h.ClaimAssets(originA, ticket.ForVersion(1), nft), "v1 non-fungible claim succeeded")
}

func TestPeek(t *testing.T) {
	h := newHandler(t, trap.NewMemory(), &recorder{})

	fp, count, err := h.Peek(originA, bundle)
	assert.Nil(t, err, "peek error")
	assert.Equal(t, uint32(0), count, "count before drop")
	assert.Equal(t, fingerprintOf(t, originA, bundle, asset.LatestVersion), fp, "wrong fingerprint")

	h.DropAssets(originA, bundle)
	h.DropAssets(originA, bundle)

	_, count, err = h.Peek(originA, bundle)
	assert.Nil(t, err, "peek error")
	assert.Equal(t, uint32(2), count, "count after drops")

	long := asset.Bundle{asset.NewFungible(asset.AbstractID(make([]byte, asset.MaxAbstractLength+1)), 1)}
	_, _, err = h.Peek(originA, long)
	assert.Equal(t, fault.ErrAbstractIdentifierTooLong, err, "over-long abstract id accepted")
}

func TestClaimCost(t *testing.T) {
	h := newHandler(t, trap.NewMemory(), &recorder{})

	versioned, err := asset.DefaultVersions().ConvertCurrent(bundle)
	assert.Nil(t, err, "convert error")
	input, err := fingerprint.Input(originA, versioned)
	assert.Nil(t, err, "input error")

	schedule := weight.DefaultSchedule()
	assert.Equal(t, schedule.Claim(len(input)), h.ClaimCost(originA, bundle), "wrong claim cost")

	long := asset.Bundle{asset.NewFungible(asset.AbstractID(make([]byte, asset.MaxAbstractLength+1)), 1)}
	assert.Equal(t, schedule.Read, h.ClaimCost(originA, long), "unencodable claim cost")
}

func TestCustomSchedule(t *testing.T) {
	schedule := weight.Schedule{
		Read:        weight.Weight{RefTime: 1, ProofSize: 2},
		Write:       weight.Weight{RefTime: 10, ProofSize: 20},
		HashBase:    100,
		HashPerByte: 1,
	}
	h, err := trap.New(trap.Config{
		Store:    trap.NewMemory(),
		Hasher:   fingerprint.Blake2b256{},
		Sink:     &recorder{},
		Versions: asset.DefaultVersions(),
		Weights:  schedule,
	})
	assert.Nil(t, err, "handler error")

	versioned, _ := asset.DefaultVersions().ConvertCurrent(bundle)
	input, _ := fingerprint.Input(originA, versioned)

	expected := weight.Weight{
		RefTime:   1 + 10 + 100 + uint64(len(input)),
		ProofSize: 2 + 20,
	}
	assert.Equal(t, expected, h.DropAssets(originA, bundle), "wrong drop cost")
}

// maps every input to one digest
type constantHasher struct{}

func (constantHasher) Sum256([]byte) fingerprint.Type {
	return fingerprint.Type{0xff}
}

func TestInjectedHasher(t *testing.T) {
	store := trap.NewMemory()
	h, err := trap.New(trap.Config{
		Store:    store,
		Hasher:   constantHasher{},
		Sink:     &recorder{},
		Versions: asset.DefaultVersions(),
	})
	assert.Nil(t, err, "handler error")

	h.DropAssets(originA, bundle)
	assert.Equal(t, uint32(1), store.Peek(fingerprint.Type{0xff}), "hasher not used")

	other := asset.Bundle{asset.NewFungible(assetX, 99)}
	assert.True(t, h.ClaimAssets(originB, ticket.Current(), other), "colliding claim failed")
}
