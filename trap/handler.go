// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trap

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assettrap/asset"
	"github.com/bitmark-inc/assettrap/event"
	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/fingerprint"
	"github.com/bitmark-inc/assettrap/location"
	"github.com/bitmark-inc/assettrap/ticket"
	"github.com/bitmark-inc/assettrap/weight"
)

// Config - everything the host supplies to the handler
type Config struct {
	Store    Store
	Hasher   fingerprint.Hasher
	Sink     event.Sink
	Versions *asset.Versions
	Weights  weight.Schedule
	Log      *logger.L
}

// Handler - the drop and claim callbacks for the executor
type Handler struct {
	store    Store
	hasher   fingerprint.Hasher
	sink     event.Sink
	versions *asset.Versions
	weights  weight.Schedule
	log      *logger.L
}

// New - create a handler
//
// store, hasher, sink and versions are required; a zero weight
// schedule is replaced by the default and a nil log by one tagged
// "assettrap"
func New(config Config) (*Handler, error) {
	if nil == config.Store {
		return nil, fault.ErrMissingTrapStore
	}
	if nil == config.Hasher {
		return nil, fault.ErrMissingHasher
	}
	if nil == config.Sink {
		return nil, fault.ErrMissingEventSink
	}
	if nil == config.Versions {
		return nil, fault.ErrMissingVersions
	}

	weights := config.Weights
	if (weight.Schedule{}) == weights {
		weights = weight.DefaultSchedule()
	}

	log := config.Log
	if nil == log {
		log = logger.New("assettrap")
	}

	return &Handler{
		store:    config.Store,
		hasher:   config.Hasher,
		sink:     config.Sink,
		versions: config.Versions,
		weights:  weights,
		log:      log,
	}, nil
}

// DropAssets - trap assets left in holding at the end of execution
//
// returns the cost of the operation, zero when nothing was encoded; a
// saturated trap is charged for the lookup only and emits nothing
func (h *Handler) DropAssets(origin location.Location, assets asset.Bundle) weight.Weight {
	if assets.IsEmpty() {
		return weight.Zero
	}

	versioned, err := h.versions.ConvertCurrent(assets)
	if nil != err {
		h.log.Warnf("drop from: %s  cannot encode at v%d: %s  assets lost: %v", origin, h.versions.Current(), err, assets)
		return weight.Zero
	}

	fp, size, err := h.fingerprint(origin, versioned)
	if nil != err {
		h.log.Warnf("drop from: %s  fingerprint error: %s  assets lost: %v", origin, err, assets)
		return weight.Zero
	}

	if !h.store.Record(fp) {
		h.log.Warnf("drop from: %s  trap: %s  is full  assets lost: %v", origin, fp, assets)
		return h.weights.Read.Add(h.weights.Hash(size))
	}

	h.log.Infof("trapped: %s  from: %s", fp, origin)
	h.sink.Deposit(event.Event{
		Kind:        event.AssetsTrapped,
		Fingerprint: fp,
		Origin:      origin.Clone(),
		Assets:      versioned,
	})

	return h.weights.Drop(size)
}

// ClaimAssets - release one trapped occurrence of a bundle
//
// the ticket selects the version the bundle was trapped at; every false
// return leaves the store unchanged and emits nothing
func (h *Handler) ClaimAssets(origin location.Location, t location.Location, assets asset.Bundle) bool {
	request, err := ticket.Resolve(t)
	if nil != err {
		h.log.Debugf("claim from: %s  ticket: %s  error: %s", origin, t, err)
		return false
	}

	var versioned asset.Versioned
	if request.Current {
		versioned, err = h.versions.ConvertCurrent(assets)
	} else {
		versioned, err = h.versions.Convert(assets, request.Version)
	}
	if nil != err {
		h.log.Debugf("claim from: %s  version: %s  conversion error: %s", origin, request, err)
		return false
	}

	fp, _, err := h.fingerprint(origin, versioned)
	if nil != err {
		h.log.Debugf("claim from: %s  fingerprint error: %s", origin, err)
		return false
	}

	if !h.store.Take(fp) {
		h.log.Debugf("claim from: %s  not trapped: %s", origin, fp)
		return false
	}

	h.log.Infof("claimed: %s  from: %s", fp, origin)
	h.sink.Deposit(event.Event{
		Kind:        event.AssetsClaimed,
		Fingerprint: fp,
		Origin:      origin.Clone(),
		Assets:      versioned,
	})
	return true
}

// ClaimCost - what ClaimAssets would cost for this bundle at the
// current version
func (h *Handler) ClaimCost(origin location.Location, assets asset.Bundle) weight.Weight {
	versioned, err := h.versions.ConvertCurrent(assets)
	if nil != err {
		return h.weights.Read
	}
	input, err := fingerprint.Input(origin, versioned)
	if nil != err {
		return h.weights.Read
	}
	return h.weights.Claim(len(input))
}

// Peek - trapped count for a bundle at the current version
func (h *Handler) Peek(origin location.Location, assets asset.Bundle) (fingerprint.Type, uint32, error) {
	versioned, err := h.versions.ConvertCurrent(assets)
	if nil != err {
		return fingerprint.Type{}, 0, err
	}
	fp, _, err := h.fingerprint(origin, versioned)
	if nil != err {
		return fingerprint.Type{}, 0, err
	}
	return fp, h.store.Peek(fp), nil
}

// compute the fingerprint and the size of the hashed input
func (h *Handler) fingerprint(origin location.Location, versioned asset.Versioned) (fingerprint.Type, int, error) {
	input, err := fingerprint.Input(origin, versioned)
	if nil != err {
		return fingerprint.Type{}, 0, err
	}
	return h.hasher.Sum256(input), len(input), nil
}
