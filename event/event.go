// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - outbound notifications of trap changes
package event

import (
	"fmt"

	"github.com/bitmark-inc/assettrap/asset"
	"github.com/bitmark-inc/assettrap/fingerprint"
	"github.com/bitmark-inc/assettrap/location"
)

//go:generate mockgen -source=event.go -destination=mocks/sink.go -package=mocks

// Kind - what happened to the trap
type Kind int

// event kinds
const (
	AssetsTrapped Kind = iota
	AssetsClaimed
)

// Event - a single trap notification
type Event struct {
	Kind        Kind
	Fingerprint fingerprint.Type
	Origin      location.Location
	Assets      asset.Versioned
}

// Sink - receives every event the trap handler emits
type Sink interface {
	Deposit(Event)
}

func (k Kind) String() string {
	switch k {
	case AssetsTrapped:
		return "AssetsTrapped"
	case AssetsClaimed:
		return "AssetsClaimed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%s, %s, v%d:%v)", e.Kind, e.Fingerprint, e.Origin, e.Assets.Version, e.Assets.Assets)
}
