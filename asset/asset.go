// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/location"
	"github.com/bitmark-inc/assettrap/util"
)

// limits common to all versions
const (
	MaximumAssets     = 20
	MaxAbstractLength = 128
	MaxInstanceLength = 128
)

// Class - how an asset is identified
type Class uint8

// identifier classes, values are also the packed tags
const (
	Concrete Class = 0
	Abstract Class = 1
)

// Identifier - a concrete location or an abstract name
type Identifier struct {
	Class    Class
	Location location.Location
	Name     []byte
}

// Kind - fungible or non-fungible
type Kind uint8

// fungibility kinds, values are also the packed tags
const (
	Fungible    Kind = 0
	NonFungible Kind = 1
)

// Fungibility - an amount or a unique instance
type Fungibility struct {
	Kind     Kind
	Amount   uint64
	Instance []byte
}

// Asset - an identifier and its quantity
type Asset struct {
	ID  Identifier
	Fun Fungibility
}

// Bundle - unordered collection of assets
type Bundle []Asset

// ConcreteID - identify an asset by its location
func ConcreteID(l location.Location) Identifier {
	return Identifier{Class: Concrete, Location: l.Clone()}
}

// AbstractID - identify an asset by name
func AbstractID(name []byte) Identifier {
	return Identifier{Class: Abstract, Name: append([]byte{}, name...)}
}

// NewFungible - an amount of an asset
func NewFungible(id Identifier, amount uint64) Asset {
	return Asset{ID: id, Fun: Fungibility{Kind: Fungible, Amount: amount}}
}

// NewNonFungible - a single unique instance of an asset
func NewNonFungible(id Identifier, instance []byte) Asset {
	return Asset{
		ID: id,
		Fun: Fungibility{
			Kind:     NonFungible,
			Instance: append([]byte{}, instance...),
		},
	}
}

func (id Identifier) String() string {
	switch id.Class {
	case Concrete:
		return id.Location.String()
	case Abstract:
		return fmt.Sprintf("abstract:%x", id.Name)
	default:
		return fmt.Sprintf("class(%d)", uint8(id.Class))
	}
}

func (a Asset) String() string {
	if NonFungible == a.Fun.Kind {
		return fmt.Sprintf("%s#%x", a.ID, a.Fun.Instance)
	}
	return fmt.Sprintf("%s:%d", a.ID, a.Fun.Amount)
}

// IsEmpty - true if the bundle holds nothing of value
//
// only zero fungible amounts are empty, an unknown kind is something
// that canonicalisation will reject
func (b Bundle) IsEmpty() bool {
	for _, a := range b {
		if Fungible != a.Fun.Kind || 0 != a.Fun.Amount {
			return false
		}
	}
	return true
}

// Clone - deep copy of the bundle
func (b Bundle) Clone() Bundle {
	if nil == b {
		return nil
	}
	result := make(Bundle, len(b))
	for i, a := range b {
		result[i] = a.clone()
	}
	return result
}

// Canonical - return the bundle in canonical order
//
// fungible amounts of the same identifier are added (saturating),
// zero amounts dropped and duplicate non-fungible instances removed
func (b Bundle) Canonical() (Bundle, error) {
	type entry struct {
		key   []byte
		asset Asset
	}

	entries := make([]entry, 0, len(b))
	for _, a := range b {
		switch a.Fun.Kind {
		case Fungible:
			if 0 == a.Fun.Amount {
				continue
			}
		case NonFungible:
			if len(a.Fun.Instance) > MaxInstanceLength {
				return nil, fault.ErrAssetInstanceTooLong
			}
		default:
			return nil, fault.ErrInvalidFungibility
		}
		key, err := a.ID.appendTo(nil, MaxAbstractLength)
		if nil != err {
			return nil, err
		}
		entries = append(entries, entry{key: key, asset: a.clone()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if c := bytes.Compare(entries[i].key, entries[j].key); 0 != c {
			return c < 0
		}
		if entries[i].asset.Fun.Kind != entries[j].asset.Fun.Kind {
			return entries[i].asset.Fun.Kind < entries[j].asset.Fun.Kind
		}
		return bytes.Compare(entries[i].asset.Fun.Instance, entries[j].asset.Fun.Instance) < 0
	})

	result := make(Bundle, 0, len(entries))
	for i, e := range entries {
		if i > 0 && bytes.Equal(entries[i-1].key, e.key) {
			last := &result[len(result)-1]
			if Fungible == e.asset.Fun.Kind && Fungible == last.Fun.Kind {
				last.Fun.Amount = saturatingAdd(last.Fun.Amount, e.asset.Fun.Amount)
				continue
			}
			if NonFungible == e.asset.Fun.Kind && NonFungible == last.Fun.Kind &&
				bytes.Equal(last.Fun.Instance, e.asset.Fun.Instance) {
				continue
			}
		}
		result = append(result, e.asset)
	}

	if len(result) > MaximumAssets {
		return nil, fault.ErrTooManyAssets
	}
	return result, nil
}

func (a Asset) clone() Asset {
	a.ID.Location = a.ID.Location.Clone()
	if nil != a.ID.Name {
		a.ID.Name = append([]byte{}, a.ID.Name...)
	}
	if nil != a.Fun.Instance {
		a.Fun.Instance = append([]byte{}, a.Fun.Instance...)
	}
	return a
}

// append the packed identifier, abstract names limited to maximum bytes
func (id Identifier) appendTo(buffer []byte, maximum int) ([]byte, error) {
	switch id.Class {
	case Concrete:
		buffer = append(buffer, byte(Concrete))
		return id.Location.AppendTo(buffer)
	case Abstract:
		if len(id.Name) > maximum {
			return nil, fault.ErrAbstractIdentifierTooLong
		}
		buffer = append(buffer, byte(Abstract))
		return util.AppendBytes(buffer, id.Name), nil
	default:
		return nil, fault.ErrInvalidAssetClass
	}
}

func saturatingAdd(a uint64, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
