// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package location

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/util"
)

// JunctionKind - the type of a single interior path element
type JunctionKind uint8

// the junction kinds, values are also the packed tags
const (
	KindParachain      JunctionKind = 0
	KindAccountId32    JunctionKind = 1
	KindAccountIndex64 JunctionKind = 2
	KindAccountKey20   JunctionKind = 3
	KindPalletInstance JunctionKind = 4
	KindGeneralIndex   JunctionKind = 5
	KindGeneralKey     JunctionKind = 6
	KindOnlyChild      JunctionKind = 7
)

// Network - network qualifier for account junctions
type Network uint8

// known networks
const (
	NetworkAny      Network = 0
	NetworkPolkadot Network = 1
	NetworkKusama   Network = 2
)

// fixed sizes
const (
	AccountId32Length   = 32
	AccountKey20Length  = 20
	MaxGeneralKeyLength = 32
)

// Junction - one element of an interior path
//
// Index holds the numeric value for Parachain, AccountIndex64,
// PalletInstance and GeneralIndex; Key holds the bytes for AccountId32,
// AccountKey20 and GeneralKey
type Junction struct {
	Kind    JunctionKind
	Network Network
	Index   uint64
	Key     []byte
}

// Parachain - junction for a sibling or child chain
func Parachain(id uint32) Junction {
	return Junction{Kind: KindParachain, Index: uint64(id)}
}

// AccountId32 - junction for a 32 byte account
func AccountId32(network Network, id [AccountId32Length]byte) Junction {
	return Junction{Kind: KindAccountId32, Network: network, Key: append([]byte{}, id[:]...)}
}

// AccountIndex64 - junction for an indexed account
func AccountIndex64(network Network, index uint64) Junction {
	return Junction{Kind: KindAccountIndex64, Network: network, Index: index}
}

// AccountKey20 - junction for a 20 byte account key
func AccountKey20(network Network, key [AccountKey20Length]byte) Junction {
	return Junction{Kind: KindAccountKey20, Network: network, Key: append([]byte{}, key[:]...)}
}

// PalletInstance - junction for a runtime module
func PalletInstance(instance uint8) Junction {
	return Junction{Kind: KindPalletInstance, Index: uint64(instance)}
}

// GeneralIndex - junction for a plain numeric index
func GeneralIndex(index uint64) Junction {
	return Junction{Kind: KindGeneralIndex, Index: index}
}

// GeneralKey - junction for a plain byte key
func GeneralKey(key []byte) Junction {
	return Junction{Kind: KindGeneralKey, Key: append([]byte{}, key...)}
}

// OnlyChild - junction for the only child of a context
func OnlyChild() Junction {
	return Junction{Kind: KindOnlyChild}
}

func (network Network) String() string {
	switch network {
	case NetworkAny:
		return "any"
	case NetworkPolkadot:
		return "polkadot"
	case NetworkKusama:
		return "kusama"
	default:
		return fmt.Sprintf("network(%d)", uint8(network))
	}
}

func (j Junction) String() string {
	switch j.Kind {
	case KindParachain:
		return fmt.Sprintf("Parachain(%d)", j.Index)
	case KindAccountId32:
		return fmt.Sprintf("AccountId32(%s,%s)", j.Network, hex.EncodeToString(j.Key))
	case KindAccountIndex64:
		return fmt.Sprintf("AccountIndex64(%s,%d)", j.Network, j.Index)
	case KindAccountKey20:
		return fmt.Sprintf("AccountKey20(%s,%s)", j.Network, hex.EncodeToString(j.Key))
	case KindPalletInstance:
		return fmt.Sprintf("PalletInstance(%d)", j.Index)
	case KindGeneralIndex:
		return fmt.Sprintf("GeneralIndex(%d)", j.Index)
	case KindGeneralKey:
		return fmt.Sprintf("GeneralKey(%s)", hex.EncodeToString(j.Key))
	case KindOnlyChild:
		return "OnlyChild"
	default:
		return fmt.Sprintf("Junction(%d)", uint8(j.Kind))
	}
}

// Equal - true if both junctions pack to the same bytes
func (j Junction) Equal(other Junction) bool {
	if j.Kind != other.Kind || j.Network != other.Network || j.Index != other.Index {
		return false
	}
	return string(j.Key) == string(other.Key)
}

func (j Junction) clone() Junction {
	if nil != j.Key {
		j.Key = append([]byte{}, j.Key...)
	}
	return j
}

// append the packed junction to the buffer
func (j Junction) appendTo(buffer []byte) ([]byte, error) {
	buffer = append(buffer, byte(j.Kind))

	switch j.Kind {
	case KindParachain:
		if j.Index > math.MaxUint32 {
			return nil, fault.ErrInvalidJunction
		}
		return util.AppendVarint64(buffer, j.Index), nil

	case KindAccountId32:
		if len(j.Key) != AccountId32Length {
			return nil, fault.ErrInvalidAccountLength
		}
		if !j.Network.valid() {
			return nil, fault.ErrInvalidNetwork
		}
		buffer = append(buffer, byte(j.Network))
		return append(buffer, j.Key...), nil

	case KindAccountIndex64:
		if !j.Network.valid() {
			return nil, fault.ErrInvalidNetwork
		}
		buffer = append(buffer, byte(j.Network))
		return util.AppendVarint64(buffer, j.Index), nil

	case KindAccountKey20:
		if len(j.Key) != AccountKey20Length {
			return nil, fault.ErrInvalidAccountLength
		}
		if !j.Network.valid() {
			return nil, fault.ErrInvalidNetwork
		}
		buffer = append(buffer, byte(j.Network))
		return append(buffer, j.Key...), nil

	case KindPalletInstance:
		if j.Index > math.MaxUint8 {
			return nil, fault.ErrInvalidJunction
		}
		return append(buffer, byte(j.Index)), nil

	case KindGeneralIndex:
		return util.AppendVarint64(buffer, j.Index), nil

	case KindGeneralKey:
		if len(j.Key) > MaxGeneralKeyLength {
			return nil, fault.ErrGeneralKeyTooLong
		}
		return util.AppendBytes(buffer, j.Key), nil

	case KindOnlyChild:
		return buffer, nil

	default:
		return nil, fault.ErrInvalidJunction
	}
}

// extract one junction from the start of the buffer
func unpackJunction(buffer []byte) (Junction, int, error) {
	if 0 == len(buffer) {
		return Junction{}, 0, fault.ErrTruncatedRecord
	}
	j := Junction{Kind: JunctionKind(buffer[0])}
	n := 1

	switch j.Kind {
	case KindParachain, KindGeneralIndex:
		value, count := util.FromVarint64(buffer[n:])
		if 0 == count {
			return Junction{}, 0, fault.ErrTruncatedRecord
		}
		if KindParachain == j.Kind && value > math.MaxUint32 {
			return Junction{}, 0, fault.ErrInvalidJunction
		}
		j.Index = value
		n += count

	case KindAccountId32, KindAccountKey20:
		size := AccountId32Length
		if KindAccountKey20 == j.Kind {
			size = AccountKey20Length
		}
		if len(buffer) < n+1+size {
			return Junction{}, 0, fault.ErrTruncatedRecord
		}
		j.Network = Network(buffer[n])
		if !j.Network.valid() {
			return Junction{}, 0, fault.ErrInvalidNetwork
		}
		n += 1
		j.Key = append([]byte{}, buffer[n:n+size]...)
		n += size

	case KindAccountIndex64:
		if len(buffer) < n+1 {
			return Junction{}, 0, fault.ErrTruncatedRecord
		}
		j.Network = Network(buffer[n])
		if !j.Network.valid() {
			return Junction{}, 0, fault.ErrInvalidNetwork
		}
		n += 1
		value, count := util.FromVarint64(buffer[n:])
		if 0 == count {
			return Junction{}, 0, fault.ErrTruncatedRecord
		}
		j.Index = value
		n += count

	case KindPalletInstance:
		if len(buffer) < n+1 {
			return Junction{}, 0, fault.ErrTruncatedRecord
		}
		j.Index = uint64(buffer[n])
		n += 1

	case KindGeneralKey:
		key, count := util.FromBytes(buffer[n:], MaxGeneralKeyLength)
		if 0 == count {
			return Junction{}, 0, fault.ErrTruncatedRecord
		}
		j.Key = append([]byte{}, key...)
		n += count

	case KindOnlyChild:

	default:
		return Junction{}, 0, fault.ErrInvalidJunction
	}
	return j, n, nil
}

func (network Network) valid() bool {
	return network <= NetworkKusama
}
