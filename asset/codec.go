// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/util"
)

// Codec - encoder for one version of the bundle format
type Codec interface {
	Version() uint32
	Encode(Bundle) ([]byte, error)
}

type codec struct {
	version         uint32
	fixedAmounts    bool
	nonFungible     bool
	maximumName     int
	maximumInstance int
}

// names and instances in the older formats
const legacyLength = 32

// all known codecs, the host decides which of these are supported
//
// each version accepts everything the one before it does, and the
// latest accepts every canonical bundle
var codecs = map[uint32]Codec{
	1: codec{version: 1, fixedAmounts: true, nonFungible: false, maximumName: legacyLength, maximumInstance: legacyLength},
	2: codec{version: 2, fixedAmounts: false, nonFungible: true, maximumName: legacyLength, maximumInstance: legacyLength},
	3: codec{version: 3, fixedAmounts: false, nonFungible: true, maximumName: MaxAbstractLength, maximumInstance: MaxInstanceLength},
}

// LatestVersion - newest known bundle format
const LatestVersion = 3

// CodecFor - find the codec for a version
func CodecFor(version uint32) (Codec, error) {
	c, ok := codecs[version]
	if !ok {
		return nil, fault.ErrUnknownVersion
	}
	return c, nil
}

func (c codec) Version() uint32 {
	return c.version
}

// Encode - pack a canonical bundle, without the version tag
func (c codec) Encode(bundle Bundle) ([]byte, error) {
	if len(bundle) > MaximumAssets {
		return nil, fault.ErrTooManyAssets
	}

	buffer := util.ToVarint64(uint64(len(bundle)))

	var err error
	for _, a := range bundle {
		buffer, err = a.ID.appendTo(buffer, c.maximumName)
		if nil != err {
			return nil, err
		}

		switch a.Fun.Kind {
		case Fungible:
			buffer = append(buffer, byte(Fungible))
			if c.fixedAmounts {
				var amount [8]byte
				binary.BigEndian.PutUint64(amount[:], a.Fun.Amount)
				buffer = append(buffer, amount[:]...)
			} else {
				buffer = util.AppendVarint64(buffer, a.Fun.Amount)
			}

		case NonFungible:
			if !c.nonFungible {
				return nil, fault.ErrNonFungibleNotSupported
			}
			if len(a.Fun.Instance) > c.maximumInstance {
				return nil, fault.ErrAssetInstanceTooLong
			}
			buffer = append(buffer, byte(NonFungible))
			buffer = util.AppendBytes(buffer, a.Fun.Instance)

		default:
			return nil, fault.ErrInvalidFungibility
		}
	}
	return buffer, nil
}
