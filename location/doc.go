// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package location - relative consensus locations
//
// A location is a number of parent steps followed by a path of interior
// junctions.  Message origins and claim tickets are both locations.
//
// Packed form:
//
//   parents(1 byte) ++ count(Varint64) ++ [ kind(1 byte) ++ fields ]
//
// where fields depend on the junction kind:
//
//   Parachain       id(Varint64)
//   AccountId32     network(1 byte) ++ 32 bytes
//   AccountIndex64  network(1 byte) ++ index(Varint64)
//   AccountKey20    network(1 byte) ++ 20 bytes
//   PalletInstance  1 byte
//   GeneralIndex    index(Varint64)
//   GeneralKey      length(Varint64) ++ bytes
//   OnlyChild       (empty)
package location
