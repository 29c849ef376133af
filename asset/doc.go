// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - asset bundles and their versioned encodings
//
// A bundle is an unordered collection of assets as left in the holding
// register by the executor.  Before hashing it is put in canonical order
// (sorted, fungible amounts of the same identifier merged, duplicate
// non-fungible instances removed) and then encoded by one of the version
// codecs:
//
//   version(Varint64) ++ count(Varint64) ++ [ identifier ++ fungibility ]
//
//   identifier:  0x00 ++ packed location
//                0x01 ++ length(Varint64) ++ name
//   fungibility: 0x00 ++ amount
//                0x01 ++ length(Varint64) ++ instance
//
// Codec differences:
//   v1  amount is fixed 8 byte big endian, no non-fungible assets,
//       abstract names at most 32 bytes
//   v2  amount is Varint64, names and instances at most 32 bytes
//   v3  as v2, names and instances up to 128 bytes (any canonical bundle)
package asset
