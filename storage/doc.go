// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - persistent trap store
//
// maintains a LevelDB database holding the fingerprint to counter map
//
// writes made between Begin and Commit are staged in a batch and an
// in-memory overlay so that reads inside the same state transition see
// them; Abort throws the stage away and the database is left as it was
// before Begin
//
// outside a transaction every mutation is written through immediately
//
// Notes:
// 1. the pool has a single byte prefix
// 2. ++          = concatenation of byte data
// 3. fingerprint = 32 byte digest of origin ++ versioned assets
// 4. count       = big endian uint32 (4 bytes), never zero
//
// Layout:
//
//   0x00 ++ "VERSION"          - database format version
//                                data: big endian uint32
//
//   T ++ fingerprint           - trapped asset bundle
//                                data: count
package storage
