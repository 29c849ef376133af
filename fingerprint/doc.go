// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fingerprint - 256 bit key of a trapped (origin, bundle) pair
//
// The hashed input is:
//
//   packed origin location ++ packed versioned bundle
//
// so the same assets recorded at two different versions give two
// different fingerprints
package fingerprint
