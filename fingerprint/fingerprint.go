// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fingerprint

import (
	"encoding/hex"
	"fmt"

	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/assettrap/asset"
	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/location"
)

// Length - number of bytes in a fingerprint
const Length = 32

// Type - a fingerprint, stored and printed in natural byte order
type Type [Length]byte

// Hasher - the host supplied hash function
type Hasher interface {
	Sum256([]byte) Type
}

// Blake2b256 - default hasher
type Blake2b256 struct{}

// Sum256 - blake2b with a 256 bit output
func (Blake2b256) Sum256(data []byte) Type {
	return Type(blake2b.Sum256(data))
}

// Input - the exact bytes that are hashed for a fingerprint
func Input(origin location.Location, versioned asset.Versioned) ([]byte, error) {
	buffer, err := origin.Pack()
	if nil != err {
		return nil, err
	}
	packed, err := versioned.Pack()
	if nil != err {
		return nil, err
	}
	return append(buffer, packed...), nil
}

// Of - fingerprint an origin and versioned bundle
func Of(hasher Hasher, origin location.Location, versioned asset.Versioned) (Type, error) {
	input, err := Input(origin, versioned)
	if nil != err {
		return Type{}, err
	}
	return hasher.Sum256(input), nil
}

// FromBytes - convert and validate a byte slice to a fingerprint
func FromBytes(fingerprint *Type, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrInvalidFingerprint
	}
	copy(fingerprint[:], buffer)
	return nil
}

// String - hex string for use by the fmt package (for %s)
func (fingerprint Type) String() string {
	return hex.EncodeToString(fingerprint[:])
}

// GoString - for use by the fmt package (for %#v)
func (fingerprint Type) GoString() string {
	return "<fingerprint:" + hex.EncodeToString(fingerprint[:]) + ">"
}

// Multihash - self describing blake2b-256 form for diagnostics
//
// this only labels the bytes, it is only meaningful for the
// default hasher
func (fingerprint Type) Multihash() (multihash.Multihash, error) {
	return multihash.Encode(fingerprint[:], multihash.BLAKE2B_MIN+Length-1)
}

// MarshalText - convert fingerprint to hex text
func (fingerprint Type) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(fingerprint))
	buffer := make([]byte, size)
	hex.Encode(buffer, fingerprint[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a fingerprint
func (fingerprint *Type) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	return FromBytes(fingerprint, buffer[:byteCount])
}

// Scan - convert a hex representation to a fingerprint for use by the
// format package scan routines
func (fingerprint *Type) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return fingerprint.UnmarshalText(token)
}
