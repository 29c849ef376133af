// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package location

import (
	"strings"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/util"
)

// MaximumJunctions - longest interior path
const MaximumJunctions = 8

// Location - parent steps followed by an interior path
type Location struct {
	Parents  uint8
	Interior []Junction
}

// Here - the empty location, i.e. the current context
func Here() Location {
	return Location{}
}

// New - create a location
func New(parents uint8, junctions ...Junction) Location {
	l := Location{Parents: parents}
	if len(junctions) > 0 {
		l.Interior = make([]Junction, len(junctions))
		for i, j := range junctions {
			l.Interior[i] = j.clone()
		}
	}
	return l
}

// IsHere - true for the empty location
func (l Location) IsHere() bool {
	return 0 == l.Parents && 0 == len(l.Interior)
}

// Equal - compare two locations
func (l Location) Equal(other Location) bool {
	if l.Parents != other.Parents || len(l.Interior) != len(other.Interior) {
		return false
	}
	for i, j := range l.Interior {
		if !j.Equal(other.Interior[i]) {
			return false
		}
	}
	return true
}

// Clone - deep copy so the result shares no slices with the original
func (l Location) Clone() Location {
	return New(l.Parents, l.Interior...)
}

// Pack - canonical byte encoding
func (l Location) Pack() ([]byte, error) {
	return l.AppendTo(make([]byte, 0, 2+len(l.Interior)*AccountId32Length))
}

// AppendTo - append the canonical encoding to the buffer
func (l Location) AppendTo(buffer []byte) ([]byte, error) {
	if len(l.Interior) > MaximumJunctions {
		return nil, fault.ErrTooManyJunctions
	}

	buffer = append(buffer, l.Parents)
	buffer = util.AppendVarint64(buffer, uint64(len(l.Interior)))

	var err error
	for _, j := range l.Interior {
		buffer, err = j.appendTo(buffer)
		if nil != err {
			return nil, err
		}
	}
	return buffer, nil
}

// Unpack - decode a location from the start of a buffer
//
// returns the location and the number of bytes consumed
func Unpack(buffer []byte) (Location, int, error) {
	if 0 == len(buffer) {
		return Location{}, 0, fault.ErrTruncatedRecord
	}
	l := Location{Parents: buffer[0]}
	n := 1

	count, c := util.ClippedVarint64(buffer[n:], 0, MaximumJunctions)
	if 0 == c {
		return Location{}, 0, fault.ErrTooManyJunctions
	}
	n += c

	if count > 0 {
		l.Interior = make([]Junction, 0, count)
	}
	for i := 0; i < count; i += 1 {
		j, used, err := unpackJunction(buffer[n:])
		if nil != err {
			return Location{}, 0, err
		}
		l.Interior = append(l.Interior, j)
		n += used
	}
	return l, n, nil
}

// String - path form e.g. ../Parachain(1000)/GeneralIndex(5)
func (l Location) String() string {
	if l.IsHere() {
		return "Here"
	}
	parts := make([]string, 0, int(l.Parents)+len(l.Interior))
	for i := 0; i < int(l.Parents); i += 1 {
		parts = append(parts, "..")
	}
	for _, j := range l.Interior {
		parts = append(parts, j.String())
	}
	return strings.Join(parts, "/")
}
