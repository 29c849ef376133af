// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ticket - resolve a claim ticket to a bundle version
//
// only two ticket shapes are accepted:
//
//   Here                  use the current version
//   GeneralIndex(n)       use version n
//
// both with zero parents; anything else is rejected
package ticket

import (
	"math"
	"strconv"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/location"
)

// Request - the result of resolving a ticket
type Request struct {
	Current bool
	Version uint32
}

// Current - ticket that selects the current version
func Current() location.Location {
	return location.Here()
}

// ForVersion - ticket that selects an explicit version
func ForVersion(version uint32) location.Location {
	return location.New(0, location.GeneralIndex(uint64(version)))
}

// Resolve - interpret a ticket
func Resolve(ticket location.Location) (Request, error) {
	if 0 != ticket.Parents {
		return Request{}, fault.ErrInvalidTicket
	}

	switch len(ticket.Interior) {
	case 0:
		return Request{Current: true}, nil

	case 1:
		j := ticket.Interior[0]
		if location.KindGeneralIndex != j.Kind || j.Index > math.MaxUint32 {
			return Request{}, fault.ErrInvalidTicket
		}
		return Request{Version: uint32(j.Index)}, nil

	default:
		return Request{}, fault.ErrInvalidTicket
	}
}

func (r Request) String() string {
	if r.Current {
		return "current"
	}
	return "v" + strconv.FormatUint(uint64(r.Version), 10)
}
