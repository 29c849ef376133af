// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trap

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assettrap/fingerprint"
)

// Store - counted set of trapped fingerprints
//
// an entry never holds a zero count; it is removed instead
type Store interface {
	// Record - insert with count 1 or increment, false if the count
	// is already at its limit and nothing changed
	Record(fingerprint.Type) bool

	// Take - decrement or remove, false if not present
	Take(fingerprint.Type) bool

	// Peek - current count, zero if absent
	Peek(fingerprint.Type) uint32
}

// Memory - a Store held in a map
type Memory struct {
	log   *logger.L
	traps map[fingerprint.Type]uint32
}

// NewMemory - create an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		log:   logger.New("memory"),
		traps: make(map[fingerprint.Type]uint32),
	}
}

// Record - add one occurrence, saturating at the counter limit
func (m *Memory) Record(fp fingerprint.Type) bool {
	n := m.traps[fp]
	if math.MaxUint32 == n {
		m.log.Criticalf("record: %s  count saturated at: %d", fp, n)
		return false
	}
	m.traps[fp] = n + 1
	return true
}

// Take - remove one occurrence
func (m *Memory) Take(fp fingerprint.Type) bool {
	n, ok := m.traps[fp]
	switch {
	case !ok:
		return false
	case 1 == n:
		delete(m.traps, fp)
	default:
		m.traps[fp] = n - 1
	}
	return true
}

// Peek - read the count without changing it
func (m *Memory) Peek(fp fingerprint.Type) uint32 {
	return m.traps[fp]
}

// Len - number of distinct trapped fingerprints
func (m *Memory) Len() int {
	return len(m.traps)
}
