// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package weight - cost reporting for trap operations
//
// A weight has two dimensions: reference time (picoseconds of execution
// on reference hardware) and proof size (bytes of state a light client
// would need to verify the access).  A drop or claim costs one counter
// read, one counter write and hashing the fingerprint input.
package weight

import (
	"fmt"
	"math"
)

// Weight - resource usage
type Weight struct {
	RefTime   uint64 `json:"ref_time"`
	ProofSize uint64 `json:"proof_size"`
}

// Zero - no cost
var Zero = Weight{}

// default schedule values
const (
	// a leveldb/rocksdb read and write of one small record
	DefaultReadRefTime  = 25_000_000
	DefaultWriteRefTime = 100_000_000

	// key (32 byte fingerprint + prefix) plus counter plus trie overhead
	DefaultReadProofSize = 1 + 32 + 4 + 64

	// blake2b-256 on reference hardware
	DefaultHashBase    = 500_000
	DefaultHashPerByte = 1_500
)

// Schedule - the host's metering constants
type Schedule struct {
	Read        Weight
	Write       Weight
	HashBase    uint64
	HashPerByte uint64
}

// DefaultSchedule - values suitable when the host supplies none
func DefaultSchedule() Schedule {
	return Schedule{
		Read:        Weight{RefTime: DefaultReadRefTime, ProofSize: DefaultReadProofSize},
		Write:       Weight{RefTime: DefaultWriteRefTime},
		HashBase:    DefaultHashBase,
		HashPerByte: DefaultHashPerByte,
	}
}

// Add - saturating sum of two weights
func (w Weight) Add(other Weight) Weight {
	return Weight{
		RefTime:   saturatingAdd(w.RefTime, other.RefTime),
		ProofSize: saturatingAdd(w.ProofSize, other.ProofSize),
	}
}

// IsZero - true if no resources were used
func (w Weight) IsZero() bool {
	return 0 == w.RefTime && 0 == w.ProofSize
}

func (w Weight) String() string {
	return fmt.Sprintf("{ref_time: %d, proof_size: %d}", w.RefTime, w.ProofSize)
}

// Hash - cost of hashing n bytes
func (s Schedule) Hash(n int) Weight {
	if n < 0 {
		n = 0
	}
	return Weight{RefTime: saturatingAdd(s.HashBase, saturatingMul(s.HashPerByte, uint64(n)))}
}

// Mutation - one read followed by one write of a trap counter
func (s Schedule) Mutation() Weight {
	return s.Read.Add(s.Write)
}

// Drop - cost of recording a trap whose fingerprint input is n bytes
func (s Schedule) Drop(n int) Weight {
	return s.Mutation().Add(s.Hash(n))
}

// Claim - cost of a claim whose fingerprint input is n bytes
//
// a claim that finds nothing still pays for the read
func (s Schedule) Claim(n int) Weight {
	return s.Mutation().Add(s.Hash(n))
}

func saturatingAdd(a uint64, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func saturatingMul(a uint64, b uint64) uint64 {
	if 0 == a || 0 == b {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}
