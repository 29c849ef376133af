// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"math"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/fingerprint"
)

const (
	trapPrefix  = 'T'
	countLength = 4
)

// Begin - start staging writes for one state transition
func (s *Store) Begin() error {
	s.Lock()
	defer s.Unlock()

	if s.readOnly {
		return leveldb.ErrReadOnly
	}
	return s.access.begin()
}

// Commit - apply all staged writes atomically
func (s *Store) Commit() error {
	s.Lock()
	defer s.Unlock()

	n := s.access.pending()
	err := s.access.commit()
	if nil == err {
		s.log.Debugf("committed %d operations", n)
	}
	return err
}

// Abort - discard all staged writes
func (s *Store) Abort() error {
	s.Lock()
	defer s.Unlock()

	n := s.access.pending()
	err := s.access.abort()
	if nil == err {
		s.log.Debugf("aborted %d operations", n)
	}
	return err
}

// Record - add one occurrence of a fingerprint
//
// false if the count is saturated, in which case nothing is written
func (s *Store) Record(fp fingerprint.Type) bool {
	s.Lock()
	defer s.Unlock()

	key := trapKey(fp)
	count, err := s.getCount(key)
	logger.PanicIfError("storage: record read", err)

	if math.MaxUint32 == count {
		s.log.Criticalf("record: %s  count saturated at: %d", fp, count)
		return false
	}

	err = s.access.put(key, packCount(count+1))
	logger.PanicIfError("storage: record write", err)
	return true
}

// Take - remove one occurrence of a fingerprint
//
// false if the fingerprint was not present, in which case nothing is
// written
func (s *Store) Take(fp fingerprint.Type) bool {
	s.Lock()
	defer s.Unlock()

	key := trapKey(fp)
	count, err := s.getCount(key)
	logger.PanicIfError("storage: take read", err)

	switch count {
	case 0:
		return false
	case 1:
		err = s.access.delete(key)
	default:
		err = s.access.put(key, packCount(count-1))
	}
	logger.PanicIfError("storage: take write", err)
	return true
}

// Peek - current count, zero if absent
func (s *Store) Peek(fp fingerprint.Type) uint32 {
	s.Lock()
	defer s.Unlock()

	count, err := s.getCount(trapKey(fp))
	logger.PanicIfError("storage: peek", err)
	return count
}

func (s *Store) getCount(key []byte) (uint32, error) {
	value, err := s.access.get(key)
	if nil != err {
		return 0, err
	}
	if nil == value {
		return 0, nil
	}
	return unpackCount(value)
}

func trapKey(fp fingerprint.Type) []byte {
	key := make([]byte, 1+fingerprint.Length)
	key[0] = trapPrefix
	copy(key[1:], fp[:])
	return key
}

func packCount(count uint32) []byte {
	value := make([]byte, countLength)
	binary.BigEndian.PutUint32(value, count)
	return value
}

func unpackCount(value []byte) (uint32, error) {
	if countLength != len(value) {
		return 0, fault.ErrTruncatedRecord
	}
	count := binary.BigEndian.Uint32(value)
	if 0 == count {
		return 0, fault.ErrZeroCountRecord
	}
	return count, nil
}
