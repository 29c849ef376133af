// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/fingerprint"
)

// Element - one committed trap record
type Element struct {
	Fingerprint fingerprint.Type `json:"fingerprint"`
	Count       uint32           `json:"count"`
}

// FetchCursor - cursor structure
type FetchCursor struct {
	store    *Store
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the first trap record
func (s *Store) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		store: s,
		maxRange: util.Range{
			Start: []byte{trapPrefix},     // Start of key range, included in the range
			Limit: []byte{trapPrefix + 1}, // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to a specific fingerprint
func (cursor *FetchCursor) Seek(fp fingerprint.Type) *FetchCursor {
	cursor.maxRange.Start = trapKey(fp)
	return cursor
}

// Fetch - return up to count records starting at the cursor
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrNotInitialised
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.iterate(func(e Element) bool {
		results = append(results, e)
		return len(results) < count
	})

	if n := len(results); n > 0 {
		// next key strictly after the last one returned
		cursor.maxRange.Start = append(trapKey(results[n-1].Fingerprint), 0x00)
	}
	return results, err
}

// Map - run a function on all records from the cursor onwards
func (cursor *FetchCursor) Map(f func(Element) error) error {
	if nil == cursor {
		return fault.ErrNotInitialised
	}

	var err error
	iterErr := cursor.iterate(func(e Element) bool {
		err = f(e)
		return nil == err
	})
	if nil != err {
		return err
	}
	return iterErr
}

func (cursor *FetchCursor) iterate(f func(Element) bool) error {
	s := cursor.store
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return fault.ErrNotInitialised
	}

	iter := s.access.iterator(&cursor.maxRange)
	defer iter.Release()

	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		var fp fingerprint.Type
		err := fingerprint.FromBytes(&fp, key[1:])
		if nil != err {
			return err
		}
		count, err := unpackCount(iter.Value())
		if nil != err {
			return err
		}
		if !f(Element{Fingerprint: fp, Count: count}) {
			break
		}
	}
	return iter.Error()
}

// Count - number of committed trap records
func (s *Store) Count() (int, error) {
	n := 0
	err := s.NewFetchCursor().Map(func(Element) error {
		n += 1
		return nil
	})
	return n, err
}
