// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/assettrap/fault"
)

// access - one database with its staged batch
type access struct {
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newAccess(db *leveldb.DB, cache Cache) *access {
	return &access{
		db:    db,
		batch: new(leveldb.Batch),
		cache: cache,
	}
}

func (a *access) begin() error {
	if a.inUse {
		return fault.ErrTransactionAlreadyStarted
	}
	a.inUse = true
	return nil
}

func (a *access) commit() error {
	if !a.inUse {
		return fault.ErrTransactionNotStarted
	}
	err := a.db.Write(a.batch, nil)
	a.reset()
	return err
}

func (a *access) abort() error {
	if !a.inUse {
		return fault.ErrTransactionNotStarted
	}
	a.reset()
	return nil
}

func (a *access) reset() {
	a.batch.Reset()
	a.cache.Clear()
	a.inUse = false
}

// size of the pending batch
func (a *access) pending() int {
	return a.batch.Len()
}

func (a *access) put(key []byte, value []byte) error {
	if !a.inUse {
		return a.db.Put(key, value, nil)
	}
	a.cache.Set(dbPut, string(key), value)
	a.batch.Put(key, value)
	return nil
}

func (a *access) delete(key []byte) error {
	if !a.inUse {
		return a.db.Delete(key, nil)
	}
	a.cache.Set(dbDelete, string(key), nil)
	a.batch.Delete(key)
	return nil
}

// get - returns nil value for a missing key
func (a *access) get(key []byte) ([]byte, error) {
	if a.inUse {
		value, present, known := a.cache.Get(string(key))
		if known {
			if !present {
				return nil, nil
			}
			return value, nil
		}
	}

	value, err := a.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// iterator - committed data only
func (a *access) iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return a.db.NewIterator(searchRange, nil)
}
