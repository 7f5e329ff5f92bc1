// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache - records staged by the open transaction, keyed by the raw
// database key, so reads inside the transaction see their own writes
type Cache interface {
	Get(string) ([]byte, bool)
	Set(int, string, []byte)
	Clear()
}

// staged operation kinds
const (
	dbPut = iota
	dbDelete
)

// entries only need to live for the duration of one transaction; the
// expiry is a backstop against an abandoned transaction that was
// never committed or aborted
const stagedRecordExpiry = 2 * time.Minute

type stagedRecord struct {
	op    int
	value []byte
}

type dbCache struct {
	store *gocache.Cache
}

func newCache() Cache {
	return &dbCache{
		store: gocache.New(stagedRecordExpiry/2, stagedRecordExpiry),
	}
}

// Get - staged value for a key
//
// a staged delete reads as not found so that the lookup does not fall
// back to a record the transaction has already removed
func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.store.Get(key)
	if !found {
		return nil, false
	}

	record := obj.(stagedRecord)
	if dbDelete == record.op {
		return nil, false
	}

	return record.value, true
}

func (c *dbCache) Set(op int, key string, value []byte) {
	c.store.Set(key, stagedRecord{op: op, value: value}, stagedRecordExpiry)
}

func (c *dbCache) Clear() {
	c.store.Flush()
}
