// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Owners       *PoolHandle `prefix:"O"`
	Balances     *PoolHandle `prefix:"N"`
	OwnerList    *PoolHandle `prefix:"L"`
	OwnerIndex   *PoolHandle `prefix:"D"`
	Allowances   *PoolHandle `prefix:"W"`
	AssetLinks   *PoolHandle `prefix:"A"`
	AskingPrices *PoolHandle `prefix:"P"`
	Statuses     *PoolHandle `prefix:"S"`
	Supply       *PoolHandle `prefix:"C"`
	TestData     *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentMarketDBVersion = 0x100
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	dbMarket *leveldb.DB
	trx      Transaction
	cache    Cache
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	ok := false

	if nil != poolData.dbMarket {
		return fault.AlreadyInitialised
	}

	defer func() {
		if !ok {
			dbClose()
		}
	}()

	marketDatabase := database + "-market.leveldb"

	db, marketVersion, err := getDB(marketDatabase, readOnly)
	if nil != err {
		return err
	}
	poolData.dbMarket = db

	// ensure no database downgrade
	if marketVersion > currentMarketDBVersion {
		logger.Criticalf("market database version: %d > current version: %d", marketVersion, currentMarketDBVersion)
		return fmt.Errorf("market database version: %d > current version: %d", marketVersion, currentMarketDBVersion)
	}

	// prevent readOnly from modifying the database
	if readOnly && marketVersion != currentMarketDBVersion {
		logger.Criticalf("database is inconsistent: market: %d  current: %d", marketVersion, currentMarketDBVersion)
		return fmt.Errorf("database is inconsistent: market: %d  current: %d", marketVersion, currentMarketDBVersion)
	}

	if 0 == marketVersion {
		// database was empty so tag as current version
		err = putVersion(poolData.dbMarket, currentMarketDBVersion)
		if nil != err {
			return err
		}
	}

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	poolData.cache = newCache()
	marketDBAccess := newDataAccess(poolData.dbMarket, poolData.cache)
	access := []DataAccess{marketDBAccess}
	poolData.trx = newTransaction(access)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: marketDBAccess,
		}

		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	ok = true // prevent db close
	return nil
}

func dbClose() {
	if nil != poolData.dbMarket {
		poolData.dbMarket.Close()
		poolData.dbMarket = nil
	}
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// NewDBTransaction - acquire the global transaction
//
// returns fault.TransactionAlreadyInUse if another transaction
// is still in progress
func NewDBTransaction() (Transaction, error) {
	err := poolData.trx.Begin()
	if nil != err {
		return nil, err
	}
	return poolData.trx, nil
}
