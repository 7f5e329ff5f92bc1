// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/storage"
)

// to ensure synchronised ownership updates
var toLock sync.Mutex

// read helpers
//
// a nil trx reads the committed state directly from the pool;
// a non-nil trx also sees writes staged in the current transaction

func get(trx storage.Transaction, pool storage.Handle, key []byte) []byte {
	if nil == trx {
		return pool.Get(key)
	}
	value, err := trx.Get(pool, key)
	logger.PanicIfError("ownership.get", err)
	return value
}

func getN(trx storage.Transaction, pool storage.Handle, key []byte) (uint64, bool) {
	if nil == trx {
		return pool.GetN(key)
	}
	n, found, err := trx.GetN(pool, key)
	logger.PanicIfError("ownership.getN", err)
	return n, found
}

func put(trx storage.Transaction, pool storage.Handle, key []byte, value []byte) {
	err := trx.Put(pool, key, value)
	logger.PanicIfError("ownership.put", err)
}

func putN(trx storage.Transaction, pool storage.Handle, key []byte, value uint64) {
	err := trx.PutN(pool, key, value)
	logger.PanicIfError("ownership.putN", err)
}

func del(trx storage.Transaction, pool storage.Handle, key []byte) {
	err := trx.Delete(pool, key)
	logger.PanicIfError("ownership.delete", err)
}

// Insert - append an item to the owner's dense list
//
// the new item always takes the next free index position
func Insert(trx storage.Transaction, owner account.Account, item ItemId) {

	// ensure single threaded
	toLock.Lock()
	defer toLock.Unlock()

	nKey := owner.Bytes()
	n, _ := getN(trx, storage.Pool.Balances, nKey)

	nBytes := ItemId(n).Bytes()

	// owner ⧺ index → itemId
	oKey := append(owner.Bytes(), nBytes...)
	put(trx, storage.Pool.OwnerList, oKey, item.Bytes())

	// owner ⧺ itemId → index
	dKey := append(owner.Bytes(), item.Bytes()...)
	put(trx, storage.Pool.OwnerIndex, dKey, nBytes)

	putN(trx, storage.Pool.Balances, nKey, n+1)
}

// Remove - delete an item from the owner's dense list
//
// the last entry is moved into the vacated slot so index positions
// stay contiguous; panics if the reverse index entry is missing since
// that means the caller did not verify ownership first
func Remove(trx storage.Transaction, owner account.Account, item ItemId) {

	// ensure single threaded
	toLock.Lock()
	defer toLock.Unlock()

	nKey := owner.Bytes()
	n, _ := getN(trx, storage.Pool.Balances, nKey)

	dKey := append(owner.Bytes(), item.Bytes()...)
	idxBytes := get(trx, storage.Pool.OwnerIndex, dKey)
	if nil == idxBytes {
		logger.Criticalf("ownership.Remove: dKey: %x", dKey)
		logger.Criticalf("ownership.Remove: owner: %s  item: %s", owner, item)
		logger.Panic("ownership.Remove: OwnerIndex database corrupt")
	}
	idx := uint64(ItemIdFromBytes(idxBytes))

	switch {
	case idx >= n:
		// stray reverse entry beyond the list; only the entry itself
		// needs removal, the list and balance are already consistent

	case idx == n-1:
		// removing the last slot
		lastKey := append(owner.Bytes(), ItemId(n-1).Bytes()...)
		del(trx, storage.Pool.OwnerList, lastKey)
		putN(trx, storage.Pool.Balances, nKey, n-1)

	default:
		// move the last entry into the vacated slot
		lastKey := append(owner.Bytes(), ItemId(n-1).Bytes()...)
		lastItem := get(trx, storage.Pool.OwnerList, lastKey)
		if nil == lastItem {
			logger.Criticalf("ownership.Remove: lastKey: %x", lastKey)
			logger.Panic("ownership.Remove: OwnerList database corrupt")
		}

		lastDKey := append(owner.Bytes(), lastItem...)
		put(trx, storage.Pool.OwnerIndex, lastDKey, idxBytes)

		idxKey := append(owner.Bytes(), ItemId(idx).Bytes()...)
		put(trx, storage.Pool.OwnerList, idxKey, lastItem)

		del(trx, storage.Pool.OwnerList, lastKey)
		putN(trx, storage.Pool.Balances, nKey, n-1)
	}

	del(trx, storage.Pool.OwnerIndex, dKey)
}

// OwnerOf - find the current owner of an item
//
// second return is false if the item is not live
func OwnerOf(trx storage.Transaction, item ItemId) (account.Account, bool) {
	packed := get(trx, storage.Pool.Owners, item.Bytes())
	if nil == packed {
		return account.Account{}, false
	}
	owner, err := account.AccountFromBytes(packed)
	logger.PanicIfError("ownership.OwnerOf", err)
	return owner, true
}

// SetOwner - unconditional overwrite of the owner record
//
// callers must have already checked invariants
func SetOwner(trx storage.Transaction, item ItemId, owner account.Account) {
	put(trx, storage.Pool.Owners, item.Bytes(), owner.Bytes())
}

// RemoveOwner - delete the owner record
//
// the item must already be cleared from the dense list
func RemoveOwner(trx storage.Transaction, item ItemId) {
	del(trx, storage.Pool.Owners, item.Bytes())
}

// BalanceOf - number of items currently owned, zero if none
func BalanceOf(trx storage.Transaction, owner account.Account) uint64 {
	n, _ := getN(trx, storage.Pool.Balances, owner.Bytes())
	return n
}

// ItemAtIndex - item id at a dense index position
func ItemAtIndex(trx storage.Transaction, owner account.Account, index uint64) (ItemId, bool) {
	oKey := append(owner.Bytes(), ItemId(index).Bytes()...)
	packed := get(trx, storage.Pool.OwnerList, oKey)
	if nil == packed {
		return 0, false
	}
	return ItemIdFromBytes(packed), true
}

// IndexOf - dense index position of an owned item
func IndexOf(trx storage.Transaction, owner account.Account, item ItemId) (uint64, bool) {
	dKey := append(owner.Bytes(), item.Bytes()...)
	packed := get(trx, storage.Pool.OwnerIndex, dKey)
	if nil == packed {
		return 0, false
	}
	return uint64(ItemIdFromBytes(packed)), true
}

// CurrentlyOwns - check owner currently owns this item
func CurrentlyOwns(trx storage.Transaction, owner account.Account, item ItemId) bool {
	dKey := append(owner.Bytes(), item.Bytes()...)

	if nil == trx {
		return storage.Pool.OwnerIndex.Has(dKey)
	}
	has, err := trx.Has(storage.Pool.OwnerIndex, dKey)
	logger.PanicIfError("ownership.CurrentlyOwns", err)
	return has
}
