// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/ownership"
	"github.com/bitmark-inc/marketd/storage"
)

// read helpers
//
// a nil trx reads the committed state directly from the pool;
// a non-nil trx also sees writes staged in the current transaction

func get(trx storage.Transaction, pool storage.Handle, key []byte) []byte {
	if nil == trx {
		return pool.Get(key)
	}
	value, err := trx.Get(pool, key)
	logger.PanicIfError("market.get", err)
	return value
}

func getN(trx storage.Transaction, pool storage.Handle, key []byte) (uint64, bool) {
	if nil == trx {
		return pool.GetN(key)
	}
	n, found, err := trx.GetN(pool, key)
	logger.PanicIfError("market.getN", err)
	return n, found
}

func put(trx storage.Transaction, pool storage.Handle, key []byte, value []byte) {
	err := trx.Put(pool, key, value)
	logger.PanicIfError("market.put", err)
}

func putN(trx storage.Transaction, pool storage.Handle, key []byte, value uint64) {
	err := trx.PutN(pool, key, value)
	logger.PanicIfError("market.putN", err)
}

func del(trx storage.Transaction, pool storage.Handle, key []byte) {
	err := trx.Delete(pool, key)
	logger.PanicIfError("market.delete", err)
}

// AssetLinkOf - the backing asset of an item
//
// second return is false if no link is recorded
func AssetLinkOf(trx storage.Transaction, item ownership.ItemId) (asset.Link, bool) {
	packed := get(trx, storage.Pool.AssetLinks, item.Bytes())
	if nil == packed {
		return asset.Link{}, false
	}
	link, err := asset.PackedLink(packed).Unpack()
	logger.PanicIfError("market.AssetLinkOf", err)
	return link, true
}

func setAssetLink(trx storage.Transaction, item ownership.ItemId, link asset.Link) {
	put(trx, storage.Pool.AssetLinks, item.Bytes(), link.Pack())
}

func removeAssetLink(trx storage.Transaction, item ownership.ItemId) {
	del(trx, storage.Pool.AssetLinks, item.Bytes())
}

// AskingPriceOf - the recorded asking price of an item
//
// second return is false if no price is recorded
func AskingPriceOf(trx storage.Transaction, item ownership.ItemId) (uint64, bool) {
	return getN(trx, storage.Pool.AskingPrices, item.Bytes())
}

func setAskingPrice(trx storage.Transaction, item ownership.ItemId, price uint64) {
	putN(trx, storage.Pool.AskingPrices, item.Bytes(), price)
}

func removeAskingPrice(trx storage.Transaction, item ownership.ItemId) {
	del(trx, storage.Pool.AskingPrices, item.Bytes())
}

// StatusOf - the listing status of an item
//
// second return is false if no status is recorded
func StatusOf(trx storage.Transaction, item ownership.ItemId) (Status, bool) {
	packed := get(trx, storage.Pool.Statuses, item.Bytes())
	if nil == packed {
		return Status(0), false
	}
	if 1 != len(packed) {
		logger.Panicf("market.StatusOf: truncated status record for: %s", item)
	}
	return Status(packed[0]), true
}

// SetStatus - overwrite the listing status of a live item
//
// fails if no owner is recorded for the item
func SetStatus(trx storage.Transaction, item ownership.ItemId, status Status) error {
	if _, found := ownership.OwnerOf(trx, item); !found {
		return fault.ItemNotFound
	}
	setStatus(trx, item, status)
	return nil
}

func setStatus(trx storage.Transaction, item ownership.ItemId, status Status) {
	put(trx, storage.Pool.Statuses, item.Bytes(), []byte{byte(status)})
}

func removeStatus(trx storage.Transaction, item ownership.ItemId) {
	del(trx, storage.Pool.Statuses, item.Bytes())
}
