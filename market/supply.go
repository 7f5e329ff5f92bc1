// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/storage"
)

var supplyKey = []byte("total")

// TotalSupply - count of live items
//
// increases on creation and mint, decreases on burn; a sale changes
// owner and status, not existence
func TotalSupply(trx storage.Transaction) uint64 {
	n, _ := getN(trx, storage.Pool.Supply, supplyKey)
	return n
}

func addSupply(trx storage.Transaction, n uint64) {
	putN(trx, storage.Pool.Supply, supplyKey, TotalSupply(trx)+n)
}

func subSupply(trx storage.Transaction, n uint64) {
	current := TotalSupply(trx)
	if n > current {
		logger.Panicf("market.subSupply: supply underflow: %d - %d", current, n)
	}
	putN(trx, storage.Pool.Supply, supplyKey, current-n)
}
