// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - the marketplace ledger
//
// the ledger is the only writer of the ownership, allowance, record
// and supply tables; every public operation validates its whole input
// batch against the current state before staging any mutation, then
// commits all staged writes in one database transaction
//
// from storage/setup.go:
//
//	Allowances    owner ⧺ itemId - approved spender account
//	AssetLinks    itemId         - packed contract reference and token id
//	AskingPrices  itemId         - price as big endian uint64
//	Statuses      itemId         - one byte listing status
//	Supply        "total"        - count of live items
package market
