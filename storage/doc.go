// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++       = concatenation of byte data
// 3. itemId   = marketplace item identifier as big endian uint64 (8 bytes)
// 4. owner    = marketplace account (32 byte identifier)
// 5. count    = successive index value as big endian uint64 (8 bytes)
// 6. *others* = byte values of various length
//
// Ownership:
//
//   O ++ itemId           - current owner of an item
//                           data: owner
//   N ++ owner            - number of items currently owned
//                           data: count
//   L ++ owner ++ count   - list of owned items, dense index range [0, N)
//                           data: itemId
//   D ++ owner ++ itemId  - position in list of owned items, for swap-with-last delete
//                           data: count
//
// Allowances:
//
//   W ++ owner ++ itemId  - approved spender for one item (absent means no approval)
//                           data: spender
//
// Market items:
//
//   A ++ itemId           - backing token on the external NFT ledger
//                           data: contract reference ++ token id
//   P ++ itemId           - asking price
//                           data: price (big endian uint64, 8 bytes)
//   S ++ itemId           - listing status
//                           data: status (1 byte)
//
// Supply:
//
//   C ++ "total"          - count of live items
//                           data: count
//
// Testing:
//
//   Z ++ key              - testing data
package storage
