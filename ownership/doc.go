// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ownership - indexed record of which account owns which item
//
// from storage/setup.go:
//
//	Owners      itemId           - owner account of a live item
//	Balances    owner            - number of items currently owned
//	OwnerList   owner ⧺ index    - item id at a dense index position
//	OwnerIndex  owner ⧺ itemId   - reverse lookup of the index position
//
// the list and index tables form a bijection between [0, balance) and
// the owner's live items; removal keeps the index space dense by
// moving the last entry into the vacated slot
package ownership
