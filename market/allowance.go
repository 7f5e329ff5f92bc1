// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/ownership"
	"github.com/bitmark-inc/marketd/storage"
)

// allowances are strictly per item: one approved spender per
// (owner, item) pair, consumed by the transfer that uses it

func allowanceKey(owner account.Account, item ownership.ItemId) []byte {
	return append(owner.Bytes(), item.Bytes()...)
}

// AllowanceOf - the approved spender for an owned item
//
// second return is false if no approval is recorded
func AllowanceOf(trx storage.Transaction, owner account.Account, item ownership.ItemId) (account.Account, bool) {
	packed := get(trx, storage.Pool.Allowances, allowanceKey(owner, item))
	if nil == packed {
		return account.Account{}, false
	}
	spender, err := account.AccountFromBytes(packed)
	logger.PanicIfError("market.AllowanceOf", err)
	return spender, true
}

// overwrites any prior approval, only one is allowed at a time
func setAllowance(trx storage.Transaction, owner account.Account, item ownership.ItemId, spender account.Account) {
	put(trx, storage.Pool.Allowances, allowanceKey(owner, item), spender.Bytes())
}

func removeAllowance(trx storage.Transaction, owner account.Account, item ownership.ItemId) {
	del(trx, storage.Pool.Allowances, allowanceKey(owner, item))
}

// isApproved - true iff candidate is the recorded spender
func isApproved(trx storage.Transaction, owner account.Account, item ownership.ItemId, candidate account.Account) bool {
	spender, found := AllowanceOf(trx, owner, item)
	return found && candidate == spender
}
