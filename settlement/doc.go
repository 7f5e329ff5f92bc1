// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package settlement - atomic exchange of payment for asset ownership
//
// the engine validates the listing, collects exact payment from a
// purse and moves the backing asset on its native ledger; the asset
// transfer runs before funds are released so a failed transfer never
// pays out
package settlement
