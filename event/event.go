// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/ownership"
)

// Event - a domain event emitted after a successful ledger operation
type Event interface {
	Name() string
}

// ItemsCreated - new market listings were created
type ItemsCreated struct {
	Recipient account.Account    `json:"recipient"`
	ItemIds   []ownership.ItemId `json:"item_ids"`
}

// Name - event type tag
func (e ItemsCreated) Name() string { return "created" }

// ItemsMinted - new items were minted without market fields
type ItemsMinted struct {
	Recipient account.Account    `json:"recipient"`
	ItemIds   []ownership.ItemId `json:"item_ids"`
}

// Name - event type tag
func (e ItemsMinted) Name() string { return "minted" }

// Transferred - items changed owner
type Transferred struct {
	Owner     account.Account    `json:"owner"`
	Recipient account.Account    `json:"recipient"`
	ItemIds   []ownership.ItemId `json:"item_ids"`
}

// Name - event type tag
func (e Transferred) Name() string { return "transferred" }

// Approved - a spender was approved for items
type Approved struct {
	Owner   account.Account    `json:"owner"`
	Spender account.Account    `json:"spender"`
	ItemIds []ownership.ItemId `json:"item_ids"`
}

// Name - event type tag
func (e Approved) Name() string { return "approved" }

// Burned - items were destroyed
type Burned struct {
	Owner   account.Account    `json:"owner"`
	ItemIds []ownership.ItemId `json:"item_ids"`
}

// Name - event type tag
func (e Burned) Name() string { return "burned" }

// ItemSold - a sale was settled
type ItemSold struct {
	Buyer  account.Account  `json:"buyer"`
	ItemId ownership.ItemId `json:"item_id"`
}

// Name - event type tag
func (e ItemSold) Name() string { return "sold" }
