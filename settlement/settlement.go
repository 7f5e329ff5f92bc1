// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/event"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/ownership"
	"github.com/bitmark-inc/marketd/storage"
)

// PaymentHandleLength - byte size of a purse reference
const PaymentHandleLength = 32

// PaymentHandle - opaque reference to a purse holding the payment
type PaymentHandle [PaymentHandleLength]byte

// String - base58 representation
func (p PaymentHandle) String() string {
	return base58.Encode(p[:])
}

// FundsService - external collaborator holding purse balances
type FundsService interface {
	Balance(purse PaymentHandle) (uint64, bool)
	Transfer(purse PaymentHandle, destination account.Account, amount uint64) error
}

// AssetService - external ledger holding the backing assets
type AssetService interface {
	Transfer(contract asset.ContractRef, token asset.TokenId, from account.Account, to account.Account) error
}

// Engine - executes sales against the market state
type Engine struct {
	log    *logger.L
	funds  FundsService
	assets AssetService
	sink   event.Sink
}

// NewEngine - create the engine with its external collaborators
func NewEngine(funds FundsService, assets AssetService, sink event.Sink) *Engine {
	return &Engine{
		log:    logger.New("settlement"),
		funds:  funds,
		assets: assets,
		sink:   sink,
	}
}

// ProcessSale - settle the sale of one listed item
//
// the purse must hold exactly the asking price; on any failure the
// market state is left untouched
func (e *Engine) ProcessSale(buyer account.Account, item ownership.ItemId, purse PaymentHandle) error {

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	status, found := market.StatusOf(trx, item)
	if !found || market.Available != status {
		trx.Abort()
		return fault.ItemNotAvailable
	}

	// a live available item always carries a price; a missing one
	// means an earlier invariant was broken
	price, found := market.AskingPriceOf(trx, item)
	if !found {
		trx.Abort()
		e.log.Criticalf("process sale: item: %s has status but no asking price", item)
		return fault.MissingAskingPrice
	}

	seller, found := ownership.OwnerOf(trx, item)
	if !found {
		trx.Abort()
		e.log.Criticalf("process sale: item: %s has status but no owner", item)
		return fault.ItemNotFound
	}

	link, found := market.AssetLinkOf(trx, item)
	if !found {
		trx.Abort()
		e.log.Criticalf("process sale: item: %s has status but no asset link", item)
		return fault.MissingAssetLink
	}

	balance, ok := e.funds.Balance(purse)
	if !ok {
		trx.Abort()
		return fault.BalanceNotFound
	}
	if balance != price {
		trx.Abort()
		return fault.BalanceMismatch
	}

	// move the asset first so a failed transfer never pays out
	if err := e.assets.Transfer(link.Contract, link.TokenId, seller, buyer); nil != err {
		trx.Abort()
		return err
	}

	if err := e.funds.Transfer(purse, seller, price); nil != err {
		trx.Abort()
		return err
	}

	if err := market.SetStatus(trx, item, market.Sold); nil != err {
		trx.Abort()
		return err
	}

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	e.log.Infof("sold: item: %s  buyer: %s  seller: %s  price: %d", item, buyer, seller, price)
	e.sink.Record(event.ItemSold{
		Buyer:  buyer,
		ItemId: item,
	})
	return nil
}
