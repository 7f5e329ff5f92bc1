// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement_test

import (
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/event"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/fixtures"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/ownership"
	"github.com/bitmark-inc/marketd/settlement"
	"github.com/bitmark-inc/marketd/settlement/mocks"
	"github.com/bitmark-inc/marketd/storage"
)

const (
	databaseFileName = "test"
	askingPrice      = 2000000
	itemId           = ownership.ItemId(1)
)

var (
	testContract = asset.ContractRef{0x11}
	testToken    = asset.TokenId(1)
	testPurse    = settlement.PaymentHandle{0x50}
)

var currentCaller account.Account

func caller() account.Account {
	return currentCaller
}

func removeFiles() {
	os.RemoveAll(databaseFileName + "-market.leveldb")
}

func setup(t *testing.T) (*market.Ledger, *event.Collector) {
	fixtures.SetupTestLogger()
	removeFiles()
	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	collector := &event.Collector{}
	return market.NewLedger(caller, collector), collector
}

func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
	fixtures.TeardownTestLogger()
}

// list one item owned by the seller at the standard price
func listItem(t *testing.T, l *market.Ledger) {
	err := l.ListItems(
		fixtures.Seller,
		[]ownership.ItemId{itemId},
		[]asset.ContractRef{testContract},
		[]uint64{askingPrice},
		[]asset.TokenId{testToken},
	)
	if nil != err {
		t.Fatalf("list items error: %s", err)
	}
}

func newEngine(t *testing.T, sink event.Sink) (*settlement.Engine, *mocks.MockFundsService, *mocks.MockAssetService) {
	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	funds := mocks.NewMockFundsService(ctl)
	assets := mocks.NewMockAssetService(ctl)
	return settlement.NewEngine(funds, assets, sink), funds, assets
}

// the market state must be exactly as before a failed sale
func checkUnchanged(t *testing.T, l *market.Ledger) {
	status, found := l.Status(itemId)
	if !found || market.Available != status {
		t.Errorf("status: actual: %s  expected: %s", status, market.Available)
	}
	owner, _ := l.OwnerOf(itemId)
	if fixtures.Seller != owner {
		t.Errorf("owner: actual: %s  expected: %s", owner, fixtures.Seller)
	}
}

func TestProcessSale(t *testing.T) {
	l, collector := setup(t)
	defer teardown(t)
	listItem(t, l)

	engine, funds, assets := newEngine(t, collector)

	funds.EXPECT().Balance(testPurse).Return(uint64(askingPrice), true).Times(1)
	assets.EXPECT().Transfer(testContract, testToken, fixtures.Seller, fixtures.Buyer).Return(nil).Times(1)
	funds.EXPECT().Transfer(testPurse, fixtures.Seller, uint64(askingPrice)).Return(nil).Times(1)

	err := engine.ProcessSale(fixtures.Buyer, itemId, testPurse)
	if nil != err {
		t.Fatalf("process sale error: %s", err)
	}

	status, found := l.Status(itemId)
	if !found || market.Sold != status {
		t.Errorf("status: actual: %s  expected: %s", status, market.Sold)
	}

	// a sale flips status, it does not move the listing
	owner, _ := l.OwnerOf(itemId)
	if fixtures.Seller != owner {
		t.Errorf("owner: actual: %s  expected: %s", owner, fixtures.Seller)
	}

	if names := collector.Names(); "sold" != names[len(names)-1] {
		t.Errorf("events: actual: %v", names)
	}
	sold := collector.Events[len(collector.Events)-1].(event.ItemSold)
	if fixtures.Buyer != sold.Buyer || itemId != sold.ItemId {
		t.Errorf("sold event: actual: %+v", sold)
	}
}

func TestProcessSaleBalanceMismatch(t *testing.T) {
	l, collector := setup(t)
	defer teardown(t)
	listItem(t, l)

	engine, funds, assets := newEngine(t, collector)

	funds.EXPECT().Balance(testPurse).Return(uint64(999), true).Times(1)
	assets.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	funds.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := engine.ProcessSale(fixtures.Buyer, itemId, testPurse)
	if fault.BalanceMismatch != err {
		t.Fatalf("error: actual: %v  expected: %v", err, fault.BalanceMismatch)
	}
	checkUnchanged(t, l)
}

func TestProcessSaleBalanceNotFound(t *testing.T) {
	l, collector := setup(t)
	defer teardown(t)
	listItem(t, l)

	engine, funds, assets := newEngine(t, collector)

	funds.EXPECT().Balance(testPurse).Return(uint64(0), false).Times(1)
	assets.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	funds.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := engine.ProcessSale(fixtures.Buyer, itemId, testPurse)
	if fault.BalanceNotFound != err {
		t.Fatalf("error: actual: %v  expected: %v", err, fault.BalanceNotFound)
	}
	checkUnchanged(t, l)
}

func TestProcessSaleNotAvailable(t *testing.T) {
	l, collector := setup(t)
	defer teardown(t)

	// a minted item has no status at all
	err := l.Mint(
		fixtures.Seller,
		[]ownership.ItemId{itemId},
		[]asset.ContractRef{testContract},
	)
	if nil != err {
		t.Fatalf("mint error: %s", err)
	}

	engine, funds, assets := newEngine(t, collector)
	funds.EXPECT().Balance(gomock.Any()).Times(0)
	assets.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err = engine.ProcessSale(fixtures.Buyer, itemId, testPurse)
	if fault.ItemNotAvailable != err {
		t.Fatalf("error: actual: %v  expected: %v", err, fault.ItemNotAvailable)
	}
}

func TestProcessSaleTwiceFails(t *testing.T) {
	l, collector := setup(t)
	defer teardown(t)
	listItem(t, l)

	engine, funds, assets := newEngine(t, collector)

	funds.EXPECT().Balance(testPurse).Return(uint64(askingPrice), true).Times(1)
	assets.EXPECT().Transfer(testContract, testToken, fixtures.Seller, fixtures.Buyer).Return(nil).Times(1)
	funds.EXPECT().Transfer(testPurse, fixtures.Seller, uint64(askingPrice)).Return(nil).Times(1)

	err := engine.ProcessSale(fixtures.Buyer, itemId, testPurse)
	if nil != err {
		t.Fatalf("process sale error: %s", err)
	}

	// sold items cannot be sold again
	err = engine.ProcessSale(fixtures.Buyer, itemId, testPurse)
	if fault.ItemNotAvailable != err {
		t.Fatalf("error: actual: %v  expected: %v", err, fault.ItemNotAvailable)
	}
}

func TestProcessSaleAssetTransferFails(t *testing.T) {
	l, collector := setup(t)
	defer teardown(t)
	listItem(t, l)

	engine, funds, assets := newEngine(t, collector)

	fail := errors.New("asset ledger rejected the transfer")
	funds.EXPECT().Balance(testPurse).Return(uint64(askingPrice), true).Times(1)
	assets.EXPECT().Transfer(testContract, testToken, fixtures.Seller, fixtures.Buyer).Return(fail).Times(1)

	// no payout after a failed asset transfer
	funds.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := engine.ProcessSale(fixtures.Buyer, itemId, testPurse)
	if fail != err {
		t.Fatalf("error: actual: %v  expected: %v", err, fail)
	}
	checkUnchanged(t, l)

	for _, name := range collector.Names() {
		if "sold" == name {
			t.Errorf("sale event emitted for failed sale")
		}
	}
}

func TestProcessSaleFundsTransferFails(t *testing.T) {
	l, collector := setup(t)
	defer teardown(t)
	listItem(t, l)

	engine, funds, assets := newEngine(t, collector)

	fail := errors.New("purse unavailable")
	funds.EXPECT().Balance(testPurse).Return(uint64(askingPrice), true).Times(1)
	assets.EXPECT().Transfer(testContract, testToken, fixtures.Seller, fixtures.Buyer).Return(nil).Times(1)
	funds.EXPECT().Transfer(testPurse, fixtures.Seller, uint64(askingPrice)).Return(fail).Times(1)

	err := engine.ProcessSale(fixtures.Buyer, itemId, testPurse)
	if fail != err {
		t.Fatalf("error: actual: %v  expected: %v", err, fail)
	}
	checkUnchanged(t, l)
}
