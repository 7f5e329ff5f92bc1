// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/asset"
	"github.com/bitmark-inc/marketd/event"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/ownership"
	"github.com/bitmark-inc/marketd/storage"
)

// CallerFunc - identity of the account invoking an operation
//
// supplied by the execution context so that authorisation does not
// need an explicit argument on every call
type CallerFunc func() account.Account

// Ledger - entry points for all marketplace mutations
//
// every operation is all or nothing: the whole input batch is
// validated before any store is touched and all writes go through a
// single committed transaction
type Ledger struct {
	log    *logger.L
	caller CallerFunc
	sink   event.Sink
}

// NewLedger - create the ledger with its collaborators
func NewLedger(caller CallerFunc, sink event.Sink) *Ledger {
	return &Ledger{
		log:    logger.New("market"),
		caller: caller,
		sink:   sink,
	}
}

// ListItems - create market listings for a batch of new items
//
// the four arrays run in parallel, one tuple per new item
func (l *Ledger) ListItems(
	recipient account.Account,
	itemIds []ownership.ItemId,
	assetRefs []asset.ContractRef,
	prices []uint64,
	assetIds []asset.TokenId,
) error {
	count := len(itemIds)
	if len(assetRefs) != count || len(prices) != count || len(assetIds) != count {
		return fault.WrongItemCount
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	if err := checkAllNew(trx, itemIds); nil != err {
		trx.Abort()
		return err
	}

	for i, id := range itemIds {
		ownership.SetOwner(trx, id, recipient)
		ownership.Insert(trx, recipient, id)
		setAssetLink(trx, id, asset.Link{
			Contract: assetRefs[i],
			TokenId:  assetIds[i],
		})
		setAskingPrice(trx, id, prices[i])
		setStatus(trx, id, Available)
	}
	addSupply(trx, uint64(count))

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	l.log.Infof("list items: recipient: %s  ids: %v", recipient, itemIds)
	l.sink.Record(event.ItemsCreated{
		Recipient: recipient,
		ItemIds:   itemIds,
	})
	return nil
}

// Mint - create a batch of new items without market fields
//
// minted items carry no asking price and no status until listed
func (l *Ledger) Mint(
	recipient account.Account,
	itemIds []ownership.ItemId,
	assetRefs []asset.ContractRef,
) error {
	count := len(itemIds)
	if len(assetRefs) != count {
		return fault.WrongItemCount
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	if err := checkAllNew(trx, itemIds); nil != err {
		trx.Abort()
		return err
	}

	for i, id := range itemIds {
		ownership.SetOwner(trx, id, recipient)
		ownership.Insert(trx, recipient, id)
		setAssetLink(trx, id, asset.Link{
			Contract: assetRefs[i],
		})
	}
	addSupply(trx, uint64(count))

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	l.log.Infof("mint: recipient: %s  ids: %v", recipient, itemIds)
	l.sink.Record(event.ItemsMinted{
		Recipient: recipient,
		ItemIds:   itemIds,
	})
	return nil
}

// Burn - destroy a batch of owned items
//
// the caller must be the owner or hold an approval for every id
func (l *Ledger) Burn(owner account.Account, itemIds []ownership.ItemId) error {
	caller := l.caller()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	seen := make(map[ownership.ItemId]struct{}, len(itemIds))
	for _, id := range itemIds {
		if _, ok := seen[id]; ok {
			trx.Abort()
			return fault.ItemNotFound
		}
		seen[id] = struct{}{}

		actual, found := ownership.OwnerOf(trx, id)
		if !found || actual != owner {
			trx.Abort()
			return fault.ItemNotFound
		}
		if caller != owner && !isApproved(trx, owner, id, caller) {
			trx.Abort()
			return fault.PermissionDenied
		}
	}

	for _, id := range itemIds {
		ownership.Remove(trx, owner, id)
		ownership.RemoveOwner(trx, id)
		removeAssetLink(trx, id)
		removeAskingPrice(trx, id)
		removeStatus(trx, id)
		removeAllowance(trx, owner, id)
	}
	subSupply(trx, uint64(len(itemIds)))

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	l.log.Infof("burn: owner: %s  ids: %v", owner, itemIds)
	l.sink.Record(event.Burned{
		Owner:   owner,
		ItemIds: itemIds,
	})
	return nil
}

// Approve - record a spender approval for a batch of owned items
//
// only the owner may approve; a later approval overwrites an earlier
// one since only one spender is allowed at a time
func (l *Ledger) Approve(spender account.Account, itemIds []ownership.ItemId) error {
	caller := l.caller()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	for _, id := range itemIds {
		owner, found := ownership.OwnerOf(trx, id)
		if !found {
			trx.Abort()
			return fault.ItemNotFound
		}
		if caller != owner {
			trx.Abort()
			return fault.PermissionDenied
		}
	}

	for _, id := range itemIds {
		setAllowance(trx, caller, id, spender)
	}

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	l.log.Infof("approve: owner: %s  spender: %s  ids: %v", caller, spender, itemIds)
	l.sink.Record(event.Approved{
		Owner:   caller,
		Spender: spender,
		ItemIds: itemIds,
	})
	return nil
}

// Transfer - move the caller's own items to a recipient
func (l *Ledger) Transfer(recipient account.Account, itemIds []ownership.ItemId) error {
	return l.TransferFrom(l.caller(), recipient, itemIds)
}

// TransferFrom - move a batch of items from owner to recipient
//
// a caller other than the owner needs an approval for every id; each
// approval is consumed by the transfer that uses it
func (l *Ledger) TransferFrom(
	owner account.Account,
	recipient account.Account,
	itemIds []ownership.ItemId,
) error {
	caller := l.caller()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	seen := make(map[ownership.ItemId]struct{}, len(itemIds))
	for _, id := range itemIds {
		if _, ok := seen[id]; ok {
			trx.Abort()
			return fault.ItemNotFound
		}
		seen[id] = struct{}{}

		actual, found := ownership.OwnerOf(trx, id)
		if !found {
			trx.Abort()
			return fault.ItemNotFound
		}
		if actual != owner {
			trx.Abort()
			return fault.PermissionDenied
		}
		if caller != owner && !isApproved(trx, owner, id, caller) {
			trx.Abort()
			return fault.PermissionDenied
		}
	}

	for _, id := range itemIds {
		removeAllowance(trx, owner, id)
		ownership.Remove(trx, owner, id)
		ownership.Insert(trx, recipient, id)
		ownership.SetOwner(trx, id, recipient)
	}

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	l.log.Infof("transfer: owner: %s  recipient: %s  ids: %v", owner, recipient, itemIds)
	l.sink.Record(event.Transferred{
		Owner:     owner,
		Recipient: recipient,
		ItemIds:   itemIds,
	})
	return nil
}

// SetAssetLink - repoint one item at a different backing asset
//
// only the current owner may change the link
func (l *Ledger) SetAssetLink(item ownership.ItemId, ref asset.ContractRef, token asset.TokenId) error {
	caller := l.caller()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	owner, found := ownership.OwnerOf(trx, item)
	if !found {
		trx.Abort()
		return fault.ItemNotFound
	}
	if caller != owner {
		trx.Abort()
		return fault.PermissionDenied
	}

	setAssetLink(trx, item, asset.Link{
		Contract: ref,
		TokenId:  token,
	})

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	l.log.Infof("set asset link: item: %s  contract: %s", item, ref)
	return nil
}

// SetStatus - change the listing status of one item
//
// only the current owner may change the status
func (l *Ledger) SetStatus(item ownership.ItemId, status Status) error {
	caller := l.caller()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}

	owner, found := ownership.OwnerOf(trx, item)
	if !found {
		trx.Abort()
		return fault.ItemNotFound
	}
	if caller != owner {
		trx.Abort()
		return fault.PermissionDenied
	}

	setStatus(trx, item, status)

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return err
	}

	l.log.Infof("set status: item: %s  status: %s", item, status)
	return nil
}

// every id in a creation batch must be unused
func checkAllNew(trx storage.Transaction, itemIds []ownership.ItemId) error {
	seen := make(map[ownership.ItemId]struct{}, len(itemIds))
	for _, id := range itemIds {
		if _, ok := seen[id]; ok {
			return fault.ItemAlreadyExists
		}
		seen[id] = struct{}{}

		if _, found := ownership.OwnerOf(trx, id); found {
			return fault.ItemAlreadyExists
		}
	}
	return nil
}

// read only queries over the committed state

// OwnerOf - current owner of an item
func (l *Ledger) OwnerOf(item ownership.ItemId) (account.Account, bool) {
	return ownership.OwnerOf(nil, item)
}

// BalanceOf - number of items currently owned
func (l *Ledger) BalanceOf(owner account.Account) uint64 {
	return ownership.BalanceOf(nil, owner)
}

// ItemAtIndex - item id at a dense index position
func (l *Ledger) ItemAtIndex(owner account.Account, index uint64) (ownership.ItemId, bool) {
	return ownership.ItemAtIndex(nil, owner, index)
}

// AssetLink - the backing asset of an item
func (l *Ledger) AssetLink(item ownership.ItemId) (asset.Link, bool) {
	return AssetLinkOf(nil, item)
}

// AskingPrice - the recorded asking price of an item
func (l *Ledger) AskingPrice(item ownership.ItemId) (uint64, bool) {
	return AskingPriceOf(nil, item)
}

// Status - the listing status of an item
func (l *Ledger) Status(item ownership.ItemId) (Status, bool) {
	return StatusOf(nil, item)
}

// TotalSupply - count of live items
func (l *Ledger) TotalSupply() uint64 {
	return TotalSupply(nil)
}

// Allowance - the approved spender for an owned item
func (l *Ledger) Allowance(owner account.Account, item ownership.ItemId) (account.Account, bool) {
	return AllowanceOf(nil, owner, item)
}

// ItemsFor - fetch a page of items for an owner
func (l *Ledger) ItemsFor(owner account.Account, start uint64, count int) ([]ownership.Record, error) {
	return ownership.ListItemsFor(owner, start, count)
}
