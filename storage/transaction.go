// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"reflect"
	"sync"

	"github.com/bitmark-inc/marketd/fault"
)

// Transaction - all-or-nothing batch of pool mutations
//
// writes staged through a transaction are readable from the same
// transaction (read-through cache) and reach the database only on
// Commit; Abort discards everything staged so far
type Transaction interface {
	Begin() error
	Put(Handle, []byte, []byte) error
	PutN(Handle, []byte, uint64) error
	Delete(Handle, []byte) error
	Get(Handle, []byte) ([]byte, error)
	GetN(Handle, []byte) (uint64, bool, error)
	GetNB(Handle, []byte) (uint64, []byte, error)
	Has(Handle, []byte) (bool, error)
	Commit() error
	Abort()
	InUse() bool
}

type transactionData struct {
	sync.Mutex
	inUse      bool
	dataAccess []DataAccess
}

func newTransaction(access []DataAccess) Transaction {
	return &transactionData{
		inUse:      false,
		dataAccess: access,
	}
}

func isNilPtr(p interface{}) error {
	if nil == p {
		return fault.DatabaseIsNotSet
	}
	v := reflect.ValueOf(p)
	if reflect.Ptr == v.Kind() && v.IsNil() {
		return fault.DatabaseIsNotSet
	}
	return nil
}

func (t *transactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.TransactionAlreadyInUse
	}

	for _, access := range t.dataAccess {
		if err := access.Begin(); nil != err {
			return err
		}
	}

	t.inUse = true
	return nil
}

func (t *transactionData) Put(h Handle, key []byte, value []byte) error {
	if err := isNilPtr(h); nil != err {
		return err
	}
	h.put(key, value)
	return nil
}

func (t *transactionData) PutN(h Handle, key []byte, value uint64) error {
	if err := isNilPtr(h); nil != err {
		return err
	}
	h.putN(key, value)
	return nil
}

func (t *transactionData) Delete(h Handle, key []byte) error {
	if err := isNilPtr(h); nil != err {
		return err
	}
	h.remove(key)
	return nil
}

func (t *transactionData) Get(h Handle, key []byte) ([]byte, error) {
	if err := isNilPtr(h); nil != err {
		return nil, err
	}
	return h.Get(key), nil
}

func (t *transactionData) GetN(h Handle, key []byte) (uint64, bool, error) {
	if err := isNilPtr(h); nil != err {
		return 0, false, err
	}
	n, found := h.GetN(key)
	return n, found, nil
}

func (t *transactionData) GetNB(h Handle, key []byte) (uint64, []byte, error) {
	if err := isNilPtr(h); nil != err {
		return 0, nil, err
	}
	n, buffer := h.GetNB(key)
	return n, buffer, nil
}

func (t *transactionData) Has(h Handle, key []byte) (bool, error) {
	if err := isNilPtr(h); nil != err {
		return false, err
	}
	return h.Has(key), nil
}

func (t *transactionData) Commit() error {
	for _, access := range t.dataAccess {
		if err := access.Commit(); nil != err {
			return err
		}
	}

	t.Lock()
	t.inUse = false
	t.Unlock()
	return nil
}

func (t *transactionData) Abort() {
	for _, access := range t.dataAccess {
		access.Abort()
	}

	t.Lock()
	t.inUse = false
	t.Unlock()
}

func (t *transactionData) InUse() bool {
	return t.inUse
}
