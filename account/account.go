// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - opaque marketplace account identifiers
//
// An account names a participant in the marketplace.  The identifier
// is an opaque 32 byte value supplied by the execution context; no key
// material or signature handling happens here.  The zero value is
// reserved to mean "no account" and is used as the canonical
// does-not-exist marker by the ownership records.
package account

import (
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/marketd/fault"
)

// AccountLength - byte length of an account identifier
const AccountLength = 32

// Account - base type for an account identifier
type Account [AccountLength]byte

// AccountFromBytes - convert a byte slice to an account
func AccountFromBytes(accountBytes []byte) (Account, error) {
	var account Account
	if AccountLength != len(accountBytes) {
		return account, fault.InvalidAccountLength
	}
	copy(account[:], accountBytes)
	return account, nil
}

// AccountFromBase58 - convert a base58 encoded string to an account
func AccountFromBase58(accountBase58Encoded string) (Account, error) {
	decoded, err := base58.Decode(accountBase58Encoded)
	if nil != err {
		return Account{}, fault.CannotDecodeAccount
	}
	return AccountFromBytes(decoded)
}

// Bytes - return the account as a byte slice
func (account Account) Bytes() []byte {
	return account[:]
}

// IsZero - check for the reserved "no account" value
func (account Account) IsZero() bool {
	return Account{} == account
}

// String - base58 encoding of the account identifier
func (account Account) String() string {
	return base58.Encode(account[:])
}

// MarshalText - convert account to text
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert text to account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
