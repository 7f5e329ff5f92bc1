// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
)

// test rebuilding an account from its text form
func TestBase58RoundTrip(t *testing.T) {
	var a account.Account
	for i := 0; i < account.AccountLength; i += 1 {
		a[i] = byte(i + 1)
	}

	b, err := account.AccountFromBase58(a.String())
	assert.Nil(t, err, "base58 decode error")
	assert.Equal(t, a, b, "account base58 round trip failed")
}

func TestAccountFromBytes(t *testing.T) {
	_, err := account.AccountFromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.InvalidAccountLength, err, "wrong error for short bytes")

	buffer := make([]byte, account.AccountLength)
	buffer[0] = 0x7f
	a, err := account.AccountFromBytes(buffer)
	assert.Nil(t, err, "bytes conversion error")
	assert.Equal(t, byte(0x7f), a.Bytes()[0], "account bytes mismatch")
}

func TestAccountFromBase58Invalid(t *testing.T) {
	_, err := account.AccountFromBase58("0OIl+/=")
	assert.Equal(t, fault.CannotDecodeAccount, err, "wrong error for invalid base58")
}

func TestZeroAccount(t *testing.T) {
	var zero account.Account
	assert.True(t, zero.IsZero(), "zero account not detected")

	one := account.Account{1}
	assert.False(t, one.IsZero(), "non-zero account detected as zero")
}

// marshalling is used by the event sink JSON output
func TestJSONMarshal(t *testing.T) {
	a := account.Account{0x01, 0x02}
	buffer, err := json.Marshal(a)
	assert.Nil(t, err, "marshal error")

	var b account.Account
	err = json.Unmarshal(buffer, &b)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, a, b, "JSON round trip failed")
}
