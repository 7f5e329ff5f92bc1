// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

var (
	Issuer account.Account
	Buyer  account.Account
	Seller account.Account
)

func init() {
	Issuer = randomAccount()
	Buyer = randomAccount()
	Seller = randomAccount()
}

func randomAccount() account.Account {
	buffer := make([]byte, account.AccountLength)
	_, err := rand.Read(buffer)
	if nil != err {
		panic(err)
	}
	acc, err := account.AccountFromBytes(buffer)
	if nil != err {
		panic(err)
	}
	return acc
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
