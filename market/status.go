// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
)

// the status byte
type Status byte

// status codes for a listed item
const (
	Available Status = iota
	Sold      Status = iota
	Cancelled Status = iota
)

// internal conversion
func toString(status Status) ([]byte, error) {
	switch status {
	case Available:
		return []byte("Available"), nil
	case Sold:
		return []byte("Sold"), nil
	case Cancelled:
		return []byte("Cancelled"), nil
	default:
		return []byte{}, fault.InvalidItemStatus
	}
}

// convert a status to its string name
func (status Status) String() string {
	s, err := toString(status)
	if nil != err {
		logger.Panicf("invalid status enumeration: %d", status)
	}
	return string(s)
}

// convert status to text
func (status Status) MarshalText() ([]byte, error) {
	s, err := toString(status)
	if nil != err {
		logger.Panicf("invalid status enumeration: %d", status)
	}
	return s, nil
}
