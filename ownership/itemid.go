// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"encoding/binary"
	"strconv"
)

const uint64ByteSize = 8

// ItemId - caller assigned identifier of a market listing
//
// never reused while the item is live
type ItemId uint64

// Bytes - big endian key form
func (id ItemId) Bytes() []byte {
	buffer := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(buffer, uint64(id))
	return buffer
}

// ItemIdFromBytes - decode a big endian key
func ItemIdFromBytes(buffer []byte) ItemId {
	return ItemId(binary.BigEndian.Uint64(buffer))
}

// String - decimal representation
func (id ItemId) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// MarshalText - convert item id to text
func (id ItemId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert text to item id
func (id *ItemId) UnmarshalText(s []byte) error {
	n, err := strconv.ParseUint(string(s), 10, 64)
	if nil != err {
		return err
	}
	*id = ItemId(n)
	return nil
}
