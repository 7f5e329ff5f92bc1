// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - references to externally ledgered NFTs
//
// A marketplace item stands for a token held by a separate NFT
// contract.  This package only names that token: the contract
// reference and the token id on the external ledger.  Moving the
// token is the job of the asset transfer collaborator wired into the
// settlement engine.
package asset

import (
	"encoding/binary"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/marketd/fault"
)

// ContractRefLength - byte length of an external contract reference
const ContractRefLength = 32

// ContractRef - opaque reference to the external NFT contract
type ContractRef [ContractRefLength]byte

// TokenId - the token number on the external ledger
type TokenId uint64

const (
	uint64ByteSize = 8

	// structure of the packed link record
	contractRefStart  = 0
	contractRefFinish = contractRefStart + ContractRefLength
	tokenIdStart      = contractRefFinish
	tokenIdFinish     = tokenIdStart + uint64ByteSize

	linkPackLength = tokenIdFinish
)

// Link - the external token backing a marketplace item
type Link struct {
	Contract ContractRef `json:"contract"`
	TokenId  TokenId     `json:"tokenId,string"`
}

// PackedLink - packed data to store in the database
type PackedLink []byte

// Pack - pack a link to a byte slice
func (link Link) Pack() PackedLink {
	tokenId := make([]byte, uint64ByteSize)
	binary.BigEndian.PutUint64(tokenId, uint64(link.TokenId))

	newData := make(PackedLink, 0, linkPackLength)
	newData = append(newData, link.Contract[:]...)
	newData = append(newData, tokenId...)
	return newData
}

// Unpack - unpack a stored record into a link
func (packed PackedLink) Unpack() (Link, error) {
	var link Link
	if linkPackLength != len(packed) {
		return link, fault.NotLinkPack
	}
	copy(link.Contract[:], packed[contractRefStart:contractRefFinish])
	link.TokenId = TokenId(binary.BigEndian.Uint64(packed[tokenIdStart:tokenIdFinish]))
	return link, nil
}

// ContractRefFromBytes - convert a byte slice to a contract reference
func ContractRefFromBytes(refBytes []byte) (ContractRef, error) {
	var ref ContractRef
	if ContractRefLength != len(refBytes) {
		return ref, fault.InvalidContractRefLength
	}
	copy(ref[:], refBytes)
	return ref, nil
}

// ContractRefFromBase58 - convert a base58 encoded string to a contract reference
func ContractRefFromBase58(refBase58Encoded string) (ContractRef, error) {
	decoded, err := base58.Decode(refBase58Encoded)
	if nil != err {
		return ContractRef{}, fault.CannotDecodeContractRef
	}
	return ContractRefFromBytes(decoded)
}

// Bytes - return the contract reference as a byte slice
func (ref ContractRef) Bytes() []byte {
	return ref[:]
}

// String - base58 encoding of the contract reference
func (ref ContractRef) String() string {
	return base58.Encode(ref[:])
}

// MarshalText - convert contract reference to text
func (ref ContractRef) MarshalText() ([]byte, error) {
	return []byte(ref.String()), nil
}

// UnmarshalText - convert text to contract reference
func (ref *ContractRef) UnmarshalText(s []byte) error {
	r, err := ContractRefFromBase58(string(s))
	if nil != err {
		return err
	}
	*ref = r
	return nil
}
