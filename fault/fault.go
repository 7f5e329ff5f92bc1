// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	ExistsError   GenericError
	InvalidError  GenericError
	LengthError   GenericError
	NotFoundError GenericError
	ProcessError  GenericError
	RecordError   GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised       = ProcessError("already initialised")
	BalanceMismatch          = InvalidError("balance mismatch")
	BalanceNotFound          = NotFoundError("balance not found")
	CannotDecodeAccount      = RecordError("cannot decode account")
	CannotDecodeContractRef  = RecordError("cannot decode contract reference")
	DatabaseIsNotSet         = ProcessError("database is not set")
	InvalidAccountLength     = LengthError("invalid account length")
	InvalidContractRefLength = LengthError("invalid contract reference length")
	InvalidCount             = InvalidError("invalid count")
	InvalidCursor            = InvalidError("invalid cursor")
	InvalidItemStatus        = RecordError("invalid item status")
	ItemAlreadyExists        = ExistsError("item already exists")
	ItemNotAvailable         = InvalidError("item not available")
	ItemNotFound             = NotFoundError("item not found")
	MissingAskingPrice       = RecordError("missing asking price")
	MissingAssetLink         = RecordError("missing asset link")
	NotInitialised           = ProcessError("not initialised")
	NotLinkPack              = RecordError("not a link pack")
	PermissionDenied         = InvalidError("permission denied")
	TransactionAlreadyInUse  = ProcessError("transaction already in use")
	WrongItemCount           = LengthError("wrong item count")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// Error - the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine the class of an error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine the class of an error
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }
