// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAbstractIdentifierTooLong = LengthError("abstract identifier too long")
	ErrAssetInstanceTooLong      = LengthError("asset instance too long")
	ErrCurrentVersionUnsupported = InvalidError("current version is not in supported set")
	ErrDatabaseIsNewer           = RecordError("database version is newer than supported")
	ErrGeneralKeyTooLong         = LengthError("general key too long")
	ErrInvalidAccountLength      = LengthError("invalid account length")
	ErrInvalidAssetClass         = InvalidError("invalid asset class")
	ErrInvalidCount              = InvalidError("invalid count")
	ErrInvalidFingerprint        = LengthError("invalid fingerprint length")
	ErrInvalidFungibility        = InvalidError("invalid fungibility")
	ErrInvalidJunction           = InvalidError("invalid junction")
	ErrInvalidNetwork            = InvalidError("invalid network")
	ErrInvalidTicket             = InvalidError("invalid ticket")
	ErrMissingEventSink          = InvalidError("missing event sink")
	ErrMissingHasher             = InvalidError("missing hasher")
	ErrMissingTrapStore          = InvalidError("missing trap store")
	ErrMissingVersions           = InvalidError("missing versions")
	ErrNoSupportedVersions       = InvalidError("no supported versions")
	ErrNonFungibleNotSupported   = ProcessError("non-fungible asset not supported by this version")
	ErrNotInitialised            = NotFoundError("not initialised")
	ErrTooManyAssets             = LengthError("too many assets")
	ErrTooManyJunctions          = LengthError("too many junctions")
	ErrTransactionAlreadyStarted = ProcessError("transaction already started")
	ErrTransactionNotStarted     = ProcessError("transaction not started")
	ErrTruncatedRecord           = RecordError("truncated record")
	ErrUnknownVersion            = NotFoundError("unknown version")
	ErrUnsupportedVersion        = InvalidError("unsupported version")
	ErrZeroCountRecord           = RecordError("zero count record")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
