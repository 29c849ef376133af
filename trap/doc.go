// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trap - hold assets left unclaimed by message execution
//
// When a message finishes with assets still in holding, the executor
// calls DropAssets.  The bundle is converted to the current version,
// fingerprinted together with the origin and a counter stored under the
// fingerprint is incremented.  A later message calls ClaimAssets with a
// ticket selecting the version; if the recomputed fingerprint has a
// non-zero count it is decremented and the claim succeeds.
//
// Per fingerprint:
//
//   Absent       --drop-->  Present(1)
//   Present(n)   --drop-->  Present(n+1)
//   Present(1)   --claim--> Absent
//   Present(n>1) --claim--> Present(n-1)
//   Absent       --claim--> Absent (claim fails)
//
// All calls are made by a single executor inside one state transition;
// the handler does no locking and rollback is the host's concern.
package trap
