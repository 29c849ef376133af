// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queuing system for trap events
//
// The trap handler runs inside a state transition and must never block,
// so a full queue drops the event and counts the loss.
package messagebus
