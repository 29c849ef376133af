// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trap

import (
	"github.com/bitmark-inc/assettrap/fingerprint"
)

// SetCount - force a counter value for tests
func (m *Memory) SetCount(fp fingerprint.Type, count uint32) {
	m.traps[fp] = count
}
