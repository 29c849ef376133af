// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// AppendBytes - append a Varint64 length followed by the data
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// FromBytes - extract a length prefixed byte slice of at most maximum bytes
//
// returns the data (not copied) and the total number of bytes consumed,
// or nil, 0 if the buffer is truncated or the length exceeds maximum
func FromBytes(buffer []byte, maximum int) ([]byte, int) {
	length, n := ClippedVarint64(buffer, 0, maximum)
	if 0 == n {
		return nil, 0
	}
	if len(buffer) < n+length {
		return nil, 0
	}
	return buffer[n : n+length], n + length
}
