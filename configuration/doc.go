// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.
//
// the file must return a single table, e.g.
//
//   return {
//       data_directory = ".",
//       database = { directory = "data", name = "traps.leveldb" },
//       versions = { current = 3, supported = { 1, 2, 3 } },
//       logging = { size = 1048576, count = 10 },
//   }
package configuration
