// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmark-inc/assettrap/fingerprint"
	"github.com/bitmark-inc/assettrap/storage"
)

type dumpOptions struct {
	fingerprints []string // peek these instead of listing
	start        string   // first fingerprint to list
	count        int
	asJSON       bool
	asMultihash  bool
}

// dump - write the selected records, returns the number written
func dump(w io.Writer, store *storage.Store, options dumpOptions) (int, error) {

	var elements []storage.Element

	if len(options.fingerprints) > 0 {
		elements = make([]storage.Element, 0, len(options.fingerprints))
		for _, a := range options.fingerprints {
			var fp fingerprint.Type
			if err := fp.UnmarshalText([]byte(a)); nil != err {
				return 0, fmt.Errorf("fingerprint: %q  error: %s", a, err)
			}
			elements = append(elements, storage.Element{
				Fingerprint: fp,
				Count:       store.Peek(fp),
			})
		}
	} else {
		cursor := store.NewFetchCursor()
		if "" != options.start {
			var fp fingerprint.Type
			if err := fp.UnmarshalText([]byte(options.start)); nil != err {
				return 0, fmt.Errorf("start: %q  error: %s", options.start, err)
			}
			cursor.Seek(fp)
		}

		var err error
		elements, err = cursor.Fetch(options.count)
		if nil != err {
			return 0, err
		}
	}

	if options.asJSON {
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return len(elements), e.Encode(elements)
	}

	for _, e := range elements {
		s := e.Fingerprint.String()
		if options.asMultihash {
			mh, err := e.Fingerprint.Multihash()
			if nil != err {
				return 0, err
			}
			s = mh.B58String()
		}
		fmt.Fprintf(w, "%s  %d\n", s, e.Count)
	}
	return len(elements), nil
}
