// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"sort"

	"github.com/bitmark-inc/assettrap/fault"
	"github.com/bitmark-inc/assettrap/util"
)

// Versioned - a canonical bundle tagged with its encoding version
type Versioned struct {
	Version uint32
	Assets  Bundle
}

// Pack - version tag followed by the version specific encoding
func (v Versioned) Pack() ([]byte, error) {
	c, err := CodecFor(v.Version)
	if nil != err {
		return nil, err
	}
	canonical, err := v.Assets.Canonical()
	if nil != err {
		return nil, err
	}
	body, err := c.Encode(canonical)
	if nil != err {
		return nil, err
	}
	buffer := util.ToVarint64(uint64(v.Version))
	return append(buffer, body...), nil
}

// Versions - the set of bundle versions the host supports
type Versions struct {
	current   uint32
	supported map[uint32]struct{}
}

// NewVersions - create a version set
//
// every supported version must have a codec and current must be one
// of the supported versions
func NewVersions(current uint32, supported ...uint32) (*Versions, error) {
	if 0 == len(supported) {
		return nil, fault.ErrNoSupportedVersions
	}
	v := &Versions{
		current:   current,
		supported: make(map[uint32]struct{}, len(supported)),
	}
	for _, n := range supported {
		if _, err := CodecFor(n); nil != err {
			return nil, err
		}
		v.supported[n] = struct{}{}
	}
	if !v.IsSupported(current) {
		return nil, fault.ErrCurrentVersionUnsupported
	}
	return v, nil
}

// DefaultVersions - every known codec, latest as current
func DefaultVersions() *Versions {
	v, err := NewVersions(LatestVersion, 1, 2, 3)
	if nil != err {
		panic(err)
	}
	return v
}

// Current - the version new traps are recorded at
func (v *Versions) Current() uint32 {
	return v.current
}

// IsSupported - check for membership of the supported set
func (v *Versions) IsSupported(version uint32) bool {
	_, ok := v.supported[version]
	return ok
}

// List - supported versions in ascending order
func (v *Versions) List() []uint32 {
	result := make([]uint32, 0, len(v.supported))
	for n := range v.supported {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Convert - express a bundle at a specific version
//
// fails if the version is not supported or the bundle cannot be
// represented in that version's format
func (v *Versions) Convert(bundle Bundle, version uint32) (Versioned, error) {
	if !v.IsSupported(version) {
		return Versioned{}, fault.ErrUnsupportedVersion
	}
	c, err := CodecFor(version)
	if nil != err {
		return Versioned{}, err
	}
	canonical, err := bundle.Canonical()
	if nil != err {
		return Versioned{}, err
	}
	if _, err := c.Encode(canonical); nil != err {
		return Versioned{}, err
	}
	return Versioned{Version: version, Assets: canonical}, nil
}

// ConvertCurrent - express a bundle at the current version
func (v *Versions) ConvertCurrent(bundle Bundle) (Versioned, error) {
	return v.Convert(bundle, v.current)
}
