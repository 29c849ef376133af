// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/assettrap/asset"
	"github.com/bitmark-inc/assettrap/messagebus"
	"github.com/bitmark-inc/assettrap/util"
	"github.com/bitmark-inc/assettrap/weight"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "traps.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "assettrap.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// fresh map for each read, the decoder merges into it
func defaultLogLevels() map[string]string {
	return map[string]string{
		"assettrap":       "info",
		"storage":         "info",
		logger.DefaultTag: "critical",
	}
}

// DatabaseType - location of the trap database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// VersionsType - the asset encodings this host understands
type VersionsType struct {
	Current   int   `gluamapper:"current" json:"current"`
	Supported []int `gluamapper:"supported" json:"supported"`
}

// WeightsType - metering constants
type WeightsType struct {
	ReadRefTime    uint64 `gluamapper:"read_ref_time" json:"read_ref_time"`
	ReadProofSize  uint64 `gluamapper:"read_proof_size" json:"read_proof_size"`
	WriteRefTime   uint64 `gluamapper:"write_ref_time" json:"write_ref_time"`
	WriteProofSize uint64 `gluamapper:"write_proof_size" json:"write_proof_size"`
	HashBase       uint64 `gluamapper:"hash_base" json:"hash_base"`
	HashPerByte    uint64 `gluamapper:"hash_per_byte" json:"hash_per_byte"`
}

// Configuration - everything read from the file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Versions      VersionsType         `gluamapper:"versions" json:"versions"`
	Weights       WeightsType          `gluamapper:"weights" json:"weights"`
	QueueSize     int                  `gluamapper:"queue_size" json:"queue_size"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Get - read decode and verify the configuration
func Get(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	schedule := weight.DefaultSchedule()

	options := &Configuration{
		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Versions: VersionsType{
			Current: asset.LatestVersion,
		},

		Weights: WeightsType{
			ReadRefTime:    schedule.Read.RefTime,
			ReadProofSize:  schedule.Read.ProofSize,
			WriteRefTime:   schedule.Write.RefTime,
			WriteProofSize: schedule.Write.ProofSize,
			HashBase:       schedule.HashBase,
			HashPerByte:    schedule.HashPerByte,
		},

		QueueSize: messagebus.DefaultQueueSize,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if 0 == len(options.Versions.Supported) {
		options.Versions.Supported = []int{1, 2, 3}
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// database and log file must be plain names
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	if options.QueueSize <= 0 {
		return nil, fmt.Errorf("queue_size: %d must be positive", options.QueueSize)
	}

	// fail early on a bad version set
	if _, err := options.AssetVersions(); nil != err {
		return nil, err
	}

	return options, nil
}

// DatabasePath - full path of the trap database
func (c *Configuration) DatabasePath() string {
	return filepath.Join(c.Database.Directory, c.Database.Name)
}

// AssetVersions - build the version registry
func (c *Configuration) AssetVersions() (*asset.Versions, error) {
	if c.Versions.Current < 0 {
		return nil, fmt.Errorf("versions: current: %d is negative", c.Versions.Current)
	}
	supported := make([]uint32, 0, len(c.Versions.Supported))
	for _, n := range c.Versions.Supported {
		if n < 0 {
			return nil, fmt.Errorf("versions: supported: %d is negative", n)
		}
		supported = append(supported, uint32(n))
	}
	return asset.NewVersions(uint32(c.Versions.Current), supported...)
}

// WeightSchedule - the metering constants as a schedule
func (c *Configuration) WeightSchedule() weight.Schedule {
	return weight.Schedule{
		Read: weight.Weight{
			RefTime:   c.Weights.ReadRefTime,
			ProofSize: c.Weights.ReadProofSize,
		},
		Write: weight.Weight{
			RefTime:   c.Weights.WriteRefTime,
			ProofSize: c.Weights.WriteProofSize,
		},
		HashBase:    c.Weights.HashBase,
		HashPerByte: c.Weights.HashPerByte,
	}
}
