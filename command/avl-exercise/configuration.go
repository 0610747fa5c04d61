// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avltree/configuration"
	"github.com/bitmark-inc/avltree/fault"
)

// basic defaults
const (
	defaultLogDirectory = "log"
	defaultLogFile      = "avl-exercise.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRounds        = 10
	defaultSize          = 1000
	defaultKeyRange      = 65536
	defaultDeletePercent = 50
)

var (
	defaultLogLevels = map[string]string{
		"main":            "info",
		"workload":        "info",
		logger.DefaultTag: "critical",
	}
)

// WorkloadType - what the exercise does in each round
type WorkloadType struct {
	Seed          int64 `gluamapper:"seed"`           // zero: use the time
	Rounds        int   `gluamapper:"rounds"`         // number of build/join/teardown cycles
	Size          int   `gluamapper:"size"`           // insert attempts per side per round
	KeyRange      int   `gluamapper:"key_range"`      // keys drawn from [0, key_range)
	DeletePercent int   `gluamapper:"delete_percent"` // deleted from each side before the join
	PoolLimit     int   `gluamapper:"pool_limit"`     // zero for unlimited
	Pedantic      bool  `gluamapper:"pedantic"`       // verify after every change
	Print         bool  `gluamapper:"print"`          // draw the joined tree
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory"`
	Workload      WorkloadType         `gluamapper:"workload"`
	Logging       logger.Configuration `gluamapper:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: ".",

		Workload: WorkloadType{
			Rounds:        defaultRounds,
			Size:          defaultSize,
			KeyRange:      defaultKeyRange,
			DeletePercent: defaultDeletePercent,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if err := options.Workload.validate(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// log directory is relative to the data directory
	if !filepath.IsAbs(options.Logging.Directory) {
		options.Logging.Directory = filepath.Join(options.DataDirectory, options.Logging.Directory)
	}

	return options, nil
}

// separator is key_range/2 so each side needs room for keys
func (w WorkloadType) validate() error {
	if w.Rounds < 1 || w.Size < 0 {
		return fault.ErrInvalidWorkload
	}
	if w.KeyRange < 3 || w.KeyRange > 65536 {
		return fault.ErrInvalidWorkload
	}
	if w.DeletePercent < 0 || w.DeletePercent > 100 {
		return fault.ErrInvalidWorkload
	}
	if w.PoolLimit < 0 {
		return fault.ErrInvalidPoolLimit
	}
	return nil
}
