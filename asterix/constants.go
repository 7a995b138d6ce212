// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asterix

// Wire-format constants, bit-exact per the packet grammar.
const (
	// HeaderSize is the fixed 3-byte block header: category + length.
	HeaderSize = 3
	// MinBlockSize is the smallest buffer the dispatcher will attempt to
	// parse as a block: a full header plus at least a 1-byte FSPEC and
	// a 1-byte record tail.
	MinBlockSize = 5
	// MaxFSPECBytes bounds how many FSPEC bytes the dispatcher will scan
	// looking for the terminating FX=0 byte.
	MaxFSPECBytes = 10
	// MaxFRNs is the upper bound on field record numbers across all
	// registered categories.
	MaxFRNs = 128
	// MaxCategories is the size of the category lookup table (one slot
	// per possible first byte of a block).
	MaxCategories = 256
)
