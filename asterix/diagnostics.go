// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asterix

import "sync/atomic"

// Diagnostics holds the process-lifetime decoder counters. Every field is
// an atomic counter that needs no more than relaxed ordering: they are for
// observation only and are never consulted for control flow, so the
// sequentially consistent atomic.Uint64 that Go provides is more than
// adequate.
//
// Counters are grouped on their own cache line-ish block so that readers
// snapshotting stats don't false-share with the hot increment path; in
// practice Go doesn't expose manual alignment control for this, so the
// struct is kept small and flat instead.
type Diagnostics struct {
	TotalPackets        atomic.Uint64
	TrailingBytesCount  atomic.Uint64
	UnhandledCategories atomic.Uint64
	MalformedBlocks     atomic.Uint64
	MalformedRecords    atomic.Uint64
	RecordParseErrors   atomic.Uint64
	ProtocolViolations  atomic.Uint64
	UnhandledItems      atomic.Uint64
}

// Snapshot is a point-in-time, unsynchronised copy of the counters.
type Snapshot struct {
	TotalPackets        uint64
	TrailingBytesCount  uint64
	UnhandledCategories uint64
	MalformedBlocks     uint64
	MalformedRecords    uint64
	RecordParseErrors   uint64
	ProtocolViolations  uint64
	UnhandledItems      uint64
}

// Snapshot reads every counter without synchronising readers against each
// other; consumers must not rely on the returned values being consistent
// with one another.
func (d *Diagnostics) Snapshot() Snapshot {
	if d == nil {
		return Snapshot{}
	}
	return Snapshot{
		TotalPackets:        d.TotalPackets.Load(),
		TrailingBytesCount:  d.TrailingBytesCount.Load(),
		UnhandledCategories: d.UnhandledCategories.Load(),
		MalformedBlocks:     d.MalformedBlocks.Load(),
		MalformedRecords:    d.MalformedRecords.Load(),
		RecordParseErrors:   d.RecordParseErrors.Load(),
		ProtocolViolations:  d.ProtocolViolations.Load(),
		UnhandledItems:      d.UnhandledItems.Load(),
	}
}
