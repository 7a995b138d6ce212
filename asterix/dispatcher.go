// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package asterix implements the category-agnostic core of the decoder:
// the packet dispatcher, the FSPEC-walking category handler, the
// source-state store, the truncated-time reconciler, and the listener
// fan-out. Worked categories (CAT 001, CAT 002) live in their own
// sub-packages; their handlers are installed on a PacketDispatcher with
// RegisterCategory.
package asterix

import (
	"encoding/binary"
	"time"

	"github.com/skyward-atc/go-asterix/clog"
)

// recordProcessor erases a CategoryHandler's report-type parameter so the
// dispatcher can route bytes to it without itself being generic.
type recordProcessor interface {
	ProcessRecord(fspec, payload []byte, ts time.Time) int
	setDiagnostics(d *Diagnostics)
}

// PacketDispatcher is the top-level entry point: it splits a raw buffer
// into ASTERIX blocks, validates each block's length prefix, and routes
// records to their registered category handler. It has no internal
// threads and never blocks; HandlePacket returns once the buffer is
// fully consumed or a resync-losing error aborts the rest of it.
type PacketDispatcher struct {
	categories [MaxCategories]recordProcessor
	diag       Diagnostics
	log        clog.Clog
}

// NewPacketDispatcher returns a dispatcher with no categories registered.
func NewPacketDispatcher() *PacketDispatcher {
	return &PacketDispatcher{}
}

// LogMode toggles internal debug/warn tracing for the dispatcher.
func (d *PacketDispatcher) LogMode(enable bool) {
	d.log.LogMode(enable)
}

// SetLogProvider installs a custom log sink.
func (d *PacketDispatcher) SetLogProvider(p clog.LogProvider) {
	d.log.SetLogProvider(p)
}

// Stats returns a pointer to the live diagnostics; callers needing an
// isolated point-in-time read should call StatsSnapshot instead.
func (d *PacketDispatcher) Stats() *Diagnostics {
	return &d.diag
}

// StatsSnapshot returns an unsynchronised point-in-time copy of the
// counters.
func (d *PacketDispatcher) StatsSnapshot() Snapshot {
	return d.diag.Snapshot()
}

// RegisterCategory installs handler for category cat. If a handler is
// already registered for cat, it is replaced; the dispatcher's
// diagnostics are linked into the new handler before it becomes reachable
// from the lookup table, so no record can ever be processed by a handler
// with a nil diagnostics pointer.
func RegisterCategory[R any](d *PacketDispatcher, cat uint8, handler *CategoryHandler[R]) {
	handler.setDiagnostics(&d.diag)
	d.categories[cat] = handler
}

// HandlePacket processes buf as a stream of concatenated ASTERIX blocks.
// ts is the caller's receive timestamp, threaded down to category
// handlers that need a fallback time reference (CAT 001's reconciliation
// when no prior source state exists).
func (d *PacketDispatcher) HandlePacket(buf []byte, ts time.Time) {
	d.diag.TotalPackets.Add(1)
	if len(buf) == 0 {
		return
	}

	remaining := buf
	for len(remaining) >= MinBlockSize {
		consumed, ok := d.parseBlock(remaining, ts)
		if !ok {
			d.diag.MalformedBlocks.Add(1)
			d.log.Warn("asterix: malformed block header, aborting rest of packet")
			return
		}
		remaining = remaining[consumed:]
	}

	if len(remaining) > 0 {
		d.diag.TrailingBytesCount.Add(uint64(len(remaining)))
	}
}

// parseBlock reads one block's 3-byte header, validates its declared
// length against the remaining buffer, and — if a handler is registered
// for its category — walks its records. It always returns the declared
// block length on a valid header, even when the category is unhandled or
// a record inside it fails to parse: the caller advances past the whole
// block regardless, because stream position trust inside the block was
// already lost.
func (d *PacketDispatcher) parseBlock(data []byte, ts time.Time) (consumed int, ok bool) {
	cat := data[0]
	declared := int(binary.BigEndian.Uint16(data[1:3]))
	if declared < HeaderSize || declared > len(data) {
		return 0, false
	}

	proc := d.categories[cat]
	if proc == nil {
		d.diag.UnhandledCategories.Add(1)
		d.log.Debug("asterix: no handler registered for category %d", cat)
		return declared, true
	}

	offset := HeaderSize
	for offset < declared {
		n := dispatchRecord(proc, data[offset:declared], &d.diag, &d.log, ts)
		if n == 0 {
			d.diag.RecordParseErrors.Add(1)
			break
		}
		offset += n
	}
	return declared, true
}

// dispatchRecord computes one record's FSPEC extent, enforces the FRN
// upper bound, and hands the FSPEC and remaining payload to the category
// handler. It returns the total bytes consumed (FSPEC plus decoded
// items), or 0 if the FSPEC itself is malformed, encodes an illegal FRN,
// or the category handler rejects the record.
func dispatchRecord(proc recordProcessor, data []byte, diag *Diagnostics, log *clog.Clog, ts time.Time) int {
	fspecLen := 0
	lastDataIdx := -1
	var lastDataValue byte

	for {
		if fspecLen >= len(data) {
			diag.MalformedRecords.Add(1)
			log.Warn("asterix: fspec scan ran out of data")
			return 0
		}
		b := data[fspecLen]
		if b&0xFE != 0 {
			lastDataIdx = fspecLen
			lastDataValue = b
		}
		fspecLen++
		if b&0x01 == 0 {
			break
		}
		if fspecLen == MaxFSPECBytes {
			diag.MalformedRecords.Add(1)
			log.Warn("asterix: fspec exceeded %d bytes without terminating", MaxFSPECBytes)
			return 0
		}
	}

	if lastDataIdx > 18 {
		diag.ProtocolViolations.Add(1)
		log.Warn("asterix: fspec referenced an FRN beyond the 128 upper bound")
		return 0
	}
	if lastDataIdx == 18 && lastDataValue&0x3E != 0 {
		diag.ProtocolViolations.Add(1)
		log.Warn("asterix: fspec's 19th byte set bits beyond FRN 128")
		return 0
	}

	fspec := data[:fspecLen]
	payload := data[fspecLen:]
	consumed := proc.ProcessRecord(fspec, payload, ts)
	if consumed == 0 {
		return 0
	}
	return fspecLen + consumed
}
