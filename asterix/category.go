// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asterix

import (
	"math/bits"
	"time"

	"github.com/skyward-atc/go-asterix/clog"
)

// PostDecode performs the category-specific bookkeeping that follows a
// successful FSPEC walk: CAT 002 writes its TOD straight into the source
// state; CAT 001 reconciles a truncated clock against it first. ts is the
// packet's receive timestamp, threaded down from PacketDispatcher.HandlePacket,
// used only as a fallback seed when no prior source state exists.
type PostDecode[R any] func(store *SourceStateStore, report *R, ts time.Time)

// CategoryHandler owns one category's FRN-indexed field handler table, its
// precomputed mandatory-FSPEC mask, and the record pipeline: FSPEC
// validation, FSPEC walk, per-item dispatch, bookkeeping, and fan-out. It
// is generic over the report type so the pipeline itself never needs to
// know CAT 001 from CAT 002.
type CategoryHandler[R any] struct {
	itemLookup     [MaxFRNs]FieldHandler[R]
	handlerPool    []FieldHandler[R]
	mandatoryFspec [20]byte
	mandatoryFspecSize int

	store      *SourceStateStore
	listeners  Listeners[R]
	diag       *Diagnostics
	postDecode PostDecode[R]
	log        clog.Clog
}

// NewCategoryHandler builds an empty handler sharing store across every
// category registered on the same dispatcher, and running postDecode after
// every successfully decoded record.
func NewCategoryHandler[R any](store *SourceStateStore, postDecode PostDecode[R]) *CategoryHandler[R] {
	return &CategoryHandler[R]{
		store:      store,
		postDecode: postDecode,
	}
}

// AddListener subscribes a weak handle to this category's fan-out.
func (h *CategoryHandler[R]) AddListener(handle *Handle[R]) {
	h.listeners.Add(handle)
}

// LogMode toggles internal debug/warn tracing for this handler.
func (h *CategoryHandler[R]) LogMode(enable bool) {
	h.log.LogMode(enable)
}

// SetLogProvider installs the log sink that LogMode gates, e.g. to route
// through a service's structured logger. A new handler has no sink, so
// enabling LogMode produces no output until one is installed.
func (h *CategoryHandler[R]) SetLogProvider(p clog.LogProvider) {
	h.log.SetLogProvider(p)
}

// setDiagnostics links the dispatcher's shared counters into this handler.
// Per the registration contract, this happens before the handler becomes
// reachable from the dispatcher's lookup table.
func (h *CategoryHandler[R]) setDiagnostics(d *Diagnostics) {
	h.diag = d
}

// AddHandler installs handler at the given 1-based field record number.
// frn == 0 or frn > MaxFRNs is rejected. If a handler already occupies the
// slot, it is removed from the pool before the new one is written, so no
// two pool entries ever observe the same lookup slot.
func (h *CategoryHandler[R]) AddHandler(handler FieldHandler[R], frn int) error {
	if frn <= 0 || frn > MaxFRNs {
		return ErrProtocolViolation
	}
	slot := frn - 1
	if old := h.itemLookup[slot]; old != nil {
		h.removeFromPool(old)
	}
	h.itemLookup[slot] = handler
	h.handlerPool = append(h.handlerPool, handler)

	if handler.Mandatory() {
		byteIdx := slot / 7
		bitIdx := 7 - (slot % 7)
		h.mandatoryFspec[byteIdx] |= 1 << uint(bitIdx)
		if byteIdx+1 > h.mandatoryFspecSize {
			h.mandatoryFspecSize = byteIdx + 1
		}
	}
	return nil
}

func (h *CategoryHandler[R]) removeFromPool(old FieldHandler[R]) {
	for i, hh := range h.handlerPool {
		if hh == old {
			h.handlerPool = append(h.handlerPool[:i], h.handlerPool[i+1:]...)
			return
		}
	}
}

// ProcessRecord implements the per-record pipeline: mandatory-mask check,
// FSPEC walk, per-item dispatch, then (on success) bookkeeping and
// fan-out. It returns the number of payload bytes consumed by the record,
// or 0 on any failure — the category-specific diagnostic counter has
// already been incremented by the time it returns 0.
func (h *CategoryHandler[R]) ProcessRecord(fspec, payload []byte, ts time.Time) int {
	if len(fspec) < h.mandatoryFspecSize {
		h.diag.ProtocolViolations.Add(1)
		h.log.Warn("asterix: fspec shorter than mandatory mask: got %d bytes, need %d", len(fspec), h.mandatoryFspecSize)
		return 0
	}
	for i := 0; i < h.mandatoryFspecSize; i++ {
		if h.mandatoryFspec[i]&^fspec[i] != 0 {
			h.diag.ProtocolViolations.Add(1)
			h.log.Warn("asterix: missing mandatory fspec bit in byte %d", i)
			return 0
		}
	}

	var report R
	consumed := h.walkFSPEC(fspec, payload, &report)
	if consumed == 0 {
		return 0
	}

	if h.postDecode != nil {
		h.postDecode(h.store, &report, ts)
	}
	h.listeners.FanOut(&report)
	return consumed
}

// walkFSPEC applies the registered handler table to payload, FRN by FRN,
// in ascending order, writing into report. It returns the number of
// payload bytes consumed, or 0 on the first failure.
func (h *CategoryHandler[R]) walkFSPEC(fspec, payload []byte, report *R) int {
	frnBase := 1
	remaining := payload

	for _, b := range fspec {
		itemBits := b &^ 0x01

		for itemBits != 0 {
			k := bits.LeadingZeros8(itemBits)
			currentFRN := frnBase + k

			var handler FieldHandler[R]
			if currentFRN >= 1 && currentFRN <= MaxFRNs {
				handler = h.itemLookup[currentFRN-1]
			}
			if handler == nil {
				h.diag.UnhandledItems.Add(1)
				h.log.Warn("asterix: no handler registered for FRN %d", currentFRN)
				return 0
			}

			size := handler.Size(remaining)
			if size == 0 || size > len(remaining) {
				h.diag.MalformedRecords.Add(1)
				h.log.Warn("asterix: %s reported size %d against %d remaining bytes", handler.Name(), size, len(remaining))
				return 0
			}
			if err := handler.Decode(report, remaining[:size]); err != nil {
				h.diag.ProtocolViolations.Add(1)
				h.log.Warn("asterix: %s rejected its payload: %v", handler.Name(), err)
				return 0
			}
			remaining = remaining[size:]

			itemBits &^= 1 << uint(7-k)
		}

		if b&0x01 == 0 {
			return len(payload) - len(remaining)
		}
		frnBase += 7
	}

	// Every FSPEC byte processed but the last one still asked for more:
	// FX=1 on what should have been the terminating byte.
	h.diag.MalformedRecords.Add(1)
	h.log.Warn("asterix: fspec ended with FX still set")
	return 0
}
