// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asterix

import (
	"errors"
	"testing"
	"time"
)

type dummyReport struct {
	A, B byte
}

type dummyField struct {
	name      string
	mandatory bool
	size      int
	decodeErr error
}

func (f dummyField) Name() string    { return f.name }
func (f dummyField) Mandatory() bool { return f.mandatory }
func (f dummyField) Size(data []byte) int {
	if f.size > len(data) {
		return 0
	}
	return f.size
}
func (f dummyField) Decode(r *dummyReport, data []byte) error {
	if f.decodeErr != nil {
		return f.decodeErr
	}
	r.A = data[0]
	return nil
}

func newTestHandler(t *testing.T) (*CategoryHandler[dummyReport], *Diagnostics) {
	t.Helper()
	store := NewSourceStateStore()
	h := NewCategoryHandler[dummyReport](store, func(*SourceStateStore, *dummyReport, time.Time) {})
	diag := &Diagnostics{}
	h.setDiagnostics(diag)
	return h, diag
}

func TestAddHandler_RejectsOutOfRangeFRN(t *testing.T) {
	h, _ := newTestHandler(t)
	if err := h.AddHandler(dummyField{name: "x", size: 1}, 0); !errors.Is(err, ErrProtocolViolation) {
		t.Errorf("frn=0: err = %v, want ErrProtocolViolation", err)
	}
	if err := h.AddHandler(dummyField{name: "x", size: 1}, MaxFRNs+1); !errors.Is(err, ErrProtocolViolation) {
		t.Errorf("frn=MaxFRNs+1: err = %v, want ErrProtocolViolation", err)
	}
}

func TestAddHandler_MandatoryMaskAcrossByteBoundary(t *testing.T) {
	h, _ := newTestHandler(t)
	// FRN 8 is the first slot of the second FSPEC byte.
	if err := h.AddHandler(dummyField{name: "i8", mandatory: true, size: 1}, 8); err != nil {
		t.Fatalf("AddHandler: %v", err)
	}
	if h.mandatoryFspecSize != 2 {
		t.Fatalf("mandatoryFspecSize = %d, want 2", h.mandatoryFspecSize)
	}
	if h.mandatoryFspec[1] != 0x80 {
		t.Fatalf("mandatoryFspec[1] = %#x, want 0x80", h.mandatoryFspec[1])
	}
}

func TestAddHandler_ReplacesExistingSlot(t *testing.T) {
	h, _ := newTestHandler(t)
	first := dummyField{name: "first", size: 1}
	second := dummyField{name: "second", size: 2}
	if err := h.AddHandler(first, 1); err != nil {
		t.Fatalf("AddHandler(first): %v", err)
	}
	if err := h.AddHandler(second, 1); err != nil {
		t.Fatalf("AddHandler(second): %v", err)
	}
	if len(h.handlerPool) != 1 {
		t.Fatalf("handlerPool len = %d, want 1 (old slot occupant replaced)", len(h.handlerPool))
	}
	if h.itemLookup[0].Name() != "second" {
		t.Fatalf("itemLookup[0] = %q, want %q", h.itemLookup[0].Name(), "second")
	}
}

func TestProcessRecord_UnhandledItem(t *testing.T) {
	h, diag := newTestHandler(t)
	if err := h.AddHandler(dummyField{name: "i1", mandatory: true, size: 1}, 1); err != nil {
		t.Fatalf("AddHandler: %v", err)
	}
	// FSPEC requests FRN1 and FRN2, but only FRN1 has a handler.
	consumed := h.ProcessRecord([]byte{0xC0}, []byte{0x01, 0x02}, time.Now())
	if consumed != 0 {
		t.Fatalf("consumed = %d, want 0", consumed)
	}
	if diag.UnhandledItems.Load() != 1 {
		t.Errorf("UnhandledItems = %d, want 1", diag.UnhandledItems.Load())
	}
}

func TestProcessRecord_MalformedSize(t *testing.T) {
	h, diag := newTestHandler(t)
	if err := h.AddHandler(dummyField{name: "i1", mandatory: true, size: 4}, 1); err != nil {
		t.Fatalf("AddHandler: %v", err)
	}
	// Only 2 bytes of payload available for a 4-byte item.
	consumed := h.ProcessRecord([]byte{0x80}, []byte{0x01, 0x02}, time.Now())
	if consumed != 0 {
		t.Fatalf("consumed = %d, want 0", consumed)
	}
	if diag.MalformedRecords.Load() != 1 {
		t.Errorf("MalformedRecords = %d, want 1", diag.MalformedRecords.Load())
	}
}

func TestProcessRecord_HandlerRejectsPayload(t *testing.T) {
	h, diag := newTestHandler(t)
	boom := errors.New("boom")
	if err := h.AddHandler(dummyField{name: "i1", mandatory: true, size: 1, decodeErr: boom}, 1); err != nil {
		t.Fatalf("AddHandler: %v", err)
	}
	consumed := h.ProcessRecord([]byte{0x80}, []byte{0x01}, time.Now())
	if consumed != 0 {
		t.Fatalf("consumed = %d, want 0", consumed)
	}
	if diag.ProtocolViolations.Load() != 1 {
		t.Errorf("ProtocolViolations = %d, want 1", diag.ProtocolViolations.Load())
	}
}

func TestProcessRecord_FXStillSetAtFSPECEnd(t *testing.T) {
	h, diag := newTestHandler(t)
	if err := h.AddHandler(dummyField{name: "i1", mandatory: true, size: 1}, 1); err != nil {
		t.Fatalf("AddHandler: %v", err)
	}
	// FX bit (0x01) set on the only FSPEC byte handed in, with no
	// continuation byte supplied: the walk can never terminate.
	consumed := h.ProcessRecord([]byte{0x81}, []byte{0x01}, time.Now())
	if consumed != 0 {
		t.Fatalf("consumed = %d, want 0", consumed)
	}
	if diag.MalformedRecords.Load() != 1 {
		t.Errorf("MalformedRecords = %d, want 1", diag.MalformedRecords.Load())
	}
}

func TestProcessRecord_SuccessConsumesExactBytes(t *testing.T) {
	h, diag := newTestHandler(t)
	if err := h.AddHandler(dummyField{name: "i1", mandatory: true, size: 2}, 1); err != nil {
		t.Fatalf("AddHandler: %v", err)
	}
	consumed := h.ProcessRecord([]byte{0x80}, []byte{0x01, 0x02, 0xFF}, time.Now())
	if consumed != 2 {
		t.Fatalf("consumed = %d, want 2", consumed)
	}
	if diag.ProtocolViolations.Load() != 0 || diag.MalformedRecords.Load() != 0 || diag.UnhandledItems.Load() != 0 {
		t.Errorf("unexpected error counters after a clean decode: %+v", diag.Snapshot())
	}
}
