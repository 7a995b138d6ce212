// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cat001

import (
	"math"
	"testing"
	"time"

	"github.com/skyward-atc/go-asterix/asterix"
)

func TestPolarPositionDecode_ConvertsRangeAndAzimuth(t *testing.T) {
	h := newPolarPosition()
	var r Report
	// range raw = 128 (1 nmi in 1/128 units), azimuth raw = 16384 (pi/2).
	data := []byte{0x00, 0x80, 0x40, 0x00}
	if err := h.Decode(&r, data); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if math.Abs(r.RangeM-1852.0) > 1e-6 {
		t.Errorf("RangeM = %f, want 1852.0", r.RangeM)
	}
	if math.Abs(r.AzimuthRad-math.Pi/2) > 1e-9 {
		t.Errorf("AzimuthRad = %f, want pi/2", r.AzimuthRad)
	}
}

func TestTargetReportDescriptor_NoExtension(t *testing.T) {
	h := newTargetReportDescriptor()
	var r Report
	if err := h.Decode(&r, []byte{0b0010_0100}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Descriptor.SSRPSR != SSRPSRSoleSecondaryDetection {
		t.Errorf("SSRPSR = %v, want SoleSecondaryDetection", r.Descriptor.SSRPSR)
	}
	if !r.Descriptor.SPI {
		t.Errorf("SPI = false, want true")
	}
	if r.Descriptor.Extended {
		t.Errorf("Extended = true, want false")
	}
}

func TestTargetReportDescriptor_RejectsReservedBits(t *testing.T) {
	h := newTargetReportDescriptor()
	var r Report
	if err := h.Decode(&r, []byte{0b1000_0000}); err == nil {
		t.Fatal("expected error for reserved bit 7 set, got nil")
	}
}

func TestTargetReportDescriptor_RejectsDoubleExtension(t *testing.T) {
	h := newTargetReportDescriptor()
	var r Report
	// octet0 FX set; octet1 FX also set (further extension).
	if err := h.Decode(&r, []byte{0x01, 0x01}); err == nil {
		t.Fatal("expected error for chained extension, got nil")
	}
}

func TestSize_ExtendedStopsAtFirstZeroFX(t *testing.T) {
	h := newTargetReportDescriptor()
	if n := h.Size([]byte{0x00}); n != 1 {
		t.Errorf("Size = %d, want 1", n)
	}
	if n := h.Size([]byte{0x01, 0x00}); n != 2 {
		t.Errorf("Size = %d, want 2", n)
	}
	if n := h.Size([]byte{0x01}); n != 0 {
		t.Errorf("Size = %d, want 0 (truncated)", n)
	}
}

func TestModeC_SignExtension(t *testing.T) {
	h := newModeC()
	var r Report
	// raw 14-bit value 0x3FFF (all ones) -> -1 once sign extended.
	if err := h.Decode(&r, []byte{0x3F, 0xFF}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.ModeC.Value != -1 {
		t.Errorf("Value = %d, want -1", r.ModeC.Value)
	}
}

func TestPostDecode_ReconcilesAgainstKnownSource(t *testing.T) {
	store := asterix.NewSourceStateStore()
	src := asterix.SourceID{SAC: 1, SIC: 2}
	store.InsertOrUpdate(src, 0x00_12_34_56)

	r := &Report{Source: src, TODLSP: 0x5678, HasLSPClock: true}
	postDecode(store, r, time.Now())

	want := asterix.ReconcileTOD(0x5678, 0x00_12_34_56)
	if r.TOD != want {
		t.Errorf("TOD = %#x, want %#x", r.TOD, want)
	}
	if got, ok := store.Get(src); !ok || got != r.TOD {
		t.Errorf("store not updated: got (%#x, %v), want (%#x, true)", got, ok, r.TOD)
	}
}

func TestPostDecode_FallsBackToSystemClockForUnknownSource(t *testing.T) {
	store := asterix.NewSourceStateStore()
	src := asterix.SourceID{SAC: 9, SIC: 9}

	r := &Report{Source: src}
	postDecode(store, r, time.Now())

	if r.TOD >= asterix.MaxTOD {
		t.Errorf("TOD = %#x, out of range", r.TOD)
	}
	if _, ok := store.Get(src); !ok {
		t.Errorf("expected source state to be seeded after first decode")
	}
}
