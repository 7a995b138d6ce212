// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cat001

import (
	"encoding/binary"
	"math"

	"github.com/skyward-atc/go-asterix/asterix"
	"github.com/skyward-atc/go-asterix/asterix/bitwalker"
)

// Field record numbers for this category's UAP. FRN3 = I001/040 is fixed
// by the data model (§3); the rest follow the same Primary-Surveillance
// order real CAT 001 feeds use.
const (
	FRN010 = 1
	FRN020 = 2
	FRN040 = 3
	FRN070 = 4
	FRN090 = 5
	FRN130 = 6
	FRN131 = 7
	FRN141 = 8
	FRN150 = 9
	FRN050 = 10
)

// rangeUnitNM and nmToMeters convert raw range units (1/128 nmi) to metres.
const rangeUnitNM = 1.0 / 128.0
const nmToMeters = 1852.0

// azimuthUnitRad converts a raw 16-bit azimuth to radians: a full
// revolution (65536 units) maps to 2*pi.
const azimuthUnitRad = math.Pi / 32768

// sacSIC decodes I001/010: byte 0 -> SAC, byte 1 -> SIC (the same layout
// cat002 decodes for I002/010 with its own handler).
type sacSIC struct {
	asterix.FixedSize
	name      string
	mandatory bool
}

func newSACSIC(name string, mandatory bool) sacSIC {
	return sacSIC{FixedSize: asterix.FixedSize{N: 2}, name: name, mandatory: mandatory}
}

func (h sacSIC) Name() string    { return h.name }
func (h sacSIC) Mandatory() bool { return h.mandatory }
func (h sacSIC) Decode(r *Report, data []byte) error {
	r.Source = asterix.SourceID{SAC: data[0], SIC: data[1]}
	return nil
}

// targetReportDescriptor decodes I001/020.
type targetReportDescriptor struct {
	asterix.ExtendedSize
}

func newTargetReportDescriptor() targetReportDescriptor {
	return targetReportDescriptor{ExtendedSize: asterix.ExtendedSize{InitialK: 1, Increment: 1}}
}

func (targetReportDescriptor) Name() string    { return "I001/020" }
func (targetReportDescriptor) Mandatory() bool { return true }

func (targetReportDescriptor) Decode(r *Report, data []byte) error {
	c0 := bitwalker.Cursor(data[0])
	if c0.Bits(7, 6) != 0 {
		return asterix.ErrProtocolViolation
	}
	r.Descriptor.SSRPSR = SSRPSR(c0.Bits(5, 4))
	r.Descriptor.SPI = c0.Bit(2)
	fx := c0.Bit(0)

	if !fx {
		r.Descriptor.Extended = false
		return nil
	}
	if len(data) < 2 {
		return asterix.ErrNotEnoughData
	}
	c1 := bitwalker.Cursor(data[1])
	if c1.Bit(7) || c1.Bit(4) || c1.Bit(3) {
		return asterix.ErrProtocolViolation
	}
	r.Descriptor.Extended = true
	r.Descriptor.DS1DS2 = c1.Bits(6, 5)
	if c1.Bit(0) {
		// any further extension is rejected
		return asterix.ErrProtocolViolation
	}
	return nil
}

// polarPosition decodes I001/040: range and azimuth.
type polarPosition struct {
	asterix.FixedSize
}

func newPolarPosition() polarPosition {
	return polarPosition{FixedSize: asterix.FixedSize{N: 4}}
}

func (polarPosition) Name() string    { return "I001/040" }
func (polarPosition) Mandatory() bool { return true }

func (polarPosition) Decode(r *Report, data []byte) error {
	rangeRaw := binary.BigEndian.Uint16(data[0:2])
	azimuthRaw := binary.BigEndian.Uint16(data[2:4])
	r.RangeM = (float64(rangeRaw) * rangeUnitNM) * nmToMeters
	r.AzimuthRad = float64(azimuthRaw) * azimuthUnitRad
	return nil
}

// mode3A decodes I001/070.
type mode3A struct {
	asterix.FixedSize
}

func newMode3A() mode3A { return mode3A{FixedSize: asterix.FixedSize{N: 2}} }

func (mode3A) Name() string    { return "I001/070" }
func (mode3A) Mandatory() bool { return false }

func (mode3A) Decode(r *Report, data []byte) error {
	raw := binary.BigEndian.Uint16(data)
	r.HasMode3A = true
	r.Mode3A = Mode3A{
		Validated: raw&0x8000 != 0,
		Garbled:   raw&0x4000 != 0,
		Local:     raw&0x2000 != 0,
		Code:      raw & 0x0FFF,
	}
	return nil
}

// modeCHeightUnit converts a raw 25ft unit to metres (1 foot = 0.3048m).
const modeCHeightUnit = 25.0 * 0.3048

// modeC decodes I001/090.
type modeC struct {
	asterix.FixedSize
}

func newModeC() modeC { return modeC{FixedSize: asterix.FixedSize{N: 2}} }

func (modeC) Name() string    { return "I001/090" }
func (modeC) Mandatory() bool { return false }

func (modeC) Decode(r *Report, data []byte) error {
	raw := binary.BigEndian.Uint16(data)
	validated := raw&0x8000 != 0
	garbled := raw&0x4000 != 0
	value := int16(raw << 2) >> 2 // sign-extend the low 14 bits to int16
	r.HasModeC = true
	r.ModeC = ModeCHeight{
		Value:     value,
		HeightM:   float64(value) * modeCHeightUnit,
		Validated: validated,
		Garbled:   garbled,
	}
	return nil
}

// lspClock decodes I001/141: the truncated 16-bit LSP clock.
type lspClock struct {
	asterix.FixedSize
}

func newLSPClock() lspClock { return lspClock{FixedSize: asterix.FixedSize{N: 2}} }

func (lspClock) Name() string    { return "I001/141" }
func (lspClock) Mandatory() bool { return false }

func (lspClock) Decode(r *Report, data []byte) error {
	r.TODLSP = binary.BigEndian.Uint16(data)
	r.HasLSPClock = true
	return nil
}

// sizeRule is the minimal capability a size-only item needs: knowing its
// own extent. Both asterix.FixedSize and asterix.ExtendedSize satisfy it.
type sizeRule interface {
	Size(data []byte) int
}

// sizeOnly recognises an item's presence and consumes its bytes without
// interpreting them, for items this package recognises but does not
// interpret (I001/130, I001/131, I001/150, I001/050).
type sizeOnly struct {
	rule sizeRule
	name string
}

func (h sizeOnly) Name() string                   { return h.name }
func (sizeOnly) Mandatory() bool                  { return false }
func (h sizeOnly) Size(data []byte) int           { return h.rule.Size(data) }
func (sizeOnly) Decode(_ *Report, _ []byte) error { return nil }

func newFixedSizeOnly(name string, n int) sizeOnly {
	return sizeOnly{rule: asterix.FixedSize{N: n}, name: name}
}

func newExtendedSizeOnly(name string, k, inc int) sizeOnly {
	return sizeOnly{rule: asterix.ExtendedSize{InitialK: k, Increment: inc}, name: name}
}
