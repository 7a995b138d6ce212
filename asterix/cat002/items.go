// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cat002

import (
	"encoding/binary"

	"github.com/skyward-atc/go-asterix/asterix"
)

// Field record numbers for this category's UAP.
const (
	FRN010 = 1
	FRN000 = 2
	FRN020 = 3
	FRN030 = 4
	FRN041 = 5
	FRN050 = 6
)

// sacSIC decodes I002/010: byte 0 -> SAC, byte 1 -> SIC.
type sacSIC struct {
	asterix.FixedSize
}

func newSACSIC() sacSIC { return sacSIC{FixedSize: asterix.FixedSize{N: 2}} }

func (sacSIC) Name() string    { return "I002/010" }
func (sacSIC) Mandatory() bool { return true }
func (sacSIC) Decode(r *Report, data []byte) error {
	r.Source = asterix.SourceID{SAC: data[0], SIC: data[1]}
	return nil
}

// tod decodes I002/030: a 24-bit big-endian Time-Of-Day, already in full
// 1/128 s units (no truncation, unlike CAT 001's I001/141).
type tod struct {
	asterix.FixedSize
}

func newTOD() tod { return tod{FixedSize: asterix.FixedSize{N: 3}} }

func (tod) Name() string    { return "I002/030" }
func (tod) Mandatory() bool { return true }
func (tod) Decode(r *Report, data []byte) error {
	r.TOD = uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	return nil
}

// antennaRotationUnit converts a raw 16-bit count to RPM.
const antennaRotationUnit = 1.0 / 128.0

// antennaRotationSpeed decodes I002/041.
type antennaRotationSpeed struct {
	asterix.FixedSize
}

func newAntennaRotationSpeed() antennaRotationSpeed {
	return antennaRotationSpeed{FixedSize: asterix.FixedSize{N: 2}}
}

func (antennaRotationSpeed) Name() string    { return "I002/041" }
func (antennaRotationSpeed) Mandatory() bool { return false }
func (antennaRotationSpeed) Decode(r *Report, data []byte) error {
	raw := binary.BigEndian.Uint16(data)
	r.RPM = float64(raw) * antennaRotationUnit
	return nil
}

// sizeRule is the minimal capability a size-only item needs.
type sizeRule interface {
	Size(data []byte) int
}

// sizeOnly recognises an item's presence and consumes its bytes without
// interpreting them (I002/000, I002/020, I002/050).
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
