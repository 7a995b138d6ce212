// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package bitwalker pulls compile-time-known-width subfields out of a
// single octet. It generalizes the inline bit masking idiom ASTERIX field
// decoders lean on everywhere (e.g. "bits 5..4 -> SSR/PSR") into one small
// reusable cursor, instead of repeating `(b >> n) & mask` at every call
// site.
package bitwalker

// Cursor addresses bits of a single byte in transmission order: bit 7 is
// the most significant, bit 0 the least. It carries no position state of
// its own — every accessor is pure and stateless over the wrapped byte.
type Cursor byte

// Bit reports whether bit number pos (7 = MSB .. 0 = LSB) is set.
func (c Cursor) Bit(pos int) bool {
	return byte(c)&(1<<uint(pos)) != 0
}

// Bits extracts the inclusive bit range [hi, lo] (7 = MSB .. 0 = LSB) as an
// unsigned value right-aligned to bit 0.
func (c Cursor) Bits(hi, lo int) byte {
	width := hi - lo + 1
	mask := byte(1<<uint(width)) - 1
	return (byte(c) >> uint(lo)) & mask
}
