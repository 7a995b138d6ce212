// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asterix

// FieldHandler decodes one ASTERIX data item into report R: a declared
// size discipline plus a decode routine, kept to two small concrete shapes
// (FixedSize, ExtendedSize) rather than a deep virtual hierarchy.
type FieldHandler[R any] interface {
	// Name identifies the item, e.g. "I001/040", for logging.
	Name() string
	// Mandatory reports whether the item's FSPEC bit must be set for the
	// record to be well-formed.
	Mandatory() bool
	// Size returns the number of bytes this item occupies at the front
	// of data, or 0 if data is too short to tell.
	Size(data []byte) int
	// Decode consumes exactly Size(data) bytes of data and writes into
	// report. An error here is always treated as a protocol violation:
	// the item rejected itself (e.g. non-zero reserved bits).
	Decode(report *R, data []byte) error
}

// FixedSize is embedded by field handlers whose wire size never depends
// on content.
type FixedSize struct {
	N int
}

// Size always returns N, regardless of data.
func (f FixedSize) Size(_ []byte) int { return f.N }

// ExtendedSize is embedded by field handlers using the FX-extended size
// discipline: start at InitialK bytes, and for as long as the last byte
// read has its FX bit (bit 0) set, extend by Increment more bytes.
type ExtendedSize struct {
	InitialK  int
	Increment int
}

// Size scans data for the FX-terminated extent. It returns 0 if data runs
// out before an FX=0 byte is found — the handler cannot yet tell its true
// size, which the category handler counts as a malformed record.
func (e ExtendedSize) Size(data []byte) int {
	n := e.InitialK
	for {
		if n > len(data) || n <= 0 {
			return 0
		}
		last := data[n-1]
		if last&0x01 == 0 {
			return n
		}
		n += e.Increment
	}
}
