// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asterix

import "errors"

// The closed error taxonomy of the decoder. Every parse failure the core
// can observe is one of these six sentinels; none ever crosses the public
// boundary as a panic. Each one except ErrNotEnoughData has a matching
// counter in Diagnostics; an error returned by a field handler's Decode,
// ErrNotEnoughData included, is counted under ProtocolViolations.
var (
	// ErrNotEnoughData means the payload was shorter than a handler's
	// reported size.
	ErrNotEnoughData = errors.New("asterix: not enough data for field")
	// ErrMalformedBlock means a block header was rejected by the packet
	// dispatcher's length bounds check.
	ErrMalformedBlock = errors.New("asterix: malformed block header")
	// ErrMalformedRecord means the FSPEC walk exhausted the payload
	// mid-item, or FX=1 persisted on the final allowed FSPEC byte.
	ErrMalformedRecord = errors.New("asterix: malformed record")
	// ErrProtocolViolation means a mandatory bit was missing from the
	// received FSPEC, an item rejected itself internally, or an FSPEC
	// encoded an FRN past the allowed range.
	ErrProtocolViolation = errors.New("asterix: protocol violation")
	// ErrUnhandledCategory means no handler is registered for a block's
	// category.
	ErrUnhandledCategory = errors.New("asterix: unhandled category")
	// ErrUnhandledItem means an FSPEC bit selected an FRN for which no
	// field handler is registered.
	ErrUnhandledItem = errors.New("asterix: unhandled item")
)
