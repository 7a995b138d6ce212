// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cat002

import (
	"time"

	"github.com/skyward-atc/go-asterix/asterix"
)

// Category is the ASTERIX category number this package decodes.
const Category uint8 = 2

// postDecode implements the CAT 002 bookkeeping step: I002/030 already
// carries a full, untruncated TOD, so it is written straight into the
// source state with no reconciliation needed.
func postDecode(store *asterix.SourceStateStore, r *Report, _ time.Time) {
	store.InsertOrUpdate(r.Source, r.TOD)
}

// NewCategoryHandler builds a fully-wired CAT 002 category handler.
func NewCategoryHandler(store *asterix.SourceStateStore) *asterix.CategoryHandler[Report] {
	h := asterix.NewCategoryHandler[Report](store, postDecode)

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(h.AddHandler(newSACSIC(), FRN010))
	must(h.AddHandler(newFixedSizeOnly("I002/000", 1), FRN000))
	must(h.AddHandler(newFixedSizeOnly("I002/020", 1), FRN020))
	must(h.AddHandler(newTOD(), FRN030))
	must(h.AddHandler(newAntennaRotationSpeed(), FRN041))
	must(h.AddHandler(newFixedSizeOnly("I002/050", 2), FRN050))

	return h
}
