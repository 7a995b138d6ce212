// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cat001

import (
	"time"

	"github.com/skyward-atc/go-asterix/asterix"
)

// Category is the ASTERIX category number this package decodes.
const Category uint8 = 1

// secondsPerDay128 is the number of 1/128s units in 24 hours
// (asterix.MaxTOD); systemClockTOD wraps its result modulo this value.
const secondsPerDay128 = asterix.MaxTOD

// systemClockTOD derives a fallback reference TOD (1/128 s since local
// midnight) from a wall-clock timestamp, for sources that have never
// supplied a full TOD.
func systemClockTOD(ts time.Time) uint32 {
	ts = ts.Local()
	midnight := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	elapsed := ts.Sub(midnight)
	if elapsed < 0 {
		return 0
	}
	units := uint64(elapsed.Seconds() * 128)
	return uint32(units % uint64(secondsPerDay128))
}

// postDecode implements the CAT 001 bookkeeping step: obtain a reference
// TOD (the source's last known full TOD, or a system-clock fallback),
// reconcile the record's truncated LSP clock against it if one was
// carried, and persist the resulting TOD back into the source state.
func postDecode(store *asterix.SourceStateStore, r *Report, ts time.Time) {
	ref, known := store.Get(r.Source)
	if !known {
		ref = systemClockTOD(ts)
	}

	tod := ref
	if r.HasLSPClock {
		tod = asterix.ReconcileTOD(r.TODLSP, ref)
	}
	r.TOD = tod
	store.InsertOrUpdate(r.Source, tod)
}

// NewCategoryHandler builds a fully-wired CAT 001 category handler: every
// worked field handler registered at its FRN, mandatory items flagged,
// and CAT 001's reconciliation bookkeeping installed.
func NewCategoryHandler(store *asterix.SourceStateStore) *asterix.CategoryHandler[Report] {
	h := asterix.NewCategoryHandler[Report](store, postDecode)

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(h.AddHandler(newSACSIC("I001/010", true), FRN010))
	must(h.AddHandler(newTargetReportDescriptor(), FRN020))
	must(h.AddHandler(newPolarPosition(), FRN040))
	must(h.AddHandler(newMode3A(), FRN070))
	must(h.AddHandler(newModeC(), FRN090))
	must(h.AddHandler(newExtendedSizeOnly("I001/130", 1, 1), FRN130))
	must(h.AddHandler(newFixedSizeOnly("I001/131", 1), FRN131))
	must(h.AddHandler(newLSPClock(), FRN141))
	must(h.AddHandler(newFixedSizeOnly("I001/150", 1), FRN150))
	must(h.AddHandler(newFixedSizeOnly("I001/050", 2), FRN050))

	return h
}
