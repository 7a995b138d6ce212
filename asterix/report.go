// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asterix

import "fmt"

// SourceID is the (SAC, SIC) pair identifying a data source. It is
// comparable, so it is used directly as a map key by SourceStateStore.
type SourceID struct {
	SAC uint8
	SIC uint8
}

// Less gives SourceID the lexicographic total order named in the data
// model: SAC compared first, SIC breaking ties.
func (id SourceID) Less(other SourceID) bool {
	if id.SAC != other.SAC {
		return id.SAC < other.SAC
	}
	return id.SIC < other.SIC
}

func (id SourceID) String() string {
	return fmt.Sprintf("SRC<%d,%d>", id.SAC, id.SIC)
}

// Reporter is implemented by the worked categories' reports: it exposes
// the record's source identity. CategoryHandler does not require it (its
// report type parameter is unconstrained), and source-state bookkeeping is
// done per category by each handler's PostDecode.
type Reporter interface {
	SourceIdentity() SourceID
}
