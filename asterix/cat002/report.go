// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package cat002 decodes ASTERIX Category 002, Monoradar Service Messages.
package cat002

import (
	"fmt"

	"github.com/skyward-atc/go-asterix/asterix"
)

// Report is a decoded CAT 002 Monoradar Service Message.
type Report struct {
	Source asterix.SourceID
	TOD    uint32
	RPM    float64
}

// SourceIdentity implements asterix.Reporter.
func (r *Report) SourceIdentity() asterix.SourceID { return r.Source }

func (r *Report) String() string {
	return fmt.Sprintf("CAT002<%s tod=%d rpm=%.2f>", r.Source, r.TOD, r.RPM)
}
