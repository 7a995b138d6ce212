// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asterix

import (
	"sync"
	"weak"
)

// Subscriber receives decoded reports from a category handler's fan-out.
// Delivery is synchronous, on the decoding goroutine.
type Subscriber[R any] interface {
	OnReport(report *R)
}

// Handle is the strong reference a caller keeps to stay subscribed. The
// listener registry only ever holds a weak pointer to the Handle, so a
// subscriber that the caller has otherwise dropped is pruned instead of
// kept alive by the decoder.
type Handle[R any] struct {
	sub Subscriber[R]
}

// NewHandle wraps sub for registration with a Listeners fan-out. The
// caller must keep the returned *Handle reachable for as long as it wants
// to keep receiving reports.
func NewHandle[R any](sub Subscriber[R]) *Handle[R] {
	return &Handle[R]{sub: sub}
}

// Listeners is the multi-reader-single-writer list of weak subscriber
// handles belonging to one category handler.
type Listeners[R any] struct {
	mu   sync.RWMutex
	weak []weak.Pointer[Handle[R]]
}

// Add registers h under the exclusive lock. Duplicate handles (by
// pointer identity) are ignored. Expired entries are pruned opportunistically.
func (l *Listeners[R]) Add(h *Handle[R]) {
	if h == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	live := make([]weak.Pointer[Handle[R]], 0, len(l.weak)+1)
	for _, wp := range l.weak {
		got := wp.Value()
		if got == nil {
			continue
		}
		live = append(live, wp)
		if got == h {
			// already registered; pruned list is enough, nothing to add.
			l.weak = live
			return
		}
	}
	l.weak = append(live, weak.Make(h))
}

// FanOut delivers report to every live subscriber, under the shared lock.
// Each weak handle is upgraded transiently for the duration of the call
// and dropped immediately after. Callers must not re-enter the decoder
// from inside OnReport.
func (l *Listeners[R]) FanOut(report *R) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, wp := range l.weak {
		if h := wp.Value(); h != nil {
			h.sub.OnReport(report)
		}
	}
}

// prune drops expired weak handles under the exclusive lock. Nothing in
// the package calls it (Add already drops expired entries as it
// registers); it is never required for correctness, only for bounding
// memory.
func (l *Listeners[R]) prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	live := l.weak[:0]
	for _, wp := range l.weak {
		if wp.Value() != nil {
			live = append(live, wp)
		}
	}
	l.weak = live
}
