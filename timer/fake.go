// /home/krylon/go/src/github.com/blicero/wellspring/timer/fake.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 21:14:08 krylon>

package timer

import (
	"sort"
	"sync"
	"time"

	"github.com/jmhodges/clock"
)

// Fake arms callbacks against a fake clock. Callbacks only run when
// Advance moves the clock past their due time, and they run
// synchronously on the goroutine that called Advance, in order of their
// due time. Callbacks due at the same instant run in the order they
// were armed.
type Fake struct {
	Clock   clock.FakeClock
	lock    sync.Mutex
	seq     uint64
	pending []*fakeHandle
}

type fakeHandle struct {
	f      *Fake
	due    time.Time
	seq    uint64
	fn     func()
	active bool
}

// NewFake returns a Fake whose clock is set to start.
func NewFake(start time.Time) *Fake {
	var f = &Fake{Clock: clock.NewFake()}

	f.Clock.Set(start)
	return f
} // func NewFake(start time.Time) *Fake

// AfterFunc arms fn to run once the fake clock has moved forward by d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Handle {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.seq++
	var h = &fakeHandle{
		f:      f,
		due:    f.Clock.Now().Add(d),
		seq:    f.seq,
		fn:     fn,
		active: true,
	}

	f.pending = append(f.pending, h)
	return h
} // func (f *Fake) AfterFunc(d time.Duration, fn func()) Handle

func (h *fakeHandle) Stop() bool {
	h.f.lock.Lock()
	defer h.f.lock.Unlock()

	if !h.active {
		return false
	}

	h.active = false
	h.f.remove(h)
	return true
} // func (h *fakeHandle) Stop() bool

// remove must be called with the lock held.
func (f *Fake) remove(h *fakeHandle) {
	for idx, p := range f.pending {
		if p == h {
			f.pending = append(f.pending[:idx], f.pending[idx+1:]...)
			return
		}
	}
} // func (f *Fake) remove(h *fakeHandle)

// Pending returns the number of callbacks that have been armed and have
// neither run nor been stopped.
func (f *Fake) Pending() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.pending)
} // func (f *Fake) Pending() int

// Next returns the due time of the earliest pending callback.
func (f *Fake) Next() (time.Time, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()

	var h = f.earliest()

	if h == nil {
		return time.Time{}, false
	}

	return h.due, true
} // func (f *Fake) Next() (time.Time, bool)

// earliest must be called with the lock held.
func (f *Fake) earliest() *fakeHandle {
	if len(f.pending) == 0 {
		return nil
	}

	sort.SliceStable(f.pending, func(i, j int) bool {
		if f.pending[i].due.Equal(f.pending[j].due) {
			return f.pending[i].seq < f.pending[j].seq
		}
		return f.pending[i].due.Before(f.pending[j].due)
	})

	return f.pending[0]
} // func (f *Fake) earliest() *fakeHandle

// Advance moves the fake clock forward by d, running every callback
// that falls due on the way. Callbacks armed by other callbacks run as
// well if they fall due before the target time. The clock reads each
// callback's due time while it runs.
func (f *Fake) Advance(d time.Duration) int {
	var (
		cnt    int
		target = f.Clock.Now().Add(d)
	)

	for {
		f.lock.Lock()
		var h = f.earliest()

		if h == nil || h.due.After(target) {
			f.lock.Unlock()
			break
		}

		h.active = false
		f.remove(h)
		f.lock.Unlock()

		if h.due.After(f.Clock.Now()) {
			f.Clock.Set(h.due)
		}

		h.fn()
		cnt++
	}

	f.Clock.Set(target)
	return cnt
} // func (f *Fake) Advance(d time.Duration) int
