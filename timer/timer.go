// /home/krylon/go/src/github.com/blicero/wellspring/timer/timer.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 20:52:36 krylon>

// Package timer provides deferred callbacks that can be cancelled,
// with a real implementation on top of the time package and a fake one
// that is driven by a fake clock.
package timer

import (
	"time"

	"github.com/jmhodges/clock"
)

// Handle refers to a pending callback.
type Handle interface {
	// Stop cancels the callback. It returns false if the callback
	// already ran or was stopped before.
	Stop() bool
}

// Factory arms callbacks that run once d has elapsed.
type Factory interface {
	AfterFunc(d time.Duration, f func()) Handle
}

// Real arms callbacks using time.AfterFunc. They run on their own
// goroutine.
type Real struct{}

// AfterFunc arms f to run after d.
func (Real) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
} // func (Real) AfterFunc(d time.Duration, f func()) Handle

// Default returns the clock and Factory used outside of tests.
func Default() (clock.Clock, Factory) {
	return clock.New(), Real{}
} // func Default() (clock.Clock, Factory)
