// /home/krylon/go/src/github.com/blicero/wellspring/watchdog/watchdog.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 16:58:20 krylon>

// Package watchdog keeps track of when the user was last active and
// nudges them when they have been away for too long.
package watchdog

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/database"
	"github.com/blicero/wellspring/logdomain"
	"github.com/blicero/wellspring/notify"
	"github.com/blicero/wellspring/timer"
	"github.com/jmhodges/clock"
)

// IdleThreshold is how long the user has to be inactive before we
// nudge them.
const IdleThreshold = time.Hour * 24

const (
	idleTag   = "idle"
	idleTitle = "We miss you"
	idleBody  = "It has been a while. Take a few minutes for yourself today."
)

// Source identifies a kind of user activity.
type Source string

// These are the sources of activity the Watchdog counts by default.
const (
	Pointer Source = "pointer"
	Key     Source = "key"
	Touch   Source = "touch"
	Scroll  Source = "scroll"
)

// DefaultSources returns the Sources the Watchdog counts as activity
// unless told otherwise.
func DefaultSources() []Source {
	return []Source{Pointer, Key, Touch, Scroll}
} // func DefaultSources() []Source

// StateStore is where the Watchdog records the time of the last activity.
type StateStore interface {
	StateSet(key, val string) error
}

// Watchdog posts a notification when no activity has been observed for
// IdleThreshold, and then again every IdleThreshold until there is
// activity again.
type Watchdog struct {
	log      *log.Logger
	clk      clock.Clock
	timers   timer.Factory
	sink     notify.Sink
	store    StateStore
	sources  map[Source]bool
	lock     sync.Mutex
	running  bool
	last     time.Time
	idleAt   time.Time
	idle     timer.Handle
	gen      uint64
	notified int
}

// New creates a Watchdog. If no sources are given, DefaultSources are
// used. store may be nil.
func New(sink notify.Sink, store StateStore, clk clock.Clock, timers timer.Factory, sources ...Source) (*Watchdog, error) {
	var (
		err error
		w   = &Watchdog{
			clk:     clk,
			timers:  timers,
			sink:    sink,
			store:   store,
			sources: make(map[Source]bool),
		}
	)

	if w.log, err = common.GetLogger(logdomain.Watchdog); err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		sources = DefaultSources()
	}

	for _, src := range sources {
		w.sources[src] = true
	}

	return w, nil
} // func New(...) (*Watchdog, error)

// Start records the current time as the last activity and arms the
// idle callback.
func (w *Watchdog) Start() {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.running = true
	w.touch()
} // func (w *Watchdog) Start()

// OnActivity records the current time as the last activity and moves
// the idle callback to IdleThreshold from now.
func (w *Watchdog) OnActivity() {
	w.lock.Lock()
	defer w.lock.Unlock()

	if !w.running {
		w.last = w.clk.Now()
		return
	}

	w.touch()
} // func (w *Watchdog) OnActivity()

// Signal reports activity from src. It returns false if src does not
// count as activity.
func (w *Watchdog) Signal(src Source) bool {
	if !w.sources[src] {
		return false
	}

	w.OnActivity()
	return true
} // func (w *Watchdog) Signal(src Source) bool

// Stop disarms the idle callback.
func (w *Watchdog) Stop() {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.running = false
	w.gen++
	if w.idle != nil {
		w.idle.Stop()
		w.idle = nil
	}
} // func (w *Watchdog) Stop()

// LastActivity returns the time of the last observed activity.
func (w *Watchdog) LastActivity() time.Time {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.last
} // func (w *Watchdog) LastActivity() time.Time

// IdleAt returns the time the idle notification is due, or the zero
// time if the Watchdog is not running.
func (w *Watchdog) IdleAt() time.Time {
	w.lock.Lock()
	defer w.lock.Unlock()

	if !w.running {
		return time.Time{}
	}

	return w.idleAt
} // func (w *Watchdog) IdleAt() time.Time

// Notified returns how often the idle notification has been posted.
func (w *Watchdog) Notified() int {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.notified
} // func (w *Watchdog) Notified() int

// touch must be called with the lock held.
func (w *Watchdog) touch() {
	w.last = w.clk.Now()
	w.arm(w.last)

	if w.store != nil {
		var stamp = strconv.FormatInt(w.last.UnixMilli(), 10)

		if err := w.store.StateSet(database.StateLastActivity, stamp); err != nil {
			w.log.Printf("[ERROR] Cannot record last activity: %s\n",
				err.Error())
		}
	}
} // func (w *Watchdog) touch()

// arm must be called with the lock held.
func (w *Watchdog) arm(from time.Time) {
	if w.idle != nil {
		w.idle.Stop()
	}

	w.gen++

	var gen = w.gen

	w.idleAt = from.Add(IdleThreshold)
	w.idle = w.timers.AfterFunc(w.idleAt.Sub(w.clk.Now()), func() {
		w.fire(gen)
	})
} // func (w *Watchdog) arm(from time.Time)

func (w *Watchdog) fire(gen uint64) {
	w.lock.Lock()
	if gen != w.gen || !w.running {
		w.lock.Unlock()
		return
	}
	w.idle = nil
	w.notified++
	w.lock.Unlock()

	w.log.Printf("[INFO] No activity for %s, nudging user\n",
		IdleThreshold)

	if err := w.sink.Deliver(idleTitle, idleBody, idleTag); err != nil {
		w.log.Printf("[ERROR] Cannot post idle notification: %s\n",
			err.Error())
	}

	w.lock.Lock()
	defer w.lock.Unlock()

	if gen == w.gen && w.running {
		w.arm(w.clk.Now())
	}
} // func (w *Watchdog) fire(gen uint64)
