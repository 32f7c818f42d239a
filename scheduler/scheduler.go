// /home/krylon/go/src/github.com/blicero/wellspring/scheduler/scheduler.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 21:47:33 krylon>

// Package scheduler turns requests for Reminders into deferred
// notifications. Every Reminder is stored before its callbacks are
// armed, and removed from the store once it has gone off, so pending
// Reminders can be re-armed after a restart.
package scheduler

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/logdomain"
	"github.com/blicero/wellspring/notify"
	"github.com/blicero/wellspring/objects"
	"github.com/blicero/wellspring/objects/relday"
	"github.com/blicero/wellspring/timer"
	"github.com/jmhodges/clock"
)

// ErrInvalidRequest is returned by Schedule when the request itself is
// malformed, as opposed to lying in the past.
var ErrInvalidRequest = errors.New("invalid reminder request")

// ErrStopped is returned by a Scheduler that has been stopped.
var ErrStopped = errors.New("scheduler is stopped")

// Store is where the Scheduler keeps pending Reminders.
type Store interface {
	ReminderPut(r *objects.Reminder) error
	ReminderDelete(id string) error
	ReminderGetAll() ([]objects.Reminder, error)
}

// txStore is implemented by Stores that can group several changes into
// one transaction.
type txStore interface {
	Begin() error
	Commit() error
	Rollback() error
}

// armed holds the callbacks for one Reminder. gen tells callbacks
// from an earlier Schedule call for the same ID apart from current ones.
type armed struct {
	gen  uint64
	lead timer.Handle
	main timer.Handle
}

// Scheduler arms a main and, if there is enough time left, a lead
// notification for every Reminder.
type Scheduler struct {
	log    *log.Logger
	clk    clock.Clock
	timers timer.Factory
	store  Store
	sink   notify.Sink
	lock   sync.Mutex
	gen     uint64
	armed   map[string]*armed
	stopped bool
}

// New creates a Scheduler. The Scheduler assumes exclusive use of store.
func New(store Store, sink notify.Sink, clk clock.Clock, timers timer.Factory) (*Scheduler, error) {
	var (
		err error
		s   = &Scheduler{
			clk:    clk,
			timers: timers,
			store:  store,
			sink:   sink,
			armed:  make(map[string]*armed),
		}
	)

	if s.log, err = common.GetLogger(logdomain.Scheduler); err != nil {
		return nil, err
	}

	return s, nil
} // func New(store Store, sink notify.Sink, clk clock.Clock, timers timer.Factory) (*Scheduler, error)

// Schedule stores a Reminder going off at tod on the day given by date
// and arms its notifications. If a Reminder with the same ID is pending,
// it is replaced.
//
// If the Reminder would go off at or before the current time, Schedule
// returns false and a nil error, and neither stores nor arms anything.
// A non-nil error means the request was malformed or the Reminder could
// not be stored.
func (s *Scheduler) Schedule(id, title string, tod objects.TimeOfDay, date relday.RelDay, duration string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: empty ID", ErrInvalidRequest)
	} else if !tod.Valid() {
		return false, fmt.Errorf("%w: time of day %s", ErrInvalidRequest, tod)
	} else if !date.Valid() {
		return false, fmt.Errorf("%w: date %s", ErrInvalidRequest, date)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return false, ErrStopped
	}

	var (
		err error
		now = s.clk.Now()
		r   = objects.Reminder{
			ID:       id,
			Title:    title,
			Time:     tod,
			Date:     date,
			Duration: duration,
			FireAt:   objects.FireTime(now, tod, date),
		}
	)

	if r.IsDue(now) {
		s.log.Printf("[INFO] Reject Reminder %q (%q): %s is not in the future\n",
			id,
			title,
			r.FireAt.Format(common.TimestampFormat))
		return false, nil
	} else if err = s.store.ReminderPut(&r); err != nil {
		s.log.Printf("[ERROR] Cannot store Reminder %q (%q): %s\n",
			id,
			title,
			err.Error())
		return false, fmt.Errorf("store reminder %q: %w", id, err)
	}

	s.arm(r, now)

	return true, nil
} // func (s *Scheduler) Schedule(...) (bool, error)

// Rehydrate arms the callbacks for all Reminders in the store that are
// still due in the future. Reminders whose time has passed are removed
// from the store without going off. It returns the number of Reminders
// that were armed.
func (s *Scheduler) Rehydrate() (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var (
		err       error
		reminders []objects.Reminder
		missed    []objects.Reminder
		upcoming  []objects.Reminder
		now       = s.clk.Now()
	)

	if s.stopped {
		return 0, ErrStopped
	} else if reminders, err = s.store.ReminderGetAll(); err != nil {
		s.log.Printf("[ERROR] Cannot load pending Reminders: %s\n",
			err.Error())
		return 0, fmt.Errorf("load reminders: %w", err)
	}

	for _, r := range reminders {
		if r.IsDue(now) {
			s.log.Printf("[INFO] Discard missed Reminder %q (%q), it was due at %s\n",
				r.ID,
				r.Title,
				r.FireAt.Format(common.TimestampFormat))
			missed = append(missed, r)
		} else {
			upcoming = append(upcoming, r)
		}
	}

	if err = s.discard(missed); err != nil {
		return 0, err
	}

	for _, r := range upcoming {
		s.arm(r, now)
	}

	s.log.Printf("[INFO] Rehydrated %d of %d Reminders\n",
		len(upcoming),
		len(reminders))

	return len(upcoming), nil
} // func (s *Scheduler) Rehydrate() (int, error)

// discard removes missed Reminders from the store. If the store supports
// transactions, they are removed all at once or not at all.
// It must be called with the lock held.
func (s *Scheduler) discard(missed []objects.Reminder) error {
	if len(missed) == 0 {
		return nil
	}

	var (
		err      error
		tx, isTx = s.store.(txStore)
	)

	if isTx {
		if err = tx.Begin(); err != nil {
			s.log.Printf("[ERROR] Cannot begin transaction: %s\n",
				err.Error())
			return fmt.Errorf("begin transaction: %w", err)
		}
	}

	for _, r := range missed {
		if err = s.store.ReminderDelete(r.ID); err != nil {
			s.log.Printf("[ERROR] Cannot delete missed Reminder %q: %s\n",
				r.ID,
				err.Error())
			if isTx {
				tx.Rollback() // nolint: errcheck
			}
			return fmt.Errorf("delete reminder %q: %w", r.ID, err)
		}
	}

	if isTx {
		if err = tx.Commit(); err != nil {
			s.log.Printf("[ERROR] Cannot commit deletion of %d missed Reminders: %s\n",
				len(missed),
				err.Error())
			return fmt.Errorf("commit transaction: %w", err)
		}
	}

	return nil
} // func (s *Scheduler) discard(missed []objects.Reminder) error

// Cancel removes a Reminder from the store and disarms its callbacks.
// Cancelling a Reminder that does not exist is not an error.
func (s *Scheduler) Cancel(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return ErrStopped
	} else if err := s.store.ReminderDelete(id); err != nil {
		s.log.Printf("[ERROR] Cannot delete Reminder %q: %s\n",
			id,
			err.Error())
		return fmt.Errorf("delete reminder %q: %w", id, err)
	}

	s.disarm(id)
	return nil
} // func (s *Scheduler) Cancel(id string) error

// Pending returns all Reminders in the store.
func (s *Scheduler) Pending() ([]objects.Reminder, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return nil, ErrStopped
	}

	var reminders, err = s.store.ReminderGetAll()

	if err != nil {
		return nil, fmt.Errorf("load reminders: %w", err)
	}

	return reminders, nil
} // func (s *Scheduler) Pending() ([]objects.Reminder, error)

// Armed returns the number of callbacks that are pending for the
// Reminder with the given ID.
func (s *Scheduler) Armed(id string) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	var (
		cnt int
		a   = s.armed[id]
	)

	if a == nil {
		return 0
	} else if a.lead != nil {
		cnt++
	}

	if a.main != nil {
		cnt++
	}

	return cnt
} // func (s *Scheduler) Armed(id string) int

// Stop disarms all pending callbacks. The store is left alone, so the
// Reminders are picked up again by Rehydrate. Once stopped, the
// Scheduler no longer touches the store, not even from a callback that
// was already running, so the store may be closed right after Stop
// returns.
func (s *Scheduler) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.stopped = true

	for id := range s.armed {
		s.disarm(id)
	}
} // func (s *Scheduler) Stop()

// arm must be called with the lock held.
func (s *Scheduler) arm(r objects.Reminder, now time.Time) {
	s.disarm(r.ID)

	s.gen++

	var a = &armed{gen: s.gen}

	if r.HasLead(now) {
		a.lead = s.timers.AfterFunc(r.LeadAt().Sub(now), func() {
			s.fireLead(r, a.gen)
		})
	}

	a.main = s.timers.AfterFunc(r.FireAt.Sub(now), func() {
		s.fireMain(r, a.gen)
	})

	s.armed[r.ID] = a

	s.log.Printf("[DEBUG] Armed Reminder %q (%q) for %s, lead: %t\n",
		r.ID,
		r.Title,
		r.FireAt.Format(common.TimestampFormat),
		a.lead != nil)
} // func (s *Scheduler) arm(r objects.Reminder, now time.Time)

// disarm must be called with the lock held.
func (s *Scheduler) disarm(id string) {
	var a = s.armed[id]

	if a == nil {
		return
	}

	if a.lead != nil {
		a.lead.Stop()
	}

	if a.main != nil {
		a.main.Stop()
	}

	delete(s.armed, id)
} // func (s *Scheduler) disarm(id string)

// current returns the callbacks for id if they belong to generation gen.
// It must be called with the lock held.
func (s *Scheduler) current(id string, gen uint64) *armed {
	var a = s.armed[id]

	if a == nil || a.gen != gen {
		return nil
	}

	return a
} // func (s *Scheduler) current(id string, gen uint64) *armed

func (s *Scheduler) fireLead(r objects.Reminder, gen uint64) {
	s.lock.Lock()
	var a = s.current(r.ID, gen)
	if a != nil {
		a.lead = nil
	}
	s.lock.Unlock()

	if a == nil {
		return
	}

	s.log.Printf("[DEBUG] Reminder %q (%q) is coming up\n",
		r.ID,
		r.Title)

	if err := notify.Post(s.sink, r.Lead()); err != nil {
		s.log.Printf("[ERROR] Cannot post lead notification for Reminder %q: %s\n",
			r.ID,
			err.Error())
	}
} // func (s *Scheduler) fireLead(r objects.Reminder, gen uint64)

func (s *Scheduler) fireMain(r objects.Reminder, gen uint64) {
	s.lock.Lock()
	var a = s.current(r.ID, gen)
	if a != nil {
		if a.lead != nil {
			a.lead.Stop()
		}
		delete(s.armed, r.ID)
	}
	s.lock.Unlock()

	if a == nil {
		return
	}

	s.log.Printf("[DEBUG] Reminder %q (%q) is due\n",
		r.ID,
		r.Title)

	if err := notify.Post(s.sink, &r); err != nil {
		s.log.Printf("[ERROR] Cannot post notification for Reminder %q: %s\n",
			r.ID,
			err.Error())
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		s.log.Printf("[DEBUG] Scheduler was stopped while Reminder %q went off, leaving it in the store\n",
			r.ID)
		return
	}

	// The ID may have been scheduled again while we were posting the
	// notification, in that case the stored Reminder is the new one.
	if _, ok := s.armed[r.ID]; ok {
		return
	} else if err := s.store.ReminderDelete(r.ID); err != nil {
		s.log.Printf("[ERROR] Cannot delete Reminder %q after it went off: %s\n",
			r.ID,
			err.Error())
	}
} // func (s *Scheduler) fireMain(r objects.Reminder, gen uint64)
