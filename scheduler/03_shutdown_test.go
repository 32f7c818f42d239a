// /home/krylon/go/src/github.com/blicero/wellspring/scheduler/03_shutdown_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 15:02:48 krylon>

package scheduler

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/wellspring/database"
	"github.com/blicero/wellspring/objects"
	"github.com/blicero/wellspring/objects/relday"
	"github.com/blicero/wellspring/timer"
)

// blockingSink holds up the delivery of one tag until it is released.
type blockingSink struct {
	tag     string
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSink) Deliver(title, body, tag string) error {
	if tag == b.tag {
		close(b.entered)
		<-b.release
	}
	return nil
}

func TestStopWhileFiring(t *testing.T) {
	var (
		err  error
		db   *database.Database
		s    *Scheduler
		rem  *objects.Reminder
		path = filepath.Join(t.TempDir(), "shutdown.db")
		f    = timer.NewFake(start)
		done = make(chan struct{})
		sink = &blockingSink{
			tag:     "x",
			entered: make(chan struct{}),
			release: make(chan struct{}),
		}
	)

	if db, err = database.Open(path); err != nil {
		t.Fatalf("Cannot open database: %s", err.Error())
	} else if s, err = New(db, sink, f.Clock, f); err != nil {
		t.Fatalf("Cannot create Scheduler: %s", err.Error())
	} else if ok, err := s.Schedule("x", "Wind down", objects.TimeOfDay{Hour: 20, Minute: 46}, relday.Today, ""); err != nil || !ok {
		t.Fatalf("Cannot schedule Reminder: %t, %v", ok, err)
	}

	go func() {
		f.Advance(time.Minute)
		close(done)
	}()

	select {
	case <-sink.entered:
	case <-time.After(time.Second * 5):
		t.Fatal("Reminder did not go off")
	}

	// Shut down the way the backend does while the notification is
	// still being posted.
	s.Stop()

	if err = db.Close(); err != nil {
		t.Fatalf("Cannot close database: %s", err.Error())
	}

	close(sink.release)

	select {
	case <-done:
	case <-time.After(time.Second * 5):
		t.Fatal("Callback did not return after the sink was released")
	}

	if _, err = s.Schedule("y", "Too late", objects.TimeOfDay{Hour: 22}, relday.Today, ""); !errors.Is(err, ErrStopped) {
		t.Errorf("Schedule after Stop: expected ErrStopped, got %v", err)
	}

	if db, err = database.Open(path); err != nil {
		t.Fatalf("Cannot reopen database: %s", err.Error())
	}

	defer db.Close() // nolint: errcheck

	if rem, err = db.ReminderGetByID("x"); err != nil {
		t.Fatalf("Cannot look up Reminder: %s", err.Error())
	} else if rem == nil {
		t.Error("A stopped Scheduler should leave the store alone")
	}
} // func TestStopWhileFiring(t *testing.T)

func TestStoppedRefusesWork(t *testing.T) {
	var (
		err error
		ok  bool
	)

	s, f, _ := setup(t, newMemStore())

	if ok, err = s.Schedule("a", "Stretch", objects.TimeOfDay{Hour: 22}, relday.Today, ""); err != nil || !ok {
		t.Fatalf("Cannot schedule Reminder: %t, %v", ok, err)
	}

	s.Stop()

	if f.Pending() != 0 {
		t.Errorf("Stop should disarm all callbacks, %d pending", f.Pending())
	}

	if ok, err = s.Schedule("b", "Stretch", objects.TimeOfDay{Hour: 22}, relday.Today, ""); ok || !errors.Is(err, ErrStopped) {
		t.Errorf("Schedule: expected ErrStopped, got %t, %v", ok, err)
	} else if err = s.Cancel("a"); !errors.Is(err, ErrStopped) {
		t.Errorf("Cancel: expected ErrStopped, got %v", err)
	} else if _, err = s.Pending(); !errors.Is(err, ErrStopped) {
		t.Errorf("Pending: expected ErrStopped, got %v", err)
	} else if _, err = s.Rehydrate(); !errors.Is(err, ErrStopped) {
		t.Errorf("Rehydrate: expected ErrStopped, got %v", err)
	} else if f.Pending() != 0 {
		t.Errorf("A stopped Scheduler armed %d callbacks", f.Pending())
	}
} // func TestStoppedRefusesWork(t *testing.T)

func TestRehydrateDiscardsInTransaction(t *testing.T) {
	var (
		err     error
		db      *database.Database
		cnt     int
		pending []objects.Reminder
		items   = []objects.Reminder{
			{ID: "gone1", Title: "Missed", Time: objects.TimeOfDay{Hour: 19, Minute: 45}, FireAt: start.Add(-time.Hour)},
			{ID: "gone2", Title: "Missed", Time: objects.TimeOfDay{Hour: 20, Minute: 44}, FireAt: start.Add(-time.Minute)},
			{ID: "kept", Title: "Upcoming", Time: objects.TimeOfDay{Hour: 21, Minute: 15}, FireAt: start.Add(time.Minute * 30)},
		}
	)

	if db, err = database.Open(filepath.Join(t.TempDir(), "discard.db")); err != nil {
		t.Fatalf("Cannot open database: %s", err.Error())
	}

	defer db.Close() // nolint: errcheck

	for idx := range items {
		if err = db.ReminderPut(&items[idx]); err != nil {
			t.Fatalf("Cannot store Reminder %s: %s", items[idx].ID, err.Error())
		}
	}

	s, f, _ := setup(t, db)

	if cnt, err = s.Rehydrate(); err != nil {
		t.Fatalf("Cannot rehydrate: %s", err.Error())
	} else if cnt != 1 {
		t.Errorf("Expected 1 rehydrated Reminder, got %d", cnt)
	} else if f.Pending() != 2 {
		t.Errorf("Expected lead and main callback, %d pending", f.Pending())
	}

	if pending, err = db.ReminderGetAll(); err != nil {
		t.Fatalf("Cannot query database: %s", err.Error())
	} else if len(pending) != 1 || pending[0].ID != "kept" {
		t.Errorf("Only the upcoming Reminder should be left: %v", pending)
	}

	// The transaction must have been finished.
	if err = db.Begin(); err != nil {
		t.Errorf("Cannot begin transaction after Rehydrate: %s", err.Error())
	} else if err = db.Rollback(); err != nil {
		t.Errorf("Cannot roll back transaction: %s", err.Error())
	}
} // func TestRehydrateDiscardsInTransaction(t *testing.T)

// txMemStore counts transactions and fails to delete one ID.
type txMemStore struct {
	*memStore
	failID                       string
	begun, committed, rolledBack int
}

func (s *txMemStore) Begin() error    { s.begun++; return nil }
func (s *txMemStore) Commit() error   { s.committed++; return nil }
func (s *txMemStore) Rollback() error { s.rolledBack++; return nil }

func (s *txMemStore) ReminderDelete(id string) error {
	if id == s.failID {
		return errStore
	}
	return s.memStore.ReminderDelete(id)
}

func TestRehydrateRollback(t *testing.T) {
	var (
		err   error
		store = &txMemStore{memStore: newMemStore(), failID: "b-bad"}
		items = []objects.Reminder{
			{ID: "a-old", FireAt: start.Add(-time.Hour)},
			{ID: "b-bad", FireAt: start.Add(-time.Minute)},
			{ID: "c-new", FireAt: start.Add(time.Hour)},
		}
	)

	for idx := range items {
		store.ReminderPut(&items[idx]) // nolint: errcheck
	}

	s, f, _ := setup(t, store)

	if _, err = s.Rehydrate(); !errors.Is(err, errStore) {
		t.Fatalf("Rehydrate should fail when a missed Reminder cannot be deleted, got %v", err)
	} else if store.begun != 1 || store.rolledBack != 1 || store.committed != 0 {
		t.Errorf("Unexpected transactions: %d begun, %d committed, %d rolled back",
			store.begun,
			store.committed,
			store.rolledBack)
	} else if f.Pending() != 0 {
		t.Errorf("A failed Rehydrate should not arm anything, %d pending", f.Pending())
	}
} // func TestRehydrateRollback(t *testing.T)
