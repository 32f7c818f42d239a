// /home/krylon/go/src/github.com/blicero/wellspring/database/02_database_crud_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 23:04:22 krylon>

package database

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/blicero/wellspring/objects"
	"github.com/blicero/wellspring/objects/relday"
)

const (
	itemCnt   = 32
	maxOffset = time.Hour * 168
)

var items []*objects.Reminder

func init() {
	items = make([]*objects.Reminder, itemCnt)

	var now = time.Now().Truncate(time.Millisecond)

	for i := range items {
		var r = &objects.Reminder{
			ID:       fmt.Sprintf("test-%03d", i),
			Title:    fmt.Sprintf("TEST #%03d", i),
			Time:     objects.TimeOfDay{Hour: i % 24, Minute: (i * 7) % 60},
			Date:     relday.RelDay(i % 3),
			Duration: fmt.Sprintf("%d Min", 5+i),
			FireAt:   now.Add(time.Duration(rand.Int63n(int64(maxOffset)))).Truncate(time.Millisecond),
		}

		items[i] = r
	}
}

func TestReminderPut(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, r := range items {
		if err := db.ReminderPut(r); err != nil {
			t.Fatalf("Cannot add Reminder %s: %s",
				r.Title,
				err.Error())
		}
	}
} // func TestReminderPut(t *testing.T)

func TestReminderGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		rem []objects.Reminder
	)

	if rem, err = db.ReminderGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Reminders: %s",
			err.Error())
	} else if len(rem) != len(items) {
		t.Fatalf("Unexpected number of Reminders: %d (expected %d)",
			len(rem),
			len(items))
	}

	for idx := 1; idx < len(rem); idx++ {
		if rem[idx].FireAt.Before(rem[idx-1].FireAt) {
			t.Errorf("Reminders are not ordered by due time: %s before %s",
				rem[idx-1].FireAt,
				rem[idx].FireAt)
		}
	}
} // func TestReminderGetAll(t *testing.T)

func TestReminderGetByID(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, r := range items {
		var (
			err error
			res *objects.Reminder
		)

		if res, err = db.ReminderGetByID(r.ID); err != nil {
			t.Fatalf("Cannot look up Reminder %q: %s", r.ID, err.Error())
		} else if res == nil {
			t.Fatalf("Reminder %q was not found", r.ID)
		} else if res.Title != r.Title ||
			res.Time != r.Time ||
			res.Date != r.Date ||
			res.Duration != r.Duration ||
			!res.FireAt.Equal(r.FireAt) {
			t.Errorf(`Reminder was not stored faithfully:
Expected:       %#v
Got:            %#v
`,
				r,
				res)
		}
	}

	if res, err := db.ReminderGetByID("does-not-exist"); err != nil {
		t.Errorf("Looking up a missing Reminder should not fail: %s", err.Error())
	} else if res != nil {
		t.Errorf("Looking up a missing Reminder should return nil, not %s", res)
	}
} // func TestReminderGetByID(t *testing.T)

func TestReminderOverwrite(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		res *objects.Reminder
		all []objects.Reminder
		r   = *items[0]
	)

	r.Title = "Overwritten"
	r.FireAt = r.FireAt.Add(time.Hour)

	if err = db.ReminderPut(&r); err != nil {
		t.Fatalf("Cannot overwrite Reminder %q: %s", r.ID, err.Error())
	} else if res, err = db.ReminderGetByID(r.ID); err != nil {
		t.Fatalf("Cannot look up Reminder %q: %s", r.ID, err.Error())
	} else if res.Title != "Overwritten" || !res.FireAt.Equal(r.FireAt) {
		t.Errorf("Reminder was not overwritten: %s", res)
	} else if all, err = db.ReminderGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Reminders: %s", err.Error())
	} else if len(all) != len(items) {
		t.Errorf("Overwriting should not add a Reminder: %d != %d",
			len(all),
			len(items))
	}
} // func TestReminderOverwrite(t *testing.T)

func TestReminderDelete(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, r := range items {
		if rand.Intn(100) >= 50 {
			continue
		}

		var (
			err    error
			before []objects.Reminder
			after  []objects.Reminder
		)

		if before, err = db.ReminderGetAll(); err != nil {
			t.Fatalf("Cannot fetch all Reminders: %s", err.Error())
		} else if err = db.ReminderDelete(r.ID); err != nil {
			t.Fatalf("Cannot delete Reminder %q: %s", r.ID, err.Error())
		} else if err = db.ReminderDelete(r.ID); err != nil {
			t.Fatalf("Deleting Reminder %q a second time failed: %s",
				r.ID,
				err.Error())
		} else if after, err = db.ReminderGetAll(); err != nil {
			t.Fatalf("Cannot fetch all Reminders: %s", err.Error())
		} else if len(after) != len(before)-1 {
			t.Errorf("Deleting %q twice should remove exactly one Reminder: %d -> %d",
				r.ID,
				len(before),
				len(after))
		}
	}
} // func TestReminderDelete(t *testing.T)

func TestState(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		val   string
		found bool
	)

	if _, found, err = db.StateGet(StateLastActivity); err != nil {
		t.Fatalf("Cannot look up state: %s", err.Error())
	} else if found {
		t.Fatal("State should be empty")
	}

	for _, v := range []string{"1000", "2000"} {
		if err = db.StateSet(StateLastActivity, v); err != nil {
			t.Fatalf("Cannot set state: %s", err.Error())
		} else if val, found, err = db.StateGet(StateLastActivity); err != nil {
			t.Fatalf("Cannot look up state: %s", err.Error())
		} else if !found || val != v {
			t.Errorf("Unexpected state: %q (found = %t), expected %q",
				val,
				found,
				v)
		}
	}
} // func TestState(t *testing.T)

func TestTransaction(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		res *objects.Reminder
		r   = &objects.Reminder{
			ID:     "tx-test",
			Title:  "Rolled back",
			FireAt: time.Now().Add(time.Hour),
		}
	)

	if err = db.Begin(); err != nil {
		t.Fatalf("Cannot begin transaction: %s", err.Error())
	} else if err = db.Begin(); err != ErrTxInProgress {
		t.Errorf("Nested Begin should fail with ErrTxInProgress, got %v", err)
	} else if err = db.ReminderPut(r); err != nil {
		t.Fatalf("Cannot add Reminder: %s", err.Error())
	} else if err = db.Rollback(); err != nil {
		t.Fatalf("Cannot roll back transaction: %s", err.Error())
	} else if res, err = db.ReminderGetByID(r.ID); err != nil {
		t.Fatalf("Cannot look up Reminder: %s", err.Error())
	} else if res != nil {
		t.Error("Reminder should be gone after rollback")
	} else if err = db.Commit(); err != ErrNoTxInProgress {
		t.Errorf("Commit without transaction should fail with ErrNoTxInProgress, got %v", err)
	}
} // func TestTransaction(t *testing.T)
