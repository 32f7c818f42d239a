// /home/krylon/go/src/github.com/blicero/wellspring/backend/02_web_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 21:48:19 krylon>

package backend

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/blicero/wellspring/objects"
)

func TestReminderAdd(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	type testCase struct {
		id, title, time, date string
		expectOK              bool
	}

	var cases = []testCase{
		{id: "bedtime", title: "Bedtime story", time: "21:00", date: "today", expectOK: true},
		{id: "yoga", title: "Morning yoga", time: "8:00 PM", date: "tomorrow", expectOK: true},
		{id: "late", title: "Too late", time: "20:30", date: "today"},
		{id: "bogus", title: "Bogus time", time: "25:00", date: "today"},
		{id: "yesterday", title: "Bogus date", time: "21:00", date: "yesterday"},
		{id: "pending", title: "Shadowed ID", time: "21:30", date: "today"},
		{id: "a/b", title: "Slashed ID", time: "21:30", date: "today"},
	}

	for _, c := range cases {
		var res = postForm(t, "/reminder/add", url.Values{
			"id":       []string{c.id},
			"title":    []string{c.title},
			"time":     []string{c.time},
			"date":     []string{c.date},
			"duration": []string{"10 Min"},
		})

		if res.Status != c.expectOK {
			t.Errorf("Unexpected status for %s %s (%q): %t (%s)",
				c.date,
				c.time,
				c.title,
				res.Status,
				res.Message)
		} else if c.expectOK && res.Message != c.id {
			t.Errorf("Expected ID %q in Response, got %q",
				c.id,
				res.Message)
		}
	}
} // func TestReminderAdd(t *testing.T)

func TestReminderAddGeneratedID(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var res = postForm(t, "/reminder/add", url.Values{
		"title":    []string{"Breathe"},
		"time":     []string{"22:00"},
		"date":     []string{"next week"},
		"duration": []string{"5 Min"},
	})

	if !res.Status {
		t.Fatalf("Cannot add Reminder without ID: %s", res.Message)
	} else if res.Message == "" {
		t.Fatal("Daemon did not tell us the generated ID")
	}

	var del = postForm(t, "/reminder/"+res.Message+"/delete", nil)

	if !del.Status {
		t.Errorf("Cannot delete Reminder %s: %s",
			res.Message,
			del.Message)
	}
} // func TestReminderAddGeneratedID(t *testing.T)

func TestReminderPending(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		pending []objects.Reminder
		status  = getJSON(t, "/reminder/pending", &pending)
	)

	if status != http.StatusOK {
		t.Fatalf("GET /reminder/pending returned status %d", status)
	} else if len(pending) != 2 {
		t.Fatalf("Expected 2 pending Reminders, got %d", len(pending))
	} else if pending[0].ID != "bedtime" {
		t.Errorf("Expected the bedtime story first, got %s", pending[0].ID)
	}
} // func TestReminderPending(t *testing.T)

func TestReminderGet(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		rem    objects.Reminder
		status = getJSON(t, "/reminder/yoga", &rem)
	)

	if status != http.StatusOK {
		t.Fatalf("GET /reminder/yoga returned status %d", status)
	} else if rem.Title != "Morning yoga" {
		t.Errorf("Unexpected title %q", rem.Title)
	} else if rem.Time.String() != "20:00" {
		t.Errorf("Unexpected time %s", rem.Time)
	} else if !rem.FireAt.Equal(time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected fire time %s", rem.FireAt)
	}

	if status = getJSON(t, "/reminder/nope", &rem); status != http.StatusNotFound {
		t.Errorf("GET /reminder/nope returned status %d", status)
	}
} // func TestReminderGet(t *testing.T)

func TestFire(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	fake.Advance(time.Minute * 20)

	var items = rec.get()

	if len(items) != 2 {
		t.Fatalf("Expected 2 notifications, got %d: %v", len(items), items)
	} else if items[0].tag != "bedtime-lead" || !items[0].at.Equal(start.Add(time.Minute*10)) {
		t.Errorf("Unexpected lead notification: %s at %s",
			items[0].tag,
			items[0].at)
	} else if items[1].tag != "bedtime" || !items[1].at.Equal(start.Add(time.Minute*15)) {
		t.Errorf("Unexpected main notification: %s at %s",
			items[1].tag,
			items[1].at)
	}

	var (
		pending []objects.Reminder
		status  = getJSON(t, "/reminder/pending", &pending)
	)

	if status != http.StatusOK {
		t.Fatalf("GET /reminder/pending returned status %d", status)
	} else if len(pending) != 1 {
		t.Errorf("Expected 1 pending Reminder, got %d", len(pending))
	}
} // func TestFire(t *testing.T)

func TestReminderDelete(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var res = postForm(t, "/reminder/yoga/delete", nil)

	if !res.Status {
		t.Fatalf("Cannot delete Reminder: %s", res.Message)
	} else if n := back.sched.Armed("yoga"); n != 0 {
		t.Errorf("Deleted Reminder still has %d callbacks armed", n)
	}

	var pending []objects.Reminder

	if status := getJSON(t, "/reminder/pending", &pending); status != http.StatusOK {
		t.Fatalf("GET /reminder/pending returned status %d", status)
	} else if len(pending) != 0 {
		t.Errorf("Expected no pending Reminders, got %d", len(pending))
	}
} // func TestReminderDelete(t *testing.T)

func TestActivity(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	fake.Advance(time.Hour)

	var (
		act objects.Activity
		res = postForm(t, "/activity", url.Values{"source": []string{"pointer"}})
		now = fake.Clock.Now()
	)

	if !res.Status {
		t.Errorf("Pointer activity was rejected: %s", res.Message)
	}

	if res = postForm(t, "/activity", url.Values{"source": []string{"telepathy"}}); res.Status {
		t.Error("Activity from an unknown source was accepted")
	}

	if status := getJSON(t, "/activity", &act); status != http.StatusOK {
		t.Fatalf("GET /activity returned status %d", status)
	} else if !act.Last.Equal(now) {
		t.Errorf("Last activity is %s, expected %s", act.Last, now)
	} else if !act.IdleAt.Equal(now.Add(time.Hour * 24)) {
		t.Errorf("Idle deadline is %s, expected %s",
			act.IdleAt,
			now.Add(time.Hour*24))
	}
} // func TestActivity(t *testing.T)
