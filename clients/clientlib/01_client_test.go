// /home/krylon/go/src/github.com/blicero/wellspring/clients/clientlib/01_client_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 23:02:51 krylon>

package clientlib

import (
	"errors"
	"testing"
)

func TestSchedule(t *testing.T) {
	var (
		err    error
		c      *Client
		id     string
		s, srv = newStub()
	)

	defer srv.Close()

	if c, err = NewClient(srv.URL); err != nil {
		t.Fatalf("Cannot create Client: %s", err.Error())
	}

	if id, err = c.Schedule(Request{ID: "tea", Title: "Tea time", Time: "4:30 PM", Date: "today"}); err != nil {
		t.Fatalf("Cannot schedule Reminder: %s", err.Error())
	} else if id != "tea" {
		t.Errorf("Unexpected ID %q", id)
	}

	if id, err = c.Schedule(Request{Title: "Stretch", Time: "10:00", Date: "tomorrow"}); err != nil {
		t.Fatalf("Cannot schedule Reminder: %s", err.Error())
	} else if id == "" {
		t.Error("Client did not generate an ID")
	} else if !s.has(id) {
		t.Errorf("Backend did not receive Reminder %s", id)
	}

	if _, err = c.Schedule(Request{Title: "past", Time: "10:00", Date: "today"}); err == nil {
		t.Error("Rejected Reminder was reported as scheduled")
	}
} // func TestSchedule(t *testing.T)

func TestQuery(t *testing.T) {
	var (
		err    error
		c      *Client
		_, srv = newStub()
	)

	defer srv.Close()

	if c, err = NewClient(srv.URL); err != nil {
		t.Fatalf("Cannot create Client: %s", err.Error())
	} else if _, err = c.Schedule(Request{ID: "walk", Title: "Walk", Time: "18:15", Date: "today", Duration: "30 Min"}); err != nil {
		t.Fatalf("Cannot schedule Reminder: %s", err.Error())
	}

	if list, err := c.Pending(); err != nil {
		t.Errorf("Cannot get pending Reminders: %s", err.Error())
	} else if len(list) != 1 {
		t.Errorf("Expected 1 pending Reminder, got %d", len(list))
	}

	if rem, err := c.GetReminder("walk"); err != nil {
		t.Errorf("Cannot get Reminder: %s", err.Error())
	} else if rem.Time.String() != "18:15" || rem.Duration != "30 Min" {
		t.Errorf("Unexpected Reminder: %s (%s)", rem, rem.Duration)
	}

	if _, err = c.GetReminder("run"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err = c.Cancel("walk"); err != nil {
		t.Errorf("Cannot cancel Reminder: %s", err.Error())
	} else if _, err = c.GetReminder("walk"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Cancelled Reminder is still there: %v", err)
	}
} // func TestQuery(t *testing.T)

func TestActivity(t *testing.T) {
	var (
		err     error
		c       *Client
		granted bool
		s, srv  = newStub()
	)

	defer srv.Close()

	if c, err = NewClient(srv.URL); err != nil {
		t.Fatalf("Cannot create Client: %s", err.Error())
	} else if err = c.ReportActivity("key"); err != nil {
		t.Errorf("Cannot report activity: %s", err.Error())
	} else if src := s.reported(); len(src) != 1 || src[0] != "key" {
		t.Errorf("Backend received unexpected sources: %v", src)
	}

	if granted, err = c.Permission(); err != nil {
		t.Errorf("Cannot query permission: %s", err.Error())
	} else if !granted {
		t.Error("Permission should be granted")
	}
} // func TestActivity(t *testing.T)
