// /home/krylon/go/src/github.com/blicero/wellspring/objects/02_reminder_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 20:30:49 krylon>

package objects

import (
	"strings"
	"testing"
	"time"
)

func TestReminderPayload(t *testing.T) {
	var (
		r = &Reminder{
			ID:       "ws-1",
			Title:    "Bedtime Story",
			Duration: "20 Min",
			FireAt:   time.Date(2026, 10, 15, 21, 0, 0, 0, time.UTC),
		}
		lead        = r.Lead()
		title, body = r.Payload()
	)

	if title != "Bedtime Story" {
		t.Errorf("Unexpected title: %q", title)
	} else if !strings.Contains(body, "20 Min") {
		t.Errorf("Body should mention the duration: %q", body)
	} else if r.Tag() != "ws-1" {
		t.Errorf("Unexpected tag: %q", r.Tag())
	}

	title, body = lead.Payload()

	if !strings.Contains(title, "Bedtime Story") {
		t.Errorf("Lead title should mention the Reminder: %q", title)
	} else if !strings.Contains(body, "starts in 5 minutes") {
		t.Errorf("Unexpected lead body: %q", body)
	} else if lead.Tag() != "ws-1-lead" {
		t.Errorf("Unexpected lead tag: %q", lead.Tag())
	} else if !IsLeadTag(lead.Tag()) || IsLeadTag(r.Tag()) {
		t.Error("IsLeadTag does not tell the tags apart")
	}
} // func TestReminderPayload(t *testing.T)

func TestReminderLead(t *testing.T) {
	var (
		due = time.Date(2026, 10, 15, 21, 0, 0, 0, time.UTC)
		r   = &Reminder{ID: "x", FireAt: due}
	)

	if !r.HasLead(due.Add(-time.Minute * 15)) {
		t.Error("Reminder 15 minutes out should have a lead notification")
	} else if r.HasLead(due.Add(-LeadOffset)) {
		t.Error("Reminder exactly 5 minutes out should not have a lead notification")
	} else if r.HasLead(due.Add(-time.Minute * 3)) {
		t.Error("Reminder 3 minutes out should not have a lead notification")
	} else if !r.LeadAt().Equal(time.Date(2026, 10, 15, 20, 55, 0, 0, time.UTC)) {
		t.Errorf("Unexpected lead time: %s", r.LeadAt())
	} else if !r.IsDue(due) || r.IsDue(due.Add(-time.Second)) {
		t.Error("IsDue is wrong")
	}
} // func TestReminderLead(t *testing.T)
