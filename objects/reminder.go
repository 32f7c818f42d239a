// /home/krylon/go/src/github.com/blicero/wellspring/objects/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 20:03:55 krylon>

package objects

import (
	"fmt"
	"time"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/objects/relday"
)

//go:generate ffjson reminder.go

// LeadOffset is how long before a Reminder is due the "upcoming"
// notification goes off.
const LeadOffset = time.Minute * 5

const leadSuffix = "-lead"

// Reminder is ... a reminder. More precisely, a wellness session the
// user wants to be told about when it is about to begin.
type Reminder struct {
	ID       string
	Title    string
	Time     TimeOfDay
	Date     relday.RelDay
	Duration string
	FireAt   time.Time
}

// IsDue returns true if the Reminder's due time is not after now.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.FireAt.After(now)
} // func (r *Reminder) IsDue(now time.Time) bool

// HasLead returns true if there is enough time left, relative to now,
// to post the "upcoming" notification before the Reminder is due.
func (r *Reminder) HasLead(now time.Time) bool {
	return r.FireAt.Sub(now) > LeadOffset
} // func (r *Reminder) HasLead(now time.Time) bool

// LeadAt returns the time the "upcoming" notification is due.
func (r *Reminder) LeadAt() time.Time {
	return r.FireAt.Add(-LeadOffset)
} // func (r *Reminder) LeadAt() time.Time

// Payload returns the title and body of the main notification.
func (r *Reminder) Payload() (string, string) {
	var body string

	if r.Duration != "" {
		body = fmt.Sprintf("%s (%s) is starting now.", r.Title, r.Duration)
	} else {
		body = fmt.Sprintf("%s is starting now.", r.Title)
	}

	return r.Title, body
} // func (r *Reminder) Payload() (string, string)

// Tag returns the tag the main notification is posted with.
func (r *Reminder) Tag() string {
	return r.ID
} // func (r *Reminder) Tag() string

// Lead returns the "upcoming" Notification for the Reminder.
func (r *Reminder) Lead() Notification {
	return leadNotification{r}
} // func (r *Reminder) Lead() Notification

func (r *Reminder) String() string {
	return fmt.Sprintf("Reminder{ ID: %q, Title: %q, FireAt: %s }",
		r.ID,
		r.Title,
		r.FireAt.Format(common.TimestampFormat))
} // func (r *Reminder) String() string

type leadNotification struct {
	r *Reminder
}

func (l leadNotification) Payload() (string, string) {
	return fmt.Sprintf("Upcoming: %s", l.r.Title),
		fmt.Sprintf("%s starts in %d minutes.",
			l.r.Title,
			int(LeadOffset/time.Minute))
} // func (l leadNotification) Payload() (string, string)

func (l leadNotification) Tag() string {
	return l.r.ID + leadSuffix
} // func (l leadNotification) Tag() string

// IsLeadTag returns true if tag belongs to an "upcoming" notification.
func IsLeadTag(tag string) bool {
	return len(tag) > len(leadSuffix) && tag[len(tag)-len(leadSuffix):] == leadSuffix
} // func IsLeadTag(tag string) bool
