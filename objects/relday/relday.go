// /home/krylon/go/src/github.com/blicero/wellspring/objects/relday/relday.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 19:20:48 krylon>

//go:generate stringer -type=RelDay

// Package relday contains symbolic constants
// to specify which day a Reminder should go off,
// relative to the day it was scheduled.
package relday

import (
	"errors"
	"strings"
	"time"
)

// RelDay describes the day of a Reminder relative to the current date.
type RelDay uint8

// Today means the Reminder goes off on the day it is scheduled.
// Tomorrow means it goes off on the following day.
// NextWeek means it goes off on the same weekday one week later.
const (
	Today RelDay = iota
	Tomorrow
	NextWeek
)

// ErrInvalid is returned by Parse for strings it does not recognize.
var ErrInvalid = errors.New("invalid relative date")

// Days returns the number of days to add to the current date.
func (r RelDay) Days() int {
	switch r {
	case Tomorrow:
		return 1
	case NextWeek:
		return 7
	default:
		return 0
	}
} // func (r RelDay) Days() int

// Valid returns true if r is one of the known constants.
func (r RelDay) Valid() bool {
	return r <= NextWeek
} // func (r RelDay) Valid() bool

// Resolve returns the calendar date r refers to, relative to ref,
// at midnight in ref's Location.
func (r RelDay) Resolve(ref time.Time) time.Time {
	var y, m, d = ref.Date()

	return time.Date(y, m, d+r.Days(), 0, 0, 0, 0, ref.Location())
} // func (r RelDay) Resolve(ref time.Time) time.Time

// Parse turns a string like "today" or "Next Week" into a RelDay.
func Parse(s string) (RelDay, error) {
	var key = strings.ToLower(strings.TrimSpace(s))

	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)

	switch key {
	case "today":
		return Today, nil
	case "tomorrow":
		return Tomorrow, nil
	case "nextweek":
		return NextWeek, nil
	default:
		return Today, ErrInvalid
	}
} // func Parse(s string) (RelDay, error)
