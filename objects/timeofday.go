// /home/krylon/go/src/github.com/blicero/wellspring/objects/timeofday.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 19:48:13 krylon>

package objects

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/blicero/wellspring/objects/relday"
)

// ErrInvalidTime is returned when a time of day cannot be parsed.
var ErrInvalidTime = errors.New("invalid time of day")

// TimeOfDay is a wall clock time in 24-hour format.
type TimeOfDay struct {
	Hour   int
	Minute int
}

var todPat = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])?$`)

// ParseTimeOfDay accepts either "HH:MM" in 24-hour format or
// "HH:MM AM"/"HH:MM PM" in 12-hour format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var (
		err       error
		match     []string
		tod       TimeOfDay
		hour, min int
	)

	if match = todPat.FindStringSubmatch(strings.TrimSpace(s)); match == nil {
		return tod, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	} else if hour, err = strconv.Atoi(match[1]); err != nil {
		return tod, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	} else if min, err = strconv.Atoi(match[2]); err != nil {
		return tod, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	} else if min > 59 {
		return tod, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	if match[3] != "" {
		if hour < 1 || hour > 12 {
			return tod, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}

		hour %= 12
		if strings.ToUpper(match[3]) == "PM" {
			hour += 12
		}
	} else if hour > 23 {
		return tod, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	tod.Hour = hour
	tod.Minute = min

	return tod, nil
} // func ParseTimeOfDay(s string) (TimeOfDay, error)

// Valid returns true if the TimeOfDay lies within a day.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
} // func (t TimeOfDay) Valid() bool

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
} // func (t TimeOfDay) String() string

// MarshalText renders the TimeOfDay as "HH:MM".
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
} // func (t TimeOfDay) MarshalText() ([]byte, error)

// UnmarshalText parses a TimeOfDay using ParseTimeOfDay.
func (t *TimeOfDay) UnmarshalText(txt []byte) error {
	var (
		err error
		tod TimeOfDay
	)

	if tod, err = ParseTimeOfDay(string(txt)); err != nil {
		return err
	}

	*t = tod
	return nil
} // func (t *TimeOfDay) UnmarshalText(txt []byte) error

// FireTime combines the date d refers to, relative to now, with the
// time of day t. The result is in now's Location.
func FireTime(now time.Time, t TimeOfDay, d relday.RelDay) time.Time {
	var (
		day     = d.Resolve(now)
		y, m, n = day.Date()
	)

	return time.Date(y, m, n, t.Hour, t.Minute, 0, 0, now.Location())
} // func FireTime(now time.Time, t TimeOfDay, d relday.RelDay) time.Time
