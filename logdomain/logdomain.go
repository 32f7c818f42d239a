// /home/krylon/go/src/github.com/blicero/wellspring/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 18:02:11 krylon>

// Package logdomain provides constants to identify the different
// "areas" of the application that perform logging.
package logdomain

//go:generate stringer -type=ID

// ID represents an area of concern.
type ID uint8

// These constants identify the various logging domains.
const (
	Common ID = iota
	Database
	Backend
	Scheduler
	Watchdog
	Notify
	Client
)

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Database,
		Backend,
		Scheduler,
		Watchdog,
		Notify,
		Client,
	}
} // func AllDomains() []ID
