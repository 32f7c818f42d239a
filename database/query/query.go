// /home/krylon/go/src/github.com/blicero/wellspring/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 21:40:02 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

// ID identifies a query.
type ID uint8

// These constants identify the queries the Database knows about.
const (
	ReminderPut ID = iota
	ReminderDelete
	ReminderGetAll
	ReminderGetByID
	StateGet
	StateSet
)
