// /home/krylon/go/src/github.com/blicero/wellspring/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 21:52:19 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE reminder (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    time        TEXT NOT NULL,
    date        INTEGER NOT NULL DEFAULT 0,
    duration    TEXT NOT NULL DEFAULT '',
    fire_at     INTEGER NOT NULL,
    CHECK (date BETWEEN 0 AND 2)
)
`,
	"CREATE INDEX reminder_fire_idx ON reminder (fire_at)",
	`
CREATE TABLE state (
    key         TEXT PRIMARY KEY,
    value       TEXT NOT NULL,
    changed     INTEGER NOT NULL
)
`,
}
