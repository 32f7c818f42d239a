// /home/krylon/go/src/github.com/blicero/wellspring/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 21:58:44 krylon>

package database

import "github.com/blicero/wellspring/database/query"

var dbQueries = map[query.ID]string{
	query.ReminderPut: `
INSERT INTO reminder (id, title, time, date, duration, fire_at)
VALUES               ( ?,     ?,    ?,    ?,        ?,       ?)
ON CONFLICT(id) DO UPDATE
SET title    = excluded.title,
    time     = excluded.time,
    date     = excluded.date,
    duration = excluded.duration,
    fire_at  = excluded.fire_at
`,
	query.ReminderDelete: "DELETE FROM reminder WHERE id = ?",
	query.ReminderGetAll: `
SELECT
    id,
    title,
    time,
    date,
    duration,
    fire_at
FROM reminder
ORDER BY fire_at, id
`,
	query.ReminderGetByID: `
SELECT
    title,
    time,
    date,
    duration,
    fire_at
FROM reminder
WHERE id = ?
`,
	query.StateGet: "SELECT value FROM state WHERE key = ?",
	query.StateSet: `
INSERT INTO state (key, value, changed)
VALUES            (  ?,     ?,       ?)
ON CONFLICT(key) DO UPDATE
SET value   = excluded.value,
    changed = excluded.changed
`,
}
