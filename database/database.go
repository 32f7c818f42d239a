// /home/krylon/go/src/github.com/blicero/wellspring/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 22:31:07 krylon>

// Package database provides persistence for Reminders and the handful of
// scalar values the application needs to remember across restarts.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/database/query"
	"github.com/blicero/wellspring/logdomain"
	"github.com/blicero/wellspring/objects"
	"github.com/blicero/wellspring/objects/relday"
	"github.com/mattn/go-sqlite3"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction failed
// because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// ErrClosed is returned by operations on a Database that has been closed.
var ErrClosed = errors.New("Database is closed")

const (
	retryDelay = 10 * time.Millisecond
	retryMax   = 64
)

// Keys for the state table.
const (
	StateLastActivity = "activity.last"
	StatePermission   = "notify.permission"
)

// worthARetry returns true if an error returned from the database
// is matches the sqlite3 error codes Busy or Locked.
func worthARetry(err error) bool {
	var e sqlite3.Error

	if errors.As(err, &e) {
		return e.Code == sqlite3.ErrBusy || e.Code == sqlite3.ErrLocked
	}

	return false
} // func worthARetry(err error) bool

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database is the storage backend for the Reminders.
//
// It is not safe to share a Database instance between goroutines, use
// a Pool for that.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database specified by the path does not
// exist, yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&_busy_timeout=5000",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Failed to check if %s already exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			}
			return nil, err
		}
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var (
		err error
		tx  *sql.Tx
	)

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	if db.db == nil {
		return nil
	}

	db.resetSQLError()

	for key, stmt := range db.queries {
		if err := stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err := db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
	)

	if db.db == nil {
		return nil, ErrClosed
	} else if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown Query %d",
			id)
	}

	db.log.Printf("[TRACE] Prepare query %s\n", id)

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// resetSQLError rolls back a pending transaction, if there is one.
func (db *Database) resetSQLError() {
	if db.tx != nil {
		var err error

		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[ERROR] Cannot roll back pending transaction: %s\n",
				err.Error())
		}

		db.tx = nil
	}
} // func (db *Database) resetSQLError()

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start one,
// while another transaction is already in progress will yield ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Begin Transaction\n",
		db.id)

	if db.db == nil {
		return ErrClosed
	} else if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	if db.tx, err = db.db.Begin(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto BEGIN_TX
		}

		db.log.Printf("[ERROR] Failed to start transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Rollback() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Roll back Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("Cannot roll back database transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made during that
// transaction permanent and visible to other connections.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Commit() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Commit Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// exec runs a statement that does not return any rows, retrying it if
// the database is busy.
func (db *Database) exec(id query.ID, args ...any) (sql.Result, error) {
	var (
		err  error
		q    *sql.Stmt
		res  sql.Result
		iter int
	)

	if q, err = db.getQuery(id); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			id,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		q = db.tx.Stmt(q)
	}

EXEC_QUERY:
	if res, err = q.Exec(args...); err != nil {
		if worthARetry(err) && iter < retryMax {
			iter++
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	return res, nil
} // func (db *Database) exec(id query.ID, args ...any) (sql.Result, error)

// query runs a statement that returns rows, retrying it if the database
// is busy.
func (db *Database) query(id query.ID, args ...any) (*sql.Rows, error) {
	var (
		err  error
		q    *sql.Stmt
		rows *sql.Rows
		iter int
	)

	if q, err = db.getQuery(id); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			id,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		q = db.tx.Stmt(q)
	}

EXEC_QUERY:
	if rows, err = q.Query(args...); err != nil {
		if worthARetry(err) && iter < retryMax {
			iter++
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	return rows, nil
} // func (db *Database) query(id query.ID, args ...any) (*sql.Rows, error)

// ReminderPut stores a Reminder in the database. If a Reminder with
// the same ID already exists, it is replaced.
func (db *Database) ReminderPut(r *objects.Reminder) error {
	var err error

	if _, err = db.exec(
		query.ReminderPut,
		r.ID,
		r.Title,
		r.Time.String(),
		int64(r.Date),
		r.Duration,
		r.FireAt.UnixMilli(),
	); err != nil {
		db.log.Printf("[ERROR] Cannot store Reminder %q (%q): %s\n",
			r.ID,
			r.Title,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) ReminderPut(r *objects.Reminder) error

// ReminderDelete removes the Reminder with the given ID from the
// database. Deleting a Reminder that does not exist is not an error.
func (db *Database) ReminderDelete(id string) error {
	var err error

	if _, err = db.exec(query.ReminderDelete, id); err != nil {
		db.log.Printf("[ERROR] Cannot delete Reminder %q: %s\n",
			id,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) ReminderDelete(id string) error

// ReminderGetAll loads all Reminders from the database, ordered by the
// time they are due.
func (db *Database) ReminderGetAll() ([]objects.Reminder, error) {
	var (
		err       error
		rows      *sql.Rows
		reminders = make([]objects.Reminder, 0, 16)
	)

	if rows, err = db.query(query.ReminderGetAll); err != nil {
		db.log.Printf("[ERROR] Cannot query Reminders: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	for rows.Next() {
		var (
			r            objects.Reminder
			tstr         string
			date, fireAt int64
		)

		if err = rows.Scan(&r.ID, &r.Title, &tstr, &date, &r.Duration, &fireAt); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		} else if err = db.decode(&r, tstr, date, fireAt); err != nil {
			return nil, err
		}

		reminders = append(reminders, r)
	}

	if err = rows.Err(); err != nil {
		db.log.Printf("[ERROR] Error iterating over Reminders: %s\n",
			err.Error())
		return nil, err
	}

	return reminders, nil
} // func (db *Database) ReminderGetAll() ([]objects.Reminder, error)

// ReminderGetByID looks up a Reminder by its ID. If no such Reminder
// exists, it returns nil and no error.
func (db *Database) ReminderGetByID(id string) (*objects.Reminder, error) {
	var (
		err  error
		rows *sql.Rows
	)

	if rows, err = db.query(query.ReminderGetByID, id); err != nil {
		db.log.Printf("[ERROR] Cannot query Reminder %q: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			tstr         string
			date, fireAt int64
			r            = &objects.Reminder{ID: id}
		)

		if err = rows.Scan(&r.Title, &tstr, &date, &r.Duration, &fireAt); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n", err.Error())
			return nil, err
		} else if err = db.decode(r, tstr, date, fireAt); err != nil {
			return nil, err
		}

		return r, nil
	}

	return nil, rows.Err()
} // func (db *Database) ReminderGetByID(id string) (*objects.Reminder, error)

func (db *Database) decode(r *objects.Reminder, tstr string, date, fireAt int64) error {
	var err error

	if r.Time, err = objects.ParseTimeOfDay(tstr); err != nil {
		db.log.Printf("[CANTHAPPEN] Invalid time of day for Reminder %q: %s\n",
			r.ID,
			err.Error())
		return err
	}

	r.Date = relday.RelDay(date)
	r.FireAt = time.UnixMilli(fireAt)
	return nil
} // func (db *Database) decode(r *objects.Reminder, tstr string, date, fireAt int64) error

// StateGet looks up a value in the state table. The second return value
// is false if the key has no value.
func (db *Database) StateGet(key string) (string, bool, error) {
	var (
		err  error
		rows *sql.Rows
		val  string
	)

	if rows, err = db.query(query.StateGet, key); err != nil {
		db.log.Printf("[ERROR] Cannot look up state %q: %s\n",
			key,
			err.Error())
		return "", false, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		if err = rows.Scan(&val); err != nil {
			db.log.Printf("[ERROR] Cannot scan state %q: %s\n",
				key,
				err.Error())
			return "", false, err
		}

		return val, true, nil
	}

	return "", false, rows.Err()
} // func (db *Database) StateGet(key string) (string, bool, error)

// StateSet stores a value in the state table.
func (db *Database) StateSet(key, val string) error {
	var err error

	if _, err = db.exec(query.StateSet, key, val, time.Now().Unix()); err != nil {
		db.log.Printf("[ERROR] Cannot set state %q to %q: %s\n",
			key,
			val,
			err.Error())
		return err
	}

	return nil
} // func (db *Database) StateSet(key, val string) error
