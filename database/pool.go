// /home/krylon/go/src/github.com/blicero/wellspring/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 22:44:51 krylon>

package database

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/logdomain"
)

// ErrPoolClosed is returned by GetTimeout when the Pool has been closed.
var ErrPoolClosed = errors.New("Database pool has been closed")

// Pool is a pool of database connections.
type Pool struct {
	path   string
	cnt    int
	log    *log.Logger
	lock   sync.Mutex
	closed bool
	dbs    chan *Database
}

// NewPool creates a Pool of database connections.
// The number of connections to use is given by the
// parameter cnt.
func NewPool(cnt int) (*Pool, error) {
	return NewPoolAt(common.DbPath, cnt)
} // func NewPool(cnt int) (*Pool, error)

// NewPoolAt creates a Pool of cnt connections to the database at path.
func NewPoolAt(path string, cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			path: path,
			cnt:  cnt,
			dbs:  make(chan *Database, cnt),
		}
	)

	if cnt < 1 {
		return nil, fmt.Errorf("Invalid Pool size %d", cnt)
	} else if pool.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(path); err != nil {
			pool.log.Printf("[ERROR] Cannot open database %s: %s\n",
				path,
				err.Error())
			pool.Close() // nolint: errcheck
			return nil, err
		}

		pool.dbs <- db
	}

	return pool, nil
} // func NewPoolAt(path string, cnt int) (*Pool, error)

// Close closes all open database connections currently in the pool.
// Connections that are checked out at the time are closed when they
// are returned to the Pool.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.closed {
		return nil
	}

	pool.closed = true

	for {
		select {
		case db := <-pool.dbs:
			if err := db.Close(); err != nil {
				pool.log.Printf("[ERROR] Cannot close database connection: %s\n",
					err.Error())
				return err
			}
		default:
			return nil
		}
	}
} // func (pool *Pool) Close() error

// Get returns a DB connection from the pool.
// If all connections are in use, the call blocks until
// one is returned.
func (pool *Pool) Get() *Database {
	return <-pool.dbs
} // func (pool *Pool) Get() *Database

// GetTimeout returns a DB connection from the pool, waiting at most
// timeout for one to become available.
func (pool *Pool) GetTimeout(timeout time.Duration) (*Database, error) {
	pool.lock.Lock()
	var closed = pool.closed
	pool.lock.Unlock()

	if closed {
		return nil, ErrPoolClosed
	}

	var timer = time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case db := <-pool.dbs:
		return db, nil
	case <-timer.C:
		return nil, fmt.Errorf("Timed out waiting for a database connection after %s",
			timeout)
	}
} // func (pool *Pool) GetTimeout(timeout time.Duration) (*Database, error)

// Put returns a DB connection to the pool.
func (pool *Pool) Put(db *Database) {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.closed {
		db.Close() // nolint: errcheck
		return
	}

	pool.dbs <- db
} // func (pool *Pool) Put(db *Database)

// StateGet looks up a value in the state table using one of the Pool's
// connections.
func (pool *Pool) StateGet(key string) (string, bool, error) {
	var db = pool.Get()
	defer pool.Put(db)

	return db.StateGet(key)
} // func (pool *Pool) StateGet(key string) (string, bool, error)

// StateSet stores a value in the state table using one of the Pool's
// connections.
func (pool *Pool) StateSet(key, val string) error {
	var db = pool.Get()
	defer pool.Put(db)

	return db.StateSet(key, val)
} // func (pool *Pool) StateSet(key, val string) error
