// /home/krylon/go/src/github.com/blicero/wellspring/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 19:42:10 krylon>

// Package backend implements the daemon that owns the Reminder store,
// the Scheduler and the Watchdog, and exposes them to clients over HTTP.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/database"
	"github.com/blicero/wellspring/logdomain"
	"github.com/blicero/wellspring/notify"
	"github.com/blicero/wellspring/scheduler"
	"github.com/blicero/wellspring/timer"
	"github.com/blicero/wellspring/watchdog"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/jmhodges/clock"
)

const (
	poolSize  = 4
	dbTimeout = time.Second * 5
)

// Daemon is the centerpiece of the backend, coordinating between the
// database, the Scheduler, the Watchdog and the clients.
type Daemon struct {
	log        *log.Logger
	pool       *database.Pool
	db         *database.Database
	bus        *dbus.Conn
	lock       sync.RWMutex
	active     bool
	permitted  bool
	clk        clock.Clock
	sink       notify.Sink
	gate       *notify.Gate
	sched      *scheduler.Scheduler
	watch      *watchdog.Watchdog
	web        http.Server
	router     *mux.Router
	listenAddr string
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(addr string) (*Daemon, error) {
	var (
		err       error
		l         *log.Logger
		pool      *database.Pool
		bus       *dbus.Conn
		sink      notify.Sink
		auth      *notify.BusAuthority
		d         *Daemon
		clk, tfac = timer.Default()
	)

	if l, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if pool, err = database.NewPool(poolSize); err != nil {
		l.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	}

	if bus, err = dbus.SessionBus(); err != nil {
		l.Printf("[ERROR] Failed to connect to DBus Session bus, notifications go to the log: %s\n",
			err.Error())
		bus = nil
		if sink, err = notify.NewLogSink(); err != nil {
			pool.Close() // nolint: errcheck
			return nil, err
		}
	} else if sink, err = notify.NewBusSink(bus); err != nil {
		pool.Close() // nolint: errcheck
		return nil, err
	}

	if auth, err = notify.NewBusAuthority(bus, pool); err != nil {
		pool.Close() // nolint: errcheck
		return nil, err
	}

	if d, err = create(addr, pool, sink, auth, clk, tfac); err != nil {
		pool.Close() // nolint: errcheck
		return nil, err
	}

	d.bus = bus

	go d.serveHTTP()

	return d, nil
} // func Summon(addr string) (*Daemon, error)

// create assembles a Daemon from its parts. It asks for permission to
// post notifications, restores the Reminders left in the database and
// starts the Watchdog, but it does not start the web server.
func create(addr string, pool *database.Pool, sink notify.Sink, auth notify.Authority, clk clock.Clock, tfac timer.Factory) (*Daemon, error) {
	var (
		err error
		cnt int
		d   = &Daemon{
			pool:       pool,
			clk:        clk,
			sink:       sink,
			listenAddr: addr,
			active:     true,
			router:     mux.NewRouter(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.gate, err = notify.NewGate(auth); err != nil {
		d.log.Printf("[ERROR] Cannot create permission gate: %s\n",
			err.Error())
		return nil, err
	}

	if d.permitted = d.gate.RequestPermission(); !d.permitted {
		d.log.Println("[INFO] We may not post notifications, they go to the log instead.")
		var ls *notify.LogSink
		if ls, err = notify.NewLogSink(); err != nil {
			return nil, err
		}
		d.sink = ls
	}

	d.db = pool.Get()

	if d.sched, err = scheduler.New(d.db, d.sink, clk, tfac); err != nil {
		d.log.Printf("[ERROR] Cannot create Scheduler: %s\n",
			err.Error())
		pool.Put(d.db)
		return nil, err
	} else if cnt, err = d.sched.Rehydrate(); err != nil {
		d.log.Printf("[ERROR] Cannot restore Reminders from database: %s\n",
			err.Error())
		pool.Put(d.db)
		return nil, err
	} else if d.watch, err = watchdog.New(d.sink, pool, clk, tfac); err != nil {
		d.log.Printf("[ERROR] Cannot create Watchdog: %s\n",
			err.Error())
		d.sched.Stop()
		pool.Put(d.db)
		return nil, err
	}

	d.log.Printf("[INFO] Restored %d Reminders from database\n", cnt)
	d.watch.Start()

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		d.watch.Stop()
		d.sched.Stop()
		pool.Put(d.db)
		return nil, err
	}

	return d, nil
} // func create(...) (*Daemon, error)

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Permitted returns true if the user allowed us to post notifications.
func (d *Daemon) Permitted() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.permitted
} // func (d *Daemon) Permitted() bool

// Banish clears the Daemon's active flag, shuts down the web server,
// disarms all pending callbacks and closes the database.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	if !d.active {
		return err
	}

	d.active = false
	d.watch.Stop()
	d.sched.Stop()
	d.pool.Put(d.db)

	if cerr := d.pool.Close(); cerr != nil {
		d.log.Printf("[ERROR] Cannot close database pool: %s\n",
			cerr.Error())
		if err == nil {
			err = cerr
		}
	}

	return err
} // func (d *Daemon) Banish() error

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	defer d.idLock.Unlock()
	d.idCnt++
	return d.idCnt
} // func (d *Daemon) getID() int64
