// /home/krylon/go/src/github.com/blicero/wellspring/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 23:24:09 krylon>

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blicero/wellspring/backend"
	"github.com/blicero/wellspring/clients/clientlib"
	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/objects"
)

func main() {
	fmt.Printf("%s %s (built %s)\n",
		common.AppName,
		common.Version,
		common.BuildStamp)

	var (
		err                error
		cfg                *common.Config
		appDir, mode, addr string
		req                clientlib.Request
	)

	if cfg, err = common.LoadConfig(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot read configuration from environment: %s\n",
			err.Error())
		os.Exit(1)
	}

	flag.StringVar(
		&appDir,
		"appdir",
		cfg.BaseDir,
		"The directory where application-specific files live")

	flag.StringVar(
		&mode,
		"mode",
		"backend",
		"Whether to run the *backend*, *remind* it of something, or list what is *pending*",
	)

	flag.StringVar(
		&addr,
		"address",
		cfg.Address,
		"Address to either listen on (backend) or connect to (remind, pending)",
	)

	flag.StringVar(&req.ID, "id", "", "ID of the Reminder (generated if empty)")
	flag.StringVar(&req.Title, "title", "", "Title of the Reminder")
	flag.StringVar(&req.Time, "time", "", "Time of day, e.g. 21:00 or 9:00 PM")
	flag.StringVar(&req.Date, "date", "today", "today, tomorrow or next-week")
	flag.StringVar(&req.Duration, "duration", "", "How long the activity takes, e.g. \"10 Min\"")

	flag.Parse()

	if appDir != common.BaseDir {
		if err = common.SetBaseDir(appDir); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot set application directory to %s: %s\n",
				appDir,
				err.Error())
			os.Exit(1)
		}
	}

	if err = common.SetLogLevel(cfg.LogLevel); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"%s\n",
			err.Error())
		os.Exit(1)
	}

	switch mode {
	case "backend":
		runBackend(addr)
	case "remind":
		runRemind(addr, req)
	case "pending":
		runPending(addr)
	default:
		fmt.Fprintf(
			os.Stderr,
			"Unknown mode %q\n",
			mode,
		)

		os.Exit(1)
	}
}

func runBackend(addr string) {
	var (
		err    error
		daemon *backend.Daemon
	)

	if daemon, err = backend.Summon(addr); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to initialize backend: %s\n",
			err.Error())
		os.Exit(1)
	}

	var sigQ = make(chan os.Signal, 1)
	var ticker = time.NewTicker(time.Second * 2)

	signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

	for daemon.IsAlive() {
		select {
		case sig := <-sigQ:
			fmt.Printf("Quitting on signal %s\n", sig)
			if err = daemon.Banish(); err != nil {
				fmt.Fprintf(
					os.Stderr,
					"Error shutting down backend: %s\n",
					err.Error())
				os.Exit(1)
			}
			os.Exit(0)
		case <-ticker.C:
			continue
		}
	}
} // func runBackend(addr string)

func runRemind(addr string, req clientlib.Request) {
	var (
		err error
		id  string
		c   *clientlib.Client
	)

	if req.Title == "" || req.Time == "" {
		fmt.Fprintln(os.Stderr, "A Reminder needs at least a title and a time")
		os.Exit(1)
	} else if c, err = clientlib.NewClient(addr); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create client: %s\n",
			err.Error())
		os.Exit(1)
	} else if id, err = c.Schedule(req); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot schedule Reminder: %s\n",
			err.Error())
		os.Exit(1)
	}

	fmt.Printf("Scheduled %q as %s\n", req.Title, id)
} // func runRemind(addr string, req clientlib.Request)

func runPending(addr string) {
	var (
		err       error
		c         *clientlib.Client
		reminders []objects.Reminder
	)

	if c, err = clientlib.NewClient(addr); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create client: %s\n",
			err.Error())
		os.Exit(1)
	} else if reminders, err = c.Pending(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot get pending Reminders: %s\n",
			err.Error())
		os.Exit(1)
	}

	for idx := range reminders {
		var r = &reminders[idx]
		fmt.Printf("%s  %-36s  %s (%s)\n",
			r.FireAt.Local().Format(common.TimestampFormat),
			r.ID,
			r.Title,
			r.Duration)
	}
} // func runPending(addr string)
