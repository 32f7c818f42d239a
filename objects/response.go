// /home/krylon/go/src/github.com/blicero/wellspring/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 20:07:40 krylon>

package objects

import "time"

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
type Response struct {
	ID      int64
	Status  bool
	Message string
}

// Activity is what the backend reports about the user's last activity.
type Activity struct {
	Last     time.Time
	IdleAt   time.Time
	Notified int
}

// Permission reports whether the backend may post notifications.
type Permission struct {
	Granted bool
}
