// /home/krylon/go/src/github.com/blicero/wellspring/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 20:05:17 krylon>

// Package objects provides the data types used by the application.
package objects

// Notification is the common interface for items the user should be
// notified about. The Tag identifies the item to the notification sink,
// so it can replace or route earlier notifications with the same Tag.
type Notification interface {
	Payload() (string, string)
	Tag() string
}
