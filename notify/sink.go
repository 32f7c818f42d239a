// /home/krylon/go/src/github.com/blicero/wellspring/notify/sink.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 17:12:40 krylon>

// Package notify deals with displaying notifications to the user and
// with finding out whether we are allowed to do so.
package notify

import (
	"fmt"
	"log"
	"sync"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/logdomain"
	"github.com/blicero/wellspring/objects"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyIntf   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	tagHint      = "x-wellspring-tag"
	urgencyHint  = "urgency"
	urgencyLow   = byte(0)
	urgencyNorm  = byte(1)
)

// Sink displays notifications. The tag identifies what a notification is
// about, so a Sink may replace earlier notifications with the same tag.
type Sink interface {
	Deliver(title, body, tag string) error
}

// Post hands a Notification to a Sink.
func Post(s Sink, n objects.Notification) error {
	var title, body = n.Payload()

	return s.Deliver(title, body, n.Tag())
} // func Post(s Sink, n objects.Notification) error

// BusSink posts notifications to the desktop notification service via
// the DBus session bus.
type BusSink struct {
	log  *log.Logger
	bus  *dbus.Conn
	lock sync.Mutex
	ids  map[string]uint32
}

// NewBusSink creates a BusSink on the given connection.
func NewBusSink(bus *dbus.Conn) (*BusSink, error) {
	var (
		err error
		s   = &BusSink{
			bus: bus,
			ids: make(map[string]uint32),
		}
	)

	if s.log, err = common.GetLogger(logdomain.Notify); err != nil {
		return nil, err
	}

	return s, nil
} // func NewBusSink(bus *dbus.Conn) (*BusSink, error)

// Deliver posts a notification. If a notification with the same tag was
// posted before, the new one replaces it.
func (s *BusSink) Deliver(title, body, tag string) error {
	var (
		err error
		obj dbus.BusObject
		id  uint32
	)

	if s.bus == nil {
		return fmt.Errorf("Cannot post Notification %q: no session bus", title)
	} else if obj = s.bus.Object(notifyObj, notifyPath); obj == nil {
		err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		s.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	s.lock.Lock()
	var replaces = s.ids[tag]
	s.lock.Unlock()

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		replaces,
		"",
		title,
		body,
		[]string{},
		hints(tag),
		int32(-1),
	)

	if res.Err != nil {
		s.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			title,
			res.Err.Error())
		return res.Err
	} else if err = res.Store(&id); err != nil {
		s.log.Printf("[ERROR] Cannot read ID of Notification %q: %s\n",
			title,
			err.Error())
		return err
	}

	s.log.Printf("[DEBUG] Posted Notification %q (%s) as #%d\n",
		title,
		tag,
		id)

	if tag != "" {
		s.lock.Lock()
		s.ids[tag] = id
		s.lock.Unlock()
	}

	return nil
} // func (s *BusSink) Deliver(title, body, tag string) error

// hints returns the hints for a notification with the given tag.
// Notifications announcing an upcoming Reminder are posted with low
// urgency.
func hints(tag string) map[string]dbus.Variant {
	var urgency = urgencyNorm

	if objects.IsLeadTag(tag) {
		urgency = urgencyLow
	}

	return map[string]dbus.Variant{
		tagHint:     dbus.MakeVariant(tag),
		urgencyHint: dbus.MakeVariant(urgency),
	}
} // func hints(tag string) map[string]dbus.Variant
