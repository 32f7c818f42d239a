// /home/krylon/go/src/github.com/blicero/wellspring/notify/logsink.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 18:31:14 krylon>

package notify

import (
	"log"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/logdomain"
)

// LogSink writes notifications to the log. The backend falls back to it
// when there is no session bus, so reminders still go through the
// motions without any visible effect.
type LogSink struct {
	log *log.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink() (*LogSink, error) {
	var (
		err error
		s   = new(LogSink)
	)

	if s.log, err = common.GetLogger(logdomain.Notify); err != nil {
		return nil, err
	}

	return s, nil
} // func NewLogSink() (*LogSink, error)

// Deliver logs the notification.
func (s *LogSink) Deliver(title, body, tag string) error {
	s.log.Printf("[INFO] Notification %s: %s - %s\n",
		tag,
		title,
		body)
	return nil
} // func (s *LogSink) Deliver(title, body, tag string) error
