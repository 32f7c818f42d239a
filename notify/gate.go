// /home/krylon/go/src/github.com/blicero/wellspring/notify/gate.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 17:40:03 krylon>

package notify

import (
	"fmt"
	"log"
	"sync"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/logdomain"
)

// State describes whether the platform lets us post notifications.
type State uint8

// Undetermined means the user has not been asked yet.
// Granted and Denied reflect the user's answer.
// Unsupported means the platform cannot display notifications at all.
const (
	Undetermined State = iota
	Granted
	Denied
	Unsupported
)

func (s State) String() string {
	switch s {
	case Undetermined:
		return "Undetermined"
	case Granted:
		return "Granted"
	case Denied:
		return "Denied"
	case Unsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
} // func (s State) String() string

// Authority is the platform's notion of whether we may post
// notifications. Prompt asks the user, and it is the Authority's job to
// remember the answer.
type Authority interface {
	State() (State, error)
	Prompt() (bool, error)
}

// Gate decides whether notifications may be posted, asking the user if
// they have not been asked before.
type Gate struct {
	log  *log.Logger
	auth Authority
	lock sync.Mutex
}

// NewGate creates a Gate backed by the given Authority.
func NewGate(auth Authority) (*Gate, error) {
	var (
		err error
		g   = &Gate{auth: auth}
	)

	if g.log, err = common.GetLogger(logdomain.Notify); err != nil {
		return nil, err
	}

	return g, nil
} // func NewGate(auth Authority) (*Gate, error)

// RequestPermission returns true if notifications may be posted. If the
// user has neither granted nor denied permission, yet, they are asked
// once. A previous denial is respected without asking again.
func (g *Gate) RequestPermission() bool {
	var (
		err     error
		st      State
		granted bool
	)

	g.lock.Lock()
	defer g.lock.Unlock()

	if g.auth == nil {
		return false
	} else if st, err = g.auth.State(); err != nil {
		g.log.Printf("[ERROR] Cannot query notification permission: %s\n",
			err.Error())
		return false
	}

	switch st {
	case Granted:
		return true
	case Denied:
		g.log.Println("[INFO] Permission to post notifications was denied")
		return false
	case Undetermined:
		g.log.Println("[DEBUG] Asking for permission to post notifications")
		if granted, err = g.auth.Prompt(); err != nil {
			g.log.Printf("[ERROR] Failed to ask for notification permission: %s\n",
				err.Error())
			return false
		}

		g.log.Printf("[INFO] Permission to post notifications granted: %t\n",
			granted)
		return granted
	default:
		g.log.Printf("[INFO] Notifications are not available (%s)\n", st)
		return false
	}
} // func (g *Gate) RequestPermission() bool
