// /home/krylon/go/src/github.com/blicero/wellspring/notify/authority.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 18:22:57 krylon>

package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/database"
	"github.com/blicero/wellspring/logdomain"
	"github.com/godbus/dbus/v5"
)

const (
	decisionGranted = "granted"
	decisionDenied  = "denied"
	actionAllow     = "allow"
	actionDeny      = "deny"
	signalAction    = notifyIntf + ".ActionInvoked"
	signalClosed    = notifyIntf + ".NotificationClosed"
	hasOwnerMethod  = "org.freedesktop.DBus.NameHasOwner"

	// DefaultPromptTimeout is how long BusAuthority waits for the user
	// to answer the prompt.
	DefaultPromptTimeout = time.Minute * 2
)

// Decisions persists the user's answer to the permission prompt.
type Decisions interface {
	StateGet(key string) (string, bool, error)
	StateSet(key, val string) error
}

// BusAuthority considers notifications supported if the desktop
// notification service is present on the session bus. It asks the user
// for permission with a notification offering "Allow" and "Deny"
// actions, and remembers the answer.
type BusAuthority struct {
	log     *log.Logger
	bus     *dbus.Conn
	store   Decisions
	Timeout time.Duration
}

// NewBusAuthority creates a BusAuthority. bus may be nil, in which case
// notifications are reported as Unsupported.
func NewBusAuthority(bus *dbus.Conn, store Decisions) (*BusAuthority, error) {
	var (
		err error
		a   = &BusAuthority{
			bus:     bus,
			store:   store,
			Timeout: DefaultPromptTimeout,
		}
	)

	if a.log, err = common.GetLogger(logdomain.Notify); err != nil {
		return nil, err
	}

	return a, nil
} // func NewBusAuthority(bus *dbus.Conn, store Decisions) (*BusAuthority, error)

// State reports the current permission state.
func (a *BusAuthority) State() (State, error) {
	var (
		err      error
		hasOwner bool
		val      string
		found    bool
	)

	if a.bus == nil {
		return Unsupported, nil
	} else if err = a.bus.BusObject().Call(hasOwnerMethod, 0, notifyObj).Store(&hasOwner); err != nil {
		a.log.Printf("[ERROR] Cannot check for %s on session bus: %s\n",
			notifyObj,
			err.Error())
		return Unsupported, err
	} else if !hasOwner {
		return Unsupported, nil
	} else if val, found, err = a.store.StateGet(database.StatePermission); err != nil {
		return Undetermined, err
	} else if !found {
		return Undetermined, nil
	}

	switch val {
	case decisionGranted:
		return Granted, nil
	case decisionDenied:
		return Denied, nil
	default:
		a.log.Printf("[CANTHAPPEN] Invalid permission decision %q\n", val)
		return Undetermined, nil
	}
} // func (a *BusAuthority) State() (State, error)

// Prompt asks the user whether notifications may be posted. If the user
// picks neither action before the timeout, or dismisses the prompt, the
// result is false and nothing is remembered, so they will be asked
// again next time.
func (a *BusAuthority) Prompt() (bool, error) {
	var (
		err   error
		id    uint32
		obj   dbus.BusObject
		sigQ  = make(chan *dbus.Signal, 8)
		match = []dbus.MatchOption{
			dbus.WithMatchObjectPath(notifyPath),
			dbus.WithMatchInterface(notifyIntf),
		}
	)

	if a.bus == nil {
		return false, fmt.Errorf("Cannot prompt for permission: no session bus")
	} else if err = a.bus.AddMatchSignal(match...); err != nil {
		a.log.Printf("[ERROR] Cannot subscribe to notification signals: %s\n",
			err.Error())
		return false, err
	}

	defer a.bus.RemoveMatchSignal(match...) // nolint: errcheck

	a.bus.Signal(sigQ)
	defer a.bus.RemoveSignal(sigQ)

	obj = a.bus.Object(notifyObj, notifyPath)

	if err = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		fmt.Sprintf("%s would like to send you reminders", common.AppName),
		"Allow notifications for your scheduled sessions?",
		[]string{actionAllow, "Allow", actionDeny, "Deny"},
		map[string]dbus.Variant{
			"resident": dbus.MakeVariant(false),
		},
		int32(0),
	).Store(&id); err != nil {
		a.log.Printf("[ERROR] Cannot post permission prompt: %s\n",
			err.Error())
		return false, err
	}

	var timeout = time.NewTimer(a.Timeout)
	defer timeout.Stop()

	for {
		select {
		case <-timeout.C:
			a.log.Printf("[INFO] No answer to permission prompt after %s\n",
				a.Timeout)
			return false, nil
		case sig := <-sigQ:
			if sig == nil || len(sig.Body) < 2 {
				continue
			} else if nid, ok := sig.Body[0].(uint32); !ok || nid != id {
				continue
			}

			switch sig.Name {
			case signalClosed:
				return false, nil
			case signalAction:
				var action, _ = sig.Body[1].(string)
				return a.remember(action == actionAllow)
			}
		}
	}
} // func (a *BusAuthority) Prompt() (bool, error)

func (a *BusAuthority) remember(granted bool) (bool, error) {
	var val = decisionDenied

	if granted {
		val = decisionGranted
	}

	if err := a.store.StateSet(database.StatePermission, val); err != nil {
		a.log.Printf("[ERROR] Cannot remember permission decision: %s\n",
			err.Error())
		return granted, err
	}

	return granted, nil
} // func (a *BusAuthority) remember(granted bool) (bool, error)
