// /home/krylon/go/src/github.com/blicero/wellspring/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 22:31:40 krylon>

// Package clientlib provides the basic framework for
// building clients that talk to the Wellspring backend.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/logdomain"
	"github.com/blicero/wellspring/objects"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	addPath        = "/reminder/add"
	pendingPath    = "/reminder/pending"
	reminderPath   = "/reminder/%s"
	deletePath     = "/reminder/%s/delete"
	activityPath   = "/activity"
	permissionPath = "/permission"
)

// ErrNotFound is returned by GetReminder if the backend does not know
// the requested Reminder.
var ErrNotFound = errors.New("reminder not found")

// Request is what a client asks the backend to schedule.
type Request struct {
	ID       string
	Title    string
	Time     string
	Date     string
	Duration string
}

// Client is the basic implementation of a Wellspring client,
// it implements the fundamental communication with the Server.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	if c.Server.Scheme == "" {
		c.Server.Scheme = "http"
	}

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's Logger.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) endpoint(path string) string {
	var u = *c.Server
	u.Path = path
	return u.String()
} // func (c *Client) endpoint(path string) string

// Schedule asks the backend to schedule a Reminder. If the Request
// carries no ID, one is generated. It returns the ID of the Reminder.
func (c *Client) Schedule(req Request) (string, error) {
	var (
		err    error
		ores   *objects.Response
		values = make(url.Values)
	)

	if req.ID == "" {
		req.ID = common.GetUUID()
	}

	values.Set("id", req.ID)
	values.Set("title", req.Title)
	values.Set("time", req.Time)
	values.Set("date", req.Date)
	values.Set("duration", req.Duration)

	if ores, err = c.post(addPath, values); err != nil {
		return "", err
	}

	c.log.Printf("[DEBUG] Scheduled Reminder %q as %s\n",
		req.Title,
		ores.Message)

	return ores.Message, nil
} // func (c *Client) Schedule(req Request) (string, error)

// Pending returns the Reminders the backend has not delivered, yet.
func (c *Client) Pending() ([]objects.Reminder, error) {
	var (
		err       error
		reminders []objects.Reminder
	)

	if _, err = c.get(pendingPath, &reminders); err != nil {
		return nil, err
	}

	return reminders, nil
} // func (c *Client) Pending() ([]objects.Reminder, error)

// GetReminder fetches a single Reminder. If the backend does not know
// it, the error is ErrNotFound.
func (c *Client) GetReminder(id string) (*objects.Reminder, error) {
	var (
		err    error
		status int
		rem    = new(objects.Reminder)
		path   = fmt.Sprintf(reminderPath, url.PathEscape(id))
	)

	if status, err = c.get(path, rem); err != nil {
		if status == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return rem, nil
} // func (c *Client) GetReminder(id string) (*objects.Reminder, error)

// Cancel asks the backend to delete a Reminder.
func (c *Client) Cancel(id string) error {
	var (
		err  error
		path = fmt.Sprintf(deletePath, url.PathEscape(id))
	)

	if _, err = c.post(path, nil); err != nil {
		return err
	}

	return nil
} // func (c *Client) Cancel(id string) error

// ReportActivity tells the backend the user has been active.
func (c *Client) ReportActivity(source string) error {
	var (
		err    error
		values = make(url.Values)
	)

	values.Set("source", source)

	_, err = c.post(activityPath, values)
	return err
} // func (c *Client) ReportActivity(source string) error

// Activity returns what the backend knows about the user's activity.
func (c *Client) Activity() (*objects.Activity, error) {
	var (
		err error
		act = new(objects.Activity)
	)

	if _, err = c.get(activityPath, act); err != nil {
		return nil, err
	}

	return act, nil
} // func (c *Client) Activity() (*objects.Activity, error)

// Permission returns true if the backend may post notifications.
func (c *Client) Permission() (bool, error) {
	var (
		err  error
		perm objects.Permission
	)

	if _, err = c.get(permissionPath, &perm); err != nil {
		return false, err
	}

	return perm.Granted, nil
} // func (c *Client) Permission() (bool, error)

func (c *Client) post(path string, values url.Values) (*objects.Response, error) {
	var (
		err    error
		msg    string
		rcvBuf bytes.Buffer
		hres   *http.Response
		ores   objects.Response
		addr   = c.endpoint(path)
	)

	if hres, err = c.Client.PostForm(addr, values); err != nil {
		c.log.Printf("[ERROR] Failed to POST to %s: %s\n",
			addr,
			err.Error())
		return nil, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return nil, errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return nil, err
	} else if !ores.Status {
		err = fmt.Errorf("Request to %s failed: %s",
			addr,
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return nil, err
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		addr,
		ores.Message)

	return &ores, nil
} // func (c *Client) post(path string, values url.Values) (*objects.Response, error)

func (c *Client) get(path string, obj any) (int, error) {
	var (
		err    error
		rcvBuf bytes.Buffer
		hres   *http.Response
		addr   = c.endpoint(path)
	)

	if hres, err = c.Client.Get(addr); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			addr,
			err.Error())
		return 0, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		err = fmt.Errorf("Unexpected status from %s: %s",
			addr,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", err.Error())
		return hres.StatusCode, err
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return hres.StatusCode, err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), obj); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return hres.StatusCode, err
	}

	return hres.StatusCode, nil
} // func (c *Client) get(path string, obj any) (int, error)
