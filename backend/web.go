// /home/krylon/go/src/github.com/blicero/wellspring/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 20:55:31 krylon>

package backend

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/blicero/wellspring/common"
	"github.com/blicero/wellspring/database"
	"github.com/blicero/wellspring/objects"
	"github.com/blicero/wellspring/objects/relday"
	"github.com/blicero/wellspring/watchdog"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

// validID returns false for IDs that cannot be used in the path of
// /reminder/{id}, either because they contain a slash or because they
// are taken by another route.
func validID(id string) bool {
	return id != "pending" && !strings.Contains(id, "/")
} // func validID(id string) bool

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/reminder/add", d.handleReminderAdd).Methods(http.MethodPost)
	d.router.HandleFunc("/reminder/pending", d.handleReminderGetPending).Methods(http.MethodGet)
	d.router.HandleFunc("/reminder/{id}", d.handleReminderGet).Methods(http.MethodGet)
	d.router.HandleFunc("/reminder/{id}/delete", d.handleReminderDelete).Methods(http.MethodPost)
	d.router.HandleFunc("/activity", d.handleActivityReport).Methods(http.MethodPost)
	d.router.HandleFunc("/activity", d.handleActivityGet).Methods(http.MethodGet)
	d.router.HandleFunc("/permission", d.handlePermissionGet).Methods(http.MethodGet)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web frontend is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) handleReminderAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err                        error
		ok                         bool
		id, title, tstr, dstr, dur string
		tod                        objects.TimeOfDay
		date                       relday.RelDay
		msg                        string
		response                   = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	id = r.PostFormValue("id")
	title = r.PostFormValue("title")
	tstr = r.PostFormValue("time")
	dstr = r.PostFormValue("date")
	dur = r.PostFormValue("duration")

	if id == "" {
		id = common.GetUUID()
	} else if !validID(id) {
		msg = fmt.Sprintf("%q cannot be used as a Reminder ID", id)
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if tod, err = objects.ParseTimeOfDay(tstr); err != nil {
		msg = fmt.Sprintf("Cannot parse time %q: %s",
			tstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if date, err = relday.Parse(dstr); err != nil {
		msg = fmt.Sprintf("Cannot parse date %q: %s",
			dstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if ok, err = d.sched.Schedule(id, title, tod, date, dur); err != nil {
		msg = fmt.Sprintf("Cannot schedule Reminder %q: %s",
			title,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if !ok {
		msg = fmt.Sprintf("%s %s is in the past",
			date,
			tod)
		d.log.Printf("[INFO] Reminder %q was not scheduled: %s\n",
			title,
			msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = id
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleReminderAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGetPending(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		reminders []objects.Reminder
	)

	if reminders, err = d.sched.Pending(); err != nil {
		d.log.Printf("[ERROR] Cannot load Reminders: %s\n",
			err.Error())
		d.sendErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	} else if reminders == nil {
		reminders = []objects.Reminder{}
	}

	d.sendJSON(w, http.StatusOK, reminders)
} // func (d *Daemon) handleReminderGetPending(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		db  *database.Database
		rem *objects.Reminder
		id  = mux.Vars(r)["id"]
	)

	if db, err = d.pool.GetTimeout(dbTimeout); err != nil {
		d.log.Printf("[ERROR] Cannot get database connection: %s\n",
			err.Error())
		d.sendErrorJSON(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	defer d.pool.Put(db)

	if rem, err = db.ReminderGetByID(id); err != nil {
		d.log.Printf("[ERROR] Cannot look up Reminder %q: %s\n",
			id,
			err.Error())
		d.sendErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	} else if rem == nil {
		d.log.Printf("[DEBUG] Reminder %q was not found in database\n", id)
		d.sendErrorJSON(
			w,
			http.StatusNotFound,
			fmt.Sprintf("Reminder %q was not found", id))
		return
	}

	d.sendJSON(w, http.StatusOK, rem)
} // func (d *Daemon) handleReminderGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		msg string
		id  = mux.Vars(r)["id"]
		res = objects.Response{ID: d.getID()}
	)

	if err = d.sched.Cancel(id); err != nil {
		msg = fmt.Sprintf("Failed to delete Reminder %q: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
	} else {
		res.Message = fmt.Sprintf("Reminder %q was deleted", id)
		res.Status = true
	}

	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleActivityReport(w http.ResponseWriter, r *http.Request) {
	var (
		err error
		src string
		res = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		res.Message = err.Error()
		goto SEND_RESPONSE
	}

	// An empty source means the client does not know, or does not
	// care, what kind of activity it saw.
	if src = r.PostFormValue("source"); src == "" {
		d.watch.OnActivity()
	} else if !d.watch.Signal(watchdog.Source(src)) {
		res.Message = fmt.Sprintf("Activity from %q is ignored", src)
		goto SEND_RESPONSE
	}

	res.Status = true
	res.Message = d.watch.LastActivity().Format(common.TimestampFormat)

SEND_RESPONSE:
	d.sendResponseJSON(w, &res)
} // func (d *Daemon) handleActivityReport(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleActivityGet(w http.ResponseWriter, r *http.Request) {
	var act = objects.Activity{
		Last:     d.watch.LastActivity(),
		IdleAt:   d.watch.IdleAt(),
		Notified: d.watch.Notified(),
	}

	d.sendJSON(w, http.StatusOK, &act)
} // func (d *Daemon) handleActivityGet(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handlePermissionGet(w http.ResponseWriter, r *http.Request) {
	var perm = objects.Permission{Granted: d.Permitted()}

	d.sendJSON(w, http.StatusOK, &perm)
} // func (d *Daemon) handlePermissionGet(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	d.sendJSON(w, http.StatusOK, res)
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) sendErrorJSON(w http.ResponseWriter, status int, msg string) {
	var res = objects.Response{
		ID:      d.getID(),
		Message: msg,
	}

	d.sendJSON(w, status, &res)
} // func (d *Daemon) sendErrorJSON(w http.ResponseWriter, status int, msg string)

func (d *Daemon) sendJSON(w http.ResponseWriter, status int, obj any) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(obj); err != nil {
		d.log.Printf("[ERROR] Cannot serialize %T: %s\n",
			obj,
			err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendJSON(w http.ResponseWriter, status int, obj any)
