// /home/krylon/go/src/github.com/blicero/wellspring/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 18:40:27 krylon>

// Package common contains constants, variables and functions used
// throughout the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blicero/krylib"
	"github.com/blicero/wellspring/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug indicates whether to emit additional log messages and perform
// additional sanity checks.
// Version is the version number to display.
// AppName is the name of the application.
// BuildStamp is the time the binary was built.
const (
	Debug       = true
	Version     = "0.1.0"
	AppName     = "Wellspring"
	BuildStamp  = "2026-10-15 18:40"
	DefaultPort = 7203
)

// TimestampFormat is the format string used to render timestamps.
// TimestampFormatSubSecond adds milliseconds.
// TimestampFormatTime renders only the time of day.
// TimestampFormatDate renders only the date.
const (
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatTime      = "15:04"
	TimestampFormatDate      = "2006-01-02"
)

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines minimum log levels per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(LogLevels))

// MinLogLevel is the minimum level a message must have to be logged.
var MinLogLevel logutils.LogLevel = "TRACE"

func init() {
	for _, id := range logdomain.AllDomains() {
		PackageLevels[id] = MinLogLevel
	}
} // func init()

// BaseDir is the folder where all application-specific files (database,
// log files, etc.) are stored.
// LogPath is the file to the log path.
// DbPath is the path of the main database.
var (
	BaseDir = filepath.Join(
		os.Getenv("HOME"),
		fmt.Sprintf(".%s.d", strings.ToLower(AppName)))
	LogPath = filepath.Join(BaseDir, fmt.Sprintf("%s.log", strings.ToLower(AppName)))
	DbPath  = filepath.Join(BaseDir, fmt.Sprintf("%s.db", strings.ToLower(AppName)))
)

var (
	pathLock sync.RWMutex
	logLock  sync.Mutex
	logFile  *os.File
)

// SetBaseDir sets the BaseDir and related variables.
func SetBaseDir(path string) error {
	pathLock.Lock()

	BaseDir = path
	LogPath = filepath.Join(BaseDir, fmt.Sprintf("%s.log", strings.ToLower(AppName)))
	DbPath = filepath.Join(BaseDir, fmt.Sprintf("%s.db", strings.ToLower(AppName)))

	pathLock.Unlock()

	logLock.Lock()
	if logFile != nil {
		logFile.Close() // nolint: errcheck
		logFile = nil
	}
	logLock.Unlock()

	if err := InitApp(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// GetLogger tries to create a named logger instance and return it.
// If the directory to hold the log file does not exist, try to create it.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		writer  io.Writer
		logName = fmt.Sprintf("%s.%s ",
			AppName,
			dom)
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("error initializing application environment: %s", err.Error())
	}

	logLock.Lock()
	defer logLock.Unlock()

	if logFile == nil {
		pathLock.RLock()
		var path = LogPath
		pathLock.RUnlock()

		if logFile, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600); err != nil {
			msg := fmt.Sprintf("Error opening log file: %s\n", err.Error())
			fmt.Println(msg)
			return nil, fmt.Errorf("%s", msg)
		}
	}

	writer = io.MultiWriter(os.Stdout, logFile)

	var lvl, ok = PackageLevels[dom]

	if !ok {
		lvl = MinLogLevel
	}

	filter := &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: lvl,
		Writer:   writer,
	}

	logger := log.New(filter, logName, log.Ldate|log.Ltime|log.Lshortfile)
	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// SetLogLevel sets the minimum level for all log domains.
func SetLogLevel(lvl string) error {
	var level = logutils.LogLevel(strings.ToUpper(lvl))

	for _, l := range LogLevels {
		if l == level {
			MinLogLevel = level
			for _, id := range logdomain.AllDomains() {
				PackageLevels[id] = level
			}
			return nil
		}
	}

	return fmt.Errorf("Invalid log level %q", lvl)
} // func SetLogLevel(lvl string) error

// InitApp performs some basic preparations for the application to run.
// Currently, this means creating the BaseDir folder.
func InitApp() error {
	var (
		err    error
		exists bool
	)

	pathLock.RLock()
	var dir = BaseDir
	pathLock.RUnlock()

	if exists, err = krylib.Fexists(dir); err != nil {
		return fmt.Errorf("Cannot check if %s exists: %s", dir, err.Error())
	} else if !exists {
		if err = os.MkdirAll(dir, 0700); err != nil {
			msg := fmt.Sprintf("Error creating BaseDir %s: %s", dir, err.Error())
			fmt.Println(msg)
			return fmt.Errorf("%s", msg)
		}
	}

	return nil
} // func InitApp() error

// GetUUID returns a randomized UUID
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
