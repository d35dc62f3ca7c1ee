// Copyright 2017-2021 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package dplog extends Go's logging functionality to allow for multiple
// loggers, each one with their own logging level. To use dplog, call
// AddLogger() to set up each desired logger, then use the package-level
// logging functions to send messages to all defined loggers.
//
// dplog is adapted from minimega's minilog: same multi-logger, leveled
// design, trimmed of syslog support since this repo has no daemon mode.
package dplog

import (
	"errors"
	"flag"
	"fmt"
	golog "log"
	"io"
	"os"
	"sync"
)

// Log levels supported: DEBUG -> INFO -> WARN -> ERROR -> FATAL
type Level int

const (
	_ Level = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	case FATAL:
		return "fatal"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel returns the log level from a string.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "fatal":
		return FATAL, nil
	}
	return 0, errors.New("invalid log level")
}

var (
	FlagLevel   = flag.String("level", "warn", "set log level: [debug, info, warn, error, fatal]")
	FlagVerbose = flag.Bool("v", true, "log on stderr")
	FlagFile    = flag.String("logfile", "", "also log to file")
)

type logger struct {
	out   *golog.Logger
	level Level
}

func (l *logger) log(level Level, name, format string, arg ...interface{}) {
	if level < l.level {
		return
	}
	prefix := level.String()
	if name != "" {
		prefix = name + ":" + prefix
	}
	l.out.Printf("%s: %s", prefix, fmt.Sprintf(format, arg...))
}

func (l *logger) logln(level Level, name string, arg ...interface{}) {
	if level < l.level {
		return
	}
	prefix := level.String()
	if name != "" {
		prefix = name + ":" + prefix
	}
	l.out.Println(append([]interface{}{prefix + ":"}, arg...)...)
}

var (
	loggers = make(map[string]*logger)
	mu      sync.RWMutex
)

// AddLogger adds a logger that only emits events at level or higher.
func AddLogger(name string, output io.Writer, level Level) {
	mu.Lock()
	defer mu.Unlock()

	loggers[name] = &logger{golog.New(output, "", golog.LstdFlags), level}
}

// DelLogger removes a named logger that was added using AddLogger.
func DelLogger(name string) {
	mu.Lock()
	defer mu.Unlock()

	delete(loggers, name)
}

// Loggers returns the names of all registered loggers.
func Loggers() []string {
	mu.RLock()
	defer mu.RUnlock()

	var ret []string
	for name := range loggers {
		ret = append(ret, name)
	}
	return ret
}

// WillLog returns true if logging at level would reach at least one
// registered logger. Useful when the message itself is expensive to build.
func WillLog(level Level) bool {
	mu.RLock()
	defer mu.RUnlock()

	for _, l := range loggers {
		if l.level <= level {
			return true
		}
	}
	return false
}

// SetLevel changes the level for a named logger.
func SetLevel(name string, level Level) error {
	mu.Lock()
	defer mu.Unlock()

	l, ok := loggers[name]
	if !ok {
		return fmt.Errorf("no such logger: %v", name)
	}
	l.level = level
	return nil
}

// GetLevel returns the level for a named logger.
func GetLevel(name string) (Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	l, ok := loggers[name]
	if !ok {
		return 0, fmt.Errorf("no such logger: %v", name)
	}
	return l.level, nil
}

// Init sets up logging according to the package flags. Call after flag.Parse.
func Init() error {
	level, err := ParseLevel(*FlagLevel)
	if err != nil {
		return err
	}

	if *FlagVerbose {
		AddLogger("stdio", os.Stderr, level)
	}

	if *FlagFile != "" {
		f, err := os.OpenFile(*FlagFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0660)
		if err != nil {
			return err
		}
		AddLogger("file", f, level)
	}

	return nil
}

func log(level Level, name, format string, arg ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()

	for _, l := range loggers {
		l.log(level, name, format, arg...)
	}
}

func logln(level Level, name string, arg ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()

	for _, l := range loggers {
		l.logln(level, name, arg...)
	}
}

func Debug(format string, arg ...interface{}) { log(DEBUG, "", format, arg...) }
func Info(format string, arg ...interface{})  { log(INFO, "", format, arg...) }
func Warn(format string, arg ...interface{})  { log(WARN, "", format, arg...) }
func Error(format string, arg ...interface{}) { log(ERROR, "", format, arg...) }

// Fatal logs at FATAL and exits the process. Reserved for startup failures,
// never called from the batch-delivery hot path.
func Fatal(format string, arg ...interface{}) {
	log(FATAL, "", format, arg...)
	os.Exit(1)
}

func Debugln(arg ...interface{}) { logln(DEBUG, "", arg...) }
func Infoln(arg ...interface{})  { logln(INFO, "", arg...) }
func Warnln(arg ...interface{})  { logln(WARN, "", arg...) }
func Errorln(arg ...interface{}) { logln(ERROR, "", arg...) }
