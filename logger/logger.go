package logger

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"schedgrid/errors"
)

var errInvalidInterfaceType = errors.NewError("logger", errors.ErrInvalidInterfaceType.Error(), nil)

var (
	mu  sync.Mutex
	buf bytes.Buffer
	out io.Writer = os.Stdout
)

var useLogFile = false
var logFileOpenFailCount = 0
var logFileOpenFailLimit = 20
var logFileName string

var (
	infoLogger  = newLogger(&buf, "INFO: ")
	debugLogger = newLogger(&buf, "DEBUG: ")
	warnLogger  = newLogger(&buf, "WARN: ")
	errorLogger = newLogger(&buf, "ERROR: ")
	fatalLogger = newLogger(&buf, "FATAL: ")
)

// UseLogFile starts mirroring every record into a new timestamped log file
// inside logDir. Console output continues as before.
func UseLogFile(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	err := os.MkdirAll(logDir, os.ModePerm)
	if err != nil {
		return errors.NewError("logger", "could not create log directory", err)
	}

	name := filepath.Join(logDir, time.Now().Format("2006-01-02_150405")+".log")
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		return errors.NewError("logger", "could not open log file", err)
	}
	defer logFile.Close()

	logFileName = name
	logFileOpenFailCount = 0
	useLogFile = true
	return nil
}

// SetOutput replaces the console writer. It returns the previous one.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Flush the buffer to the console, and to the log file if one is in use.
// Must be called with mu held.
func write() {
	defer buf.Reset()

	if useLogFile && logFileOpenFailCount > logFileOpenFailLimit {
		useLogFile = false
		warnLogger.logWrite("Log file failed to open too many times. Logging to file has been disabled")
	}

	if useLogFile {
		logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			logFileOpenFailCount++
			errorLogger.logWrite("%v", errors.NewError("logger", "could not open log file", err))
		} else {
			f := bufio.NewWriter(logFile)
			f.Write(buf.Bytes())
			f.Flush()
			logFile.Close()
		}
	}

	fmt.Fprint(out, buf.String())
}

func record(lw *logWriter, format any, v ...any) bool {
	switch a := format.(type) {
	case string:
		lw.logWrite(a, v...)
	case error:
		lw.logWrite("%v", a)
	default:
		fatalLogger.logWrite("%v", errInvalidInterfaceType)
		return false
	}
	return true
}

func emit(lw *logWriter, format any, v ...any) {
	mu.Lock()
	ok := record(lw, format, v...)
	write()
	mu.Unlock()
	if !ok {
		os.Exit(1)
	}
}

// NOTE: an error passed as format is logged verbatim; any further arguments are ignored.

func Info(format any, v ...any) {
	emit(infoLogger, format, v...)
}

func Debug(format any, v ...any) {
	emit(debugLogger, format, v...)
}

func Warn(format any, v ...any) {
	emit(warnLogger, format, v...)
}

func Error(format any, v ...any) {
	emit(errorLogger, format, v...)
}

// This will log the error, then call os.Exit(1)
func Fatal(format any, v ...any) {
	mu.Lock()
	record(fatalLogger, format, v...)
	write()
	mu.Unlock()
	os.Exit(1)
}
