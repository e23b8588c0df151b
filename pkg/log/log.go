// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// log implements logging.
//
// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin
package log

import (
	"bufio"
	"fmt"
	"github.com/fatih/color"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Logger logs messages prefixed by a log domain.  The zero value
// logs to stdout and discards debug messages.
type Logger struct {
	// Writer is where the messages go.  Defaults to stdout.
	Writer io.Writer

	// Verbose enables debug messages.
	Verbose bool

	mut         sync.Mutex
	interactive bool
	held        []string
}

const logDomain = "log"

var formatPrefix = color.New(color.Bold).SprintFunc()
var formatDebugPrefix = color.New(color.FgCyan).SprintFunc()
var formatWarningPrefix = color.New(color.FgMagenta).SprintFunc()
var formatErrorPrefix = color.New(color.FgRed).SprintFunc()

// Debug logs a debug message for the given log domain.  Debug messages
// are only shown when the logger is verbose.
func (l *Logger) Debug(domain string, message string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	l.printf(formatPrefix(domain+":")+formatDebugPrefix("DEBUG: ")+message+"\n", args...)
}

// Info logs an info message for the given log domain.
func (l *Logger) Info(domain string, message string, args ...interface{}) {
	l.printf(formatPrefix(domain+": ")+message+"\n", args...)
}

// Warning logs a warning message for the given log domain.
func (l *Logger) Warning(domain string, message string, args ...interface{}) {
	l.printf(formatPrefix(domain+":")+formatWarningPrefix("WARNING: ")+message+"\n", args...)
}

// Error logs an error message for the given log domain.
func (l *Logger) Error(domain string, message string, args ...interface{}) {
	l.printf(formatPrefix(domain+":")+formatErrorPrefix("ERROR: ")+message+"\n", args...)
}

// SetInteractive sets whether the terminal is used for interactive
// output.  Messages logged while interactive are held back, and written
// when interactive mode is left.
func (l *Logger) SetInteractive(interactive bool) {
	l.mut.Lock()
	defer l.mut.Unlock()
	l.interactive = interactive
	if interactive {
		return
	}
	w := l.writer()
	for _, msg := range l.held {
		io.WriteString(w, msg)
	}
	l.held = nil
}

func (l *Logger) printf(format string, args ...interface{}) {
	l.mut.Lock()
	defer l.mut.Unlock()
	msg := fmt.Sprintf(format, args...)
	if l.interactive {
		l.held = append(l.held, msg)
		return
	}
	io.WriteString(l.writer(), msg)
}

func (l *Logger) writer() io.Writer {
	if l.Writer == nil {
		return os.Stdout
	}
	return l.Writer
}

// Pipe logs the stdout and stderr of a process.  The output is split
// by line, and each line is logged as an info message for the given
// log domain.  Pipe must be called before the command is started.
//
// In the context of a CLI, this prefixes every line of output with the
// log domain, and helps readability when the outputs are multiplexed.
func (l *Logger) Pipe(domain string, cmd *exec.Cmd) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		l.Error(logDomain, "could not pipe command stdout: %v", err)
		return
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		l.Error(logDomain, "could not pipe command stderr: %v", err)
		return
	}

	l.PipeReader(domain, stdout)
	l.PipeReader(domain, stderr)
}

// PipeReader logs the lines scanned from a reader.  Each line
// is logged as an info message for the given log domain.
func (l *Logger) PipeReader(domain string, r io.Reader) {
	go l.pipeLines(domain, r)
}

func (l *Logger) pipeLines(domain string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l.Info(domain, "%s", scanner.Text())
	}
}
