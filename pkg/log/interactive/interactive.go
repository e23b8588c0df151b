// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package interactive shows the progress of concurrent tasks on a fixed
// set of terminal lines.
package interactive

import (
	"fmt"
	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"github.com/hchauvin/sputnik/pkg/log"
	"os"
	"sort"
	"time"
)

// Report reports a stream of events in an interactive way, using
// an array of fixed terminal lines, until done is closed.  While
// reporting, the messages of the logger are held back.
func Report(l *log.Logger, eventc <-chan interface{}, done <-chan struct{}) error {
	ticker := time.NewTicker(refreshDuration)
	defer ticker.Stop()
	return report(l, eventc, done, clock.New(), ticker.C, &terminalReporter{w: os.Stdout})
}

// refreshDuration is the duration between two refreshes of the interactive output.
const refreshDuration = 50 * time.Millisecond

// taskPersistenceDuration is how long a task is shown after it is done.
const taskPersistenceDuration = 500 * time.Millisecond

type taskProgress struct {
	state     State
	stage     string
	started   *time.Time
	completed *time.Time
}

type summary struct {
	totalDuration time.Duration
	completed     int
	failed        int
}

type reporter interface {
	replace(lines []string) error
	summarize(s summary) error
}

var bold = color.New(color.Bold).SprintFunc()
var red = color.New(color.FgRed, color.Bold).SprintFunc()

func report(
	l *log.Logger,
	eventc <-chan interface{},
	done <-chan struct{},
	clk clock.Clock,
	tickerc <-chan time.Time,
	r reporter,
) error {
	start := clk.Now()

	l.SetInteractive(true)
	defer l.SetInteractive(false)

	progress := make(map[string]taskProgress)

	// After a terminal error, events are still consumed so that the
	// producers never block.
	var replaceErr error
	replace := func(lines []string) {
		if replaceErr != nil {
			return
		}
		replaceErr = r.replace(lines)
	}

	for {
		select {
		case <-done:
			replace(nil)
			if replaceErr != nil {
				return replaceErr
			}
			return r.summarize(summarize(progress, clk.Now().Sub(start)))
		case e := <-eventc:
			if et, ok := e.(SetStateEvent); ok {
				progress[et.Name] = progress[et.Name].apply(et, clk.Now())
			}
		case <-tickerc:
			replace(progressLines(progress, clk.Now(), start))
		}
	}
}

func (p taskProgress) apply(et SetStateEvent, now time.Time) taskProgress {
	switch {
	case et.State == Started && p.started == nil:
		p.started = &now
	case et.State.done():
		if p.started == nil {
			p.started = &now
		}
		p.completed = &now
	}
	p.state = et.State
	p.stage = et.Stage
	return p
}

func summarize(progress map[string]taskProgress, totalDuration time.Duration) summary {
	s := summary{totalDuration: totalDuration.Round(time.Millisecond)}
	for _, p := range progress {
		switch p.state {
		case Completed:
			s.completed++
		case Failed:
			s.failed++
		}
	}
	return s
}

func progressLines(progress map[string]taskProgress, now, start time.Time) []string {
	names := make([]string, 0, len(progress))
	for name := range progress {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(progress)+1)
	doneCount := 0
	for _, name := range names {
		p := progress[name]
		if p.state.done() {
			doneCount++
		}

		var line string
		if p.completed != nil {
			if now.Sub(*p.completed) < taskPersistenceDuration {
				duration := p.completed.Sub(*p.started).Seconds()
				state := bold(p.state)
				if p.state == Failed {
					state = red(p.state)
				}
				line = fmt.Sprintf(bold("=> [%4.1fs]")+" %s %s", duration, name, state)
			}
		} else if p.started != nil {
			duration := now.Sub(*p.started).Seconds()
			line = fmt.Sprintf(bold("=> [%4.1fs]")+" %s %s", duration, name, p.stage)
		}

		if line != "" {
			lines = append(lines, line)
		}
	}
	header := fmt.Sprintf(
		"Running [%d/%d, %3.1fs]:",
		doneCount,
		len(progress),
		now.Sub(start).Seconds())
	return append([]string{header}, lines...)
}
