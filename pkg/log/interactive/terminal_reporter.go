// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package interactive

import (
	"fmt"
	"io"
	"os"
)

type terminalReporter struct {
	w     *os.File
	fixed fixedTerminalLines
}

func (r *terminalReporter) replace(lines []string) error {
	return r.fixed.replace(r.w, lines)
}

func (r *terminalReporter) summarize(s summary) error {
	return writeSummary(r.w, s)
}

func writeSummary(w io.Writer, s summary) error {
	_, err := fmt.Fprintf(w,
		"----------------------------\n"+
			"Completed: %d, failed: %d\n"+
			"Total duration: %s\n",
		s.completed, s.failed, s.totalDuration)
	return err
}
