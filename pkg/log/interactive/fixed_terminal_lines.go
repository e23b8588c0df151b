// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package interactive

import (
	"golang.org/x/crypto/ssh/terminal"
	"os"
	"regexp"
	"strings"
)

// IsTerminal tells whether a file, typically os.Stdout, is a terminal
// that can show interactive progress.
func IsTerminal(f *os.File) bool {
	return terminal.IsTerminal(int(f.Fd()))
}

// fixedTerminalLines replaces the lines it previously wrote.
type fixedTerminalLines struct {
	curLineCount int
}

var ansi = regexp.MustCompile(`^\x1b\[[0-9;]*[a-zA-Z]`)

func (fixed *fixedTerminalLines) replace(f *os.File, lines []string) error {
	screenWidth, screenHeight, err := terminal.GetSize(int(f.Fd()))
	if err != nil {
		return err
	}

	finalLines := wrapLines(lines, screenWidth)
	if len(finalLines) > screenHeight && screenHeight > 0 {
		finalLines = append([]string{"..."}, finalLines[len(finalLines)-screenHeight+1:]...)
	}

	var output strings.Builder
	output.WriteString(fixed.clearStr())
	for _, line := range finalLines {
		output.WriteString(line)
		output.WriteRune('\n')
	}

	if _, err := f.WriteString(output.String()); err != nil {
		return err
	}

	fixed.curLineCount = len(finalLines)
	return nil
}

// wrapLines wraps lines at screenWidth.  ANSI escape sequences do
// not count towards the width.
func wrapLines(lines []string, screenWidth int) []string {
	finalLines := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			finalLines = append(finalLines, line)
			continue
		}
		var curLine strings.Builder
		curLineLength := 0
		for i := 0; i < len(line); {
			c := line[i]
			if c != '\x1b' {
				curLine.WriteByte(c)
				curLineLength++
				i++
			} else {
				match := ansi.FindString(line[i:])
				if match == "" {
					match = line[i : i+1]
				}
				curLine.WriteString(match)
				i += len(match)
			}
			if curLineLength == screenWidth || i == len(line) {
				finalLines = append(finalLines, curLine.String())
				curLine.Reset()
				curLineLength = 0
			}
		}
	}
	return finalLines
}

func (fixed *fixedTerminalLines) clearStr() string {
	var s strings.Builder
	for i := 0; i < fixed.curLineCount; i++ {
		s.WriteString("\x1B[1A\x1B[K")
	}
	return s.String()
}
