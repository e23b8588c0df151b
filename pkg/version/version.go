// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package version holds the constants injected at build time with
//
//	go build -ldflags "-X github.com/hchauvin/sputnik/pkg/version.Version=1.2.3"
//
// An empty value means that the constant was not injected.
package version

import (
	"fmt"
	"strings"
)

const importPath = "github.com/hchauvin/sputnik/pkg/version"

// Build profiles.
const (
	ProfileDebug   = "debug"
	ProfileRelease = "release"
)

var (
	// Name is the name of the tool.
	Name = "sputnik"

	// Version is the semantic version of the tool.
	Version = ""

	// Commit is the git commit the tool was built from.
	Commit = ""

	// Date is the build date.
	Date = ""

	// Profile is either ProfileDebug or ProfileRelease.  Binaries
	// built with a plain "go build" are debug builds.
	Profile = ProfileDebug

	// TelemetryDisabled, when non-empty, disables telemetry for
	// the whole build.
	TelemetryDisabled = ""

	// TelemetryURL overrides the telemetry endpoint for the whole build.
	TelemetryURL = ""
)

// Info is a snapshot of the build-time constants.
type Info struct {
	Name              string
	Version           string
	Commit            string
	Date              string
	Profile           string
	TelemetryDisabled string
	TelemetryURL      string
}

// Current returns the build-time constants of the running binary.
func Current() Info {
	return Info{
		Name:              Name,
		Version:           Version,
		Commit:            Commit,
		Date:              Date,
		Profile:           Profile,
		TelemetryDisabled: TelemetryDisabled,
		TelemetryURL:      TelemetryURL,
	}
}

// String formats the version for --version output.
func (info Info) String() string {
	return fmt.Sprintf("%s (commit: %s; date: %s; profile: %s)",
		orUnknown(info.Version), orUnknown(info.Commit), orUnknown(info.Date), info.Profile)
}

// LDFlags gives the -X linker flags that inject info into a build.
// Empty fields are not injected.
func (info Info) LDFlags() []string {
	var flags []string
	add := func(name, value string) {
		if value == "" {
			return
		}
		def := fmt.Sprintf("%s.%s=%s", importPath, name, value)
		if strings.ContainsAny(def, " \t") {
			def = "'" + def + "'"
		}
		flags = append(flags, "-X", def)
	}
	add("Name", info.Name)
	add("Version", info.Version)
	add("Commit", info.Commit)
	add("Date", info.Date)
	add("Profile", info.Profile)
	add("TelemetryDisabled", info.TelemetryDisabled)
	add("TelemetryURL", info.TelemetryURL)
	return flags
}

func orUnknown(s string) string {
	if s == "" {
		return "<unknown>"
	}
	return s
}
