// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package dist

import (
	"fmt"
	"strings"
)

// Target is a release target, named after its target triple.
type Target string

const (
	LinuxAmd64   = Target("x86_64-unknown-linux-gnu")
	LinuxArm64   = Target("aarch64-unknown-linux-gnu")
	DarwinAmd64  = Target("x86_64-apple-darwin")
	DarwinArm64  = Target("aarch64-apple-darwin")
	WindowsAmd64 = Target("x86_64-pc-windows-msvc")
)

// Targets lists all the possible targets.
var Targets = []Target{
	LinuxAmd64,
	LinuxArm64,
	DarwinAmd64,
	DarwinArm64,
	WindowsAmd64,
}

type platform struct {
	goos   string
	goarch string
}

var platforms = map[Target]platform{
	LinuxAmd64:   {"linux", "amd64"},
	LinuxArm64:   {"linux", "arm64"},
	DarwinAmd64:  {"darwin", "amd64"},
	DarwinArm64:  {"darwin", "arm64"},
	WindowsAmd64: {"windows", "amd64"},
}

// ParseTarget parses a target triple.
func ParseTarget(s string) (Target, error) {
	target := Target(s)
	if _, ok := platforms[target]; !ok {
		possible := make([]string, len(Targets))
		for i, t := range Targets {
			possible[i] = string(t)
		}
		return "", fmt.Errorf(
			"invalid target '%s'; possible values: %s",
			s, strings.Join(possible, ", "))
	}
	return target, nil
}

// ParseTargets parses a list of target triples.  An empty list gives
// all the targets.
func ParseTargets(ss []string) ([]Target, error) {
	if len(ss) == 0 {
		return Targets, nil
	}
	targets := make([]Target, 0, len(ss))
	for _, s := range ss {
		target, err := ParseTarget(s)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// GOOS gives the GOOS environment variable for the target.
func (target Target) GOOS() string {
	return platforms[target].goos
}

// GOARCH gives the GOARCH environment variable for the target.
func (target Target) GOARCH() string {
	return platforms[target].goarch
}

// BinaryName gives the file name of an executable for the target.
func (target Target) BinaryName(name string) string {
	if target.GOOS() == "windows" {
		return name + ".exe"
	}
	return name
}

// Strippable tells whether the binutils "strip" handles the binaries
// of the target.
func (target Target) Strippable() bool {
	return target.GOOS() == "linux"
}
