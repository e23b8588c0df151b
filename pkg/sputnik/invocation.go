// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package sputnik

import "github.com/hchauvin/sputnik/pkg/invocation"

// Invocation is the typed state of a command line, as reported
// by telemetry.  Paths given on the command line are never part of it.
type Invocation struct {
	Verbose bool                  `json:"verbose"`
	Command invocation.Subcommand `json:"command"`
}

// DistArgs are the arguments of "dist".
type DistArgs struct {
	Target      []string `json:"target"`
	Parallelism int      `json:"parallelism"`
}

// CompletionsArgs are the arguments of "completions".
type CompletionsArgs struct {
	Shell string `json:"shell"`
}

// TelemetryArgs wraps the subcommands of "telemetry".
type TelemetryArgs struct {
	Command invocation.Subcommand `json:"command"`
}

// TelemetryShowArgs are the arguments of "telemetry show".
type TelemetryShowArgs struct {
	Format string `json:"format"`
}

// NewInvocation creates the invocation of a top-level command.
func NewInvocation(verbose bool, name string, args interface{}) *Invocation {
	return &Invocation{
		Verbose: verbose,
		Command: invocation.Subcommand{Name: name, Args: args},
	}
}

// NewTelemetryInvocation creates the invocation of a "telemetry" subcommand.
func NewTelemetryInvocation(verbose bool, name string, args interface{}) *Invocation {
	return NewInvocation(verbose, "telemetry", &TelemetryArgs{
		Command: invocation.Subcommand{Name: name, Args: args},
	})
}
