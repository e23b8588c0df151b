// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package telemetry

import "fmt"

// SerializationError is returned when an invocation cannot be rendered
// into a telemetry command.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("telemetry: cannot serialize invocation: %v", e.Err)
}

// Unwrap gives the underlying error.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// ConfigError is returned when the telemetry configuration is invalid
// or incomplete.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("telemetry: %s", e.Reason)
	}
	return fmt.Sprintf("telemetry: %s: %v", e.Reason, e.Err)
}

// Unwrap gives the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
