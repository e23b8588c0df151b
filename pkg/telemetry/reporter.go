// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package telemetry

import (
	"time"
)

// Reporter reports invocations.  A Reporter whose telemetry is disabled
// reports nothing.
type Reporter struct {
	builder *Builder
	client  Client
}

// NewReporter creates a reporter.  The client is created from the
// configured connection string if any, otherwise from the resolved
// endpoint.
func NewReporter(b *Builder) (*Reporter, error) {
	if !b.IsEnabled() {
		b.logger().Debug(logDomain, "disabled")
		return &Reporter{builder: b}, nil
	}

	var client Client
	var err error
	if b.Config.ConnectionString != "" {
		client, err = NewClient(b.Config.ConnectionString)
	} else {
		endpoint, endpointErr := b.ResolveEndpoint()
		if endpointErr != nil {
			return &Reporter{builder: b}, endpointErr
		}
		client, err = NewEndpointClient(endpoint)
	}
	if err != nil {
		return &Reporter{builder: b}, &ConfigError{Reason: "cannot create client", Err: err}
	}
	return &Reporter{builder: b, client: client}, nil
}

// NewReporterWithClient creates a reporter that sends to a given client.
func NewReporterWithClient(b *Builder, client Client) *Reporter {
	if !b.IsEnabled() {
		return &Reporter{builder: b}
	}
	return &Reporter{builder: b, client: client}
}

// Enabled tells whether the reporter sends anything.
func (r *Reporter) Enabled() bool {
	return r.client != nil
}

// Report sends the telemetry event for an invocation.  Sending is
// asynchronous.  The error, if any, is only meant to be logged.
func (r *Reporter) Report(state interface{}) error {
	if r.client == nil {
		return nil
	}
	session, err := r.builder.NewSession(state)
	if err != nil {
		return err
	}
	r.client.Send(session)
	return nil
}

// Close flushes the pending events, waiting at most for timeout.
func (r *Reporter) Close(timeout time.Duration) {
	if r.client == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		r.client.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		r.builder.logger().Debug(logDomain, "timed out after %v while flushing events", timeout)
	}
}
