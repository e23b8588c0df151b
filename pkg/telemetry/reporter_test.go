// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package telemetry

import (
	"errors"
	"github.com/hchauvin/sputnik/pkg/invocation"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestReporterReport(t *testing.T) {
	b := newTestBuilder(nil)
	fake := &fakeClient{}
	r := NewReporterWithClient(b, fake)
	assert.True(t, r.Enabled())

	err := r.Report(rootArgs{Command: invocation.Subcommand{Name: "Dist", Args: distArgs{Target: "x"}}})
	assert.NoError(t, err)
	r.Close(time.Second)

	assert.True(t, fake.closed)
	assert.Len(t, fake.payloads, 1)
	session := fake.payloads[0].(*Session)
	assert.Equal(t, "dist", session.Command.Name)
	assert.Equal(t, map[string]interface{}{"target": "x"}, session.Command.Arguments)
}

func TestReporterDisabled(t *testing.T) {
	b := newTestBuilder(map[string]string{DisabledEnv: "1"})
	fake := &fakeClient{}
	r := NewReporterWithClient(b, fake)
	assert.False(t, r.Enabled())

	assert.NoError(t, r.Report(rootArgs{}))
	r.Close(time.Second)
	assert.Empty(t, fake.payloads)
	assert.False(t, fake.closed)

	r, err := NewReporter(b)
	assert.NoError(t, err)
	assert.False(t, r.Enabled())
}

func TestReporterSerializationError(t *testing.T) {
	fake := &fakeClient{}
	r := NewReporterWithClient(newTestBuilder(nil), fake)

	err := r.Report(func() {})
	var serializationErr *SerializationError
	assert.True(t, errors.As(err, &serializationErr))
	assert.Empty(t, fake.payloads)
}

func TestNewReporterConnectionString(t *testing.T) {
	fake := registerFake("fake-reporter")
	b := newTestBuilder(nil)
	b.Config.ConnectionString = "fake-reporter://somewhere"

	r, err := NewReporter(b)
	assert.NoError(t, err)
	assert.True(t, r.Enabled())
	assert.Equal(t, "somewhere", fake.conn)
}

func TestNewReporterInvalidEndpoint(t *testing.T) {
	b := newTestBuilder(map[string]string{URLEnv: "not a url"})

	r, err := NewReporter(b)
	var configErr *ConfigError
	assert.True(t, errors.As(err, &configErr))
	assert.False(t, r.Enabled())
}

func TestNewReporterUnknownBackend(t *testing.T) {
	b := newTestBuilder(nil)
	b.Config.ConnectionString = "unregistered-backend://x"

	r, err := NewReporter(b)
	var configErr *ConfigError
	assert.True(t, errors.As(err, &configErr))
	assert.False(t, r.Enabled())
}

type blockingClient struct{}

func (blockingClient) Send(interface{}) {}
func (blockingClient) Close()           { select {} }

func TestReporterCloseTimeout(t *testing.T) {
	r := NewReporterWithClient(newTestBuilder(nil), blockingClient{})
	start := time.Now()
	r.Close(10 * time.Millisecond)
	assert.True(t, time.Since(start) < time.Second)
}
