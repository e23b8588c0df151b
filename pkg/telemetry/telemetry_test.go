// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package telemetry

import (
	"github.com/stretchr/testify/assert"
	"net/url"
	"sync"
	"testing"
)

type fakeClient struct {
	mut      sync.Mutex
	conn     string
	payloads []interface{}
	closed   bool
}

func (c *fakeClient) Send(payload interface{}) {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.payloads = append(c.payloads, payload)
}

func (c *fakeClient) Close() {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.closed = true
}

func registerFake(protocol string) *fakeClient {
	c := &fakeClient{}
	RegisterBackend(Backend{
		Protocol: protocol,
		NewClient: func(connectionString string) (Client, error) {
			c.conn = connectionString
			return c, nil
		},
	})
	return c
}

func TestParseConnectionString(t *testing.T) {
	protocol, conn, err := parseConnectionString("mongo://uri=foo;database=bar")
	assert.NoError(t, err)
	assert.Equal(t, "mongo", protocol)
	assert.Equal(t, "uri=foo;database=bar", conn)

	_, _, err = parseConnectionString("no protocol")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend connection string")
}

func TestNewClient(t *testing.T) {
	fake := registerFake("fake-new-client")

	c, err := NewClient("fake-new-client://foo")
	assert.NoError(t, err)
	assert.Equal(t, fake, c)
	assert.Equal(t, "foo", fake.conn)
	assert.Contains(t, Protocols(), "fake-new-client")

	_, err = NewClient("unregistered://foo")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "has not been registered")
}

func TestNewEndpointClient(t *testing.T) {
	fake := registerFake("fake-endpoint")

	u, err := url.Parse("fake-endpoint://example.com/telemetry")
	assert.NoError(t, err)
	c, err := NewEndpointClient(u)
	assert.NoError(t, err)
	assert.Equal(t, fake, c)
	assert.Equal(t, "example.com/telemetry", fake.conn)
}

func TestRegisterTwice(t *testing.T) {
	registerFake("fake-twice")
	assert.Panics(t, func() { registerFake("fake-twice") })
}
