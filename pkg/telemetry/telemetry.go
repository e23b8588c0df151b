// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package telemetry implements telemetry to monitor the usage of the
// Command-Line Interface.
package telemetry

import (
	"fmt"
	"github.com/hchauvin/sputnik/pkg/log"
	"net/url"
	"regexp"
	"sort"
	"sync"
)

const logDomain = "telemetry"

// Client is a telemetry client.
type Client interface {
	// Send sends a payload.  Sending is asynchronous, and errors are
	// not reported to the caller.
	Send(payload interface{})
	// Close flushes the pending payloads and releases the client.
	Close()
}

// Backend is a telemetry backend.  Backends need to
// be registered with RegisterBackend.
type Backend struct {
	Protocol  string
	NewClient func(connectionString string) (Client, error)
}

var (
	backendsMut sync.RWMutex
	backends    = make(map[string]Backend)

	backendLoggerMut sync.RWMutex
	backendLogger    = &log.Logger{}
)

// SetLogger sets the logger the backends report their errors to.
func SetLogger(l *log.Logger) {
	backendLoggerMut.Lock()
	defer backendLoggerMut.Unlock()
	backendLogger = l
}

// Logger gives the logger the backends report their errors to.
func Logger() *log.Logger {
	backendLoggerMut.RLock()
	defer backendLoggerMut.RUnlock()
	return backendLogger
}

// RegisterBackend registers a backend.  This function is typically called
// in the "init" function of backend packages.
func RegisterBackend(backend Backend) {
	backendsMut.Lock()
	defer backendsMut.Unlock()
	if _, ok := backends[backend.Protocol]; ok {
		panic(fmt.Sprintf("backend '%s' is already registered", backend.Protocol))
	}
	backends[backend.Protocol] = backend
}

// Protocols gives the protocols of the registered backends.
func Protocols() []string {
	backendsMut.RLock()
	defer backendsMut.RUnlock()
	protocols := make([]string, 0, len(backends))
	for protocol := range backends {
		protocols = append(protocols, protocol)
	}
	sort.Strings(protocols)
	return protocols
}

// NewClient creates a new telemetry client from a connection string
// with format "<protocol>://<backend connection string>".
func NewClient(connectionString string) (Client, error) {
	backendProtocol, backendConnectionString, err := parseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}

	backendsMut.RLock()
	backend, ok := backends[backendProtocol]
	backendsMut.RUnlock()
	if !ok {
		return nil, fmt.Errorf("backend '%s' has not been registered", backendProtocol)
	}

	return backend.NewClient(backendConnectionString)
}

// NewEndpointClient creates a new telemetry client that sends
// payloads to an endpoint.  The backend is chosen from the URL scheme.
func NewEndpointClient(endpoint *url.URL) (Client, error) {
	return NewClient(endpoint.String())
}

var parseURLRe = regexp.MustCompile("^([^:]+)://(.+)$")

func parseConnectionString(url string) (backendProtocol string, backendConnectionString string, err error) {
	submatches := parseURLRe.FindStringSubmatch(url)
	if submatches == nil {
		return "", "", fmt.Errorf("telemetry: invalid backend connection string: '%s'", url)
	}
	if len(submatches) != 3 {
		panic("expected 3 submatches")
	}
	backendProtocol = submatches[1]
	backendConnectionString = submatches[2]
	return
}
