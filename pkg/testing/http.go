// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package testing provides helpers to test telemetry transports.
package testing

import (
	"encoding/json"
	"fmt"
	"github.com/avast/retry-go"
	"github.com/julienschmidt/httprouter"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Request is a request received by a Collector.
type Request struct {
	Path   string
	Header http.Header
	Body   map[string]interface{}
}

// Collector is an HTTP server that records the JSON bodies posted to it.
type Collector struct {
	*httptest.Server

	mut      sync.Mutex
	requests []Request
	statuses []int
}

// NewCollector starts a Collector.  The given statuses are returned,
// in order, to the first requests; the following ones get 200.
func NewCollector(statuses ...int) *Collector {
	c := &Collector{statuses: statuses}
	router := httprouter.New()
	router.POST("/*path", c.handle)
	c.Server = httptest.NewServer(router)
	return c
}

func (c *Collector) handle(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	b, err := ioutil.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var body map[string]interface{}
	if err := json.Unmarshal(b, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.mut.Lock()
	status := http.StatusOK
	if len(c.statuses) > 0 {
		status = c.statuses[0]
		c.statuses = c.statuses[1:]
	}
	if status == http.StatusOK {
		c.requests = append(c.requests, Request{Path: p.ByName("path"), Header: r.Header.Clone(), Body: body})
	}
	c.mut.Unlock()

	w.WriteHeader(status)
}

// Requests gives the requests recorded so far.
func (c *Collector) Requests() []Request {
	c.mut.Lock()
	defer c.mut.Unlock()
	return append([]Request(nil), c.requests...)
}

// ExpectRequests waits until the collector has recorded n requests.
func (c *Collector) ExpectRequests(n int) ([]Request, error) {
	var requests []Request
	err := retry.Do(func() error {
		requests = c.Requests()
		if len(requests) != n {
			return fmt.Errorf("expected %d request(s), got %d", n, len(requests))
		}
		return nil
	}, retry.Attempts(20), retry.Delay(10*time.Millisecond), retry.DelayType(retry.FixedDelay))
	return requests, err
}
