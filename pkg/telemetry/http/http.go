// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package http implements telemetry on top of HTTP POST requests.
// Importing it registers the "http" and "https" backends.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/avast/retry-go"
	"github.com/hchauvin/sputnik/pkg/telemetry"
	"github.com/hchauvin/sputnik/pkg/version"
	"go.uber.org/atomic"
	"io"
	"io/ioutil"
	"net/http"
	"sync"
	"time"
)

func init() {
	for _, scheme := range []string{"http", "https"} {
		scheme := scheme
		telemetry.RegisterBackend(telemetry.Backend{
			Protocol: scheme,
			NewClient: func(connectionString string) (telemetry.Client, error) {
				return newClient(scheme + "://" + connectionString), nil
			},
		})
	}
}

const logDomain = "telemetry.http"

type client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	attempts   uint
	delay      time.Duration
	timeout    time.Duration

	mut    sync.Mutex
	closed bool
	wg     sync.WaitGroup

	sent    *atomic.Int64
	failed  *atomic.Int64
	dropped *atomic.Int64
}

func newClient(endpoint string) *client {
	info := version.Current()
	name, v := info.Name, info.Version
	if name == "" {
		name = "unknown"
	}
	if v == "" {
		v = "unknown"
	}
	return &client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		userAgent:  fmt.Sprintf("%s/%s", name, v),
		attempts:   3,
		delay:      200 * time.Millisecond,
		timeout:    10 * time.Second,
		sent:       atomic.NewInt64(0),
		failed:     atomic.NewInt64(0),
		dropped:    atomic.NewInt64(0),
	}
}

// Send implements telemetry.Client.
func (c *client) Send(payload interface{}) {
	c.mut.Lock()
	if c.closed {
		c.mut.Unlock()
		c.dropped.Inc()
		return
	}
	c.wg.Add(1)
	c.mut.Unlock()

	go func() {
		defer c.wg.Done()
		if err := c.post(payload); err != nil {
			c.failed.Inc()
			telemetry.Logger().Debug(logDomain, "cannot send telemetry event to %s: %v", c.endpoint, err)
			return
		}
		c.sent.Inc()
	}()
}

// Close implements telemetry.Client.
func (c *client) Close() {
	c.mut.Lock()
	c.closed = true
	c.mut.Unlock()
	c.wg.Wait()
	telemetry.Logger().Debug(logDomain, "sent %d event(s), %d failed, %d dropped",
		c.sent.Load(), c.failed.Load(), c.dropped.Load())
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d: %s", e.code, e.body)
}

func retryable(err error) bool {
	var status *statusError
	if errors.As(err, &status) {
		return status.code >= 500 || status.code == http.StatusTooManyRequests
	}
	return true
}

func (c *client) post(payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal payload: %w", err)
	}

	return retry.Do(
		func() error { return c.postOnce(body) },
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.RetryIf(retryable),
	)
}

func (c *client) postOnce(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("cannot create request: %w", err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 1024))
		return &statusError{code: resp.StatusCode, body: string(b)}
	}
	_, _ = io.Copy(ioutil.Discard, resp.Body)
	return nil
}
