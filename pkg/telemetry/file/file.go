// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package file implements telemetry on top of a local file, with one
// JSON document per line.  Importing it registers the "file" backend.
package file

import (
	"encoding/json"
	"fmt"
	"github.com/hchauvin/sputnik/pkg/telemetry"
	"github.com/spf13/afero"
	"os"
	"path/filepath"
	"reflect"
	"sync"
)

func init() {
	telemetry.RegisterBackend(telemetry.Backend{
		Protocol: "file",
		NewClient: func(connectionString string) (telemetry.Client, error) {
			return New(afero.NewOsFs(), connectionString)
		},
	})
}

const logDomain = "telemetry.file"

// Client appends telemetry payloads to a file.
type Client struct {
	fs   afero.Fs
	path string
	mut  sync.Mutex
}

// Document is a line of the telemetry file.
type Document struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// New creates a client that appends to the file at path.
func New(fs afero.Fs, path string) (*Client, error) {
	if path == "" {
		return nil, fmt.Errorf("file: path is empty")
	}
	return &Client{
		fs:   fs,
		path: filepath.FromSlash(path),
	}, nil
}

// Send implements telemetry.Client.  Writes are synchronous.
func (c *Client) Send(payload interface{}) {
	if err := c.append(payload); err != nil {
		telemetry.Logger().Debug(logDomain, "cannot write telemetry event to '%s': %v", c.path, err)
	}
}

// Close implements telemetry.Client.
func (c *Client) Close() {}

func (c *Client) append(payload interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	line, err := json.Marshal(Document{Type: typeName(payload), Payload: b})
	if err != nil {
		return err
	}
	line = append(line, '\n')

	c.mut.Lock()
	defer c.mut.Unlock()

	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0777); err != nil {
		return err
	}
	f, err := c.fs.OpenFile(c.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func typeName(v interface{}) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
