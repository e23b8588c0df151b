// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package mongo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type options struct {
	uri        string
	database   string
	collection string
	timeout    time.Duration
}

const defaultTimeout = 10 * time.Second

// parseConnectionString parses "uri=...;database=...;collection=...[;timeout=...]".
func parseConnectionString(backendURL string) (*options, error) {
	var components []string
	if backendURL != "" {
		components = strings.Split(backendURL, ";")
	}

	opts := &options{timeout: defaultTimeout}
	for _, s := range components {
		components := strings.SplitN(s, "=", 2)
		if len(components) != 2 {
			return nil, errors.New("URL format error: options must have format \"key=value\"")
		}
		key := components[0]
		value := components[1]
		switch key {
		case "uri":
			opts.uri = value

		case "database":
			opts.database = value

		case "collection":
			opts.collection = value

		case "timeout":
			timeout, err := time.ParseDuration(value)
			if err != nil {
				return nil, fmt.Errorf("invalid timeout \"%s\": %v", value, err)
			}
			opts.timeout = timeout

		default:
			return nil, fmt.Errorf("unrecognized option \"%s\"", key)
		}
	}

	var missingOptions []string
	if opts.uri == "" {
		missingOptions = append(missingOptions, "uri")
	}
	if opts.database == "" {
		missingOptions = append(missingOptions, "database")
	}
	if opts.collection == "" {
		missingOptions = append(missingOptions, "collection")
	}

	if len(missingOptions) > 0 {
		return nil, fmt.Errorf(
			"the following options are mandatory: %s",
			strings.Join(missingOptions, ", "))
	}

	return opts, nil
}
