// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package invocation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Serialize renders a typed invocation into an invocation tree.  Field
// names follow the json tags of the invocation.  Numbers are kept as
// json.Number so that they are passed along unchanged.
func Serialize(state interface{}) (Node, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize invocation: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var node Node
	if err := dec.Decode(&node); err != nil {
		return nil, fmt.Errorf("cannot decode invocation: %w", err)
	}
	return node, nil
}

// Subcommand is the value of a "command" field in a typed invocation.
// It serializes to {Name: Args}, or to "Name" when there are no Args.
type Subcommand struct {
	Name string
	Args interface{}
}

// MarshalJSON implements json.Marshaler.
func (sub Subcommand) MarshalJSON() ([]byte, error) {
	if sub.Args == nil {
		return json.Marshal(sub.Name)
	}
	return json.Marshal(map[string]interface{}{sub.Name: sub.Args})
}
