// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package invocation flattens the tree-shaped representation of a command
// invocation ("which subcommand was invoked, with which arguments") into a
// command name and a flat argument map.
//
// An invocation tree is a generic JSON value, as decoded by encoding/json:
// map[string]interface{}, []interface{}, string, json.Number, bool or nil.
// The "command" field of a map tells what to do next:
//
//   - a map {name: rest}: the subcommand name, rest being the next node;
//   - a string: a terminal subcommand name;
//   - nil, or no "command" field: the node holds the arguments;
//     nodes that are not maps hold no arguments;
//   - anything else: a terminal label, given by its debug rendering.
//
// The debug rendering of a value is its compact JSON encoding, lowercased:
// {"command": 5} gives the label "5", {"command": ["A"]} gives `["a"]`.
//
// Serializers must emit single-key maps for subcommands: when a map has
// more than one key, only the first one in sorted order is consulted.
package invocation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// CommandField is the name of the field that holds the subcommand.
const CommandField = "command"

// Separator joins the subcommand labels.
const Separator = " "

// MaxDepth bounds the number of descent steps Flatten takes.
const MaxDepth = 64

// ErrTooDeep is returned when an invocation tree is nested deeper than
// MaxDepth.
var ErrTooDeep = errors.New("invocation tree exceeds the maximum depth")

// Node is an invocation tree.
type Node = interface{}

// Command is a flattened invocation.
type Command struct {
	// Name is the lowercased subcommand labels, from root to leaf,
	// joined by Separator.
	Name string `json:"name"`

	// Arguments maps the lowercased field names of the terminal node
	// to their values.
	Arguments map[string]interface{} `json:"arguments"`
}

// Flatten flattens an invocation tree.  The tree is not modified.
func Flatten(root Node) (*Command, error) {
	var labels []string
	arguments := make(map[string]interface{})

	node := root
	for depth := 0; ; depth++ {
		if depth >= MaxDepth {
			return nil, ErrTooDeep
		}
		s := next(node)
		if s.args != nil {
			harvest(arguments, s.args)
		}
		if !s.hasLabel {
			break
		}
		labels = append(labels, strings.ToLower(s.label))
		if s.terminal {
			break
		}
		node = s.rest
	}

	return &Command{
		Name:      strings.Join(labels, Separator),
		Arguments: arguments,
	}, nil
}

type step struct {
	label    string
	hasLabel bool
	terminal bool
	rest     Node
	args     map[string]interface{}
}

func next(node Node) step {
	fields, _ := node.(map[string]interface{})

	switch cmd := fields[CommandField].(type) {
	case nil:
		if fields == nil {
			fields = map[string]interface{}{}
		}
		return step{args: fields}
	case map[string]interface{}:
		keys := sortedKeys(cmd)
		if len(keys) == 0 {
			return step{}
		}
		return step{label: keys[0], hasLabel: true, rest: cmd[keys[0]]}
	case string:
		return step{label: cmd, hasLabel: true, terminal: true}
	default:
		return step{label: debugString(cmd), hasLabel: true, terminal: true}
	}
}

func harvest(arguments map[string]interface{}, fields map[string]interface{}) {
	for _, key := range sortedKeys(fields) {
		if key == CommandField {
			continue
		}
		arguments[strings.ToLower(key)] = fields[key]
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// debugString renders a value the way it appears in the invocation tree.
func debugString(v interface{}) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
