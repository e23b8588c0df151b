// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package interactive

// SetStateEvent reports the setting of the state of a task.
type SetStateEvent struct {
	// Name is the name of the task.
	Name string
	// State is the next state of the task.
	State State
	// Stage further qualifies the state.
	Stage string
}

// State is the state of a task.
type State string

const (
	// Initial is the state a task is initially in.
	Initial State = "initial"
	// Started is the state a task is in after work has started.
	Started State = "started"
	// Completed is the state a task is in after work is complete.
	Completed State = "completed"
	// Failed is the state a task is in after work has failed.
	Failed State = "failed"
)

func (state State) done() bool {
	return state == Completed || state == Failed
}
