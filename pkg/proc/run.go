// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package proc

import (
	"context"
	"fmt"
	"github.com/hchauvin/sputnik/pkg/log"
	"os"
	"strings"
)

// Spec describes a process to run.
type Spec struct {
	Name string
	Args []string
	// Env is appended to the environment of the current process.
	Env []string
	Dir string
}

// String gives a shell-like rendering of the spec, for logging.
func (spec *Spec) String() string {
	parts := make([]string, 0, len(spec.Env)+len(spec.Args)+1)
	parts = append(parts, spec.Env...)
	parts = append(parts, spec.Name)
	for _, arg := range spec.Args {
		if strings.ContainsAny(arg, " \t'\"") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Run runs a process to completion.  Its output is piped to the logger
// under the given log domain.
func Run(ctx context.Context, logger *log.Logger, domain string, spec *Spec) error {
	cmd := GracefulCommandContext(ctx, spec.Name, spec.Args...)
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	cmd.Dir = spec.Dir
	logger.Debug(domain, "%s", spec)
	logger.Pipe(domain, cmd)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", spec.Name, err)
	}
	return nil
}
