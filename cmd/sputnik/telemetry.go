// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package main

import (
	"github.com/hchauvin/sputnik/pkg/sputnik"
	"github.com/hchauvin/sputnik/pkg/telemetry"
	_ "github.com/hchauvin/sputnik/pkg/telemetry/file"
	_ "github.com/hchauvin/sputnik/pkg/telemetry/http"
	_ "github.com/hchauvin/sputnik/pkg/telemetry/mongo"
	"github.com/urfave/cli"
	"time"
)

// flushTimeout bounds the time spent waiting for in-flight telemetry
// events when a command completes.
const flushTimeout = 2 * time.Second

type commandTelemetry struct {
	reporter *telemetry.Reporter
}

// commandInvoked reports an invocation.  Telemetry never fails a command:
// errors are only logged, as debug messages.
func commandInvoked(c *cli.Context, inv *sputnik.Invocation) *commandTelemetry {
	global := globalCfg(c)
	cfg, err := global.ReadConfig()
	if err != nil {
		// The command reports the error itself.
		return &commandTelemetry{}
	}
	logger := cfg.Logger()
	telemetry.SetLogger(logger)

	reporter, err := telemetry.NewReporter(telemetry.NewBuilder(cfg))
	if err != nil {
		logger.Debug(logDomain, "telemetry: %v", err)
	}
	if err := reporter.Report(inv); err != nil {
		logger.Debug(logDomain, "telemetry: %v", err)
	}
	return &commandTelemetry{reporter}
}

func (cmdtel *commandTelemetry) completed() {
	if cmdtel.reporter == nil {
		return
	}
	cmdtel.reporter.Close(flushTimeout)
}
