// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package sputnik implements the commands of the sputnik CLI.
package sputnik

import (
	"context"
	"fmt"
	"github.com/hchauvin/sputnik/pkg/config"
	"github.com/hchauvin/sputnik/pkg/dist"
	"github.com/hchauvin/sputnik/pkg/help"
	"github.com/hchauvin/sputnik/pkg/log"
	"github.com/hchauvin/sputnik/pkg/log/interactive"
	"github.com/hchauvin/sputnik/pkg/version"
	"github.com/urfave/cli"
	"io"
	"path/filepath"
	"time"
)

const logDomain = "sputnik"

// GlobalCfg holds the options shared by all the commands.
type GlobalCfg struct {
	WorkingDir string
	ConfigPath string
	Verbose    bool
}

// ReadConfig reads the configuration of the workspace.
func (global *GlobalCfg) ReadConfig() (*config.Config, error) {
	cfg, err := config.Read(filepath.Join(global.WorkingDir, global.ConfigPath))
	if err != nil {
		return nil, err
	}
	cfg.Verbose = global.Verbose
	return cfg, nil
}

// DistCfg gives the configuration for the Dist function.
type DistCfg struct {
	GlobalCfg
	Targets     []string
	Parallelism int
	Package     string
	Version     string
	Commit      string

	// Interactive shows the progress of the targets on fixed
	// terminal lines.
	Interactive bool
}

// Dist builds the release binaries.
func Dist(ctx context.Context, distCfg *DistCfg) error {
	targets, err := dist.ParseTargets(distCfg.Targets)
	if err != nil {
		return err
	}

	cfg, err := distCfg.ReadConfig()
	if err != nil {
		return err
	}

	opts := &dist.Options{
		Package: distCfg.Package,
		Info: version.Info{
			Name:              version.Name,
			Version:           distCfg.Version,
			Commit:            distCfg.Commit,
			Date:              time.Now().UTC().Format(time.RFC3339),
			TelemetryDisabled: version.TelemetryDisabled,
			TelemetryURL:      version.TelemetryURL,
		},
		Parallelism: distCfg.Parallelism,
	}

	var stopReport func()
	if distCfg.Interactive {
		stopReport = reportProgress(cfg.Logger(), opts)
	}
	paths, err := dist.Dist(ctx, cfg, targets, opts)
	if stopReport != nil {
		stopReport()
	}
	if err != nil {
		return err
	}
	cfg.Logger().Info(logDomain, "built %d binaries under '%s'", len(paths), cfg.Path(cfg.OutputRoot))
	return nil
}

func reportProgress(logger *log.Logger, opts *dist.Options) (stop func()) {
	eventc := make(chan interface{})
	done := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		errc <- interactive.Report(logger, eventc, done)
	}()
	opts.Events = eventc
	return func() {
		close(done)
		if err := <-errc; err != nil {
			logger.Debug(logDomain, "cannot report progress: %v", err)
		}
	}
}

// CompletionsCfg gives the configuration for the Completions function.
type CompletionsCfg struct {
	App   *cli.App
	Shell string
	Out   io.Writer
}

// Completions writes the completion script for a shell.
func Completions(completionsCfg *CompletionsCfg) error {
	shell, err := help.ParseShell(completionsCfg.Shell)
	if err != nil {
		return err
	}
	script, err := help.Script(completionsCfg.App, shell)
	if err != nil {
		return fmt.Errorf("cannot generate %s completions: %w", shell, err)
	}
	_, err = io.WriteString(completionsCfg.Out, script)
	return err
}
