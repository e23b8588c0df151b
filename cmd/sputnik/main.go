// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin
package main

import (
	"context"
	"fmt"
	"github.com/hchauvin/sputnik/pkg/config"
	"github.com/hchauvin/sputnik/pkg/dist"
	"github.com/hchauvin/sputnik/pkg/help"
	"github.com/hchauvin/sputnik/pkg/log/interactive"
	"github.com/hchauvin/sputnik/pkg/sputnik"
	"github.com/hchauvin/sputnik/pkg/telemetry"
	"github.com/hchauvin/sputnik/pkg/version"
	"github.com/urfave/cli"
	"os"
	"os/signal"
)

const logDomain = "main"

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		if _, err := fmt.Fprintf(os.Stderr, "%v\n", err); err != nil {
			panic(err.Error())
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = version.Current().String()
	app.Name = version.Name
	app.Usage = "Builds and ships release binaries"
	app.EnableBashCompletion = true

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "TOML project-wide config file.  The parent path of the config file is used as the workspace root.  All the file paths are given relative to the workspace root.",
			Value: config.DefaultPath,
		},
		cli.StringFlag{
			Name:  "cwd",
			Usage: "Working directory",
			Value: ".",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Prints debug messages",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:        "dist",
			Usage:       "Builds release binaries",
			Description: "Cross-compiles release binaries for the given targets, then strips their symbols.  All the targets are built when none is given.",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "target",
					Usage: "Target triple to build for (can be repeated)",
				},
				cli.IntFlag{
					Name:  "parallelism",
					Usage: "Maximum number of targets built concurrently",
					Value: 1,
				},
				cli.StringFlag{
					Name:  "package",
					Usage: "Main package to build, relative to the workspace root",
					Value: dist.DefaultPackage,
				},
				cli.StringFlag{
					Name:  "release-version",
					Usage: "Version injected into the binaries",
				},
				cli.StringFlag{
					Name:  "commit",
					Usage: "Commit injected into the binaries",
				},
				cli.BoolFlag{
					Name:  "no-progress",
					Usage: "Logs the build output instead of showing the progress of the targets",
				},
			},
			Action: func(c *cli.Context) error {
				t := commandInvoked(c, sputnik.NewInvocation(verbose(c), "dist", &sputnik.DistArgs{
					Target:      c.StringSlice("target"),
					Parallelism: c.Int("parallelism"),
				}))
				defer t.completed()

				ctx, cancel := interruptibleContext()
				defer cancel()
				return sputnik.Dist(ctx, &sputnik.DistCfg{
					GlobalCfg:   globalCfg(c),
					Targets:     c.StringSlice("target"),
					Parallelism: c.Int("parallelism"),
					Package:     c.String("package"),
					Version:     c.String("release-version"),
					Commit:      c.String("commit"),
					Interactive: !c.Bool("no-progress") && !verbose(c) && interactive.IsTerminal(os.Stdout),
				})
			},
		},
		{
			Name:        "completions",
			Usage:       "Generates shell completion scripts",
			ArgsUsage:   "<bash|fish|zsh|powershell>",
			Description: help.Completions(version.Name),
			Action: func(c *cli.Context) error {
				shell := c.Args().First()
				t := commandInvoked(c, sputnik.NewInvocation(verbose(c), "completions", &sputnik.CompletionsArgs{
					Shell: shell,
				}))
				defer t.completed()

				return sputnik.Completions(&sputnik.CompletionsCfg{
					App:   app,
					Shell: shell,
					Out:   c.App.Writer,
				})
			},
		},
		{
			Name:  "telemetry",
			Usage: "Inspects usage telemetry",
			Description: fmt.Sprintf(
				"Usage telemetry can be disabled by setting the %s environment variable, or with 'Disabled = true' in the [Telemetry] section of the config file.",
				telemetry.DisabledEnv),
			Subcommands: []cli.Command{
				{
					Name:  "show",
					Usage: "Prints the telemetry event sent for an invocation of this command",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "format",
							Usage: "Output format: json or yaml",
							Value: sputnik.FormatJSON,
						},
					},
					Action: func(c *cli.Context) error {
						inv := sputnik.NewTelemetryInvocation(verbose(c), "show", &sputnik.TelemetryShowArgs{
							Format: c.String("format"),
						})
						t := commandInvoked(c, inv)
						defer t.completed()

						return sputnik.TelemetryShow(&sputnik.TelemetryShowCfg{
							TelemetryCfg: telemetryCfg(c),
							Format:       c.String("format"),
							Invocation:   inv,
						})
					},
				},
				{
					Name:  "machine-id",
					Usage: "Prints the anonymous machine id",
					Action: func(c *cli.Context) error {
						t := commandInvoked(c, sputnik.NewTelemetryInvocation(verbose(c), "machine-id", nil))
						defer t.completed()

						return sputnik.TelemetryMachineID(ptr(telemetryCfg(c)))
					},
				},
				{
					Name:  "endpoint",
					Usage: "Prints where telemetry events are sent",
					Action: func(c *cli.Context) error {
						t := commandInvoked(c, sputnik.NewTelemetryInvocation(verbose(c), "endpoint", nil))
						defer t.completed()

						return sputnik.TelemetryEndpoint(ptr(telemetryCfg(c)))
					},
				},
			},
		},
	}

	return app
}

func verbose(c *cli.Context) bool {
	return c.GlobalBool("verbose")
}

func globalCfg(c *cli.Context) sputnik.GlobalCfg {
	return sputnik.GlobalCfg{
		WorkingDir: c.GlobalString("cwd"),
		ConfigPath: c.GlobalString("config"),
		Verbose:    verbose(c),
	}
}

func telemetryCfg(c *cli.Context) sputnik.TelemetryCfg {
	return sputnik.TelemetryCfg{
		GlobalCfg: globalCfg(c),
		Out:       c.App.Writer,
	}
}

func ptr(cfg sputnik.TelemetryCfg) *sputnik.TelemetryCfg {
	return &cfg
}

// interruptibleContext gives a context that is cancelled on Ctrl-C.
func interruptibleContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signalc := make(chan os.Signal, 1)
	signal.Notify(signalc, os.Interrupt)
	go func() {
		select {
		case <-signalc:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(signalc)
	}()
	return ctx, cancel
}
