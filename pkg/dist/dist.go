// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package dist builds release binaries and strips their symbols.
package dist

import (
	"context"
	"fmt"
	"github.com/hchauvin/sputnik/pkg/config"
	"github.com/hchauvin/sputnik/pkg/log/interactive"
	"github.com/hchauvin/sputnik/pkg/proc"
	"github.com/hchauvin/sputnik/pkg/version"
	"github.com/otiai10/copy"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"os"
	"path/filepath"
	"strings"
)

const logDomain = "dist"

// DefaultPackage is the main package that is built by default.
const DefaultPackage = "./cmd/sputnik"

// Options configures a release build.
type Options struct {
	// Package is the main package to build, relative to the
	// workspace directory.  Defaults to DefaultPackage.
	Package string

	// Info is injected into the binaries.  The profile is always
	// forced to version.ProfileRelease.
	Info version.Info

	// Parallelism is the maximum number of targets built concurrently.
	// Defaults to 1.
	Parallelism int

	// Events, if not nil, receives an interactive.SetStateEvent for
	// every step of every target.
	Events chan<- interface{}
}

func (opts *Options) setState(target Target, state interactive.State, stage string) {
	if opts.Events == nil {
		return
	}
	opts.Events <- interactive.SetStateEvent{
		Name:  string(target),
		State: state,
		Stage: stage,
	}
}

func (opts *Options) name() string {
	if opts.Info.Name != "" {
		return opts.Info.Name
	}
	return version.Name
}

// BinaryPath gives the path to the binary built for a target.
func BinaryPath(cfg *config.Config, target Target, opts *Options) string {
	return cfg.Path(filepath.Join(
		cfg.OutputRoot,
		string(target),
		target.BinaryName(opts.name())))
}

// BuildSpec gives the process that builds the binary for a target.
func BuildSpec(cfg *config.Config, target Target, opts *Options) (*proc.Spec, error) {
	goPath, err := cfg.ToolPath(config.Go)
	if err != nil {
		return nil, err
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	info := opts.Info
	info.Profile = version.ProfileRelease

	return &proc.Spec{
		Name: goPath,
		Args: []string{
			"build",
			"-trimpath",
			"-ldflags", strings.Join(info.LDFlags(), " "),
			"-o", BinaryPath(cfg, target, opts),
			pkg,
		},
		Env: []string{
			"CGO_ENABLED=0",
			"GOOS=" + target.GOOS(),
			"GOARCH=" + target.GOARCH(),
		},
		Dir: cfg.WorkspaceDir,
	}, nil
}

// Build builds the binary for a target, and gives its path.
func Build(ctx context.Context, cfg *config.Config, target Target, opts *Options) (string, error) {
	name := opts.name()
	spec, err := BuildSpec(cfg, target, opts)
	if err != nil {
		return "", fmt.Errorf("could not build %s: %w", name, err)
	}

	binaryPath := BinaryPath(cfg, target, opts)
	if err := os.MkdirAll(filepath.Dir(binaryPath), 0777); err != nil {
		return "", fmt.Errorf("could not build %s: %w", name, err)
	}

	cfg.Logger().Info(logDomain, "building %s for %s", name, target)
	if err := proc.Run(ctx, cfg.Logger(), config.Go.LogDomain(), spec); err != nil {
		return "", fmt.Errorf("could not build %s: %w", name, err)
	}
	return binaryPath, nil
}

// StripSpec gives the process that strips the symbols of a binary.
func StripSpec(cfg *config.Config, binaryPath string) (*proc.Spec, error) {
	stripPath, err := cfg.ToolPath(config.Strip)
	if err != nil {
		return nil, err
	}
	return &proc.Spec{
		Name: stripPath,
		Args: []string{binaryPath},
	}, nil
}

// Strip strips the symbols of a binary built for a target.  Binaries
// for targets that are not Strippable are left untouched.
func Strip(ctx context.Context, cfg *config.Config, target Target, binaryPath string) error {
	if !target.Strippable() {
		cfg.Logger().Debug(logDomain, "skipping strip for %s", target)
		return nil
	}
	spec, err := StripSpec(cfg, binaryPath)
	if err != nil {
		return fmt.Errorf("could not strip symbols from %s: %w", binaryPath, err)
	}
	if err := proc.Run(ctx, cfg.Logger(), config.Strip.LogDomain(), spec); err != nil {
		return fmt.Errorf("could not strip symbols from %s: %w", binaryPath, err)
	}
	return nil
}

// CopyAssets copies the release assets configured in cfg next to a binary.
func CopyAssets(cfg *config.Config, binaryPath string) error {
	dir := filepath.Dir(binaryPath)
	for _, asset := range cfg.Dist.Assets {
		src := cfg.Path(asset)
		dest := filepath.Join(dir, filepath.Base(src))
		if err := copy.Copy(src, dest); err != nil {
			return fmt.Errorf("could not copy asset '%s' to '%s': %w", src, dest, err)
		}
	}
	return nil
}

// Dist builds then strips the binaries for the given targets, copies
// the release assets next to them, and gives their paths, in the order
// of the targets.
func Dist(ctx context.Context, cfg *config.Config, targets []Target, opts *Options) ([]string, error) {
	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	for _, target := range targets {
		opts.setState(target, interactive.Initial, "")
	}

	paths := make([]string, len(targets))
	sem := semaphore.NewWeighted(int64(parallelism))
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		i, target := i, target
		g.Go(func() error {
			defer sem.Release(1)

			opts.setState(target, interactive.Started, "building")
			binaryPath, err := Build(gctx, cfg, target, opts)
			if err != nil {
				opts.setState(target, interactive.Failed, "")
				return err
			}
			if target.Strippable() {
				opts.setState(target, interactive.Started, "stripping")
			}
			if err := Strip(gctx, cfg, target, binaryPath); err != nil {
				opts.setState(target, interactive.Failed, "")
				return err
			}
			if err := CopyAssets(cfg, binaryPath); err != nil {
				opts.setState(target, interactive.Failed, "")
				return err
			}
			opts.setState(target, interactive.Completed, "")
			paths[i] = binaryPath
			cfg.Logger().Info(logDomain, "%s: %s", target, binaryPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}
