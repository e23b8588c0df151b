// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package telemetry

import (
	"fmt"
	"github.com/hchauvin/sputnik/pkg/config"
	"github.com/hchauvin/sputnik/pkg/invocation"
	"github.com/hchauvin/sputnik/pkg/log"
	"github.com/hchauvin/sputnik/pkg/version"
	"github.com/spf13/afero"
	"net/url"
	"os"
	"path/filepath"
)

// Environment variables read by the Builder.
const (
	// DisabledEnv disables telemetry when set to any non-empty value.
	DisabledEnv = "SPUTNIK_TELEMETRY_DISABLED"
	// URLEnv overrides the telemetry endpoint.
	URLEnv = "SPUTNIK_TELEMETRY_URL"
)

// Endpoints used when no override is given.
const (
	DevEndpoint  = "http://localhost:8787/telemetry"
	ProdEndpoint = "https://install.sputnik.dev/telemetry"
)

const machineIDFile = "machine.txt"

const unknown = "unknown"

// Builder builds telemetry events.  It only reads its inputs: it performs
// no network I/O, and only the machine id in NewSession touches the disk.
type Builder struct {
	// Build gives the build-time constants.
	Build version.Info

	// Config is the telemetry section of the configuration.
	Config config.Telemetry

	// Getenv looks up environment variables.
	Getenv func(string) string

	// ConfigDir gives the user-level configuration directory.
	ConfigDir func() (string, error)

	// Getwd gives the working directory.
	Getwd func() (string, error)

	// Fs is where the machine id is persisted.
	Fs afero.Fs

	Logger *log.Logger
}

// NewBuilder creates a Builder for the running binary.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		Build:     version.Current(),
		Config:    cfg.Telemetry,
		Getenv:    os.Getenv,
		ConfigDir: config.Dir,
		Getwd:     os.Getwd,
		Fs:        afero.NewOsFs(),
		Logger:    cfg.Logger(),
	}
}

// SerializeInvocation flattens a typed invocation into a telemetry command.
func (b *Builder) SerializeInvocation(state interface{}) (*invocation.Command, error) {
	node, err := invocation.Serialize(state)
	if err != nil {
		return nil, &SerializationError{err}
	}
	cmd, err := invocation.Flatten(node)
	if err != nil {
		return nil, &SerializationError{err}
	}
	b.logger().Debug(logDomain, "command: %q, arguments: %v", cmd.Name, cmd.Arguments)
	return cmd, nil
}

// IsEnabled tells whether telemetry is enabled.  Telemetry is enabled
// unless it is disabled at build time, in the environment, or in the
// configuration.
func (b *Builder) IsEnabled() bool {
	if b.Build.TelemetryDisabled != "" {
		return false
	}
	if b.getenv(DisabledEnv) != "" {
		return false
	}
	return !b.Config.Disabled
}

// ResolveEndpoint gives the URL to post telemetry events to.  An override
// given at build time, in the environment, or in the configuration (in
// this order of precedence) always wins.  Otherwise, the endpoint depends
// on the build profile.
func (b *Builder) ResolveEndpoint() (*url.URL, error) {
	override := b.Build.TelemetryURL
	if override == "" {
		override = b.getenv(URLEnv)
	}
	if override == "" {
		override = b.Config.Endpoint
	}
	if override != "" {
		u, err := url.Parse(override)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("invalid endpoint '%s'", override), Err: err}
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("invalid endpoint '%s': expected an absolute URL", override)}
		}
		return u, nil
	}

	endpoint := DevEndpoint
	if b.profile() == version.ProfileRelease {
		endpoint = ProdEndpoint
	}
	return url.Parse(endpoint)
}

func (b *Builder) profile() string {
	if b.Config.Profile != "" {
		return b.Config.Profile
	}
	return b.Build.Profile
}

// ToolIdentity gives the name and version of the tool, "unknown" when
// they were not given at build time.
func (b *Builder) ToolIdentity() (name, version string) {
	name, version = b.Build.Name, b.Build.Version
	if name == "" {
		name = unknown
	}
	if version == "" {
		version = unknown
	}
	return
}

// MachineIDPath gives the path to the file that holds the machine id.
func (b *Builder) MachineIDPath() (string, error) {
	configDir := b.ConfigDir
	if configDir == nil {
		configDir = config.Dir
	}
	dir, err := configDir()
	if err != nil {
		return "", &ConfigError{Reason: "cannot determine the configuration directory", Err: err}
	}
	return filepath.Join(dir, machineIDFile), nil
}

func (b *Builder) getenv(key string) string {
	if b.Getenv == nil {
		return os.Getenv(key)
	}
	return b.Getenv(key)
}

func (b *Builder) logger() *log.Logger {
	if b.Logger == nil {
		return &log.Logger{}
	}
	return b.Logger
}
