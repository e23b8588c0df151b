// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// config provides TOML-based configuration for sputnik (.sputnikrc.toml).
// Used to set up telemetry and paths to tools, amongst other things.
package config

import (
	"github.com/hchauvin/sputnik/pkg/log"
	"path/filepath"
)

// DefaultPath is the default path to the workspace configuration,
// relative to the working directory.
const DefaultPath = ".sputnikrc.toml"

// Config is the project-wide configuration for sputnik.
type Config struct {
	// OutputRoot is the path to a folder, given relative to
	// the parent folder of the Config file, where the binaries
	// built by "dist" are put.
	OutputRoot string

	// Tools configures tools.  By default, the tools are looked up
	// in the PATH folders.
	Tools map[string]ToolInfo

	// Telemetry configures usage telemetry.
	Telemetry Telemetry

	// Dist configures release builds.
	Dist Dist

	// WorkspaceDir is the workspace directory.
	WorkspaceDir string `toml:"-"`

	// Verbose enables debug logging.  It is set from the command line.
	Verbose bool `toml:"-"`

	logger *log.Logger
}

// SetLogger replaces the logger associated with this configuration.
func (cfg *Config) SetLogger(l *log.Logger) {
	cfg.logger = l
}

// Telemetry configures usage telemetry.
type Telemetry struct {
	// Disabled opts out of telemetry.
	Disabled bool

	// Endpoint overrides the URL telemetry events are posted to.
	Endpoint string `validate:"omitempty,url"`

	// ConnectionString selects a telemetry backend other than the
	// HTTP endpoint, e.g., "mongo://uri=...;database=...;collection=..."
	// or "file://events.jsonl".
	ConnectionString string

	// Profile overrides the build profile for endpoint selection.
	Profile string `validate:"omitempty,oneof=debug release"`
}

// Dist configures release builds.
type Dist struct {
	// Assets are files or folders, given relative to the workspace
	// dir, that are copied next to every release binary.
	Assets []string
}

// Path resolves a path relative to the workspace dir.
func (cfg *Config) Path(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.WorkspaceDir, path)
}

// Logger gives the logger associated with this configuration.
func (cfg *Config) Logger() *log.Logger {
	if cfg.logger == nil {
		cfg.logger = &log.Logger{Verbose: cfg.Verbose}
	}
	return cfg.logger
}

// ToolPath gives the path to invoke a tool with.
func (cfg *Config) ToolPath(tool Tool) (string, error) {
	path := toolDefaultPaths[tool]
	if info, ok := cfg.Tools[string(tool)]; ok && info.Path != "" {
		path = info.Path
	}
	return toolPath(tool, cfg.WorkspaceDir, path)
}

// Tool is the name of a tool.
type Tool string

const (
	Go    = Tool("go")
	Strip = Tool("strip")
)

// ToolNames gives all the required tools.
var ToolNames = []Tool{Go, Strip}

// LogDomain gives the log domain for a tool.
func (tool Tool) LogDomain() string {
	return "tool." + toolDefaultPaths[tool]
}

// ToolInfo configures a tool.
type ToolInfo struct {
	// Path is the path to the tool on the local file system.
	Path string
}

var toolDefaultPaths = map[Tool]string{
	Go:    "go",
	Strip: "strip",
}
