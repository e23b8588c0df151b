// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package config

import (
	"github.com/stretchr/testify/assert"
	"path/filepath"
	"testing"
)

func TestToolPath(t *testing.T) {
	path, err := toolPath(Go, "/workspace", "/absolute")
	assert.NoError(t, err)
	assert.Equal(t, "/absolute", filepath.ToSlash(path))

	path, err = toolPath(Go, "/workspace", "program-in-path")
	assert.NoError(t, err)
	assert.Equal(t, "program-in-path", path)

	path, err = toolPath(Go, "/workspace", "./relative")
	assert.NoError(t, err)
	assert.Equal(t, "/workspace/relative", filepath.ToSlash(path))

	path, err = toolPath(Go, "/workspace", "relative/path")
	assert.NoError(t, err)
	assert.Equal(t, "/workspace/relative/path", filepath.ToSlash(path))
}

func TestToolPathEmpty(t *testing.T) {
	_, err := toolPath(Strip, "/workspace", "")
	assert.EqualError(t, err, `no path for tool "strip"`)
}

func TestConfigToolPath(t *testing.T) {
	cfg := &Config{
		WorkspaceDir: "/workspace",
		Tools:        map[string]ToolInfo{"strip": {Path: "./bin/strip"}},
	}

	path, err := cfg.ToolPath(Go)
	assert.NoError(t, err)
	assert.Equal(t, "go", path)

	path, err = cfg.ToolPath(Strip)
	assert.NoError(t, err)
	assert.Equal(t, "/workspace/bin/strip", filepath.ToSlash(path))

	_, err = cfg.ToolPath(Tool("unknown"))
	assert.EqualError(t, err, `no path for tool "unknown"`)
}
