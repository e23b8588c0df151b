// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// toolPath resolves the configured path of a tool.  Bare names are looked
// up in the PATH, other relative paths are relative to the workspace.
func toolPath(tool Tool, workspaceDir, path string) (string, error) {
	switch {
	case path == "":
		return "", fmt.Errorf("no path for tool %q", tool)
	case filepath.IsAbs(path), !strings.ContainsRune(path, '/'):
		return path, nil
	}
	return filepath.Join(workspaceDir, strings.TrimPrefix(path, "./")), nil
}
