// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package config

import (
	"errors"
	"os"
	"path/filepath"
)

// HomeEnv overrides the user-level configuration directory.
const HomeEnv = "SPUTNIK_CONFIG_HOME"

const dirName = "sputnik"

// Dir gives the user-level configuration directory: $SPUTNIK_CONFIG_HOME
// if set, otherwise a "sputnik" folder in the platform configuration
// directory (e.g., ~/.config/sputnik on Linux).
func Dir() (string, error) {
	return DirFromEnv(os.Getenv, os.UserConfigDir)
}

// DirFromEnv does the same as Dir, but with an arbitrary environment
// lookup and platform configuration directory.
func DirFromEnv(getenv func(string) string, userConfigDir func() (string, error)) (string, error) {
	if home := getenv(HomeEnv); home != "" {
		return home, nil
	}
	base, err := userConfigDir()
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", errors.New("platform configuration directory is unknown")
	}
	return filepath.Join(base, dirName), nil
}

// UserPath gives the path to the user-level configuration file.
func UserPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
