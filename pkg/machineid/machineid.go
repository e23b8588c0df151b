// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package machineid persists an anonymous identifier for the machine
// sputnik runs on.
package machineid

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"os"
	"path/filepath"
	"strings"
)

// Get reads the machine identifier stored at path, or generates and
// stores a new one when there is none.  When the new identifier cannot
// be stored, it is still returned, along with the error: it is then
// only valid for the current invocation.
func Get(fs afero.Fs, path string) (string, error) {
	b, err := afero.ReadFile(fs, path)
	if err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return uuid.New().String(), fmt.Errorf("cannot read machine id '%s': %w", path, err)
	}

	id := uuid.New().String()
	if err := save(fs, path, id); err != nil {
		return id, err
	}
	return id, nil
}

func save(fs afero.Fs, path, id string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create machine id folder: %w", err)
	}
	if err := afero.WriteFile(fs, path, []byte(id), 0600); err != nil {
		return fmt.Errorf("cannot write machine id '%s': %w", path, err)
	}
	return nil
}
