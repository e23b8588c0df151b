// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package machineid

import (
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"testing"
)

const path = "/config/sputnik/machine.txt"

func TestGetGenerates(t *testing.T) {
	fs := afero.NewMemMapFs()

	id, err := Get(fs, path)
	assert.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	b, err := afero.ReadFile(fs, path)
	assert.NoError(t, err)
	assert.Equal(t, id, string(b))
}

func TestGetStable(t *testing.T) {
	fs := afero.NewMemMapFs()

	first, err := Get(fs, path)
	assert.NoError(t, err)
	second, err := Get(fs, path)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, path, []byte("  existing-id\n"), 0600))

	id, err := Get(fs, path)
	assert.NoError(t, err)
	assert.Equal(t, "existing-id", id)
}

func TestGetEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, path, []byte("\n"), 0600))

	id, err := Get(fs, path)
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	b, err := afero.ReadFile(fs, path)
	assert.NoError(t, err)
	assert.Equal(t, id, string(b))
}

func TestGetReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	id, err := Get(fs, path)
	assert.Error(t, err)
	assert.NotEmpty(t, id)
}
