// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package version

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestLDFlags(t *testing.T) {
	flags := Info{
		Name:    "sputnik",
		Version: "1.2.3",
		Profile: ProfileRelease,
	}.LDFlags()

	assert.Equal(t, []string{
		"-X", importPath + ".Name=sputnik",
		"-X", importPath + ".Version=1.2.3",
		"-X", importPath + ".Profile=release",
	}, flags)
}

func TestLDFlagsQuoting(t *testing.T) {
	flags := Info{Date: "2019 12 01"}.LDFlags()
	assert.Equal(t, []string{"-X", "'" + importPath + ".Date=2019 12 01'"}, flags)
}

func TestString(t *testing.T) {
	s := Info{Version: "1.2.3", Profile: ProfileDebug}.String()
	assert.True(t, strings.HasPrefix(s, "1.2.3 (commit: <unknown>;"))
	assert.Contains(t, s, "profile: debug")
}
