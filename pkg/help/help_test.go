// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package help

import (
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"
	"strings"
	"testing"
)

func TestCompletions(t *testing.T) {
	text := Completions("sputnik")

	assert.True(t, strings.HasPrefix(text, "DISCUSSION:"))
	for _, heading := range []string{"BASH:", "BASH (macOS/Homebrew):", "FISH:", "ZSH:", "POWERSHELL:", "CUSTOM LOCATIONS:"} {
		assert.Contains(t, text, heading)
	}
	for _, shell := range Shells {
		assert.Contains(t, text, "sputnik completions "+string(shell))
	}
	assert.Contains(t, text, "~/.zfunc/_sputnik")
	assert.Contains(t, text, "SputnikCompletions.ps1")
	assert.Contains(t, text, "new releases of Sputnik.")
	assert.NotContains(t, text, "{{")
}

func TestCompletionsName(t *testing.T) {
	text := Completions("other")
	assert.Contains(t, text, "other completions fish > ~/.config/fish/completions/other.fish")
	assert.NotContains(t, text, "sputnik")
}

func TestParseShell(t *testing.T) {
	shell, err := ParseShell("zsh")
	assert.NoError(t, err)
	assert.Equal(t, Zsh, shell)

	shell, err = ParseShell("PowerShell")
	assert.NoError(t, err)
	assert.Equal(t, PowerShell, shell)

	_, err = ParseShell("tcsh")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bash, fish, zsh, powershell")
}

func testApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sputnik"
	app.EnableBashCompletion = true
	app.Commands = []cli.Command{
		{Name: "dist", Usage: "Builds release binaries"},
	}
	return app
}

func TestScript(t *testing.T) {
	app := testApp()

	bash, err := Script(app, Bash)
	assert.NoError(t, err)
	assert.Contains(t, bash, "-F _sputnik_bash_autocomplete sputnik")

	zsh, err := Script(app, Zsh)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(zsh, "#compdef sputnik"))

	ps, err := Script(app, PowerShell)
	assert.NoError(t, err)
	assert.Contains(t, ps, "-CommandName 'sputnik'")

	fish, err := Script(app, Fish)
	assert.NoError(t, err)
	assert.Contains(t, fish, "dist")
}

func TestScriptUnsupported(t *testing.T) {
	_, err := Script(testApp(), Shell("tcsh"))
	assert.Error(t, err)
}
