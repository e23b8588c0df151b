// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package help

import (
	"fmt"
	"github.com/urfave/cli"
	"strings"
)

// Shell is a shell completion scripts can be generated for.
type Shell string

const (
	Bash       = Shell("bash")
	Fish       = Shell("fish")
	Zsh        = Shell("zsh")
	PowerShell = Shell("powershell")
)

// Shells lists all the supported shells.
var Shells = []Shell{Bash, Fish, Zsh, PowerShell}

// ParseShell parses a shell name, case-insensitively.
func ParseShell(s string) (Shell, error) {
	for _, shell := range Shells {
		if strings.EqualFold(s, string(shell)) {
			return shell, nil
		}
	}
	names := make([]string, len(Shells))
	for i, shell := range Shells {
		names[i] = string(shell)
	}
	return "", fmt.Errorf("unsupported shell '%s'; possible values: %s", s, strings.Join(names, ", "))
}

// Script gives the completion script of an app for a shell.  The
// scripts rely on the "--generate-bash-completion" flag, so the app
// must have EnableBashCompletion set.
func Script(app *cli.App, shell Shell) (string, error) {
	switch shell {
	case Bash:
		return render("bash", bashScript, app.Name)
	case Zsh:
		return render("zsh", zshScript, app.Name)
	case PowerShell:
		return render("powershell", powerShellScript, app.Name)
	case Fish:
		return app.ToFishCompletion()
	default:
		return "", fmt.Errorf("unsupported shell '%s'", shell)
	}
}

const bashScript = `#! /bin/bash

_{{ .Name | snakecase }}_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    if [[ "$cur" == "-"* ]]; then
      opts=$( ${COMP_WORDS[@]:0:$COMP_CWORD} ${cur} --generate-bash-completion )
    else
      opts=$( ${COMP_WORDS[@]:0:$COMP_CWORD} --generate-bash-completion )
    fi
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _{{ .Name | snakecase }}_bash_autocomplete {{ .Name }}
`

const zshScript = `#compdef {{ .Name }}

_{{ .Name | snakecase }}_zsh_autocomplete() {
  local -a opts
  local cur
  cur=${words[-1]}
  if [[ "$cur" == "-"* ]]; then
    opts=("${(@f)$(_CLI_ZSH_AUTOCOMPLETE_HACK=1 ${words[@]:0:#words[@]-1} ${cur} --generate-bash-completion)}")
  else
    opts=("${(@f)$(_CLI_ZSH_AUTOCOMPLETE_HACK=1 ${words[@]:0:#words[@]-1} --generate-bash-completion)}")
  fi

  if [[ "${opts[1]}" != "" ]]; then
    _describe 'values' opts
  else
    _files
  fi
}

compdef _{{ .Name | snakecase }}_zsh_autocomplete {{ .Name }}
`

const powerShellScript = `Register-ArgumentCompleter -Native -CommandName '{{ .Name }}' -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $elements = $commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() }
    & '{{ .Name }}' @elements --generate-bash-completion |
        Where-Object { $_ -like "$wordToComplete*" } |
        ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
}
`
