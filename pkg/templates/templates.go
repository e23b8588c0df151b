// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package templates gives the functions available to the text templates
// sputnik expands: the project configuration and the help texts.
package templates

import (
	"os"
	"runtime"
	"text/template"
)

// TxtFuncMap gives the template functions.  It is meant to be used
// on top of sprig.TxtFuncMap().
func TxtFuncMap() template.FuncMap {
	return template.FuncMap{
		"os":   func() string { return runtime.GOOS },
		"arch": func() string { return runtime.GOARCH },
		"env":  os.Getenv,
	}
}
