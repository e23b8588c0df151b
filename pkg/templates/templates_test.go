// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package templates

import (
	"bytes"
	"fmt"
	"github.com/Masterminds/sprig"
	"github.com/stretchr/testify/assert"
	"os"
	"runtime"
	"testing"
	"text/template"
)

func expand(t *testing.T, text string) string {
	tpl, err := template.New("config").
		Funcs(sprig.TxtFuncMap()).
		Funcs(TxtFuncMap()).
		Parse(text)
	assert.NoError(t, err)

	w := &bytes.Buffer{}
	err = tpl.Execute(w, map[string]interface{}{})
	assert.NoError(t, err)
	return w.String()
}

func TestOS(t *testing.T) {
	assert.Equal(t, fmt.Sprintf("Hello, %s!", runtime.GOOS), expand(t, "Hello, {{ os }}!"))
}

func TestArch(t *testing.T) {
	assert.Equal(t, runtime.GOARCH, expand(t, "{{ arch }}"))
}

func TestEnvOverridesSprig(t *testing.T) {
	os.Setenv("SPUTNIK_TEMPLATES_TEST", "value")
	defer os.Unsetenv("SPUTNIK_TEMPLATES_TEST")

	assert.Equal(t, "VALUE", expand(t, `{{ env "SPUTNIK_TEMPLATES_TEST" | upper }}`))
}
