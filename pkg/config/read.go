// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin
package config

import (
	"bytes"
	"fmt"
	"github.com/Masterminds/sprig"
	"github.com/go-playground/validator"
	"github.com/hchauvin/sputnik/pkg/templates"
	"github.com/imdario/mergo"
	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
	"os"
	"path/filepath"
	"text/template"
)

// Read reads the project-wide configuration, layered on top of the
// user-level configuration (see UserPath).
func Read(path string) (*Config, error) {
	var layers []string
	if userPath, err := UserPath(); err == nil {
		layers = append(layers, userPath)
	}
	layers = append(layers, path)
	return ReadFs(afero.NewOsFs(), layers...)
}

// ReadFs reads configuration layers from an arbitrary afero file system.
// Later layers override earlier ones.  Missing layers are skipped.
// The workspace directory is the parent folder of the last layer.
func ReadFs(fs afero.Fs, paths ...string) (*Config, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no configuration path given")
	}

	cfg := &Config{}
	for _, path := range paths {
		layer, err := readLayer(fs, path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		if err := mergo.Merge(cfg, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("cannot merge config '%s': %v", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	if cfg.OutputRoot == "" {
		cfg.OutputRoot = "target"
	}
	if cfg.Tools == nil {
		cfg.Tools = make(map[string]ToolInfo)
	}
	for _, toolName := range ToolNames {
		tool := cfg.Tools[string(toolName)]
		if tool.Path == "" {
			tool.Path = toolDefaultPaths[toolName]
		}
		cfg.Tools[string(toolName)] = tool
	}

	root, err := filepath.Abs(filepath.Dir(paths[len(paths)-1]))
	if err != nil {
		return nil, err
	}
	cfg.WorkspaceDir = root

	return cfg, nil
}

func readLayer(fs afero.Fs, path string) (*Config, error) {
	b, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file '%s': %v", path, err)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	tpl, err := template.New("config").
		Funcs(sprig.TxtFuncMap()).
		Funcs(templates.TxtFuncMap()).
		Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("cannot parse template '%s': %v", path, err)
	}
	data := map[string]interface{}{
		"Root": root,
	}
	w := &bytes.Buffer{}
	if err := tpl.Execute(w, data); err != nil {
		return nil, fmt.Errorf("cannot expand template '%s': %v", path, err)
	}

	layer := &Config{}
	if err := toml.Unmarshal(w.Bytes(), layer); err != nil {
		return nil, fmt.Errorf("cannot read config '%s': %v", path, err)
	}
	return layer, nil
}
