// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package sputnik

import (
	"encoding/json"
	"fmt"
	"github.com/hchauvin/sputnik/pkg/config"
	"github.com/hchauvin/sputnik/pkg/machineid"
	"github.com/hchauvin/sputnik/pkg/telemetry"
	"gopkg.in/yaml.v2"
	"io"
)

// Output formats of "telemetry show".
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// TelemetryCfg gives the configuration for the telemetry functions.
type TelemetryCfg struct {
	GlobalCfg
	Out io.Writer

	// NewBuilder creates the telemetry event builder.  Defaults to
	// telemetry.NewBuilder.
	NewBuilder func(cfg *config.Config) *telemetry.Builder
}

func (telemetryCfg *TelemetryCfg) builder() (*config.Config, *telemetry.Builder, error) {
	cfg, err := telemetryCfg.ReadConfig()
	if err != nil {
		return nil, nil, err
	}
	newBuilder := telemetryCfg.NewBuilder
	if newBuilder == nil {
		newBuilder = telemetry.NewBuilder
	}
	return cfg, newBuilder(cfg), nil
}

// TelemetryShowCfg gives the configuration for the TelemetryShow function.
type TelemetryShowCfg struct {
	TelemetryCfg
	Format     string
	Invocation interface{}
}

// TelemetryShow writes the telemetry event an invocation gives.
// Nothing is sent.
func TelemetryShow(showCfg *TelemetryShowCfg) error {
	cfg, b, err := showCfg.builder()
	if err != nil {
		return err
	}
	if !b.IsEnabled() {
		cfg.Logger().Info(logDomain, "telemetry is disabled: this event would not be sent")
	}

	session, err := b.NewSession(showCfg.Invocation)
	if err != nil {
		return err
	}

	out, err := renderSession(session, showCfg.Format)
	if err != nil {
		return err
	}
	_, err = showCfg.Out.Write(out)
	return err
}

func renderSession(session *telemetry.Session, format string) ([]byte, error) {
	js, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return nil, err
	}
	switch format {
	case "", FormatJSON:
		return append(js, '\n'), nil
	case FormatYAML:
		// Going through JSON keeps the field order and the
		// numbers of the arguments unchanged.
		var doc yaml.MapSlice
		if err := yaml.Unmarshal(js, &doc); err != nil {
			return nil, err
		}
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown format '%s'; possible values: %s, %s", format, FormatJSON, FormatYAML)
	}
}

// TelemetryMachineID writes the machine id, creating it if necessary.
func TelemetryMachineID(telemetryCfg *TelemetryCfg) error {
	_, b, err := telemetryCfg.builder()
	if err != nil {
		return err
	}
	path, err := b.MachineIDPath()
	if err != nil {
		return err
	}
	id, err := machineid.Get(b.Fs, path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(telemetryCfg.Out, id)
	return err
}

// TelemetryEndpoint writes where telemetry events are sent.
func TelemetryEndpoint(telemetryCfg *TelemetryCfg) error {
	_, b, err := telemetryCfg.builder()
	if err != nil {
		return err
	}
	if !b.IsEnabled() {
		_, err := fmt.Fprintln(telemetryCfg.Out, "disabled")
		return err
	}
	if b.Config.ConnectionString != "" {
		_, err := fmt.Fprintln(telemetryCfg.Out, b.Config.ConnectionString)
		return err
	}
	endpoint, err := b.ResolveEndpoint()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(telemetryCfg.Out, endpoint.String())
	return err
}
